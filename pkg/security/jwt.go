package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessToken  = "access"
	RefreshToken = "refresh"

	issuer = "mytube"
)

// JWTManager 签发与校验访问令牌和刷新令牌，两者使用不同的密钥
type JWTManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// JWTClaims 访问令牌携带用户的公开资料，刷新令牌只携带用户ID
type JWTClaims struct {
	UserID    string `json:"_id"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FullName  string `json:"fullName,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func NewJWTManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// GeneratePair issues a fresh access/refresh pair for the user.
func (jm *JWTManager) GeneratePair(userID, username, email, fullName string) (*TokenPair, error) {
	access, err := jm.sign(&JWTClaims{
		UserID:    userID,
		Username:  username,
		Email:     email,
		FullName:  fullName,
		TokenType: AccessToken,
	}, jm.accessTTL, jm.accessSecret)
	if err != nil {
		return nil, err
	}
	refresh, err := jm.sign(&JWTClaims{UserID: userID, TokenType: RefreshToken}, jm.refreshTTL, jm.refreshSecret)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (jm *JWTManager) sign(claims *JWTClaims, ttl time.Duration, secret []byte) (string, error) {
	now := jm.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(), // 保证同一秒内签发的令牌也不相同
		Issuer:    issuer,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (jm *JWTManager) ParseAccess(tokenString string) (*JWTClaims, error) {
	return jm.parse(tokenString, AccessToken, jm.accessSecret)
}

func (jm *JWTManager) ParseRefresh(tokenString string) (*JWTClaims, error) {
	return jm.parse(tokenString, RefreshToken, jm.refreshSecret)
}

func (jm *JWTManager) parse(tokenString, tokenType string, secret []byte) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(jm.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("expected %s token, got %q", tokenType, claims.TokenType)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("invalid user ID")
	}
	return claims, nil
}
