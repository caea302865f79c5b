package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/security"
	"mytube.com/pkg/utils"
)

type LoginRequest struct {
	Username string
	Email    string
	Password string
}

type LoginResult struct {
	User   *model.User
	Tokens *security.TokenPair
}

// TokenService owns the refresh token life cycle: only the hash of the latest
// refresh token is stored, so each token can be used once.
type TokenService struct {
	ctx context.Context
	jwt *security.JWTManager
}

func NewTokenService(ctx context.Context, jm *security.JWTManager) *TokenService {
	return &TokenService{ctx: ctx, jwt: jm}
}

func (s *TokenService) Login(req *LoginRequest) (*LoginResult, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" && email == "" {
		return nil, errno.ValidationErr.WithMessage("Username or email is required")
	}
	user, err := db.FindUserByLogin(s.ctx, username, email)
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, errno.AuthenticationErr.WithMessage("Invalid user credentials")
	}
	tokens, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: tokens}, nil
}

func (s *TokenService) Logout(userID string) error {
	if err := db.SetRefreshTokenHash(s.ctx, userID, nil); err != nil {
		return errors.WithMessage(err, "dao.ClearRefreshToken failed")
	}
	return nil
}

// Refresh rotates the pair. A token that is not the latest one issued is rejected.
func (s *TokenService) Refresh(refreshToken string) (*security.TokenPair, error) {
	if refreshToken == "" {
		return nil, errno.AuthenticationErr.WithMessage("unauthorized request")
	}
	claims, err := s.jwt.ParseRefresh(refreshToken)
	if err != nil {
		hlog.CtxInfof(s.ctx, "refresh token rejected: %v", err)
		return nil, errno.AuthenticationErr.WithMessage("Invalid refresh token")
	}
	user, err := db.FindByID[model.User](s.ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, errno.NotFoundErr) {
			return nil, errno.AuthenticationErr.WithMessage("Invalid refresh token")
		}
		return nil, err
	}
	if user.RefreshTokenHash == nil ||
		subtle.ConstantTimeCompare([]byte(*user.RefreshTokenHash), []byte(utils.HashToken(refreshToken))) != 1 {
		return nil, errno.AuthenticationErr.WithMessage("Refresh token is expired or used")
	}
	return s.issue(user)
}

func (s *TokenService) issue(user *model.User) (*security.TokenPair, error) {
	tokens, err := s.jwt.GeneratePair(user.ID, user.Username, user.Email, user.FullName)
	if err != nil {
		return nil, errno.ServiceErr.WithMessage("Something went wrong while generating tokens")
	}
	hash := utils.HashToken(tokens.RefreshToken)
	if err := db.SetRefreshTokenHash(s.ctx, user.ID, &hash); err != nil {
		return nil, errors.WithMessage(err, "dao.SetRefreshToken failed")
	}
	return tokens, nil
}
