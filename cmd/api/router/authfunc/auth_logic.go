package authfunc

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"mytube.com/cmd/api/pack"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/security"
)

const AccessTokenCookie = "accessToken"

var jwtManager *security.JWTManager

func Init(jm *security.JWTManager) {
	jwtManager = jm
}

// Auth rejects requests without a valid access token.
func Auth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		accessTokenAuthFunc(true),
	)
}

// OptionalAuth resolves the viewer when a valid token is present and lets
// anonymous requests through.
func OptionalAuth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		accessTokenAuthFunc(false),
	)
}

func accessTokenAuthFunc(required bool) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		token := extractToken(c)
		if token == "" {
			if required {
				pack.SendError(ctx, c, errno.AuthenticationErr)
				return
			}
			c.Next(ctx)
			return
		}
		claims, err := parse(token)
		if err != nil {
			hlog.CtxDebugf(ctx, "access token rejected: %v", err)
			if required {
				pack.SendError(ctx, c, errno.TokenInvalidErr)
				return
			}
			// 可选鉴权下无效令牌按匿名处理
			c.Next(ctx)
			return
		}
		pack.SetPrincipal(c, claims.UserID)
		c.Next(ctx)
	}
}

func parse(token string) (*security.JWTClaims, error) {
	if jwtManager == nil {
		return nil, errno.ServiceErr.WithMessage("token manager is not initialized")
	}
	return jwtManager.ParseAccess(token)
}

// extractToken prefers the Authorization header over the cookie.
func extractToken(c *app.RequestContext) string {
	auth := strings.TrimSpace(string(c.GetHeader("Authorization")))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return string(c.Cookie(AccessTokenCookie))
}
