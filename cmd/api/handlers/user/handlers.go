package handlers

import (
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol"

	"mytube.com/cmd/api/router/authfunc"
	"mytube.com/pkg/security"
)

const refreshTokenCookie = "refreshToken"

var (
	jwtManager *security.JWTManager
	accessTTL  time.Duration
	refreshTTL time.Duration
)

func Init(jm *security.JWTManager, access, refresh time.Duration) {
	jwtManager = jm
	accessTTL, refreshTTL = access, refresh
}

type LoginParam struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type RefreshParam struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

type ChangePasswordParam struct {
	OldPassword string `json:"oldPassword" form:"oldPassword"`
	NewPassword string `json:"newPassword" form:"newPassword"`
}

type UpdateAccountParam struct {
	FullName string `json:"fullName" form:"fullName"`
	Email    string `json:"email" form:"email"`
}

func setTokenCookies(c *app.RequestContext, tokens *security.TokenPair) {
	c.SetCookie(authfunc.AccessTokenCookie, tokens.AccessToken, int(accessTTL.Seconds()), "/", "", protocol.CookieSameSiteLaxMode, true, true)
	c.SetCookie(refreshTokenCookie, tokens.RefreshToken, int(refreshTTL.Seconds()), "/", "", protocol.CookieSameSiteLaxMode, true, true)
}

func clearTokenCookies(c *app.RequestContext) {
	c.SetCookie(authfunc.AccessTokenCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, true, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, true, true)
}
