package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"mytube.com/cmd/api/pack"
	"mytube.com/cmd/user/service"
	"mytube.com/pkg/errno"
)

func Register(ctx context.Context, c *app.RequestContext) {
	avatar, err := pack.SaveFormFile(c, "avatar")
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	cover, err := pack.SaveFormFile(c, "coverImage")
	defer pack.RemoveTemp(ctx, avatar, cover)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}

	user, err := service.NewCreateUserService(ctx).Register(&service.RegisterRequest{
		FullName:   c.PostForm("fullName"),
		Email:      c.PostForm("email"),
		Username:   c.PostForm("username"),
		Password:   c.PostForm("password"),
		AvatarPath: avatar,
		CoverPath:  cover,
	})
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.CreatedCode, user, "User registered successfully")
}

func Login(ctx context.Context, c *app.RequestContext) {
	var req LoginParam
	if err := c.Bind(&req); err != nil {
		pack.SendError(ctx, c, errno.ValidationErr.WithMessage(err.Error()))
		return
	}
	res, err := service.NewTokenService(ctx, jwtManager).Login(&service.LoginRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	setTokenCookies(c, res.Tokens)
	pack.SendResponse(c, errno.SuccessCode, map[string]interface{}{
		"user":         res.User,
		"accessToken":  res.Tokens.AccessToken,
		"refreshToken": res.Tokens.RefreshToken,
	}, "User logged in successfully")
}

func Logout(ctx context.Context, c *app.RequestContext) {
	if err := service.NewTokenService(ctx, jwtManager).Logout(pack.Principal(c)); err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	clearTokenCookies(c)
	pack.SendResponse(c, errno.SuccessCode, map[string]interface{}{}, "User logged out")
}

// RefreshToken reads the refresh token from the cookie first, then the body.
func RefreshToken(ctx context.Context, c *app.RequestContext) {
	token := string(c.Cookie(refreshTokenCookie))
	if token == "" {
		var req RefreshParam
		_ = c.Bind(&req)
		token = req.RefreshToken
	}
	tokens, err := service.NewTokenService(ctx, jwtManager).Refresh(token)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	setTokenCookies(c, tokens)
	pack.SendResponse(c, errno.SuccessCode, tokens, "Access token refreshed")
}

func ChangePassword(ctx context.Context, c *app.RequestContext) {
	var req ChangePasswordParam
	if err := c.Bind(&req); err != nil {
		pack.SendError(ctx, c, errno.ValidationErr.WithMessage(err.Error()))
		return
	}
	if err := service.NewChangePasswordService(ctx).ChangePassword(pack.Principal(c), req.OldPassword, req.NewPassword); err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, map[string]interface{}{}, "Password changed successfully")
}

func UpdateAccount(ctx context.Context, c *app.RequestContext) {
	var req UpdateAccountParam
	if err := c.Bind(&req); err != nil {
		pack.SendError(ctx, c, errno.ValidationErr.WithMessage(err.Error()))
		return
	}
	user, err := service.NewUpdateUserService(ctx).UpdateAccount(pack.Principal(c), req.FullName, req.Email)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, user, "Account details updated successfully")
}

func UpdateAvatar(ctx context.Context, c *app.RequestContext) {
	path, err := pack.SaveFormFile(c, "avatar")
	defer pack.RemoveTemp(ctx, path)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	user, err := service.NewUpdateAvatarService(ctx).UpdateAvatar(pack.Principal(c), path)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, user, "Avatar image updated successfully")
}

func UpdateCoverImage(ctx context.Context, c *app.RequestContext) {
	path, err := pack.SaveFormFile(c, "coverImage")
	defer pack.RemoveTemp(ctx, path)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	user, err := service.NewUpdateAvatarService(ctx).UpdateCover(pack.Principal(c), path)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, user, "Cover image updated successfully")
}
