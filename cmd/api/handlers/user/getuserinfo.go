package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"mytube.com/cmd/api/pack"
	"mytube.com/cmd/user/service"
	"mytube.com/pkg/errno"
)

func CurrentUser(ctx context.Context, c *app.RequestContext) {
	user, err := service.NewGetUserInfoService(ctx).CurrentUser(pack.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, user, "User fetched successfully")
}

func ChannelProfile(ctx context.Context, c *app.RequestContext) {
	profile, err := service.NewGetUserInfoService(ctx).ChannelProfile(c.Param("username"), pack.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, profile, "User channel fetched successfully")
}

func WatchHistory(ctx context.Context, c *app.RequestContext) {
	page, err := service.NewGetUserInfoService(ctx).WatchHistory(pack.Principal(c), pack.PageParams(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, page, "Watch history fetched successfully")
}
