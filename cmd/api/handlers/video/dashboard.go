package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"mytube.com/cmd/api/pack"
	"mytube.com/cmd/video/service"
	"mytube.com/pkg/errno"
)

func ChannelStats(ctx context.Context, c *app.RequestContext) {
	stats, err := service.NewDashboardService(ctx).ChannelStats(pack.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, stats, "Channel stats fetched successfully")
}

func ChannelVideos(ctx context.Context, c *app.RequestContext) {
	page, err := service.NewDashboardService(ctx).ChannelVideos(pack.Principal(c), pack.PageParams(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, page, "Channel videos fetched successfully")
}
