package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"mytube.com/cmd/api/pack"
	"mytube.com/cmd/relation/service"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/mq"
)

var producer mq.MessageProducer

func Init(p mq.MessageProducer) {
	producer = p
}

func ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	res, err := service.NewRelationService(ctx, producer).ToggleSubscription(pack.Principal(c), c.Param("channelId"))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	msg := "Unsubscribed successfully"
	if res.Active {
		msg = "Subscribed successfully"
	}
	pack.SendResponse(c, errno.SuccessCode, map[string]interface{}{"subscribed": res.Active}, msg)
}

func ChannelSubscribers(ctx context.Context, c *app.RequestContext) {
	page, err := service.NewSubscriptionListService(ctx).Subscribers(c.Param("channelId"), pack.PageParams(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, page, "Subscribers fetched successfully")
}

func SubscribedChannels(ctx context.Context, c *app.RequestContext) {
	page, err := service.NewSubscriptionListService(ctx).SubscribedChannels(c.Param("subscriberId"), pack.PageParams(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, page, "Subscribed channels fetched successfully")
}
