package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"mytube.com/cmd/api/pack"
	"mytube.com/cmd/interaction/service"
	"mytube.com/pkg/errno"
)

func CreateTweet(ctx context.Context, c *app.RequestContext) {
	var req ContentParam
	if err := c.Bind(&req); err != nil {
		pack.SendError(ctx, c, errno.ValidationErr.WithMessage(err.Error()))
		return
	}
	tweet, err := service.NewTweetService(ctx).CreateTweet(pack.Principal(c), req.Content)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.CreatedCode, tweet, "Tweet created successfully")
}

func UserTweets(ctx context.Context, c *app.RequestContext) {
	page, err := service.NewTweetService(ctx).UserTweets(c.Param("userId"), pack.Principal(c), pack.PageParams(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, page, "Tweets fetched successfully")
}

func UpdateTweet(ctx context.Context, c *app.RequestContext) {
	var req ContentParam
	if err := c.Bind(&req); err != nil {
		pack.SendError(ctx, c, errno.ValidationErr.WithMessage(err.Error()))
		return
	}
	tweet, err := service.NewTweetService(ctx).UpdateTweet(c.Param("tweetId"), pack.Principal(c), req.Content)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, tweet, "Tweet updated successfully")
}

func DeleteTweet(ctx context.Context, c *app.RequestContext) {
	if err := service.NewTweetService(ctx).DeleteTweet(c.Param("tweetId"), pack.Principal(c)); err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, map[string]interface{}{}, "Tweet deleted successfully")
}
