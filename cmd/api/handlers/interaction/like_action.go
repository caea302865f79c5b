package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"mytube.com/cmd/api/pack"
	"mytube.com/cmd/interaction/service"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/toggle"
)

// likeToggle builds the handler of one like target; param names the path id.
func likeToggle(kind toggle.Kind, param, noun string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		res, err := service.NewLikeActionService(ctx, producer).LikeAction(pack.Principal(c), kind, c.Param(param))
		if err != nil {
			pack.SendError(ctx, c, err)
			return
		}
		msg := noun + " unliked successfully"
		if res.Active {
			msg = noun + " liked successfully"
		}
		pack.SendResponse(c, errno.SuccessCode, map[string]interface{}{"liked": res.Active}, msg)
	}
}

var (
	ToggleVideoLike   = likeToggle(toggle.KindVideo, "videoId", "Video")
	ToggleCommentLike = likeToggle(toggle.KindComment, "commentId", "Comment")
	ToggleTweetLike   = likeToggle(toggle.KindTweet, "tweetId", "Tweet")
)

func LikedVideos(ctx context.Context, c *app.RequestContext) {
	page, err := service.NewLikeActionService(ctx, producer).LikedVideos(pack.Principal(c), pack.PageParams(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, page, "Liked videos fetched successfully")
}
