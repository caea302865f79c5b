package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"mytube.com/cmd/api/pack"
	"mytube.com/cmd/interaction/service"
	"mytube.com/pkg/errno"
)

func CommentList(ctx context.Context, c *app.RequestContext) {
	page, err := service.NewCommentService(ctx).CommentList(c.Param("videoId"), pack.Principal(c), pack.PageParams(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, page, "Comments fetched successfully")
}

func AddComment(ctx context.Context, c *app.RequestContext) {
	var req ContentParam
	if err := c.Bind(&req); err != nil {
		pack.SendError(ctx, c, errno.ValidationErr.WithMessage(err.Error()))
		return
	}
	comment, err := service.NewCommentService(ctx).AddComment(c.Param("videoId"), pack.Principal(c), req.Content)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.CreatedCode, comment, "Comment added successfully")
}

func UpdateComment(ctx context.Context, c *app.RequestContext) {
	var req ContentParam
	if err := c.Bind(&req); err != nil {
		pack.SendError(ctx, c, errno.ValidationErr.WithMessage(err.Error()))
		return
	}
	comment, err := service.NewCommentService(ctx).UpdateComment(c.Param("commentId"), pack.Principal(c), req.Content)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, comment, "Comment updated successfully")
}

func DeleteComment(ctx context.Context, c *app.RequestContext) {
	if err := service.NewCommentService(ctx).DeleteComment(c.Param("commentId"), pack.Principal(c)); err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, map[string]interface{}{}, "Comment deleted successfully")
}
