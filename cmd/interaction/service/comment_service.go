package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/aggregate"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/guard"
	"mytube.com/pkg/paginate"
	"mytube.com/pkg/utils"
)

type CommentService struct {
	ctx context.Context
}

func NewCommentService(ctx context.Context) *CommentService {
	return &CommentService{ctx: ctx}
}

func checkContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errno.ValidationErr.WithMessage("Content is required")
	}
	return content, nil
}

// visibleVideo fails with NotFoundErr unless viewerID may see the video.
func (s *CommentService) visibleVideo(videoID, viewerID string) error {
	ok, err := db.Exists[model.Video](s.ctx, "id = ? AND (is_published = ? OR owner_id = ?)", videoID, true, viewerID)
	if err != nil {
		return errors.WithMessage(err, "dao.VideoExists failed")
	}
	if !ok {
		return errno.NotFoundErr.WithMessage("Video not found")
	}
	return nil
}

func (s *CommentService) CommentList(videoID, viewerID string, params paginate.Params) (*paginate.Page[model.CommentRow], error) {
	p, err := aggregate.Comments(videoID, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.visibleVideo(videoID, viewerID); err != nil {
		return nil, err
	}
	return paginate.Paginate[model.CommentRow](s.ctx, db.PipelineRunner{}, p, params)
}

func (s *CommentService) AddComment(videoID, principalID, content string) (*model.Comment, error) {
	if principalID == "" {
		return nil, errno.AuthenticationErr
	}
	if err := utils.CheckID(videoID, "video"); err != nil {
		return nil, err
	}
	content, err := checkContent(content)
	if err != nil {
		return nil, err
	}
	if err := s.visibleVideo(videoID, principalID); err != nil {
		return nil, err
	}
	c := &model.Comment{VideoID: videoID, OwnerID: principalID, Content: content}
	if err := db.Create(s.ctx, c); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateComment failed")
	}
	return c, nil
}

func (s *CommentService) UpdateComment(commentID, principalID, content string) (*model.Comment, error) {
	if err := utils.CheckID(commentID, "comment"); err != nil {
		return nil, err
	}
	content, err := checkContent(content)
	if err != nil {
		return nil, err
	}
	c, err := db.FindByID[model.Comment](s.ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := guard.AssertOwner(c, principalID); err != nil {
		return nil, guard.Explain(err, "You are not authorized to update this comment")
	}
	return db.UpdateByID[model.Comment](s.ctx, commentID, map[string]any{"content": content})
}

// DeleteComment 评论作者或视频作者都可以删除评论
func (s *CommentService) DeleteComment(commentID, principalID string) error {
	if err := utils.CheckID(commentID, "comment"); err != nil {
		return err
	}
	c, err := db.FindByID[model.Comment](s.ctx, commentID)
	if err != nil {
		return err
	}
	if err := guard.AssertCommentRemovable(s.ctx, c, principalID, db.VideoOwner); err != nil {
		return guard.Explain(err, "You are not authorized to delete this comment")
	}
	if err := db.DeleteComment(s.ctx, commentID); err != nil {
		return errors.WithMessage(err, "dao.DeleteComment failed")
	}
	return nil
}
