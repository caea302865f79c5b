package service

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/oss"
)

type PublishRequest struct {
	Title         string
	Description   string
	VideoPath     string // local temp file of the video
	ThumbnailPath string
}

type VideoUploadService struct {
	ctx context.Context
}

func NewVideoUploadService(ctx context.Context) *VideoUploadService {
	return &VideoUploadService{ctx: ctx}
}

func (s *VideoUploadService) Publish(ownerID string, req *PublishRequest) (*model.Video, error) {
	if ownerID == "" {
		return nil, errno.AuthenticationErr
	}
	title, desc := strings.TrimSpace(req.Title), strings.TrimSpace(req.Description)
	if title == "" || desc == "" {
		return nil, errno.ValidationErr.WithMessage("Title and description are required")
	}
	if req.VideoPath == "" {
		return nil, errno.ValidationErr.WithMessage("Video file is required")
	}
	if req.ThumbnailPath == "" {
		return nil, errno.ValidationErr.WithMessage("Thumbnail is required")
	}

	video, err := upload(s.ctx, req.VideoPath, oss.KindVideo)
	if err != nil {
		return nil, err
	}
	thumb, err := upload(s.ctx, req.ThumbnailPath, oss.KindThumbnail)
	if err != nil {
		removeObjects(s.ctx, video.URL)
		return nil, err
	}

	v := &model.Video{
		OwnerID:         ownerID,
		Title:           title,
		Description:     desc,
		VideoURL:        video.URL,
		ThumbnailURL:    thumb.URL,
		DurationSeconds: video.DurationSeconds,
		IsPublished:     true,
	}
	if err := db.Create(s.ctx, v); err != nil {
		hlog.CtxErrorf(s.ctx, "create video failed, dropping uploads: %v", err)
		removeObjects(s.ctx, video.URL, thumb.URL)
		return nil, errors.WithMessage(err, "dao.CreateVideo failed")
	}
	return v, nil
}
