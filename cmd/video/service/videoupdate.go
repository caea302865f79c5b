package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/guard"
	"mytube.com/pkg/oss"
	"mytube.com/pkg/utils"
)

type UpdateRequest struct {
	Title         string
	Description   string
	ThumbnailPath string
}

type VideoUpdateService struct {
	ctx context.Context
}

func NewVideoUpdateService(ctx context.Context) *VideoUpdateService {
	return &VideoUpdateService{ctx: ctx}
}

// ownedVideo loads the video and checks principalID may change it.
func (s *VideoUpdateService) ownedVideo(videoID, principalID, action string) (*model.Video, error) {
	if err := utils.CheckID(videoID, "video"); err != nil {
		return nil, err
	}
	v, err := db.FindByID[model.Video](s.ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := guard.AssertOwner(v, principalID); err != nil {
		return nil, guard.Explain(err, "You are not authorized to "+action+" this video")
	}
	return v, nil
}

func (s *VideoUpdateService) Update(videoID, principalID string, req *UpdateRequest) (*model.Video, error) {
	title, desc := strings.TrimSpace(req.Title), strings.TrimSpace(req.Description)
	if title == "" && desc == "" && req.ThumbnailPath == "" {
		return nil, errno.ValidationErr.WithMessage("At least one field is required to update")
	}
	v, err := s.ownedVideo(videoID, principalID, "update")
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if title != "" {
		fields["title"] = title
	}
	if desc != "" {
		fields["description"] = desc
	}
	if req.ThumbnailPath != "" {
		thumb, err := upload(s.ctx, req.ThumbnailPath, oss.KindThumbnail)
		if err != nil {
			return nil, err
		}
		fields["thumbnail_url"] = thumb.URL
	}

	updated, err := db.UpdateByID[model.Video](s.ctx, videoID, fields)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateVideo failed")
	}
	if req.ThumbnailPath != "" {
		removeObjects(s.ctx, v.ThumbnailURL)
	}
	return updated, nil
}

// Delete removes the video and everything referencing it, then its stored files.
func (s *VideoUpdateService) Delete(videoID, principalID string) error {
	v, err := s.ownedVideo(videoID, principalID, "delete")
	if err != nil {
		return err
	}
	if err := db.DeleteVideo(s.ctx, videoID); err != nil {
		return errors.WithMessage(err, "dao.DeleteVideo failed")
	}
	removeObjects(s.ctx, v.VideoURL, v.ThumbnailURL)
	return nil
}

func (s *VideoUpdateService) TogglePublish(videoID, principalID string) (*model.Video, error) {
	if _, err := s.ownedVideo(videoID, principalID, "update"); err != nil {
		return nil, err
	}
	v, err := db.FlipPublished(s.ctx, videoID)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.TogglePublish failed")
	}
	return v, nil
}
