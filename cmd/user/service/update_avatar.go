package service

import (
	"context"

	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/oss"
)

type UpdateAvatarService struct {
	ctx context.Context
}

func NewUpdateAvatarService(ctx context.Context) *UpdateAvatarService {
	return &UpdateAvatarService{ctx: ctx}
}

func (s *UpdateAvatarService) UpdateAvatar(userID, path string) (*model.User, error) {
	if path == "" {
		return nil, errno.ValidationErr.WithMessage("Avatar file is missing")
	}
	return s.replace(userID, path, oss.KindAvatar, "avatar_url", func(u *model.User) string { return u.AvatarURL })
}

func (s *UpdateAvatarService) UpdateCover(userID, path string) (*model.User, error) {
	if path == "" {
		return nil, errno.ValidationErr.WithMessage("Cover image file is missing")
	}
	return s.replace(userID, path, oss.KindCover, "cover_image_url", func(u *model.User) string { return u.CoverImageURL })
}

// replace uploads the new image, points the user at it and only then drops the old object.
func (s *UpdateAvatarService) replace(userID, path string, kind oss.Kind, column string, current func(*model.User) string) (*model.User, error) {
	before, err := db.FindByID[model.User](s.ctx, userID)
	if err != nil {
		return nil, err
	}
	obj, err := upload(s.ctx, path, kind)
	if err != nil {
		return nil, err
	}
	user, err := db.UpdateByID[model.User](s.ctx, userID, map[string]any{column: obj.URL})
	if err != nil {
		removeObjects(s.ctx, obj.URL)
		return nil, errors.WithMessagef(err, "dao.Update %s failed", column)
	}
	removeObjects(s.ctx, current(before))
	return user, nil
}
