package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"mytube.com/cmd/model"
	"mytube.com/pkg/errno"
)

// notFound names the missing resource for the response message.
func notFound(v any) error {
	switch v.(type) {
	case *model.User:
		return errno.NotFoundErr.WithMessage("User not found")
	case *model.Video:
		return errno.NotFoundErr.WithMessage("Video not found")
	case *model.Comment:
		return errno.NotFoundErr.WithMessage("Comment not found")
	case *model.Tweet:
		return errno.NotFoundErr.WithMessage("Tweet not found")
	case *model.Playlist:
		return errno.NotFoundErr.WithMessage("Playlist not found")
	}
	return errno.NotFoundErr
}

// FindByID loads one row by primary key. Ids are checked by the caller.
func FindByID[T any](ctx context.Context, id string) (*T, error) {
	out := new(T)
	if err := DB.WithContext(ctx).Where("id = ?", id).Take(out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(out)
		}
		return nil, errors.Wrapf(err, "find %T %s failed", out, id)
	}
	return out, nil
}

// Create inserts v. A unique violation becomes a ConflictErr.
func Create[T any](ctx context.Context, v *T) error {
	if err := DB.WithContext(ctx).Create(v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errno.ConflictErr
		}
		return errors.Wrapf(err, "create %T failed", v)
	}
	return nil
}

// UpdateByID applies a partial field set and returns the fresh row.
func UpdateByID[T any](ctx context.Context, id string, fields map[string]any) (*T, error) {
	res := DB.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, errno.ConflictErr
		}
		return nil, errors.Wrapf(res.Error, "update %T %s failed", new(T), id)
	}
	return FindByID[T](ctx, id)
}

func DeleteByID[T any](ctx context.Context, id string) error {
	res := DB.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete %T %s failed", new(T), id)
	}
	if res.RowsAffected == 0 {
		return notFound(new(T))
	}
	return nil
}

// Exists reports whether any row of T matches the condition.
func Exists[T any](ctx context.Context, query string, args ...any) (bool, error) {
	var n int64
	if err := DB.WithContext(ctx).Model(new(T)).Where(query, args...).Count(&n).Error; err != nil {
		return false, errors.Wrapf(err, "exists %T failed", new(T))
	}
	return n > 0, nil
}
