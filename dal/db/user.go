package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"mytube.com/cmd/model"
	"mytube.com/pkg/errno"
)

// FindUserByLogin matches either the username or the email. Both are stored lowercase.
func FindUserByLogin(ctx context.Context, username, email string) (*model.User, error) {
	var user model.User
	tx := DB.WithContext(ctx)
	switch {
	case username != "" && email != "":
		tx = tx.Where("username = ? OR email = ?", username, email)
	case username != "":
		tx = tx.Where("username = ?", username)
	case email != "":
		tx = tx.Where("email = ?", email)
	default:
		return nil, errno.ValidationErr.WithMessage("Username or email is required")
	}
	if err := tx.Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("User does not exist")
		}
		return nil, errors.Wrap(err, "FindUserByLogin failed")
	}
	return &user, nil
}

// SetRefreshTokenHash stores the hash of the current refresh token; nil logs the user out.
func SetRefreshTokenHash(ctx context.Context, userID string, hash *string) error {
	if err := DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("refresh_token_hash", hash).Error; err != nil {
		return errors.Wrapf(err, "SetRefreshTokenHash failed,userId:%s", userID)
	}
	return nil
}
