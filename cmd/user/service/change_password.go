package service

import (
	"context"

	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/utils"
)

type ChangePasswordService struct {
	ctx context.Context
}

func NewChangePasswordService(ctx context.Context) *ChangePasswordService {
	return &ChangePasswordService{ctx: ctx}
}

func (s *ChangePasswordService) ChangePassword(userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return errno.ValidationErr.WithMessage("Old and new password are required")
	}
	user, err := db.FindByID[model.User](s.ctx, userID)
	if err != nil {
		return err
	}
	// 验证旧密码
	if !utils.VerifyPassword(oldPassword, user.PasswordHash) {
		return errno.ValidationErr.WithMessage("Invalid old password")
	}
	hash, err := utils.Crypt(newPassword)
	if err != nil {
		return errors.WithMessage(err, "Password fail to crypt")
	}
	if _, err := db.UpdateByID[model.User](s.ctx, userID, map[string]any{"password_hash": hash}); err != nil {
		return errors.WithMessage(err, "dao.UpdatePassword failed")
	}
	return nil
}
