package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/errno"
)

type UpdateUserService struct {
	ctx context.Context
}

func NewUpdateUserService(ctx context.Context) *UpdateUserService {
	return &UpdateUserService{ctx: ctx}
}

func (s *UpdateUserService) UpdateAccount(userID, fullName, email string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, errno.ValidationErr.WithMessage("All fields are required")
	}
	user, err := db.UpdateByID[model.User](s.ctx, userID, map[string]any{
		"full_name": fullName,
		"email":     email,
	})
	if err != nil {
		if errors.Is(err, errno.ConflictErr) {
			return nil, errno.ConflictErr.WithMessage("Email is already in use")
		}
		return nil, errors.WithMessage(err, "dao.UpdateAccount failed")
	}
	return user, nil
}
