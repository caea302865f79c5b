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
	"mytube.com/pkg/utils"
)

type RegisterRequest struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	AvatarPath string // local temp file
	CoverPath  string // optional
}

type CreateUserService struct {
	ctx context.Context
}

func NewCreateUserService(ctx context.Context) *CreateUserService {
	return &CreateUserService{ctx: ctx}
}

func (s *CreateUserService) Register(req *RegisterRequest) (*model.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if fullName == "" || email == "" || username == "" || strings.TrimSpace(req.Password) == "" {
		return nil, errno.ValidationErr.WithMessage("All fields are required")
	}

	exists, err := db.Exists[model.User](s.ctx, "username = ? OR email = ?", username, email)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.UserExists failed")
	}
	if exists {
		return nil, errno.ConflictErr.WithMessage("User with email or username already exists")
	}
	if req.AvatarPath == "" {
		return nil, errno.ValidationErr.WithMessage("Avatar file is required")
	}

	hash, err := utils.Crypt(req.Password)
	if err != nil {
		return nil, errors.WithMessage(err, "Password fail to crypt")
	}

	avatar, err := upload(s.ctx, req.AvatarPath, oss.KindAvatar)
	if err != nil {
		return nil, err
	}
	var cover oss.Object
	if req.CoverPath != "" {
		if cover, err = upload(s.ctx, req.CoverPath, oss.KindCover); err != nil {
			removeObjects(s.ctx, avatar.URL)
			return nil, err
		}
	}

	user := &model.User{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		AvatarURL:     avatar.URL,
		CoverImageURL: cover.URL,
		PasswordHash:  hash,
	}
	if err := db.Create(s.ctx, user); err != nil {
		hlog.CtxErrorf(s.ctx, "create user %s failed, dropping uploads: %v", username, err)
		removeObjects(s.ctx, avatar.URL, cover.URL)
		// 并发注册时唯一索引兜底
		if errors.Is(err, errno.ConflictErr) {
			return nil, errno.ConflictErr.WithMessage("User with email or username already exists")
		}
		return nil, errors.WithMessage(err, "dao.CreateUser failed")
	}
	return user, nil
}
