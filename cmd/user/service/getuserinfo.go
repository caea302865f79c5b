package service

import (
	"context"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/aggregate"
	"mytube.com/pkg/paginate"
)

type GetUserInfoService struct {
	ctx context.Context
}

func NewGetUserInfoService(ctx context.Context) *GetUserInfoService {
	return &GetUserInfoService{ctx: ctx}
}

func (s *GetUserInfoService) CurrentUser(userID string) (*model.User, error) {
	return db.FindByID[model.User](s.ctx, userID)
}

// ChannelProfile 根据用户名查询频道主页，订阅数与是否已订阅实时计算
func (s *GetUserInfoService) ChannelProfile(username, viewerID string) (*model.ChannelProfile, error) {
	p, err := aggregate.ChannelProfile(username, viewerID)
	if err != nil {
		return nil, err
	}
	return db.RunOne[model.ChannelProfile](s.ctx, p, "Channel does not exist")
}

func (s *GetUserInfoService) WatchHistory(userID string, params paginate.Params) (*paginate.Page[model.VideoRow], error) {
	p, err := aggregate.WatchHistory(userID)
	if err != nil {
		return nil, err
	}
	return paginate.Paginate[model.VideoRow](s.ctx, db.PipelineRunner{}, p, params)
}
