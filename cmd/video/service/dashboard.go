package service

import (
	"context"

	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/aggregate"
	"mytube.com/pkg/paginate"
)

const recentVideos = 10

type DashboardService struct {
	ctx context.Context
}

func NewDashboardService(ctx context.Context) *DashboardService {
	return &DashboardService{ctx: ctx}
}

// ChannelStats 频道总览：视频数、订阅数、播放量、点赞数以及最近的视频（包括未发布的）
func (s *DashboardService) ChannelStats(ownerID string) (*model.ChannelStats, error) {
	p, err := aggregate.ChannelVideos(ownerID)
	if err != nil {
		return nil, err
	}
	stats, err := db.ChannelTotals(s.ctx, ownerID)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ChannelTotals failed")
	}
	stats.RecentVideos = []model.DashboardVideoRow{}
	if err := db.RunPipeline(s.ctx, p, db.Window{Limit: recentVideos}, &stats.RecentVideos); err != nil {
		return nil, errors.WithMessage(err, "dao.RecentVideos failed")
	}
	return stats, nil
}

func (s *DashboardService) ChannelVideos(ownerID string, params paginate.Params) (*paginate.Page[model.DashboardVideoRow], error) {
	p, err := aggregate.ChannelVideos(ownerID)
	if err != nil {
		return nil, err
	}
	return paginate.Paginate[model.DashboardVideoRow](s.ctx, db.PipelineRunner{}, p, params)
}
