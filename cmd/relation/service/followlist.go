package service

import (
	"context"

	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/aggregate"
	"mytube.com/pkg/paginate"
)

type SubscriptionListService struct {
	ctx context.Context
}

func NewSubscriptionListService(ctx context.Context) *SubscriptionListService {
	return &SubscriptionListService{ctx: ctx}
}

// Subscribers 频道的订阅者，最近订阅的在前
func (s *SubscriptionListService) Subscribers(channelID string, params paginate.Params) (*paginate.Page[model.SubscriberRow], error) {
	p, err := aggregate.Subscribers(channelID)
	if err != nil {
		return nil, err
	}
	return paginate.Paginate[model.SubscriberRow](s.ctx, db.PipelineRunner{}, p, params)
}

// SubscribedChannels 用户订阅的频道，每个频道附带最新发布的一个视频
func (s *SubscriptionListService) SubscribedChannels(subscriberID string, params paginate.Params) (*paginate.Page[model.ChannelRow], error) {
	p, err := aggregate.SubscribedChannels(subscriberID)
	if err != nil {
		return nil, err
	}
	page, err := paginate.Paginate[model.ChannelRow](s.ctx, db.PipelineRunner{}, p, params)
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return page, nil
	}

	ids := make([]string, 0, len(page.Items))
	for _, row := range page.Items {
		ids = append(ids, row.Channel.ID)
	}
	var latest []model.VideoRow
	if err := db.RunPipeline(s.ctx, aggregate.LatestVideos(ids), db.Window{}, &latest); err != nil {
		return nil, errors.WithMessage(err, "dao.LatestVideos failed")
	}
	byOwner := make(map[string]*model.VideoRow, len(latest))
	for i := range latest {
		byOwner[latest[i].Owner.ID] = &latest[i]
	}
	for i := range page.Items {
		page.Items[i].Channel.LatestVideo = byOwner[page.Items[i].Channel.ID]
	}
	return page, nil
}
