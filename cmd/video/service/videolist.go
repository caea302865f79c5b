package service

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/aggregate"
	"mytube.com/pkg/paginate"
)

type VideoListService struct {
	ctx context.Context
}

func NewVideoListService(ctx context.Context) *VideoListService {
	return &VideoListService{ctx: ctx}
}

// VideoList is the public feed: published videos plus the viewer's own.
func (v *VideoListService) VideoList(q aggregate.VideoQuery, params paginate.Params) (*paginate.Page[model.VideoRow], error) {
	p, err := aggregate.Videos(q)
	if err != nil {
		return nil, err
	}
	page, err := paginate.Paginate[model.VideoRow](v.ctx, db.PipelineRunner{}, p, params)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.VideoList failed")
	}
	return page, nil
}

// VideoInfo returns one video as the viewer may see it. Every successful
// fetch counts a view; an authenticated fetch also lands in the viewer's
// history. Neither side effect can fail the read.
func (v *VideoListService) VideoInfo(videoID, viewerID string) (*model.VideoRow, error) {
	p, err := aggregate.VideoByID(videoID, viewerID)
	if err != nil {
		return nil, err
	}
	row, err := db.RunOne[model.VideoRow](v.ctx, p, "Video not found")
	if err != nil {
		return nil, err
	}

	if err := db.IncrementViews(v.ctx, videoID); err != nil {
		hlog.CtxErrorf(v.ctx, "increment views of %s: %v", videoID, err)
	}
	if viewerID != "" {
		if err := db.RecordWatch(v.ctx, viewerID, videoID, time.Now()); err != nil {
			hlog.CtxErrorf(v.ctx, "record watch history of %s: %v", viewerID, err)
		}
	}
	return row, nil
}
