package service

import (
	"context"

	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/aggregate"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/mq"
	"mytube.com/pkg/paginate"
	"mytube.com/pkg/toggle"
	"mytube.com/pkg/utils"
)

// LikeActionService 点赞/取消点赞，状态变化提交后发布事件
type LikeActionService struct {
	ctx      context.Context
	producer mq.MessageProducer
}

// NewLikeActionService producer may be nil, events are then not published.
func NewLikeActionService(ctx context.Context, producer mq.MessageProducer) *LikeActionService {
	return &LikeActionService{ctx: ctx, producer: producer}
}

// LikeAction flips the principal's like on one video, comment or tweet.
func (s *LikeActionService) LikeAction(principalID string, kind toggle.Kind, targetID string) (toggle.Result, error) {
	lk, ok := kind.LikeKind()
	if !ok {
		return toggle.Result{}, errno.ValidationErr.WithMessage("Invalid like target")
	}
	if err := utils.CheckID(targetID, string(lk)); err != nil {
		return toggle.Result{}, err
	}
	key := toggle.Key{ActorID: principalID, Kind: kind, TargetID: targetID}
	if err := toggle.CheckKey(key); err != nil {
		return toggle.Result{}, err
	}
	if err := s.targetExists(lk, targetID, principalID); err != nil {
		return toggle.Result{}, err
	}

	res, err := toggle.Toggle(s.ctx, db.LikeStore{}, key)
	if err != nil {
		return res, err
	}
	mq.Publish(s.ctx, s.producer, mq.NewInteractionEvent(principalID, string(kind), targetID, res.Active))
	return res, nil
}

// targetExists treats a video the principal may not see as missing.
func (s *LikeActionService) targetExists(kind model.LikeKind, id, principalID string) error {
	var (
		ok  bool
		err error
	)
	switch kind {
	case model.LikeKindVideo:
		ok, err = db.Exists[model.Video](s.ctx, "id = ? AND (is_published = ? OR owner_id = ?)", id, true, principalID)
	case model.LikeKindComment:
		ok, err = db.Exists[model.Comment](s.ctx, "id = ?", id)
	case model.LikeKindTweet:
		ok, err = db.Exists[model.Tweet](s.ctx, "id = ?", id)
	}
	if err != nil {
		return errors.WithMessage(err, "dao.LikeTargetExists failed")
	}
	if !ok {
		switch kind {
		case model.LikeKindVideo:
			return errno.NotFoundErr.WithMessage("Video not found")
		case model.LikeKindComment:
			return errno.NotFoundErr.WithMessage("Comment not found")
		default:
			return errno.NotFoundErr.WithMessage("Tweet not found")
		}
	}
	return nil
}

// LikedVideos 当前用户点赞过的已发布视频
func (s *LikeActionService) LikedVideos(principalID string, params paginate.Params) (*paginate.Page[model.VideoRow], error) {
	if principalID == "" {
		return nil, errno.AuthenticationErr
	}
	p, err := aggregate.LikedVideos(principalID)
	if err != nil {
		return nil, err
	}
	return paginate.Paginate[model.VideoRow](s.ctx, db.PipelineRunner{}, p, params)
}
