package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mytube.com/cmd/model"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/toggle"
)

// insertIgnoringDuplicate inserts v unless the unique key is already taken.
// It reports whether a row was written.
func insertIgnoringDuplicate(ctx context.Context, v any) (bool, error) {
	res := DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(v)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, errors.Wrapf(res.Error, "insert %T failed", v)
	}
	return res.RowsAffected > 0, nil
}

// LikeStore keeps like rows for the toggle mutator.
type LikeStore struct{}

func likeWhere(tx *gorm.DB, key toggle.Key) (*gorm.DB, error) {
	kind, ok := key.LikeKind()
	if !ok {
		return nil, errno.ValidationErr.WithMessage("Invalid like target")
	}
	return tx.Where("liked_by = ? AND target_kind = ? AND target_id = ?", key.ActorID, kind, key.TargetID), nil
}

func (LikeStore) Exists(ctx context.Context, key toggle.Key) (bool, error) {
	tx, err := likeWhere(DB.WithContext(ctx).Model(&model.Like{}), key)
	if err != nil {
		return false, err
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "lookup like failed")
	}
	return n > 0, nil
}

func (LikeStore) Insert(ctx context.Context, key toggle.Key) (bool, error) {
	kind, ok := key.LikeKind()
	if !ok {
		return false, errno.ValidationErr.WithMessage("Invalid like target")
	}
	return insertIgnoringDuplicate(ctx, &model.Like{LikedBy: key.ActorID, TargetKind: kind, TargetID: key.TargetID})
}

func (LikeStore) Delete(ctx context.Context, key toggle.Key) (bool, error) {
	tx, err := likeWhere(DB.WithContext(ctx), key)
	if err != nil {
		return false, err
	}
	res := tx.Delete(&model.Like{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "delete like failed")
	}
	return res.RowsAffected > 0, nil
}

// SubscriptionStore keeps subscription rows; TargetID is the channel.
type SubscriptionStore struct{}

func (SubscriptionStore) Exists(ctx context.Context, key toggle.Key) (bool, error) {
	return Exists[model.Subscription](ctx, "subscriber_id = ? AND channel_id = ?", key.ActorID, key.TargetID)
}

func (SubscriptionStore) Insert(ctx context.Context, key toggle.Key) (bool, error) {
	return insertIgnoringDuplicate(ctx, &model.Subscription{SubscriberID: key.ActorID, ChannelID: key.TargetID})
}

func (SubscriptionStore) Delete(ctx context.Context, key toggle.Key) (bool, error) {
	res := DB.WithContext(ctx).Where("subscriber_id = ? AND channel_id = ?", key.ActorID, key.TargetID).Delete(&model.Subscription{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "delete subscription failed")
	}
	return res.RowsAffected > 0, nil
}

var (
	_ toggle.Store = LikeStore{}
	_ toggle.Store = SubscriptionStore{}
)
