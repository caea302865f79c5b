package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"mytube.com/cmd/model"
)

// deleteWithLikes removes one comment or tweet and the likes pointing at it.
func deleteWithLikes(ctx context.Context, kind model.LikeKind, row any, id string) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?", kind, id).Delete(&model.Like{}).Error; err != nil {
			return errors.Wrapf(err, "delete %s likes failed", kind)
		}
		res := tx.Where("id = ?", id).Delete(row)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete %s failed", kind)
		}
		if res.RowsAffected == 0 {
			return notFound(row)
		}
		return nil
	})
}

func DeleteComment(ctx context.Context, commentID string) error {
	return deleteWithLikes(ctx, model.LikeKindComment, &model.Comment{}, commentID)
}

func DeleteTweet(ctx context.Context, tweetID string) error {
	return deleteWithLikes(ctx, model.LikeKindTweet, &model.Tweet{}, tweetID)
}
