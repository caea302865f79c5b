package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mytube.com/cmd/model"
)

// IncrementViews bumps the counter in a single UPDATE, so concurrent viewers never lose increments.
func IncrementViews(ctx context.Context, videoID string) error {
	if err := DB.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		return errors.Wrapf(err, "IncrementViews failed,videoId:%s", videoID)
	}
	return nil
}

// FlipPublished negates is_published in place.
func FlipPublished(ctx context.Context, videoID string) (*model.Video, error) {
	if err := DB.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoID).
		Updates(map[string]any{"is_published": gorm.Expr("NOT is_published")}).Error; err != nil {
		return nil, errors.Wrapf(err, "FlipPublished failed,videoId:%s", videoID)
	}
	return FindByID[model.Video](ctx, videoID)
}

// VideoOwner resolves the owner of a video; it satisfies guard.VideoOwnerFunc.
func VideoOwner(ctx context.Context, videoID string) (string, error) {
	v, err := FindByID[model.Video](ctx, videoID)
	if err != nil {
		return "", err
	}
	return v.OwnerID, nil
}

// DeleteVideo removes a video with everything hanging off it: its likes,
// its comments and their likes, playlist entries and history rows.
func DeleteVideo(ctx context.Context, videoID string) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&model.Comment{}).Select("id").Where("video_id = ?", videoID)
		if err := tx.Where("target_kind = ? AND target_id IN (?)", model.LikeKindComment, commentIDs).Delete(&model.Like{}).Error; err != nil {
			return errors.Wrap(err, "delete comment likes failed")
		}
		steps := []struct {
			model any
			query string
			args  []any
		}{
			{&model.Like{}, "target_kind = ? AND target_id = ?", []any{model.LikeKindVideo, videoID}},
			{&model.Comment{}, "video_id = ?", []any{videoID}},
			{&model.PlaylistVideo{}, "video_id = ?", []any{videoID}},
			{&model.WatchHistory{}, "video_id = ?", []any{videoID}},
		}
		for _, s := range steps {
			if err := tx.Where(s.query, s.args...).Delete(s.model).Error; err != nil {
				return errors.Wrapf(err, "delete %T failed", s.model)
			}
		}
		res := tx.Where("id = ?", videoID).Delete(&model.Video{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete video failed")
		}
		if res.RowsAffected == 0 {
			return notFound(&model.Video{})
		}
		return nil
	})
}

// RecordWatch moves the video to the front of the user's history.
func RecordWatch(ctx context.Context, userID, videoID string, at time.Time) error {
	row := &model.WatchHistory{UserID: userID, VideoID: videoID, WatchedAt: at}
	if err := DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
	}).Create(row).Error; err != nil {
		return errors.Wrapf(err, "RecordWatch failed,userId:%s videoId:%s", userID, videoID)
	}
	return nil
}

// ChannelTotals returns the dashboard figures of one channel.
func ChannelTotals(ctx context.Context, ownerID string) (*model.ChannelStats, error) {
	var totals struct {
		TotalVideos int64
		TotalViews  int64
	}
	if err := DB.WithContext(ctx).Model(&model.Video{}).
		Select("COUNT(*) AS total_videos, COALESCE(SUM(views), 0) AS total_views").
		Where("owner_id = ?", ownerID).Scan(&totals).Error; err != nil {
		return nil, errors.Wrapf(err, "ChannelTotals failed,ownerId:%s", ownerID)
	}
	stats := &model.ChannelStats{TotalVideos: totals.TotalVideos, TotalViews: totals.TotalViews}

	if err := DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("channel_id = ?", ownerID).Count(&stats.TotalSubscribers).Error; err != nil {
		return nil, errors.Wrapf(err, "count subscribers failed,ownerId:%s", ownerID)
	}
	videoIDs := DB.Model(&model.Video{}).Select("id").Where("owner_id = ?", ownerID)
	if err := DB.WithContext(ctx).Model(&model.Like{}).
		Where("target_kind = ? AND target_id IN (?)", model.LikeKindVideo, videoIDs).
		Count(&stats.TotalLikes).Error; err != nil {
		return nil, errors.Wrapf(err, "count likes failed,ownerId:%s", ownerID)
	}
	return stats, nil
}
