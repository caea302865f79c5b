package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"mytube.com/cmd/model"
	"mytube.com/pkg/errno"
)

var (
	ErrAlreadyInPlaylist = errno.ValidationErr.WithMessage("Video already in playlist")
	ErrNotInPlaylist     = errno.ValidationErr.WithMessage("Video not in playlist")
)

// AddPlaylistVideo appends the video at the end of the playlist.
// Adding a video twice fails with ErrAlreadyInPlaylist.
func AddPlaylistVideo(ctx context.Context, playlistID, videoID string) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.PlaylistVideo{}).Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
			Count(&n).Error; err != nil {
			return errors.Wrap(err, "lookup playlist entry failed")
		}
		if n > 0 {
			return ErrAlreadyInPlaylist
		}
		var last int64
		if err := tx.Model(&model.PlaylistVideo{}).Select("COALESCE(MAX(position), 0)").
			Where("playlist_id = ?", playlistID).Scan(&last).Error; err != nil {
			return errors.Wrap(err, "lookup playlist tail failed")
		}
		err := tx.Create(&model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID, Position: last + 1}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyInPlaylist
		}
		return errors.Wrap(err, "insert playlist entry failed")
	})
}

// RemovePlaylistVideo fails with ErrNotInPlaylist when there is nothing to remove.
func RemovePlaylistVideo(ctx context.Context, playlistID, videoID string) error {
	res := DB.WithContext(ctx).Where("playlist_id = ? AND video_id = ?", playlistID, videoID).Delete(&model.PlaylistVideo{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete playlist entry failed")
	}
	if res.RowsAffected == 0 {
		return ErrNotInPlaylist
	}
	return nil
}

// DeletePlaylist removes the playlist and its entries; the videos stay.
func DeletePlaylist(ctx context.Context, playlistID string) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlistID).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return errors.Wrap(err, "delete playlist entries failed")
		}
		res := tx.Where("id = ?", playlistID).Delete(&model.Playlist{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete playlist failed")
		}
		if res.RowsAffected == 0 {
			return notFound(&model.Playlist{})
		}
		return nil
	})
}
