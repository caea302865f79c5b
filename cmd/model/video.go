package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Video struct {
	ID              string    `gorm:"primaryKey;size:36" json:"_id"`
	OwnerID         string    `gorm:"index;size:36;not null" json:"owner"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	VideoURL        string    `gorm:"not null" json:"videoFile"`
	ThumbnailURL    string    `gorm:"not null" json:"thumbnail"`
	DurationSeconds float64   `json:"duration"`
	Views           int64     `gorm:"not null;default:0" json:"views"`
	IsPublished     bool      `gorm:"index;not null" json:"isPublished"`
	CreatedAt       time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

func (v *Video) OwnerKey() string { return v.OwnerID }

// 播放列表
type Playlist struct {
	ID          string    `gorm:"primaryKey;size:36" json:"_id"`
	OwnerID     string    `gorm:"index;size:36;not null" json:"owner"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Playlist) OwnerKey() string { return p.OwnerID }

// 播放列表中的视频，position 决定顺序
type PlaylistVideo struct {
	PlaylistID string `gorm:"primaryKey;size:36"`
	VideoID    string `gorm:"primaryKey;size:36;index"`
	Position   int64  `gorm:"not null"`
	CreatedAt  time.Time
}
