package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	VideoID   string    `gorm:"index;size:36;not null" json:"video"`
	OwnerID   string    `gorm:"index;size:36;not null" json:"owner"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c *Comment) OwnerKey() string { return c.OwnerID }

// Tweet is a comment that is not attached to any video.
type Tweet struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	OwnerID   string    `gorm:"index;size:36;not null" json:"owner"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Tweet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (t *Tweet) OwnerKey() string { return t.OwnerID }

type LikeKind string

const (
	LikeKindVideo   LikeKind = "video"
	LikeKindComment LikeKind = "comment"
	LikeKindTweet   LikeKind = "tweet"
)

func (k LikeKind) Valid() bool {
	switch k {
	case LikeKindVideo, LikeKindComment, LikeKindTweet:
		return true
	}
	return false
}

// Like points at exactly one target through (TargetKind, TargetID).
type Like struct {
	ID         string    `gorm:"primaryKey;size:36" json:"_id"`
	LikedBy    string    `gorm:"uniqueIndex:idx_like_target,priority:1;size:36;not null" json:"likedBy"`
	TargetKind LikeKind  `gorm:"uniqueIndex:idx_like_target,priority:2;index:idx_like_kind_target,priority:1;size:16;not null" json:"targetKind"`
	TargetID   string    `gorm:"uniqueIndex:idx_like_target,priority:3;index:idx_like_kind_target,priority:2;size:36;not null" json:"targetId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
