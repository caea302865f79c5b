package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID               string    `gorm:"primaryKey;size:36" json:"_id"`
	Username         string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email            string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	FullName         string    `gorm:"size:128;not null" json:"fullName"`
	AvatarURL        string    `gorm:"not null" json:"avatar"`
	CoverImageURL    string    `json:"coverImage"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	RefreshTokenHash *string   `gorm:"size:64" json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// OwnerKey lets a user be checked against the acting principal for profile edits.
func (u *User) OwnerKey() string { return u.ID }

// WatchHistory holds one row per (user, video); watched_at moves forward on every view.
type WatchHistory struct {
	UserID    string    `gorm:"primaryKey;size:36"`
	VideoID   string    `gorm:"primaryKey;size:36;index"`
	WatchedAt time.Time `gorm:"index;not null"`
}
