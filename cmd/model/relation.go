package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription 订阅关系，SubscriberID 订阅了 ChannelID
type Subscription struct {
	ID           string    `gorm:"primaryKey;size:36" json:"_id"`
	SubscriberID string    `gorm:"uniqueIndex:idx_subscription_pair,priority:1;size:36;not null" json:"subscriber"`
	ChannelID    string    `gorm:"uniqueIndex:idx_subscription_pair,priority:2;index;size:36;not null" json:"channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s *Subscription) OwnerKey() string { return s.SubscriberID }
