package model

import "time"

// Rows are what aggregated reads scan into. Column names follow gorm's naming
// strategy, so a joined owner lands in owner_id, owner_username, ... through
// the embedded prefix.

// OwnerProjection is the only user data ever joined into another entity.
type OwnerProjection struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatar"`
}

type VideoRow struct {
	ID              string          `json:"_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	VideoURL        string          `json:"videoFile"`
	ThumbnailURL    string          `json:"thumbnail"`
	DurationSeconds float64         `json:"duration"`
	Views           int64           `json:"views"`
	IsPublished     bool            `json:"isPublished"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Owner           OwnerProjection `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount      int64           `json:"likesCount"`
	IsLiked         bool            `json:"isLiked"`

	// set only by playlist and history reads
	PlaylistID string     `json:"-"`
	Position   int64      `json:"-"`
	WatchedAt  *time.Time `json:"watchedAt,omitempty"`
}

type CommentRow struct {
	ID         string          `json:"_id"`
	VideoID    string          `json:"video"`
	Content    string          `json:"content"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Owner      OwnerProjection `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount int64           `json:"likesCount"`
	IsLiked    bool            `json:"isLiked"`
}

type TweetRow struct {
	ID         string          `json:"_id"`
	Content    string          `json:"content"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Owner      OwnerProjection `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount int64           `json:"likesCount"`
	IsLiked    bool            `json:"isLiked"`
}

type SubscriberRow struct {
	Subscriber   OwnerProjection `gorm:"embedded;embeddedPrefix:subscriber_" json:"subscriber"`
	SubscribedAt time.Time       `json:"subscribedAt"`
}

// SubscribedChannel is a channel as seen from one of its subscribers.
type SubscribedChannel struct {
	OwnerProjection `gorm:"embedded"`
	LatestVideo     *VideoRow `gorm:"-" json:"latestVideo"`
}

type ChannelRow struct {
	Channel      SubscribedChannel `gorm:"embedded;embeddedPrefix:channel_" json:"channel"`
	SubscribedAt time.Time         `json:"subscribedAt"`
}

type PlaylistRow struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Owner       OwnerProjection `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	VideosCount int64           `json:"videosCount"`
	Videos      []VideoRow      `gorm:"-" json:"videos"`
}

// ChannelProfile is a user page: public fields plus live subscription figures.
type ChannelProfile struct {
	ID                        string    `json:"_id"`
	Username                  string    `json:"username"`
	Email                     string    `json:"email"`
	FullName                  string    `json:"fullName"`
	AvatarURL                 string    `json:"avatar"`
	CoverImageURL             string    `json:"coverImage"`
	CreatedAt                 time.Time `json:"createdAt"`
	SubscribersCount          int64     `json:"subscribersCount"`
	ChannelsSubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
}

// DashboardVideoRow carries the owner's view of a video, unpublished ones included.
type DashboardVideoRow struct {
	ID              string    `json:"_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ThumbnailURL    string    `json:"thumbnail"`
	DurationSeconds float64   `json:"duration"`
	Views           int64     `json:"views"`
	IsPublished     bool      `json:"isPublished"`
	CreatedAt       time.Time `json:"createdAt"`
	LikesCount      int64     `json:"likesCount"`
}

type ChannelStats struct {
	TotalVideos      int64               `json:"totalVideos"`
	TotalSubscribers int64               `json:"totalSubscribers"`
	TotalViews       int64               `json:"totalViews"`
	TotalLikes       int64               `json:"totalLikes"`
	RecentVideos     []DashboardVideoRow `json:"recentVideos"`
}
