package db

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"

	"mytube.com/cmd/model"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// setupTestDB points DB at a fresh in-memory SQLite database for one test.
func setupTestDB(t *testing.T) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	if err := Init(sqlite.Open(dsn)); err != nil {
		t.Fatalf("init sqlite: %v", err)
	}
	sqlDB, err := DB.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
}

func mustCreate[T any](t *testing.T, v *T) *T {
	t.Helper()
	if err := Create(context.Background(), v); err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
	return v
}

func seedUser(t *testing.T, username string) *model.User {
	return mustCreate(t, &model.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     strings.ToUpper(username[:1]) + username[1:],
		AvatarURL:    "http://cdn/" + username + ".png",
		PasswordHash: "hash",
	})
}

func seedVideo(t *testing.T, owner *model.User, title string, published bool, age time.Duration) *model.Video {
	return mustCreate(t, &model.Video{
		OwnerID:      owner.ID,
		Title:        title,
		Description:  "about " + title,
		VideoURL:     "http://cdn/" + title + ".mp4",
		ThumbnailURL: "http://cdn/" + title + ".jpg",
		IsPublished:  published,
		CreatedAt:    base.Add(-age),
	})
}

func seedLike(t *testing.T, user *model.User, kind model.LikeKind, targetID string) {
	mustCreate(t, &model.Like{LikedBy: user.ID, TargetKind: kind, TargetID: targetID})
}
