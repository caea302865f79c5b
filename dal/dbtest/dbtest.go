// Package dbtest points the data layer at a private in-memory SQLite
// database and seeds common rows for service tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
)

// Base is the reference "now" of seeded rows.
var Base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Setup opens a fresh database named after the test.
func Setup(t *testing.T) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	if err := db.Init(sqlite.Open(dsn)); err != nil {
		t.Fatalf("init sqlite: %v", err)
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
}

func Create[T any](t *testing.T, v *T) *T {
	t.Helper()
	if err := db.Create(context.Background(), v); err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
	return v
}

func User(t *testing.T, username string) *model.User {
	t.Helper()
	return Create(t, &model.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     strings.ToUpper(username[:1]) + username[1:],
		AvatarURL:    "mem://avatar/" + username,
		PasswordHash: "hash",
	})
}

func Video(t *testing.T, owner *model.User, title string, published bool) *model.Video {
	t.Helper()
	return Create(t, &model.Video{
		OwnerID:      owner.ID,
		Title:        title,
		Description:  "about " + title,
		VideoURL:     "mem://video/" + title,
		ThumbnailURL: "mem://thumbnail/" + title,
		IsPublished:  published,
		CreatedAt:    Base.Add(-time.Duration(nextAge()) * time.Minute),
	})
}

var (
	ageMu sync.Mutex
	age   int
)

// nextAge makes every seeded video strictly older than the previous one.
func nextAge() int {
	ageMu.Lock()
	defer ageMu.Unlock()
	age++
	return age
}
