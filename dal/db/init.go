package db

import (
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"

	"mytube.com/cmd/model"
)

var DB *gorm.DB

// Init opens the store behind dialector, installs plugins and migrates the schema.
func Init(dialector gorm.Dialector, plugins ...gorm.Plugin) error {
	var err error
	DB, err = gorm.Open(dialector,
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			// unique violations surface as gorm.ErrDuplicatedKey on every driver
			TranslateError: true,
		},
	)
	if err != nil {
		return err
	}
	for _, p := range plugins {
		if err = DB.Use(p); err != nil {
			return err
		}
	}
	return Migrate()
}

func Migrate() error {
	hlog.Info("Starting tables migration...")
	if err := DB.AutoMigrate(
		&model.User{},
		&model.WatchHistory{},
		&model.Video{},
		&model.Comment{},
		&model.Tweet{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistVideo{},
	); err != nil {
		hlog.Errorf("Failed to migrate tables: %v", err)
		return err
	}
	hlog.Info("Tables migration completed successfully")
	return nil
}
