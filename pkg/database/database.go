package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hercules-fit/hercules-api/config"
	"github.com/hercules-fit/hercules-api/internal/model"
)

// InitDB opens the configured database and migrates the schema.
// TranslateError is on so duplicate-key violations surface as
// gorm.ErrDuplicatedKey across drivers.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	gc := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.Database.DSN), gc)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.Database.DSN), gc)
	default:
		return nil, fmt.Errorf("database: unknown driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates/updates all tables. Exposed separately so tests can run it
// against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Friendship{},
		&model.Post{},
		&model.PostImage{},
		&model.Comment{},
		&model.Like{},
		&model.Message{},
		&model.MealEntry{},
	)
}
