package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hercules-fit/hercules-api/internal/model"
	"github.com/hercules-fit/hercules-api/internal/repository"
	"github.com/hercules-fit/hercules-api/pkg/database"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newAuthService(db *gorm.DB) *AuthService {
	users := repository.NewUserRepository(db)
	tokens := NewTokenManager("test-secret", time.Hour)
	return NewAuthService(db, users, tokens, 4)
}

// seedUser registers a user and returns its id.
func seedUser(t *testing.T, auth *AuthService, username string) uint {
	t.Helper()
	id, err := auth.Register(context.Background(), RegisterInput{
		Username:      username,
		Email:         username + "@example.com",
		Password:      "Passw0rd!",
		FullName:      username + " Tester",
		BirthDate:     time.Date(1990, 3, 12, 0, 0, 0, 0, time.UTC),
		Gender:        model.GenderMale,
		WeightKg:      70,
		HeightM:       1.75,
		ActivityLevel: 1.55,
	})
	require.NoError(t, err)
	return id
}

// memImageStore fulfils ImageStore without touching the disk.
type memImageStore struct {
	saved   []string
	removed []string
	failOn  int // fail the nth save, 0 means never
}

func (m *memImageStore) SavePostImage(*multipart.FileHeader) (string, error) {
	if m.failOn > 0 && len(m.saved)+1 == m.failOn {
		return "", fmt.Errorf("disk full")
	}
	name := fmt.Sprintf("img%d.png", len(m.saved)+1)
	m.saved = append(m.saved, name)
	return name, nil
}

func (m *memImageStore) RemovePostImage(name string) error {
	m.removed = append(m.removed, name)
	return nil
}
