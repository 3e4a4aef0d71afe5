package service

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hercules-fit/hercules-api/internal/apperr"
	"github.com/hercules-fit/hercules-api/internal/model"
	"github.com/hercules-fit/hercules-api/internal/repository"
)

func newUserFixture(t *testing.T) (*gorm.DB, *AuthService, *UserService) {
	t.Helper()
	db := setupDB(t)
	auth := newAuthService(db)
	svc := NewUserService(
		repository.NewUserRepository(db),
		repository.NewFriendshipRepository(db),
		repository.NewPostRepository(db),
	)
	return db, auth, svc
}

func TestProfileRoundtrip(t *testing.T) {
	_, auth, users := newUserFixture(t)
	ctx := context.Background()
	alice := seedUser(t, auth, "alice")

	p, err := users.Profile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "1990-03-12", p.BirthDate)
	assert.Empty(t, p.ProfilePhoto)

	err = users.UpdateProfile(ctx, alice, ProfileUpdate{
		WeightKg:      72.5,
		HeightM:       1.76,
		BirthDate:     time.Date(1991, 1, 2, 0, 0, 0, 0, time.UTC),
		Gender:        model.GenderMale,
		ActivityLevel: 1.725,
	})
	require.NoError(t, err)

	p, err = users.Profile(ctx, alice)
	require.NoError(t, err)
	assert.InDelta(t, 72.5, p.WeightKg, 1e-9)
	assert.Equal(t, "1991-01-02", p.BirthDate)
	assert.InDelta(t, 1.725, p.ActivityLevel, 1e-9)

	w, err := users.Weight(ctx, alice)
	require.NoError(t, err)
	assert.InDelta(t, 72.5, w, 1e-9)
}

func TestUpdateProfileRejectsBadActivityLevel(t *testing.T) {
	_, auth, users := newUserFixture(t)
	alice := seedUser(t, auth, "alice")

	err := users.UpdateProfile(context.Background(), alice, ProfileUpdate{
		WeightKg:      70,
		HeightM:       1.75,
		BirthDate:     time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:        model.GenderMale,
		ActivityLevel: 2.5,
	})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestFullName(t *testing.T) {
	_, auth, users := newUserFixture(t)
	ctx := context.Background()
	alice := seedUser(t, auth, "alice")

	name, err := users.FullName(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice Tester", name)

	err = users.UpdateFullName(ctx, alice, "  ")
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	require.NoError(t, users.UpdateFullName(ctx, alice, "Alice Renamed"))
	name, err = users.FullName(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", name)
}

func TestSummary(t *testing.T) {
	db, auth, users := newUserFixture(t)
	ctx := context.Background()
	alice := seedUser(t, auth, "alice")
	bob := seedUser(t, auth, "bob")

	friends := repository.NewFriendshipRepository(db)
	posts := repository.NewPostRepository(db)
	social := NewSocialService(friends, users.users)
	store := &memImageStore{}
	content := NewContentService(db, posts, friends, users.users, store)

	require.NoError(t, social.SendRequest(ctx, alice, bob))
	require.NoError(t, social.AcceptRequest(ctx, alice, bob))

	_, err := content.CreatePost(ctx, alice, CreatePostInput{Description: "bare"})
	require.NoError(t, err)
	withImg, err := content.CreatePost(ctx, alice, CreatePostInput{
		Description: "pictured",
		Images:      []*multipart.FileHeader{{Filename: "a.png"}},
	})
	require.NoError(t, err)

	summary, err := users.Summary(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.FriendCount)
	assert.Equal(t, int64(2), summary.PostCount)
	require.Len(t, summary.Posts, 2)

	for _, thumb := range summary.Posts {
		if thumb.ID == withImg {
			assert.Equal(t, "/media/posts/img1.png", thumb.Image)
		} else {
			assert.Empty(t, thumb.Image)
		}
	}
}

func TestLookupID(t *testing.T) {
	_, auth, users := newUserFixture(t)
	ctx := context.Background()
	alice := seedUser(t, auth, "alice")

	id, err := users.LookupID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice, id)

	_, err = users.LookupID(ctx, "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSetProfilePhoto(t *testing.T) {
	_, auth, users := newUserFixture(t)
	ctx := context.Background()
	alice := seedUser(t, auth, "alice")

	require.NoError(t, users.SetProfilePhoto(ctx, alice, "abc123.png"))

	p, err := users.Profile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "/media/profile/abc123.png", p.ProfilePhoto)
}
