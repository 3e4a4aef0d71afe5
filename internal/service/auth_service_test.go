package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hercules-fit/hercules-api/internal/apperr"
	"github.com/hercules-fit/hercules-api/internal/model"
	"github.com/hercules-fit/hercules-api/internal/repository"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupDB(t)
	auth := newAuthService(db)
	ctx := context.Background()

	id := seedUser(t, auth, "alice")
	require.NotZero(t, id)

	res, err := auth.Login(ctx, "alice", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, id, res.UserID)

	claims, reason, err := auth.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Empty(t, reason)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginFailures(t *testing.T) {
	db := setupDB(t)
	auth := newAuthService(db)
	ctx := context.Background()

	seedUser(t, auth, "alice")

	_, err := auth.Login(ctx, "nobody", "Passw0rd!")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = auth.Login(ctx, "alice", "WrongPass1!")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupDB(t)
	auth := newAuthService(db)
	ctx := context.Background()

	seedUser(t, auth, "alice")

	_, err := auth.Register(ctx, RegisterInput{
		Username:  "alice",
		Email:     "other@example.com",
		Password:  "Passw0rd!",
		BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:    model.GenderFemale,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	// No hint which field collided.
	assert.Equal(t, "could not register user", apperr.MessageOf(err))
}

func TestRegisterInvalidActivityLevel(t *testing.T) {
	db := setupDB(t)
	auth := newAuthService(db)

	_, err := auth.Register(context.Background(), RegisterInput{
		Username:      "bob",
		Email:         "bob@example.com",
		Password:      "Passw0rd!",
		BirthDate:     time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:        model.GenderMale,
		ActivityLevel: 1.5,
	})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestValidatePasswordOrder(t *testing.T) {
	cases := []struct {
		name     string
		password string
		message  string
	}{
		{"too short", "Ab1!", "password must be at least 8 characters long"},
		{"short trumps other rules", "ab1!", "password must be at least 8 characters long"},
		{"no uppercase", "abcdef1!", "password must contain at least one uppercase letter"},
		{"no lowercase", "ABCDEF1!", "password must contain at least one lowercase letter"},
		{"no digit", "Abcdefg!", "password must contain at least one digit"},
		{"no symbol", "Abcdefg1", "password must contain a special character"},
		{"valid", "Abcdefg1!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
			assert.Equal(t, tc.message, apperr.MessageOf(err))
		})
	}
}

func TestChangePassword(t *testing.T) {
	db := setupDB(t)
	auth := newAuthService(db)
	ctx := context.Background()

	id := seedUser(t, auth, "alice")

	err := auth.ChangePassword(ctx, id, "WrongOld1!", "NewPassw0rd!")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	err = auth.ChangePassword(ctx, id, "Passw0rd!", "weak")
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	require.NoError(t, auth.ChangePassword(ctx, id, "Passw0rd!", "NewPassw0rd!"))

	_, err = auth.Login(ctx, "alice", "Passw0rd!")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	_, err = auth.Login(ctx, "alice", "NewPassw0rd!")
	assert.NoError(t, err)
}

func TestDeleteAccountCascades(t *testing.T) {
	db := setupDB(t)
	auth := newAuthService(db)
	ctx := context.Background()

	alice := seedUser(t, auth, "alice")
	bob := seedUser(t, auth, "bob")

	users := repository.NewUserRepository(db)
	friends := repository.NewFriendshipRepository(db)
	posts := repository.NewPostRepository(db)
	social := NewSocialService(friends, users)
	store := &memImageStore{}
	content := NewContentService(db, posts, friends, users, store)

	require.NoError(t, social.SendRequest(ctx, alice, bob))
	require.NoError(t, social.AcceptRequest(ctx, alice, bob))

	postID, err := content.CreatePost(ctx, alice, CreatePostInput{Description: "morning run"})
	require.NoError(t, err)
	require.NoError(t, content.AddComment(ctx, postID, bob, "nice pace"))
	require.NoError(t, content.Like(ctx, postID, bob))

	require.NoError(t, auth.DeleteAccount(ctx, alice))

	_, err = users.GetByID(ctx, alice)
	assert.Error(t, err)

	var postCount, commentCount, likeCount, friendCount int64
	require.NoError(t, db.Model(&model.Post{}).Where("user_id = ?", alice).Count(&postCount).Error)
	require.NoError(t, db.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&commentCount).Error)
	require.NoError(t, db.Model(&model.Like{}).Where("post_id = ?", postID).Count(&likeCount).Error)
	require.NoError(t, db.Model(&model.Friendship{}).
		Where("requester_id = ? OR recipient_id = ?", alice, alice).Count(&friendCount).Error)
	assert.Zero(t, postCount)
	assert.Zero(t, commentCount)
	assert.Zero(t, likeCount)
	assert.Zero(t, friendCount)
}
