package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hercules-fit/hercules-api/internal/apperr"
	"github.com/hercules-fit/hercules-api/internal/model"
	"github.com/hercules-fit/hercules-api/internal/repository"
)

func newSocialService(t *testing.T) (*gorm.DB, *AuthService, *SocialService) {
	t.Helper()
	db := setupDB(t)
	auth := newAuthService(db)
	social := NewSocialService(repository.NewFriendshipRepository(db), repository.NewUserRepository(db))
	return db, auth, social
}

func TestFriendRequestLifecycle(t *testing.T) {
	_, auth, social := newSocialService(t)
	ctx := context.Background()

	alice := seedUser(t, auth, "alice")
	bob := seedUser(t, auth, "bob")

	ok, err := social.AreFriends(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, social.SendRequest(ctx, alice, bob))

	pending, err := social.PendingFor(ctx, bob)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, alice, pending[0].RequesterID)
	assert.Equal(t, "alice", pending[0].Username)

	require.NoError(t, social.AcceptRequest(ctx, alice, bob))

	// Friendship is symmetric regardless of who asked.
	for _, pair := range [][2]uint{{alice, bob}, {bob, alice}} {
		ok, err := social.AreFriends(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, ok)
	}

	pending, err = social.PendingFor(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSendRequestToSelf(t *testing.T) {
	_, auth, social := newSocialService(t)
	alice := seedUser(t, auth, "alice")

	err := social.SendRequest(context.Background(), alice, alice)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestDuplicatePendingRequestsAllowed(t *testing.T) {
	db, auth, social := newSocialService(t)
	ctx := context.Background()

	alice := seedUser(t, auth, "alice")
	bob := seedUser(t, auth, "bob")

	require.NoError(t, social.SendRequest(ctx, alice, bob))
	require.NoError(t, social.SendRequest(ctx, alice, bob))

	var n int64
	require.NoError(t, db.Model(&model.Friendship{}).
		Where("requester_id = ? AND recipient_id = ?", alice, bob).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestAcceptWithoutPendingRequest(t *testing.T) {
	_, auth, social := newSocialService(t)
	ctx := context.Background()

	alice := seedUser(t, auth, "alice")
	bob := seedUser(t, auth, "bob")

	err := social.AcceptRequest(ctx, alice, bob)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// The edge direction matters: bob cannot accept a request he sent.
	require.NoError(t, social.SendRequest(ctx, alice, bob))
	err = social.AcceptRequest(ctx, bob, alice)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestRejectRequest(t *testing.T) {
	_, auth, social := newSocialService(t)
	ctx := context.Background()

	alice := seedUser(t, auth, "alice")
	bob := seedUser(t, auth, "bob")

	require.NoError(t, social.SendRequest(ctx, alice, bob))
	require.NoError(t, social.RejectRequest(ctx, alice, bob))

	pending, err := social.PendingFor(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, pending)

	ok, err := social.AreFriends(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFriendsOfAnnotatesMutuals(t *testing.T) {
	_, auth, social := newSocialService(t)
	ctx := context.Background()

	alice := seedUser(t, auth, "alice")
	bob := seedUser(t, auth, "bob")
	carol := seedUser(t, auth, "carol")
	dave := seedUser(t, auth, "dave")

	// bob's friends: carol and dave. alice is friends with carol only.
	befriend := func(a, b uint) {
		require.NoError(t, social.SendRequest(ctx, a, b))
		require.NoError(t, social.AcceptRequest(ctx, a, b))
	}
	befriend(bob, carol)
	befriend(bob, dave)
	befriend(alice, carol)

	friends, err := social.FriendsOf(ctx, bob, alice)
	require.NoError(t, err)
	require.Len(t, friends, 2)

	// Mutual friends sort first.
	assert.Equal(t, "carol", friends[0].Username)
	assert.True(t, friends[0].MutualFriend)
	assert.Equal(t, "dave", friends[1].Username)
	assert.False(t, friends[1].MutualFriend)
}

func TestSearchStatusAndExclusions(t *testing.T) {
	_, auth, social := newSocialService(t)
	ctx := context.Background()

	alice := seedUser(t, auth, "alice")
	bob := seedUser(t, auth, "bobby")
	seedUser(t, auth, "bobcat")
	carol := seedUser(t, auth, "carol")

	require.NoError(t, social.SendRequest(ctx, alice, bob))
	require.NoError(t, social.SendRequest(ctx, alice, carol))
	require.NoError(t, social.AcceptRequest(ctx, alice, carol))

	results, err := social.Search(ctx, "BOB", alice)
	require.NoError(t, err)
	require.Len(t, results, 2)
	byName := map[string]string{}
	for _, r := range results {
		byName[r.Username] = r.Status
	}
	assert.Equal(t, "pending", byName["bobby"])
	assert.Equal(t, "none", byName["bobcat"])

	results, err = social.Search(ctx, "carol", alice)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "accepted", results[0].Status)

	// The searcher never appears in their own results.
	results, err = social.Search(ctx, "ali", alice)
	require.NoError(t, err)
	assert.Empty(t, results)
}
