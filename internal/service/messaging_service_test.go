package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hercules-fit/hercules-api/internal/apperr"
	"github.com/hercules-fit/hercules-api/internal/model"
	"github.com/hercules-fit/hercules-api/internal/repository"
)

func newMessagingFixture(t *testing.T) (*gorm.DB, *AuthService, *MessagingService) {
	t.Helper()
	db := setupDB(t)
	auth := newAuthService(db)
	messaging := NewMessagingService(repository.NewMessageRepository(db), repository.NewUserRepository(db))
	return db, auth, messaging
}

// spreadSentAt gives every message a distinct send time in insertion order;
// messages sent back to back within one test can otherwise collide.
func spreadSentAt(t *testing.T, db *gorm.DB) {
	t.Helper()
	var msgs []model.Message
	require.NoError(t, db.Order("id").Find(&msgs).Error)
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	for i, m := range msgs {
		require.NoError(t, db.Model(&model.Message{}).Where("id = ?", m.ID).
			Update("sent_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}
}

func TestSendMessageValidation(t *testing.T) {
	_, auth, messaging := newMessagingFixture(t)
	ctx := context.Background()
	alice := seedUser(t, auth, "alice")

	err := messaging.Send(ctx, alice, 9999, "hello")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	bob := seedUser(t, auth, "bob")
	err = messaging.Send(ctx, alice, bob, "   ")
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestConversationBothDirectionsAscending(t *testing.T) {
	db, auth, messaging := newMessagingFixture(t)
	ctx := context.Background()
	alice := seedUser(t, auth, "alice")
	bob := seedUser(t, auth, "bob")
	carol := seedUser(t, auth, "carol")

	require.NoError(t, messaging.Send(ctx, alice, bob, "hi bob"))
	require.NoError(t, messaging.Send(ctx, bob, alice, "hi alice"))
	require.NoError(t, messaging.Send(ctx, alice, carol, "hi carol"))
	spreadSentAt(t, db)

	conv, err := messaging.Conversation(ctx, alice, bob)
	require.NoError(t, err)
	require.Len(t, conv, 2)
	assert.Equal(t, "hi bob", conv[0].Body)
	assert.Equal(t, "alice", conv[0].SenderName)
	assert.Equal(t, "bob", conv[0].RecipientName)
	assert.Equal(t, "hi alice", conv[1].Body)
	assert.False(t, conv[0].Read)
}

func TestInboxNewestFirst(t *testing.T) {
	db, auth, messaging := newMessagingFixture(t)
	ctx := context.Background()
	alice := seedUser(t, auth, "alice")
	bob := seedUser(t, auth, "bob")

	require.NoError(t, messaging.Send(ctx, alice, bob, "first"))
	require.NoError(t, messaging.Send(ctx, bob, alice, "second"))
	spreadSentAt(t, db)

	inbox, err := messaging.Inbox(ctx, alice)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "second", inbox[0].Body)
	assert.Equal(t, "first", inbox[1].Body)

	// A missing profile photo falls back to the stock image.
	assert.Equal(t, "default.png", inbox[0].SenderPhoto)
}

func TestMarkRead(t *testing.T) {
	db, auth, messaging := newMessagingFixture(t)
	ctx := context.Background()
	alice := seedUser(t, auth, "alice")
	bob := seedUser(t, auth, "bob")

	err := messaging.MarkRead(ctx, 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	require.NoError(t, messaging.Send(ctx, alice, bob, "read me"))
	var m model.Message
	require.NoError(t, db.First(&m).Error)
	require.False(t, m.Read)

	require.NoError(t, messaging.MarkRead(ctx, m.ID))
	require.NoError(t, messaging.MarkRead(ctx, m.ID)) // stays read

	require.NoError(t, db.First(&m, m.ID).Error)
	assert.True(t, m.Read)
}
