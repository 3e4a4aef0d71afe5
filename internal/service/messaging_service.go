package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hercules-fit/hercules-api/internal/apperr"
	"github.com/hercules-fit/hercules-api/internal/model"
	"github.com/hercules-fit/hercules-api/internal/repository"
)

// defaultPhotoName substitutes a missing profile photo in message listings.
const defaultPhotoName = "default.png"

// MessageView is a message annotated with both parties' display info.
type MessageView struct {
	ID             uint   `json:"id"`
	SenderID       uint   `json:"sender_id"`
	SenderName     string `json:"sender_name"`
	SenderPhoto    string `json:"sender_photo"`
	RecipientID    uint   `json:"recipient_id"`
	RecipientName  string `json:"recipient_name"`
	RecipientPhoto string `json:"recipient_photo"`
	Body           string `json:"body"`
	SentAt         string `json:"sent_at"`
	Read           bool   `json:"read"`
}

// MessagingService manages direct messages and their read-state.
type MessagingService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
}

func NewMessagingService(messages repository.MessageRepository, users repository.UserRepository) *MessagingService {
	return &MessagingService{messages: messages, users: users}
}

// Send stores a message with a server-assigned send time.
func (s *MessagingService) Send(ctx context.Context, senderID, recipientID uint, body string) error {
	if strings.TrimSpace(body) == "" {
		return apperr.InvalidInput("message body must not be empty")
	}
	if _, err := s.users.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("recipient not found")
		}
		return apperr.Internal(err)
	}
	m := &model.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		SentAt:      time.Now(),
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Conversation returns both directions between the pair, ascending by send
// time.
func (s *MessagingService) Conversation(ctx context.Context, userA, userB uint) ([]MessageView, error) {
	msgs, err := s.messages.Conversation(ctx, userA, userB)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.views(ctx, msgs)
}

// Inbox returns every message the user sent or received, newest first.
func (s *MessagingService) Inbox(ctx context.Context, userID uint) ([]MessageView, error) {
	msgs, err := s.messages.ListFor(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.views(ctx, msgs)
}

// MarkRead flips a message to read. Already-read messages stay read.
func (s *MessagingService) MarkRead(ctx context.Context, messageID uint) error {
	if _, err := s.messages.GetByID(ctx, messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("message not found")
		}
		return apperr.Internal(err)
	}
	if err := s.messages.MarkRead(ctx, messageID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *MessagingService) views(ctx context.Context, msgs []*model.Message) ([]MessageView, error) {
	// Small per-call cache; inbox rows repeat the same few counterparts.
	cache := make(map[uint]*model.User)
	get := func(id uint) (*model.User, error) {
		if u, ok := cache[id]; ok {
			return u, nil
		}
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		cache[id] = u
		return u, nil
	}

	res := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		sender, err := get(m.SenderID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		recipient, err := get(m.RecipientID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		res = append(res, MessageView{
			ID:             m.ID,
			SenderID:       m.SenderID,
			SenderName:     sender.Username,
			SenderPhoto:    photoOrDefault(sender.ProfilePhoto),
			RecipientID:    m.RecipientID,
			RecipientName:  recipient.Username,
			RecipientPhoto: photoOrDefault(recipient.ProfilePhoto),
			Body:           m.Body,
			SentAt:         m.SentAt.Format("2006-01-02 15:04:05"),
			Read:           m.Read,
		})
	}
	return res, nil
}

func photoOrDefault(filename string) string {
	if filename == "" {
		return defaultPhotoName
	}
	return filename
}
