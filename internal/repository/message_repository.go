package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hercules-fit/hercules-api/internal/model"
)

type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	GetByID(ctx context.Context, id uint) (*model.Message, error)
	Conversation(ctx context.Context, a, b uint) ([]*model.Message, error)
	ListFor(ctx context.Context, userID uint) ([]*model.Message, error)
	MarkRead(ctx context.Context, id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository { return &messageRepository{db: db} }

func (r *messageRepository) Create(ctx context.Context, m *model.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*model.Message, error) {
	var m model.Message
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Conversation returns both directions of the pair, ascending by send time.
func (r *messageRepository) Conversation(ctx context.Context, a, b uint) ([]*model.Message, error) {
	var res []*model.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			a, b, b, a).
		Order("sent_at ASC").
		Find(&res).Error
	return res, err
}

// ListFor returns every message the user sent or received, newest first.
func (r *messageRepository) ListFor(ctx context.Context, userID uint) ([]*model.Message, error) {
	var res []*model.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("sent_at DESC").
		Find(&res).Error
	return res, err
}

// MarkRead is monotonic; re-marking an already-read message changes nothing.
func (r *messageRepository) MarkRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ?", id).
		Update("read", true).Error
}
