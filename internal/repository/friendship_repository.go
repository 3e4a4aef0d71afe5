package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hercules-fit/hercules-api/internal/model"
)

type FriendshipRepository interface {
	Create(ctx context.Context, requesterID, recipientID uint) error
	Accept(ctx context.Context, requesterID, recipientID uint) (bool, error)
	DeletePending(ctx context.Context, requesterID, recipientID uint) error
	ExistsAccepted(ctx context.Context, a, b uint) (bool, error)
	StatusBetween(ctx context.Context, a, b uint) (string, error)
	ListAcceptedIDs(ctx context.Context, userID uint) ([]uint, error)
	ListAcceptedUsers(ctx context.Context, userID uint) ([]*model.User, error)
	ListPendingFor(ctx context.Context, recipientID uint) ([]*model.Friendship, error)
	CountAccepted(ctx context.Context, userID uint) (int64, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) Create(ctx context.Context, requesterID, recipientID uint) error {
	f := &model.Friendship{
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      model.FriendshipPending,
	}
	return r.db.WithContext(ctx).Create(f).Error
}

// Accept flips a pending edge to accepted inside a transaction. The lookup
// uses the same direction the edge was stored with: requester -> recipient.
// Returns false when no pending edge exists.
func (r *friendshipRepository) Accept(ctx context.Context, requesterID, recipientID uint) (bool, error) {
	accepted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var f model.Friendship
		err := tx.Where("requester_id = ? AND recipient_id = ? AND status = ?",
			requesterID, recipientID, model.FriendshipPending).
			First(&f).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}
		now := time.Now()
		if err := tx.Model(&model.Friendship{}).
			Where("id = ?", f.ID).
			Updates(map[string]any{"status": model.FriendshipAccepted, "accepted_at": now}).Error; err != nil {
			return err
		}
		accepted = true
		return nil
	})
	return accepted, err
}

func (r *friendshipRepository) DeletePending(ctx context.Context, requesterID, recipientID uint) error {
	return r.db.WithContext(ctx).
		Where("requester_id = ? AND recipient_id = ? AND status = ?",
			requesterID, recipientID, model.FriendshipPending).
		Delete(&model.Friendship{}).Error
}

func (r *friendshipRepository) ExistsAccepted(ctx context.Context, a, b uint) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Friendship{}).
		Where("((requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)) AND status = ?",
			a, b, b, a, model.FriendshipAccepted).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// StatusBetween returns accepted, pending or "" for the unordered pair.
func (r *friendshipRepository) StatusBetween(ctx context.Context, a, b uint) (string, error) {
	var f model.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
			a, b, b, a).
		Order("status = 'accepted' DESC").
		First(&f).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return f.Status, nil
}

func (r *friendshipRepository) ListAcceptedIDs(ctx context.Context, userID uint) ([]uint, error) {
	var edges []*model.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?",
			userID, userID, model.FriendshipAccepted).
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	seen := make(map[uint]struct{}, len(edges))
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		other := e.RequesterID
		if other == userID {
			other = e.RecipientID
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids, nil
}

func (r *friendshipRepository) ListAcceptedUsers(ctx context.Context, userID uint) ([]*model.User, error) {
	ids, err := r.ListAcceptedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*model.User
	err = r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *friendshipRepository) ListPendingFor(ctx context.Context, recipientID uint) ([]*model.Friendship, error) {
	var res []*model.Friendship
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", recipientID, model.FriendshipPending).
		Find(&res).Error
	return res, err
}

func (r *friendshipRepository) CountAccepted(ctx context.Context, userID uint) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Friendship{}).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?",
			userID, userID, model.FriendshipAccepted).
		Count(&cnt).Error
	return cnt, err
}
