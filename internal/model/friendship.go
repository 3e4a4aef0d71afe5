package model

import "time"

const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// Friendship is an edge directed from the requester to the recipient while
// pending, and treated as symmetric once accepted. The canonical row always
// keeps the original direction: acceptance flips the status, never the
// columns. There is deliberately no unique constraint on the pair; duplicate
// pending requests are tolerated the same way the storage tolerates them.
type Friendship struct {
	ID          uint       `gorm:"primaryKey"`
	RequesterID uint       `gorm:"index:idx_amigos_requester;not null"`
	RecipientID uint       `gorm:"index:idx_amigos_recipient;not null"`
	Status      string     `gorm:"type:varchar(16);not null;default:pending"`
	AcceptedAt  *time.Time
	CreatedAt   time.Time
}

func (Friendship) TableName() string { return "amigos" }
