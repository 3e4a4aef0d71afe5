package model

import "time"

// Message is a direct message between two users. Read only ever transitions
// false -> true.
type Message struct {
	ID          uint      `gorm:"primaryKey"`
	SenderID    uint      `gorm:"index:idx_mensajes_sender;not null"`
	RecipientID uint      `gorm:"index:idx_mensajes_recipient;not null"`
	Body        string    `gorm:"type:text;not null"`
	Read        bool      `gorm:"not null;default:false"`
	SentAt      time.Time `gorm:"index:idx_mensajes_sent"`
}

func (Message) TableName() string { return "mensajes" }
