package model

import "time"

// MealEntry is one logged meal. LoggedAt is localized to the configured
// regional timezone at write time.
type MealEntry struct {
	ID       uint      `gorm:"primaryKey"`
	UserID   uint      `gorm:"index:idx_comidas_user;not null"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Kcal     float64   `gorm:"not null"`
	Carbs    float64   `gorm:"not null"`
	Protein  float64   `gorm:"not null"`
	Fat      float64   `gorm:"not null"`
	Grams    float64   `gorm:"not null;default:100"`
	LoggedAt time.Time `gorm:"index:idx_comidas_logged"`
}

func (MealEntry) TableName() string { return "comidas" }
