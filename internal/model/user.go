package model

import "time"

// Activity level multipliers accepted for a user profile. The value is stored
// verbatim and feeds the metabolic rate estimate.
var ActivityLevels = []float64{1.2, 1.375, 1.55, 1.725, 1.9}

func ValidActivityLevel(v float64) bool {
	for _, m := range ActivityLevels {
		if v == m {
			return true
		}
	}
	return false
}

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// User owns identity and profile attributes. Height is stored in meters,
// weight in kilograms.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"type:varchar(64);uniqueIndex:ux_usuarios_username;not null" json:"username"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex:ux_usuarios_email;not null" json:"email"`
	PasswordHash  string    `gorm:"type:varchar(72);not null" json:"-"`
	FullName      string    `gorm:"type:varchar(255)" json:"full_name"`
	BirthDate     time.Time `json:"birth_date"`
	Gender        string    `gorm:"type:varchar(16)" json:"gender"`
	WeightKg      float64   `json:"weight_kg"`
	HeightM       float64   `json:"height_m"`
	ActivityLevel float64   `json:"activity_level"`
	ProfilePhoto  string    `gorm:"type:varchar(128)" json:"profile_photo"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

func (User) TableName() string { return "usuarios" }
