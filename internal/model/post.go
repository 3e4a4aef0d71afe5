package model

import "time"

// Post is the content unit: a description plus an optional GPS track and any
// number of images. GPSData holds the flattened track as a JSON array of
// points; HasGPS marks whether one was recorded.
type Post struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index:idx_publicaciones_user;not null"`
	Description string    `gorm:"type:text"`
	GPSData     string    `gorm:"column:gps_data;type:text"`
	HasGPS      bool      `gorm:"not null;default:false"`
	DurationSec int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"index:idx_publicaciones_created"`
	UpdatedAt   time.Time
}

func (Post) TableName() string { return "publicaciones" }

// PostImage links a generated, collision-resistant filename to its post. The
// client-supplied name is never stored.
type PostImage struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"index:idx_imagenes_post;not null"`
	Filename  string `gorm:"type:varchar(64);not null"`
	CreatedAt time.Time
}

func (PostImage) TableName() string { return "imagenes" }

// Comment on a post, ordered by id.
type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"index:idx_comentarios_post;not null"`
	UserID    uint   `gorm:"not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (Comment) TableName() string { return "comentarios" }

// Like is a bare (post, user) fact. The composite unique index makes the
// insert idempotent.
type Like struct {
	ID        uint `gorm:"primaryKey"`
	PostID    uint `gorm:"index:idx_likes_post;uniqueIndex:ux_likes_post_user;not null"`
	UserID    uint `gorm:"uniqueIndex:ux_likes_post_user;not null"`
	CreatedAt time.Time
}

func (Like) TableName() string { return "me_gustas" }
