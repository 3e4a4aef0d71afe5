package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hercules-fit/hercules-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
	UpdateProfile(ctx context.Context, id uint, fields map[string]any) error
	UpdateProfilePhoto(ctx context.Context, id uint, filename string) error
	SearchByUsername(ctx context.Context, fragment string, excludeID uint, limit int) ([]*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(fields).Error
}

func (r *userRepository) UpdateProfilePhoto(ctx context.Context, id uint, filename string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("profile_photo", filename).Error
}

// SearchByUsername does a case-insensitive partial match, excluding the given
// user, capped at limit rows.
func (r *userRepository) SearchByUsername(ctx context.Context, fragment string, excludeID uint, limit int) ([]*model.User, error) {
	var res []*model.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) LIKE LOWER(?) AND id <> ?", "%"+fragment+"%", excludeID).
		Limit(limit).
		Find(&res).Error
	return res, err
}
