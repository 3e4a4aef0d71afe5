package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hercules-fit/hercules-api/internal/model"
)

type MealRepository interface {
	Create(ctx context.Context, m *model.MealEntry) error
	ListAll(ctx context.Context, userID uint) ([]*model.MealEntry, error)
	ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]*model.MealEntry, error)
	SumKcalBetween(ctx context.Context, userID uint, from, to time.Time) (float64, error)
}

type mealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) MealRepository { return &mealRepository{db: db} }

func (r *mealRepository) Create(ctx context.Context, m *model.MealEntry) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mealRepository) ListAll(ctx context.Context, userID uint) ([]*model.MealEntry, error) {
	var res []*model.MealEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Find(&res).Error
	return res, err
}

func (r *mealRepository) ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]*model.MealEntry, error) {
	var res []*model.MealEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Order("logged_at DESC").
		Find(&res).Error
	return res, err
}

// SumKcalBetween returns 0 when no entries fall in the window.
func (r *mealRepository) SumKcalBetween(ctx context.Context, userID uint, from, to time.Time) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).Model(&model.MealEntry{}).
		Select("SUM(kcal)").
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
