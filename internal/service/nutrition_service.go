package service

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/hercules-fit/hercules-api/internal/apperr"
	"github.com/hercules-fit/hercules-api/internal/model"
	"github.com/hercules-fit/hercules-api/internal/repository"
)

// defaultMealGrams applies when a meal is logged without a portion size.
const defaultMealGrams = 100

// MealInput is one meal to log.
type MealInput struct {
	Name    string
	Kcal    float64
	Carbs   float64
	Protein float64
	Fat     float64
	Grams   float64 // 0 means default
}

// MealView is a logged meal with its timestamp formatted for display.
type MealView struct {
	Name     string  `json:"name"`
	Kcal     float64 `json:"kcal"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Grams    float64 `json:"grams"`
	LoggedAt string  `json:"logged_at"`
}

// HistoryEntry is one line of the daily history, newest first.
type HistoryEntry struct {
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
	Kcal  float64 `json:"kcal"`
	Time  string  `json:"time"`
}

// MetabolicRate is the TMB estimate with the inputs it was derived from.
// The field names are part of the wire contract.
type MetabolicRate struct {
	TMB           float64 `json:"tmb"`
	WeightKg      float64 `json:"peso"`
	HeightM       float64 `json:"altura"`
	Age           int     `json:"edad"`
	Gender        string  `json:"genero"`
	ActivityLevel float64 `json:"nivel_actividad"`
}

// NutritionService manages logged meals and the derived daily and metabolic
// calculations. All timestamps are localized to one fixed regional timezone
// at write time, independent of the client locale.
type NutritionService struct {
	meals repository.MealRepository
	users repository.UserRepository
	loc   *time.Location
	now   func() time.Time
}

func NewNutritionService(meals repository.MealRepository, users repository.UserRepository, loc *time.Location) *NutritionService {
	if loc == nil {
		loc = time.UTC
	}
	return &NutritionService{meals: meals, users: users, loc: loc, now: time.Now}
}

func (s *NutritionService) LogMeal(ctx context.Context, userID uint, in MealInput) error {
	if in.Grams <= 0 {
		in.Grams = defaultMealGrams
	}
	m := &model.MealEntry{
		UserID:   userID,
		Name:     in.Name,
		Kcal:     in.Kcal,
		Carbs:    in.Carbs,
		Protein:  in.Protein,
		Fat:      in.Fat,
		Grams:    in.Grams,
		LoggedAt: s.now().In(s.loc),
	}
	if err := s.meals.Create(ctx, m); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// today returns the bounds of the current date in the service timezone.
func (s *NutritionService) today() (time.Time, time.Time) {
	now := s.now().In(s.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	return start, start.AddDate(0, 0, 1)
}

// DailyCalories sums kcal of entries dated today in the service timezone;
// zero when none.
func (s *NutritionService) DailyCalories(ctx context.Context, userID uint) (float64, error) {
	from, to := s.today()
	total, err := s.meals.SumKcalBetween(ctx, userID, from, to)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return total, nil
}

// ListMeals returns every logged meal of the user, newest first.
func (s *NutritionService) ListMeals(ctx context.Context, userID uint) ([]MealView, error) {
	entries, err := s.meals.ListAll(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	res := make([]MealView, 0, len(entries))
	for _, e := range entries {
		res = append(res, MealView{
			Name:     e.Name,
			Kcal:     e.Kcal,
			Carbs:    e.Carbs,
			Protein:  e.Protein,
			Fat:      e.Fat,
			Grams:    e.Grams,
			LoggedAt: e.LoggedAt.In(s.loc).Format("2006-01-02 15:04:05"),
		})
	}
	return res, nil
}

// History lists today's meals, newest first, with a formatted time of day.
func (s *NutritionService) History(ctx context.Context, userID uint) ([]HistoryEntry, error) {
	from, to := s.today()
	entries, err := s.meals.ListBetween(ctx, userID, from, to)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	res := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		res = append(res, HistoryEntry{
			Name:  e.Name,
			Grams: e.Grams,
			Kcal:  e.Kcal,
			Time:  e.LoggedAt.In(s.loc).Format("15:04:05"),
		})
	}
	return res, nil
}

// BasalMetabolicRate computes the Harris-Benedict estimate scaled by the
// stored activity multiplier. Age is the calendar-year difference, and height
// stored in meters enters the formula in centimeters.
func (s *NutritionService) BasalMetabolicRate(ctx context.Context, userID uint) (*MetabolicRate, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}

	age := s.now().In(s.loc).Year() - u.BirthDate.Year()
	heightCm := u.HeightM * 100

	var tmb float64
	if u.Gender == model.GenderMale {
		tmb = 88.362 + 13.397*u.WeightKg + 4.799*heightCm - 5.677*float64(age)
	} else {
		tmb = 447.593 + 9.247*u.WeightKg + 3.098*heightCm - 4.330*float64(age)
	}
	tmb *= u.ActivityLevel

	return &MetabolicRate{
		TMB:           math.Round(tmb*100) / 100,
		WeightKg:      u.WeightKg,
		HeightM:       u.HeightM,
		Age:           age,
		Gender:        u.Gender,
		ActivityLevel: u.ActivityLevel,
	}, nil
}
