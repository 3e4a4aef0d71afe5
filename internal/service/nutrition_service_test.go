package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hercules-fit/hercules-api/internal/apperr"
	"github.com/hercules-fit/hercules-api/internal/model"
	"github.com/hercules-fit/hercules-api/internal/repository"
)

func newNutritionFixture(t *testing.T) (*AuthService, *NutritionService) {
	t.Helper()
	db := setupDB(t)
	auth := newAuthService(db)
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	nutrition := NewNutritionService(repository.NewMealRepository(db), repository.NewUserRepository(db), loc)
	return auth, nutrition
}

func TestLogMealDefaultsGrams(t *testing.T) {
	auth, nutrition := newNutritionFixture(t)
	ctx := context.Background()
	alice := seedUser(t, auth, "alice")

	require.NoError(t, nutrition.LogMeal(ctx, alice, MealInput{Name: "yogurt", Kcal: 59}))

	meals, err := nutrition.ListMeals(ctx, alice)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, float64(100), meals[0].Grams)
}

func TestDailyCalories(t *testing.T) {
	auth, nutrition := newNutritionFixture(t)
	ctx := context.Background()
	alice := seedUser(t, auth, "alice")

	total, err := nutrition.DailyCalories(ctx, alice)
	require.NoError(t, err)
	assert.Zero(t, total)

	base := time.Date(2024, 6, 1, 13, 30, 0, 0, nutrition.loc)

	// Yesterday's meal must not count towards today.
	nutrition.now = func() time.Time { return base.AddDate(0, 0, -1) }
	require.NoError(t, nutrition.LogMeal(ctx, alice, MealInput{Name: "old pizza", Kcal: 800}))

	nutrition.now = func() time.Time { return base }
	require.NoError(t, nutrition.LogMeal(ctx, alice, MealInput{Name: "salad", Kcal: 150.5}))
	require.NoError(t, nutrition.LogMeal(ctx, alice, MealInput{Name: "pasta", Kcal: 420}))

	total, err = nutrition.DailyCalories(ctx, alice)
	require.NoError(t, err)
	assert.InDelta(t, 570.5, total, 1e-9)
}

func TestHistoryIsTodayNewestFirst(t *testing.T) {
	auth, nutrition := newNutritionFixture(t)
	ctx := context.Background()
	alice := seedUser(t, auth, "alice")

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, nutrition.loc)

	nutrition.now = func() time.Time { return base.AddDate(0, 0, -1) }
	require.NoError(t, nutrition.LogMeal(ctx, alice, MealInput{Name: "yesterday", Kcal: 500}))

	nutrition.now = func() time.Time { return base }
	require.NoError(t, nutrition.LogMeal(ctx, alice, MealInput{Name: "breakfast", Kcal: 300, Grams: 250}))
	nutrition.now = func() time.Time { return base.Add(4 * time.Hour) }
	require.NoError(t, nutrition.LogMeal(ctx, alice, MealInput{Name: "lunch", Kcal: 650}))

	entries, err := nutrition.History(ctx, alice)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "lunch", entries[0].Name)
	assert.Equal(t, "13:00:00", entries[0].Time)
	assert.Equal(t, "breakfast", entries[1].Name)
	assert.Equal(t, "09:00:00", entries[1].Time)
	assert.Equal(t, float64(250), entries[1].Grams)
}

func TestBasalMetabolicRate(t *testing.T) {
	auth, nutrition := newNutritionFixture(t)
	ctx := context.Background()

	// 1990-03-12, 70 kg, 1.75 m, activity 1.55; at the reference date the
	// calendar-year age is 34.
	alice := seedUser(t, auth, "alice")
	nutrition.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, nutrition.loc)
	}

	rate, err := nutrition.BasalMetabolicRate(ctx, alice)
	require.NoError(t, err)
	// 88.362 + 13.397*70 + 4.799*175 - 5.677*34 = 1672.959; *1.55 rounded.
	assert.InDelta(t, 2593.09, rate.TMB, 1e-9)
	assert.Equal(t, 34, rate.Age)
	assert.Equal(t, model.GenderMale, rate.Gender)
	assert.InDelta(t, 70, rate.WeightKg, 1e-9)
	assert.InDelta(t, 1.75, rate.HeightM, 1e-9)
	assert.InDelta(t, 1.55, rate.ActivityLevel, 1e-9)
}

func TestBasalMetabolicRateFemale(t *testing.T) {
	db := setupDB(t)
	auth := newAuthService(db)
	nutrition := NewNutritionService(repository.NewMealRepository(db), repository.NewUserRepository(db), time.UTC)
	ctx := context.Background()

	id, err := auth.Register(ctx, RegisterInput{
		Username:      "beth",
		Email:         "beth@example.com",
		Password:      "Passw0rd!",
		BirthDate:     time.Date(1995, 8, 20, 0, 0, 0, 0, time.UTC),
		Gender:        model.GenderFemale,
		WeightKg:      60,
		HeightM:       1.65,
		ActivityLevel: 1.2,
	})
	require.NoError(t, err)

	nutrition.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	rate, err := nutrition.BasalMetabolicRate(ctx, id)
	require.NoError(t, err)
	// 447.593 + 9.247*60 + 3.098*165 - 4.330*29 = 1388.013; *1.2 rounded.
	assert.InDelta(t, 1665.62, rate.TMB, 1e-9)
	assert.Equal(t, 29, rate.Age)
}

func TestBasalMetabolicRateUnknownUser(t *testing.T) {
	_, nutrition := newNutritionFixture(t)

	_, err := nutrition.BasalMetabolicRate(context.Background(), 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
