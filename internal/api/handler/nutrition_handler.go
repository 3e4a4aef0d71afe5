package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hercules-fit/hercules-api/internal/api/middleware"
	"github.com/hercules-fit/hercules-api/internal/service"
	"github.com/hercules-fit/hercules-api/pkg/response"
)

type logMealRequest struct {
	Name    string  `json:"name" binding:"required"`
	Kcal    float64 `json:"kcal" binding:"required"`
	Carbs   float64 `json:"carbs"`
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	Grams   float64 `json:"grams"`
}

// LogMeal records a meal for the caller, timestamped server-side
// @Summary Log a meal
// @Tags nutrition
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body logMealRequest true "meal"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /nutrition/meals [post]
func (h *Handler) LogMeal(c *gin.Context) {
	var req logMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	in := service.MealInput{
		Name:    req.Name,
		Kcal:    req.Kcal,
		Carbs:   req.Carbs,
		Protein: req.Protein,
		Fat:     req.Fat,
		Grams:   req.Grams,
	}
	if err := h.nutrition.LogMeal(c.Request.Context(), middleware.UserID(c), in); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, nil)
}

// DailyCalories sums the calories the caller logged today
// @Summary Get today's calorie total
// @Tags nutrition
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /nutrition/calories [get]
func (h *Handler) DailyCalories(c *gin.Context) {
	total, err := h.nutrition.DailyCalories(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"kcal": total})
}

// ListMeals lists every meal the caller has logged, newest first
// @Summary List logged meals
// @Tags nutrition
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]service.MealView}
// @Router /nutrition/meals [get]
func (h *Handler) ListMeals(c *gin.Context) {
	meals, err := h.nutrition.ListMeals(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, meals)
}

// MealHistory returns today's meals as compact history lines, newest first
// @Summary Get today's meal history
// @Tags nutrition
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]service.HistoryEntry}
// @Router /nutrition/history [get]
func (h *Handler) MealHistory(c *gin.Context) {
	entries, err := h.nutrition.History(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}

// MetabolicRate estimates the caller's basal metabolic rate from the
// profile data using the Harris-Benedict equations
// @Summary Get the caller's basal metabolic rate
// @Tags nutrition
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=service.MetabolicRate}
// @Failure 400 {object} response.Response
// @Router /nutrition/tmb [get]
func (h *Handler) MetabolicRate(c *gin.Context) {
	rate, err := h.nutrition.BasalMetabolicRate(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rate)
}
