package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hercules-fit/hercules-api/internal/api/middleware"
	"github.com/hercules-fit/hercules-api/internal/service"
	"github.com/hercules-fit/hercules-api/pkg/response"
)

// GetProfile returns the caller's health profile
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=service.Profile}
// @Router /users/me [get]
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.users.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

type updateProfileRequest struct {
	WeightKg      float64 `json:"weight_kg" binding:"required"`
	HeightM       float64 `json:"height_m" binding:"required"`
	BirthDate     string  `json:"birth_date" binding:"required"`
	Gender        string  `json:"gender" binding:"required"`
	ActivityLevel float64 `json:"activity_level" binding:"required,activitylevel"`
}

// UpdateProfile replaces the caller's health attributes
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updateProfileRequest true "profile data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/me [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		response.BadRequest(c, "birth_date must be YYYY-MM-DD")
		return
	}
	err = h.users.UpdateProfile(c.Request.Context(), middleware.UserID(c), service.ProfileUpdate{
		WeightKg:      req.WeightKg,
		HeightM:       req.HeightM,
		BirthDate:     birthDate,
		Gender:        req.Gender,
		ActivityLevel: req.ActivityLevel,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetFullName returns the caller's full name
// @Summary Get full name
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/me/name [get]
func (h *Handler) GetFullName(c *gin.Context) {
	name, err := h.users.FullName(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"full_name": name})
}

type updateFullNameRequest struct {
	FullName string `json:"full_name" binding:"required"`
}

// UpdateFullName updates the caller's full name
// @Summary Update full name
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updateFullNameRequest true "name"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/me/name [put]
func (h *Handler) UpdateFullName(c *gin.Context) {
	var req updateFullNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.users.UpdateFullName(c.Request.Context(), middleware.UserID(c), req.FullName); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetWeight returns the caller's current weight
// @Summary Get weight
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/me/weight [get]
func (h *Handler) GetWeight(c *gin.Context) {
	w, err := h.users.Weight(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"weight_kg": w})
}

// GetOwnSummary returns the caller's profile page data
// @Summary Get own profile summary
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=service.ProfileSummary}
// @Router /users/me/summary [get]
func (h *Handler) GetOwnSummary(c *gin.Context) {
	s, err := h.users.Summary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, s)
}

// GetUserSummary returns another user's profile page data
// @Summary Get a user's profile summary
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Success 200 {object} response.Response{data=service.ProfileSummary}
// @Failure 404 {object} response.Response
// @Router /users/{id}/summary [get]
func (h *Handler) GetUserSummary(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	s, err := h.users.Summary(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, s)
}

type lookupRequest struct {
	Username string `json:"username" binding:"required"`
}

// LookupUser resolves an exact username to a user id
// @Summary Look up a user id by username
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body lookupRequest true "username"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/lookup [post]
func (h *Handler) LookupUser(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	id, err := h.users.LookupID(c.Request.Context(), req.Username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// UpdateProfilePhoto stores a new profile photo
// @Summary Update profile photo
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "image file"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/me/photo [post]
func (h *Handler) UpdateProfilePhoto(c *gin.Context) {
	fh, err := c.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "no image was sent")
		return
	}
	filename, err := h.media.SaveProfilePhoto(fh)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.users.SetProfilePhoto(c.Request.Context(), middleware.UserID(c), filename); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"filename": filename})
}
