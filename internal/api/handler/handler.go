package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/hercules-fit/hercules-api/internal/model"
	"github.com/hercules-fit/hercules-api/internal/service"
	"github.com/hercules-fit/hercules-api/internal/storage"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	auth      *service.AuthService
	users     *service.UserService
	social    *service.SocialService
	content   *service.ContentService
	messages  *service.MessagingService
	nutrition *service.NutritionService
	media     *storage.MediaStore
}

func New(
	auth *service.AuthService,
	users *service.UserService,
	social *service.SocialService,
	content *service.ContentService,
	messages *service.MessagingService,
	nutrition *service.NutritionService,
	media *storage.MediaStore,
) *Handler {
	return &Handler{
		auth:      auth,
		users:     users,
		social:    social,
		content:   content,
		messages:  messages,
		nutrition: nutrition,
		media:     media,
	}
}

// RegisterValidators adds the custom binding rules. Call once before the
// router is built.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("activitylevel", func(fl validator.FieldLevel) bool {
			return model.ValidActivityLevel(fl.Field().Float())
		})
	}
}
