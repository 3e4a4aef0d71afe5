package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hercules-fit/hercules-api/internal/apperr"
	"github.com/hercules-fit/hercules-api/pkg/logger"
)

// Response is the JSON envelope every endpoint returns.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Message: "ok", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: http.StatusCreated, Message: "created", Data: data})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{Code: http.StatusNotFound, Message: message})
}

// Unauthorized aborts with a 401 carrying a machine-distinguishable reason
// (missing, expired, invalid).
func Unauthorized(c *gin.Context, reason, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": message,
		"reason":  reason,
	})
}

// InternalError logs the underlying error server-side and returns a generic
// message; raw storage errors never reach the client.
func InternalError(c *gin.Context, err error) {
	logger.Error("internal error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, Response{Code: http.StatusInternalServerError, Message: "internal error"})
}

// Error renders err according to its apperr kind.
func Error(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidInput:
		BadRequest(c, apperr.MessageOf(err))
	case apperr.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, Response{Code: http.StatusUnauthorized, Message: apperr.MessageOf(err)})
	case apperr.KindNotFound:
		NotFound(c, apperr.MessageOf(err))
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, Response{Code: http.StatusConflict, Message: apperr.MessageOf(err)})
	default:
		InternalError(c, err)
	}
}
