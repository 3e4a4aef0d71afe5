package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hercules-fit/hercules-api/internal/service"
	"github.com/hercules-fit/hercules-api/pkg/response"
)

const bearerPrefix = "Bearer "

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
)

// Auth resolves the caller's identity from the Authorization header before
// the handler runs. The token is the only source of "current user"; handlers
// never trust a client-supplied user id for mutating their own data. The 401
// body carries a reason of missing, expired or invalid.
func Auth(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			response.Unauthorized(c, service.TokenReasonMissing, "token required")
			return
		}

		claims, reason, err := tokens.Verify(header[len(bearerPrefix):])
		if err != nil {
			if reason == service.TokenReasonExpired {
				response.Unauthorized(c, reason, "token expired")
			} else {
				response.Unauthorized(c, reason, "invalid token")
			}
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Next()
	}
}

// UserID reads the authenticated user id set by Auth.
func UserID(c *gin.Context) uint {
	return c.GetUint(CtxUserID)
}
