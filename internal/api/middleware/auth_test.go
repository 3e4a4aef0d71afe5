package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hercules-fit/hercules-api/internal/service"
)

func authRouter(tokens *service.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	return r
}

func reasonOf(t *testing.T, body []byte) string {
	t.Helper()
	var payload struct {
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload.Reason
}

func TestAuthMissingToken(t *testing.T) {
	r := authRouter(service.NewTokenManager("secret", time.Hour))

	for _, header := range []string{"", "Basic abc", "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, service.TokenReasonMissing, reasonOf(t, w.Body.Bytes()))
	}
}

func TestAuthInvalidToken(t *testing.T) {
	r := authRouter(service.NewTokenManager("secret", time.Hour))

	other := service.NewTokenManager("other", time.Hour)
	signed, err := other.Sign(1, "alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, service.TokenReasonInvalid, reasonOf(t, w.Body.Bytes()))
}

func TestAuthExpiredToken(t *testing.T) {
	tokens := service.NewTokenManager("secret", time.Nanosecond)
	r := authRouter(tokens)

	signed, err := tokens.Sign(1, "alice")
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, service.TokenReasonExpired, reasonOf(t, w.Body.Bytes()))
}

func TestAuthValidToken(t *testing.T) {
	tokens := service.NewTokenManager("secret", time.Hour)
	r := authRouter(tokens)

	signed, err := tokens.Sign(42, "alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var payload struct {
		UserID uint `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, uint(42), payload.UserID)
}
