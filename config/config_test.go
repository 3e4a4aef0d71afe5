package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoadDefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("HERCULES_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("HERCULES_SERVER_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, ":9999", cfg.Server.Addr)

	// Untouched keys keep their defaults.
	assert.Equal(t, int64(16<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "Europe/Madrid", cfg.Nutrition.Timezone)
	assert.Equal(t, "data/media", cfg.Media.UploadDir)
	assert.False(t, cfg.RateLimit.Enabled)
}
