package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, int64(60), cfg.RateLimitLimit)
	assert.Equal(t, time.Minute, cfg.RateLimitPeriod)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.NotEmpty(t, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_ProductionRequiresOrigins(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	_, err := fromEnv()
	assert.Error(t, err)
}

func TestFromEnv_ParsesOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://campus.example , ,https://admin.campus.example")
	t.Setenv("RATE_LIMIT_LIMIT", "5")
	t.Setenv("RATE_LIMIT_PERIOD", "30s")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://campus.example", "https://admin.campus.example"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(5), cfg.RateLimitLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimitPeriod)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	t.Setenv("RATE_LIMIT_PERIOD", "soon")

	_, err := fromEnv()
	assert.Error(t, err)
}
