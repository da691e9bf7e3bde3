package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("PORT", "8000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 3, cfg.UploadMaxRetries)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("UPLOAD_RETRY_DELAY", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("APP_ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 2*time.Second, cfg.UploadRetryDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "lots")
	assert.Equal(t, 5, getEnvInt("DB_MAX_IDLE_CONNS", 5))
}
