package logger

import (
	"testing"

	"github.com/justsurfingit/savvy/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewRespectsLevel(t *testing.T) {
	log, err := New(&config.Config{AppEnv: "production", LogLevel: "warn"})
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewFallsBackToInfo(t *testing.T) {
	log, err := New(&config.Config{AppEnv: "development", LogLevel: "chatty"})
	require.NoError(t, err)

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}
