package logger

import (
	"github.com/justsurfingit/savvy/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Development mode gets the console encoder.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsDevelopment() {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}
