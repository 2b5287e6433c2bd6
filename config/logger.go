package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/neurlang/concrete/errs"
)

// NewLogger builds the development logger, or the JSON production logger
// when Log.JSON is set, at Log.Level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errs.Data("log level %q: %v", c.Log.Level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	if c.Log.JSON {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}
