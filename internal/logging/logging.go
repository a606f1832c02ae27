// Package logging builds the zap logger used by reflow commands.
package logging

import (
	"context"

	"go.uber.org/zap"
)

// Config holds the configuration for the logger.
type Config struct {
	Verbose bool // debug-level console output
	JSON    bool // structured JSON output instead of console
}

// New creates a logger. Without Verbose only warnings and errors are written,
// so normal command output on stdout stays clean.
func New(cfg Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Verbose {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		zapConfig.DisableCaller = true
		zapConfig.DisableStacktrace = true
		zapConfig.Encoding = "console"
	}
	if cfg.JSON {
		zapConfig.Encoding = "json"
	}
	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	return zapConfig.Build()
}

type loggerKey struct{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return zap.NewNop()
	}
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}
