// Package logger holds the shared zap logger for the server and tools.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is set by Init; read it through Get
var Logger *zap.Logger

var (
	fallback     *zap.Logger
	fallbackOnce sync.Once
)

// Init configures Logger. Production writes JSON at info, anything else
// writes coloured console output at debug. A non-empty level such as
// "warn" overrides the default for either.
func Init(env, level string) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	lvl := zapcore.DebugLevel
	if env == "production" {
		cfg = zap.NewProductionConfig()
		lvl = zapcore.InfoLevel
	}

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = built
	return nil
}

// Sync flushes buffered entries; call it before exit
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Get returns Logger, or a shared development logger before Init
func Get() *zap.Logger {
	if Logger != nil {
		return Logger
	}
	fallbackOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			l = zap.NewNop()
		}
		fallback = l
	})
	return fallback
}

// Named tags Get() with a component name
func Named(component string) *zap.Logger {
	return Get().Named(component)
}
