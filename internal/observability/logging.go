// Package observability builds the structured loggers the engine and the
// simulator write to.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/creature-battle/internal/config"
)

// formats maps a configured format name to the zap preset it starts from.
var formats = map[string]func() zap.Config{
	"json":    zap.NewProductionConfig,
	"console": zap.NewDevelopmentConfig,
}

// NewLogger builds the process logger from cfg. Battle loggers are derived
// from it with BattleLogger.
//
// Precondition: cfg.Level is a zap level name and cfg.Format is "json" or "console".
// Postcondition: returns a logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("observability: log level %q: %w", cfg.Level, err)
	}
	preset, ok := formats[cfg.Format]
	if !ok {
		return nil, fmt.Errorf("observability: unknown log format %q", cfg.Format)
	}
	zc := preset()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// Stack traces only at debug level.
	zc.DisableStacktrace = level > zapcore.DebugLevel

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("observability: building logger: %w", err)
	}
	return logger, nil
}

// BattleLogger returns a child of base that tags every entry with the
// battle seed, so a battle seen in interleaved logs can be replayed.
//
// Precondition: base must not be nil.
func BattleLogger(base *zap.Logger, seed uint64) *zap.Logger {
	if base == nil {
		panic("observability.BattleLogger: base must not be nil")
	}
	return base.With(zap.Uint64("seed", seed))
}
