package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/creature-battle/internal/config"
)

func TestNewLogger(t *testing.T) {
	cases := []struct {
		name        string
		cfg         config.LoggingConfig
		wantErr     string
		debug, warn bool
	}{
		{name: "json info", cfg: config.LoggingConfig{Level: "info", Format: "json"}, warn: true},
		{name: "console debug", cfg: config.LoggingConfig{Level: "debug", Format: "console"}, debug: true, warn: true},
		{name: "error only", cfg: config.LoggingConfig{Level: "error", Format: "json"}},
		{name: "bad level", cfg: config.LoggingConfig{Level: "trace", Format: "json"}, wantErr: "log level"},
		{name: "bad format", cfg: config.LoggingConfig{Level: "info", Format: "xml"}, wantErr: "unknown log format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := NewLogger(tc.cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.debug, logger.Core().Enabled(zap.DebugLevel))
			assert.Equal(t, tc.warn, logger.Core().Enabled(zap.WarnLevel))
		})
	}
}

func TestBattleLogger_TagsEntries(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := BattleLogger(zap.New(core), 99)
	logger.Info("turn")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, uint64(99), logs.All()[0].ContextMap()["seed"])
}

func TestBattleLogger_NilPanics(t *testing.T) {
	assert.Panics(t, func() { BattleLogger(nil, 1) })
}
