package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Content: ContentConfig{
			SpeciesDir:   "content/species",
			MovesDir:     "content/moves",
			AbilitiesDir: "content/abilities",
			ItemsDir:     "content/items",
			AIDir:        "content/ai",
		},
		Scripting: ScriptingConfig{
			Dir:              "content/scripts",
			InstructionLimit: 1000,
		},
		Battle: BattleConfig{
			Seed:      42,
			Level:     50,
			PartySize: 3,
			AIProfile: "smart",
			MaxTurns:  200,
		},
		Simulation: SimulationConfig{
			Battles: 10,
			Workers: 2,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
content:
  species_dir: data/species
scripting:
  dir: data/scripts
  instruction_limit: 5000
battle:
  seed: 7
  double: true
  level: 30
  party_size: 4
  ai_profile: smart_random
simulation:
  battles: 25
  workers: 8
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "data/species", cfg.Content.SpeciesDir)
	assert.Equal(t, "content/moves", cfg.Content.MovesDir, "unset keys fall back to defaults")
	assert.Equal(t, 5000, cfg.Scripting.InstructionLimit)
	assert.Equal(t, uint64(7), cfg.Battle.Seed)
	assert.True(t, cfg.Battle.Double)
	assert.Equal(t, 30, cfg.Battle.Level)
	assert.Equal(t, 200, cfg.Battle.MaxTurns)
	assert.Equal(t, 8, cfg.Simulation.Workers)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte("battle:\n  level: 30\n"), 0644))
	t.Setenv("BATTLE_BATTLE_LEVEL", "75")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Battle.Level)
}

func TestLoadFromViper_Defaults(t *testing.T) {
	cfg, err := LoadFromViper(NewViper())
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 50, cfg.Battle.Level)
	assert.Equal(t, "smart", cfg.Battle.AIProfile)
	assert.Empty(t, cfg.Scripting.Dir)
}

func TestLoadFromViper_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("logging.level", "info")
	v.Set("logging.format", "json")
	_, err := LoadFromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content.species_dir must not be empty")
	assert.Contains(t, err.Error(), "battle.level must be 1-100")
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateContentDirs(t *testing.T) {
	cfg := validConfig()
	cfg.Content.MovesDir = ""
	cfg.Content.AIDir = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content.moves_dir must not be empty; content.ai_dir must not be empty")
}

func TestValidateScriptingLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Scripting.InstructionLimit = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateBattle(t *testing.T) {
	cfg := validConfig()
	cfg.Battle.AIProfile = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Battle.MaxTurns = -1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Battle.Double = true
	cfg.Battle.PartySize = 1
	assert.Error(t, cfg.Validate())
}

func TestValidateSimulation(t *testing.T) {
	cfg := validConfig()
	cfg.Simulation.Workers = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Simulation.Battles = 0
	assert.Error(t, cfg.Validate())
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Simulation.Workers = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "simulation.workers")
}

// Property-based tests

func TestPropertyValidLevelRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		level := rapid.IntRange(1, 100).Draw(t, "level")
		cfg := validConfig()
		cfg.Battle.Level = level
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid level %d rejected: %v", level, err)
		}
	})
}

func TestPropertyInvalidLevelRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		level := rapid.OneOf(
			rapid.IntRange(-1000, 0),
			rapid.IntRange(101, 10000),
		).Draw(t, "level")
		cfg := validConfig()
		cfg.Battle.Level = level
		if err := cfg.Validate(); err == nil {
			t.Fatalf("invalid level %d accepted", level)
		}
	})
}

func TestPropertyPartySize(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(-5, 12).Draw(t, "party_size")
		cfg := validConfig()
		cfg.Battle.PartySize = size
		err := cfg.Validate()
		if valid := size >= 1 && size <= 6; valid != (err == nil) {
			t.Fatalf("party_size=%d valid=%v err=%v", size, valid, err)
		}
	})
}
