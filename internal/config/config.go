// Package config provides Viper-based configuration loading for the battle
// simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ContentConfig names the YAML directories game content is loaded from.
type ContentConfig struct {
	SpeciesDir   string `mapstructure:"species_dir"`
	MovesDir     string `mapstructure:"moves_dir"`
	AbilitiesDir string `mapstructure:"abilities_dir"`
	ItemsDir     string `mapstructure:"items_dir"`
	AIDir        string `mapstructure:"ai_dir"`
}

// ScriptingConfig holds Lua ability-script settings.
type ScriptingConfig struct {
	// Dir holds *.lua ability scripts. Empty disables scripting.
	Dir string `mapstructure:"dir"`
	// InstructionLimit caps opcodes per load or hook call; 0 uses the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// BattleConfig holds per-battle settings.
type BattleConfig struct {
	// Seed is the base battle seed. 0 draws one from the global source.
	Seed uint64 `mapstructure:"seed"`
	// Double selects a two-per-side battle.
	Double bool `mapstructure:"double"`
	// Level is the level every generated combatant is created at.
	Level int `mapstructure:"level"`
	// PartySize is the number of combatants per side.
	PartySize int `mapstructure:"party_size"`
	// AIProfile is the profile id both sides play with.
	AIProfile string `mapstructure:"ai_profile"`
	// MaxTurns ends a battle as a draw; 0 means no limit.
	MaxTurns int `mapstructure:"max_turns"`
}

// SimulationConfig controls the batch simulator.
type SimulationConfig struct {
	// Battles is the number of battles to run.
	Battles int `mapstructure:"battles"`
	// Workers bounds concurrently running battles.
	Workers int `mapstructure:"workers"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Content    ContentConfig    `mapstructure:"content"`
	Scripting  ScriptingConfig  `mapstructure:"scripting"`
	Battle     BattleConfig     `mapstructure:"battle"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	for _, check := range []func() error{
		func() error { return validateLogging(c.Logging) },
		func() error { return validateContent(c.Content) },
		func() error { return validateScripting(c.Scripting) },
		func() error { return validateBattle(c.Battle) },
		func() error { return validateSimulation(c.Simulation) },
	} {
		if err := check(); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	for _, d := range []struct{ key, dir string }{
		{"content.species_dir", c.SpeciesDir},
		{"content.moves_dir", c.MovesDir},
		{"content.abilities_dir", c.AbilitiesDir},
		{"content.items_dir", c.ItemsDir},
		{"content.ai_dir", c.AIDir},
	} {
		if d.dir == "" {
			errs = append(errs, d.key+" must not be empty")
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	if s.InstructionLimit < 0 {
		return fmt.Errorf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	return nil
}

func validateBattle(b BattleConfig) error {
	var errs []string
	if b.Level < 1 || b.Level > 100 {
		errs = append(errs, fmt.Sprintf("battle.level must be 1-100, got %d", b.Level))
	}
	if b.PartySize < 1 || b.PartySize > 6 {
		errs = append(errs, fmt.Sprintf("battle.party_size must be 1-6, got %d", b.PartySize))
	}
	if b.Double && b.PartySize < 2 {
		errs = append(errs, "battle.party_size must be >= 2 for double battles")
	}
	if b.AIProfile == "" {
		errs = append(errs, "battle.ai_profile must not be empty")
	}
	if b.MaxTurns < 0 {
		errs = append(errs, fmt.Sprintf("battle.max_turns must be >= 0, got %d", b.MaxTurns))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.Battles < 1 {
		errs = append(errs, fmt.Sprintf("simulation.battles must be >= 1, got %d", s.Battles))
	}
	if s.Workers < 1 {
		errs = append(errs, fmt.Sprintf("simulation.workers must be >= 1, got %d", s.Workers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// NewViper returns a Viper instance with BATTLE_ environment overrides and
// defaults installed.
func NewViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with BATTLE_ prefix
	v.SetEnvPrefix("BATTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("content.species_dir", "content/species")
	v.SetDefault("content.moves_dir", "content/moves")
	v.SetDefault("content.abilities_dir", "content/abilities")
	v.SetDefault("content.items_dir", "content/items")
	v.SetDefault("content.ai_dir", "content/ai")

	v.SetDefault("scripting.dir", "")
	v.SetDefault("scripting.instruction_limit", 0)

	v.SetDefault("battle.seed", 0)
	v.SetDefault("battle.double", false)
	v.SetDefault("battle.level", 50)
	v.SetDefault("battle.party_size", 3)
	v.SetDefault("battle.ai_profile", "smart")
	v.SetDefault("battle.max_turns", 200)

	v.SetDefault("simulation.battles", 100)
	v.SetDefault("simulation.workers", 4)
}
