// Package creature provides species definitions and the live Combatant entity.
package creature

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// BaseStats holds the six species base stats.
type BaseStats struct {
	HP    int `yaml:"hp"`
	Atk   int `yaml:"atk"`
	Def   int `yaml:"def"`
	SpAtk int `yaml:"spatk"`
	SpDef int `yaml:"spdef"`
	Spd   int `yaml:"spd"`
}

// Block returns the stats indexed by stat.Stat.
func (b BaseStats) Block() stat.Block {
	return stat.Block{b.HP, b.Atk, b.Def, b.SpAtk, b.SpDef, b.Spd}
}

// Form is an alternate appearance of a species with its own types and stats.
type Form struct {
	Name      string       `yaml:"name"`
	Types     []types.Type `yaml:"types"`
	BaseStats BaseStats    `yaml:"base_stats"`
}

// Species defines a reusable creature archetype loaded from YAML.
type Species struct {
	ID        string       `yaml:"id"`
	Name      string       `yaml:"name"`
	Types     []types.Type `yaml:"types"`
	BaseStats BaseStats    `yaml:"base_stats"`
	// Abilities lists the ability ids an instance may roll; the first is the default.
	Abilities []string `yaml:"abilities"`
	Passive   string   `yaml:"passive"`
	// Moves is the pool a generated instance draws its moveset from.
	Moves []string `yaml:"moves"`
	Forms []Form   `yaml:"forms"`
}

func validTypes(ts []types.Type) bool {
	if len(ts) < 1 || len(ts) > 2 {
		return false
	}
	for _, t := range ts {
		if !t.Charted() {
			return false
		}
	}
	return len(ts) == 1 || ts[0] != ts[1]
}

func validBase(b BaseStats) bool {
	for _, v := range b.Block() {
		if v < 1 {
			return false
		}
	}
	return true
}

// Validate checks that the species satisfies basic invariants.
//
// Precondition: s must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, types hold one or
// two distinct charted types, every base stat is >= 1, and at least one ability
// and one move are listed; every form obeys the same type and stat rules.
func (s *Species) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("species: id must not be empty")
	}
	if s.Name == "" {
		return fmt.Errorf("species %q: name must not be empty", s.ID)
	}
	if !validTypes(s.Types) {
		return fmt.Errorf("species %q: types must be one or two distinct elemental types", s.ID)
	}
	if !validBase(s.BaseStats) {
		return fmt.Errorf("species %q: every base stat must be >= 1", s.ID)
	}
	if len(s.Abilities) == 0 {
		return fmt.Errorf("species %q: at least one ability is required", s.ID)
	}
	if len(s.Moves) == 0 {
		return fmt.Errorf("species %q: at least one move is required", s.ID)
	}
	for i, f := range s.Forms {
		if !validTypes(f.Types) || !validBase(f.BaseStats) {
			return fmt.Errorf("species %q: form %d (%s) has invalid types or base stats", s.ID, i+1, f.Name)
		}
	}
	return nil
}

// form returns the types and base stats of form index i; 0 is the base form.
func (s *Species) form(i int) ([]types.Type, stat.Block) {
	if i > 0 && i <= len(s.Forms) {
		f := s.Forms[i-1]
		return f.Types, f.BaseStats.Block()
	}
	return s.Types, s.BaseStats.Block()
}

// LoadSpeciesFromBytes parses a single species from raw YAML bytes.
//
// Postcondition: Returns a validated *Species, or an error.
func LoadSpeciesFromBytes(data []byte) (*Species, error) {
	var s Species
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing species YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSpecies reads all *.yaml files in dir and returns the parsed species.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all species or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadSpecies(dir string) ([]*Species, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading species dir %q: %w", dir, err)
	}

	var out []*Species
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		s, err := LoadSpeciesFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		out = append(out, s)
	}
	return out, nil
}
