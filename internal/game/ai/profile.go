// Package ai chooses moves and targets for computer-controlled combatants.
//
// Candidate moves are scored by their expected benefit to the user and harm
// to the target, then picked by a weighted walk down the sorted list so that
// opponents play competently without always making the best choice.
package ai

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tier selects how strongly the selector favors the best-scored move.
type Tier int

const (
	// Random picks uniformly among usable moves.
	Random Tier = iota
	// SmartRandom takes the best move 5/8 of the time and otherwise steps down
	// the sorted list, repeating the roll.
	SmartRandom
	// Smart steps down only when the next move scores close to the current one.
	Smart
)

var tierNames = [...]string{"random", "smart_random", "smart"}

// String returns the tier name.
func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// UnmarshalYAML decodes a tier from its name.
func (t *Tier) UnmarshalYAML(value *yaml.Node) error {
	key := strings.ToLower(strings.TrimSpace(value.Value))
	for i, n := range tierNames {
		if n == key {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("ai: unknown tier %q", value.Value)
}

// Profile names an AI behavior that content can assign to a trainer or a
// wild encounter.
//
// Precondition: ID must be non-empty.
type Profile struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Tier        Tier   `yaml:"tier"`
}

// Validate checks required fields.
//
// Postcondition: nil return guarantees a non-empty ID and a declared tier.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return errors.New("ai.Profile: ID must not be empty")
	}
	if p.Tier < Random || p.Tier > Smart {
		return fmt.Errorf("ai.Profile %q: invalid tier %d", p.ID, int(p.Tier))
	}
	return nil
}

// yamlProfileFile wraps the YAML top-level key.
type yamlProfileFile struct {
	Profile *Profile `yaml:"profile"`
}

// LoadProfileFromBytes parses one profile document.
//
// Postcondition: returns a validated profile or a non-nil error.
func LoadProfileFromBytes(data []byte) (*Profile, error) {
	var f yamlProfileFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("ai: parsing profile: %w", err)
	}
	if f.Profile == nil {
		return nil, errors.New("ai: missing top-level 'profile' key")
	}
	if err := f.Profile.Validate(); err != nil {
		return nil, err
	}
	return f.Profile, nil
}

// LoadProfiles reads all *.yaml files from dir and returns parsed profiles.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns error if any YAML file fails to parse or validate.
func LoadProfiles(dir string) ([]*Profile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ai.LoadProfiles: reading %q: %w", dir, err)
	}
	var profiles []*Profile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("ai.LoadProfiles: reading %s: %w", e.Name(), err)
		}
		p, err := LoadProfileFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("ai.LoadProfiles: %s: %w", e.Name(), err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
