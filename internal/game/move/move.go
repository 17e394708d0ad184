// Package move holds move definitions. Move-specific behavior is a list of
// tagged-variant attributes that the combat engine interprets.
package move

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// Category decides which offense/defense stat pair a move uses.
type Category int

const (
	Physical Category = iota
	Special
	Status
)

var categoryNames = [...]string{"physical", "special", "status"}

// String returns the category name.
func (c Category) String() string { return nameOf(categoryNames[:], int(c), "category") }

// UnmarshalYAML decodes a category from its name.
func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	i, err := indexOf(categoryNames[:], value.Value, "category")
	*c = Category(i)
	return err
}

// Target is the set of combatants a move may be aimed at.
type Target int

const (
	TargetNearOpponent Target = iota
	TargetSelf
	TargetAllNearOpponents
	TargetAlly
	TargetAllNearOthers
	TargetUserSide
	TargetEnemySide
	TargetEntireField
)

var targetNames = [...]string{"near_opponent", "self", "all_near_opponents", "ally", "all_near_others", "user_side", "enemy_side", "entire_field"}

// String returns the target kind name.
func (t Target) String() string { return nameOf(targetNames[:], int(t), "target") }

// UnmarshalYAML decodes a target kind from its name.
func (t *Target) UnmarshalYAML(value *yaml.Node) error {
	i, err := indexOf(targetNames[:], value.Value, "target")
	*t = Target(i)
	return err
}

// Flag is a boolean move property read by abilities and tags.
type Flag string

const (
	Contact          Flag = "contact"
	Sound            Flag = "sound"
	Punch            Flag = "punch"
	Bite             Flag = "bite"
	Pulse            Flag = "pulse"
	Slicing          Flag = "slicing"
	Wind             Flag = "wind"
	Powder           Flag = "powder"
	IgnoreProtect    Flag = "ignore_protect"
	IgnoreSubstitute Flag = "ignore_substitute"
)

// Move is a static move definition.
type Move struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Type     types.Type `yaml:"type"`
	Category Category   `yaml:"category"`
	Power    int        `yaml:"power"`
	// Accuracy in percent; -1 never misses.
	Accuracy int    `yaml:"accuracy"`
	PP       int    `yaml:"pp"`
	Priority int    `yaml:"priority"`
	Target   Target `yaml:"target"`
	Flags    []Flag `yaml:"flags"`
	Attrs    []Attr `yaml:"attrs"`
}

// Validate checks the definition's invariants.
func (m *Move) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("move: id must not be empty")
	}
	if m.Name == "" {
		return fmt.Errorf("move %q: name must not be empty", m.ID)
	}
	if m.Type == types.Unknown {
		return fmt.Errorf("move %q: type must be set", m.ID)
	}
	if m.Power < 0 {
		return fmt.Errorf("move %q: power must be >= 0", m.ID)
	}
	if m.Category == Status && m.Power != 0 {
		return fmt.Errorf("move %q: status moves have no power", m.ID)
	}
	if m.Accuracy != -1 && (m.Accuracy < 1 || m.Accuracy > 100) {
		return fmt.Errorf("move %q: accuracy must be -1 or in [1,100]", m.ID)
	}
	if m.PP < 1 {
		return fmt.Errorf("move %q: pp must be >= 1", m.ID)
	}
	for i := range m.Attrs {
		if err := m.Attrs[i].Validate(); err != nil {
			return fmt.Errorf("move %q attr %d: %w", m.ID, i, err)
		}
	}
	return nil
}

// Attr returns the first attribute of kind.
func (m *Move) Attr(kind AttrKind) (*Attr, bool) {
	for i := range m.Attrs {
		if m.Attrs[i].Kind == kind {
			return &m.Attrs[i], true
		}
	}
	return nil, false
}

// Has reports whether the move carries an attribute of kind.
func (m *Move) Has(kind AttrKind) bool {
	_, ok := m.Attr(kind)
	return ok
}

// AttrsOf returns every attribute of kind in declaration order.
func (m *Move) AttrsOf(kind AttrKind) []*Attr {
	var out []*Attr
	for i := range m.Attrs {
		if m.Attrs[i].Kind == kind {
			out = append(out, &m.Attrs[i])
		}
	}
	return out
}

// HasFlag reports whether f is set.
func (m *Move) HasFlag(f Flag) bool { return slices.Contains(m.Flags, f) }

// IsMultiTarget reports whether the move hits every eligible target at once.
func (m *Move) IsMultiTarget() bool {
	return m.Target == TargetAllNearOpponents || m.Target == TargetAllNearOthers
}

// IsAttack reports whether the move deals damage.
func (m *Move) IsAttack() bool { return m.Category != Status }

// Struggle is used when no other move is usable. It is never loaded from content.
var Struggle = &Move{
	ID:       "struggle",
	Name:     "Struggle",
	Type:     types.Normal,
	Category: Physical,
	Power:    50,
	Accuracy: -1,
	PP:       1,
	Target:   TargetNearOpponent,
	Flags:    []Flag{Contact},
	Attrs: []Attr{
		{Kind: Typeless},
		{Kind: Recoil, Fraction: 0.25, OfMaxHP: true},
	},
}

func nameOf(names []string, i int, what string) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%s(%d)", what, i)
	}
	return names[i]
}

func indexOf(names []string, s, what string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("move: unknown %s %q", what, s)
}
