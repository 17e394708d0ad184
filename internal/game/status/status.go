// Package status defines non-volatile status conditions.
package status

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Effect is a non-volatile status. At most one non-faint effect is held at a
// time; Faint is terminal.
type Effect int

const (
	None Effect = iota
	Poison
	Toxic
	Paralysis
	Sleep
	Freeze
	Burn
	Faint
)

var effectNames = [...]string{"none", "poison", "toxic", "paralysis", "sleep", "freeze", "burn", "faint"}

// String returns the lowercase effect name.
func (e Effect) String() string {
	if e < None || e > Faint {
		return fmt.Sprintf("effect(%d)", int(e))
	}
	return effectNames[e]
}

// Parse returns the effect with the given name.
func Parse(name string) (Effect, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range effectNames {
		if n == key {
			return Effect(i), nil
		}
	}
	return None, fmt.Errorf("status: unknown effect %q", name)
}

// UnmarshalYAML decodes an effect from its name.
func (e *Effect) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Status is the held effect plus its counters.
type Status struct {
	Effect Effect
	// SleepTurns is the number of turns left asleep.
	SleepTurns int
	// ToxicTurn counts residual ticks while badly poisoned.
	ToxicTurn int
}

// Is reports whether the held effect is e.
func (s Status) Is(e Effect) bool { return s.Effect == e }

// Active reports whether any effect is held.
func (s Status) Active() bool { return s.Effect != None }

// Reason explains why a status could not be applied.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonOther means the target already holds a status.
	ReasonOther
	ReasonType
	ReasonTerrain
	ReasonWeather
	ReasonSafeguard
	ReasonAbility
)

var reasonNames = [...]string{"", "other", "type", "terrain", "weather", "safeguard", "ability"}

// String returns the reason label used by the presentation layer.
func (r Reason) String() string {
	if r < ReasonNone || r > ReasonAbility {
		return fmt.Sprintf("reason(%d)", int(r))
	}
	return reasonNames[r]
}
