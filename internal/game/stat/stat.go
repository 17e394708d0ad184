// Package stat holds the permanent stat formula, natures, and the stage
// multipliers used by the battle engine.
package stat

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stat identifies a permanent or battle stat.
type Stat int

const (
	HP Stat = iota
	Atk
	Def
	SpAtk
	SpDef
	Spd
	// Acc and Eva exist only as battle stages.
	Acc
	Eva
)

const (
	// MinStage and MaxStage bound every battle stage.
	MinStage = -6
	MaxStage = 6
)

// Permanent lists the six stats computed from base stats.
var Permanent = []Stat{HP, Atk, Def, SpAtk, SpDef, Spd}

// Battle lists the stats that carry a stage counter.
var Battle = []Stat{Atk, Def, SpAtk, SpDef, Spd, Acc, Eva}

var statNames = [...]string{"hp", "atk", "def", "spatk", "spdef", "spd", "acc", "eva"}

// String returns the short stat name.
func (s Stat) String() string {
	if s < HP || s > Eva {
		return fmt.Sprintf("stat(%d)", int(s))
	}
	return statNames[s]
}

// Parse returns the stat with the given short name.
func Parse(name string) (Stat, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range statNames {
		if n == key {
			return Stat(i), nil
		}
	}
	return HP, fmt.Errorf("stat: unknown stat %q", name)
}

// UnmarshalYAML decodes a stat from its short name.
func (s *Stat) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ClampStage limits stage to [MinStage, MaxStage].
func ClampStage(stage int) int {
	return max(MinStage, min(MaxStage, stage))
}

// StageMultiplier maps a stage to its multiplier: max(2, 2+s) / max(2, 2-s),
// capped at 4.
//
// Postcondition: for stage in [-6, 6], result ∈ [0.25, 4].
func StageMultiplier(stage int) float64 {
	m := float64(max(2, 2+stage)) / float64(max(2, 2-stage))
	return min(m, 4)
}

// AccuracyMultiplier returns the accuracy/evasion ratio for the given
// accuracy stage of the user and evasion stage of the target.
//
// Postcondition: result ∈ [1/3, 3].
func AccuracyMultiplier(accStage, evaStage int) float64 {
	diff := accStage - evaStage
	if diff > 0 {
		return float64(3+min(diff, 6)) / 3
	}
	return 3 / float64(3+min(-diff, 6))
}
