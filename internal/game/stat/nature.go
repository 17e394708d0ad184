package stat

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Nature raises one stat by 10% and lowers another by 10%. Natures whose
// raised and lowered stats coincide are neutral.
type Nature int

const (
	Hardy Nature = iota
	Lonely
	Brave
	Adamant
	Naughty
	Bold
	Docile
	Relaxed
	Impish
	Lax
	Timid
	Hasty
	Serious
	Jolly
	Naive
	Modest
	Mild
	Quiet
	Bashful
	Rash
	Calm
	Gentle
	Sassy
	Careful
	Quirky
)

// NatureCount is the number of natures.
const NatureCount = 25

var natureNames = [NatureCount]string{
	"hardy", "lonely", "brave", "adamant", "naughty",
	"bold", "docile", "relaxed", "impish", "lax",
	"timid", "hasty", "serious", "jolly", "naive",
	"modest", "mild", "quiet", "bashful", "rash",
	"calm", "gentle", "sassy", "careful", "quirky",
}

// natureOrder is the row/column order of the nature grid.
var natureOrder = [5]Stat{Atk, Def, Spd, SpAtk, SpDef}

// String returns the lowercase nature name.
func (n Nature) String() string {
	if n < 0 || int(n) >= NatureCount {
		return fmt.Sprintf("nature(%d)", int(n))
	}
	return natureNames[n]
}

// ParseNature returns the nature with the given name.
func ParseNature(name string) (Nature, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range natureNames {
		if n == key {
			return Nature(i), nil
		}
	}
	return Hardy, fmt.Errorf("stat: unknown nature %q", name)
}

// UnmarshalYAML decodes a nature from its name.
func (n *Nature) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseNature(value.Value)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Raised returns the stat this nature raises, or HP for neutral natures.
func (n Nature) Raised() Stat {
	up, down := natureOrder[int(n)/5], natureOrder[int(n)%5]
	if up == down {
		return HP
	}
	return up
}

// Lowered returns the stat this nature lowers, or HP for neutral natures.
func (n Nature) Lowered() Stat {
	up, down := natureOrder[int(n)/5], natureOrder[int(n)%5]
	if up == down {
		return HP
	}
	return down
}

// Multiplier returns 1.1, 0.9 or 1 for s.
func (n Nature) Multiplier(s Stat) float64 {
	switch {
	case s == HP:
		return 1
	case n.Raised() == s:
		return 1.1
	case n.Lowered() == s:
		return 0.9
	default:
		return 1
	}
}
