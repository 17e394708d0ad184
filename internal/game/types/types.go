// Package types defines the elemental types and the base effectiveness chart.
package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type is an elemental type. The zero value is Unknown, which is never
// boosted and is neutral against everything.
type Type int

const (
	Unknown Type = iota
	Normal
	Fighting
	Flying
	Poison
	Ground
	Rock
	Bug
	Ghost
	Steel
	Fire
	Water
	Grass
	Electric
	Psychic
	Ice
	Dragon
	Dark
	Fairy
	// Stellar is only reachable through a terastallized attacker; it never appears on the chart.
	Stellar
)

// Count is the number of charted types.
const Count = int(Fairy)

var names = [...]string{
	Unknown:  "unknown",
	Normal:   "normal",
	Fighting: "fighting",
	Flying:   "flying",
	Poison:   "poison",
	Ground:   "ground",
	Rock:     "rock",
	Bug:      "bug",
	Ghost:    "ghost",
	Steel:    "steel",
	Fire:     "fire",
	Water:    "water",
	Grass:    "grass",
	Electric: "electric",
	Psychic:  "psychic",
	Ice:      "ice",
	Dragon:   "dragon",
	Dark:     "dark",
	Fairy:    "fairy",
	Stellar:  "stellar",
}

// All returns every charted type in chart order.
func All() []Type {
	out := make([]Type, 0, Count)
	for t := Normal; t <= Fairy; t++ {
		out = append(out, t)
	}
	return out
}

// String returns the lowercase type name.
func (t Type) String() string {
	if t < Unknown || t > Stellar {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return names[t]
}

// Charted reports whether t has a row and column on the base chart.
func (t Type) Charted() bool { return t >= Normal && t <= Fairy }

// Parse returns the Type named s (case-insensitive).
//
// Postcondition: returns an error iff s names no type.
func Parse(s string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == key {
			return Type(i), nil
		}
	}
	return Unknown, fmt.Errorf("types: unknown type %q", s)
}

// UnmarshalYAML decodes a type from its name.
func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Contains reports whether list holds t.
func Contains(list []Type, t Type) bool {
	for _, x := range list {
		if x == t {
			return true
		}
	}
	return false
}
