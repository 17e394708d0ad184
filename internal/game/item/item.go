// Package item defines held items. Like abilities, an item is a list of
// tagged-variant attributes queried at fixed engine call sites.
package item

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// AttrKind is the variant tag of an item attribute.
type AttrKind int

const (
	AttrNone AttrKind = iota
	StatBooster
	CritBooster
	TypeBooster
	DamageBooster
	DamageReducer
	Survive
)

var attrNames = [...]string{"none", "stat_booster", "crit_booster", "type_booster", "damage_booster", "damage_reducer", "survive"}

// String returns the attribute kind name.
func (k AttrKind) String() string {
	if k < AttrNone || int(k) >= len(attrNames) {
		return fmt.Sprintf("attr(%d)", int(k))
	}
	return attrNames[k]
}

// UnmarshalYAML decodes an attribute kind from its name.
func (k *AttrKind) UnmarshalYAML(value *yaml.Node) error {
	key := strings.ToLower(strings.TrimSpace(value.Value))
	for i, n := range attrNames {
		if n == key {
			*k = AttrKind(i)
			return nil
		}
	}
	return fmt.Errorf("item: unknown attribute kind %q", value.Value)
}

// Attr is one item attribute.
type Attr struct {
	Kind       AttrKind    `yaml:"kind"`
	Stats      []stat.Stat `yaml:"stats"`
	Multiplier float64     `yaml:"multiplier"`
	// Species restricts a stat booster to the listed species ids.
	Species []string   `yaml:"species"`
	Bonus   int        `yaml:"bonus"`
	Type    types.Type `yaml:"type"`
	// SuperEffectiveOnly limits a damage reducer to super-effective hits.
	SuperEffectiveOnly bool `yaml:"super_effective_only"`
}

// Validate checks that the fields a kind depends on are set.
func (a *Attr) Validate() error {
	switch a.Kind {
	case AttrNone:
		return fmt.Errorf("kind must be set")
	case StatBooster:
		if len(a.Stats) == 0 || a.Multiplier <= 0 {
			return fmt.Errorf("%s: needs stats and a positive multiplier", a.Kind)
		}
	case CritBooster:
		if a.Bonus <= 0 {
			return fmt.Errorf("%s: needs a positive bonus", a.Kind)
		}
	case TypeBooster:
		if !a.Type.Charted() || a.Multiplier <= 0 {
			return fmt.Errorf("%s: needs a type and a positive multiplier", a.Kind)
		}
	case DamageBooster, DamageReducer:
		if a.Multiplier <= 0 {
			return fmt.Errorf("%s: needs a positive multiplier", a.Kind)
		}
	}
	return nil
}

// Item is a held item definition. Query methods are safe on a nil *Item.
type Item struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Attrs       []Attr `yaml:"attrs"`
}

// Validate checks the definition's invariants.
func (it *Item) Validate() error {
	if it.ID == "" {
		return fmt.Errorf("item: id must not be empty")
	}
	if it.Name == "" {
		return fmt.Errorf("item %q: name must not be empty", it.ID)
	}
	for i := range it.Attrs {
		if err := it.Attrs[i].Validate(); err != nil {
			return fmt.Errorf("item %q attr %d: %w", it.ID, i, err)
		}
	}
	return nil
}

func (it *Item) each(kind AttrKind, fn func(*Attr)) {
	if it == nil {
		return
	}
	for i := range it.Attrs {
		if it.Attrs[i].Kind == kind {
			fn(&it.Attrs[i])
		}
	}
}

// ApplyStatBoost multiplies value when the item boosts s for species.
func (it *Item) ApplyStatBoost(species string, s stat.Stat, value *float64) {
	it.each(StatBooster, func(a *Attr) {
		if !slices.Contains(a.Stats, s) {
			return
		}
		if len(a.Species) > 0 && !slices.Contains(a.Species, species) {
			return
		}
		*value *= a.Multiplier
	})
}

// CritBonus returns the crit stages the item adds.
func (it *Item) CritBonus() int {
	n := 0
	it.each(CritBooster, func(a *Attr) { n += a.Bonus })
	return n
}

// ApplyTypeBoost scales the power of a move of type t.
func (it *Item) ApplyTypeBoost(t types.Type, power *float64) {
	it.each(TypeBooster, func(a *Attr) {
		if a.Type == t {
			*power *= a.Multiplier
		}
	})
}

// ApplyDamageBoost scales the holder's outgoing post-calculation damage.
// A Type restricts the boost to moves of that type.
func (it *Item) ApplyDamageBoost(moveType types.Type, value *float64) {
	it.each(DamageBooster, func(a *Attr) {
		if a.Type == types.Unknown || a.Type == moveType {
			*value *= a.Multiplier
		}
	})
}

// ApplyDamageReduction scales damage the holder receives.
func (it *Item) ApplyDamageReduction(moveType types.Type, effectiveness float64, value *float64) {
	it.each(DamageReducer, func(a *Attr) {
		if a.SuperEffectiveOnly && effectiveness <= 1 {
			return
		}
		if a.Type != types.Unknown && a.Type != moveType {
			return
		}
		*value *= a.Multiplier
	})
}

// Survives reports whether the item keeps its holder at 1 HP after a hit
// taken from full HP.
func (it *Item) Survives() bool {
	found := false
	it.each(Survive, func(*Attr) { found = true })
	return found
}
