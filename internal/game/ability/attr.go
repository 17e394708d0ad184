// Package ability defines innate abilities as lists of tagged-variant
// attributes. The engine queries abilities at fixed call sites, each with a
// narrow parameter struct and a single mutable holder.
package ability

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// AttrKind is the variant tag of an ability attribute.
type AttrKind int

const (
	AttrNone AttrKind = iota
	StatMultiplier
	FieldStatMultiplier
	AllyStatMultiplier
	BonusCrit
	CritMultiplier
	BlockCrit
	ConditionalCrit
	MoveTypeChange
	TypeImmunity
	Levitate
	IgnoreTypeImmunity
	StabBoost
	DamageBoost
	ReceiveDamageMultiplier
	AllyDamageReduction
	StatusImmunity
	AllyStatusImmunity
	TagImmunity
	AllyTagImmunity
	IgnoreStatusTypeImmunity
	IgnoreOpponentStages
	BypassBurn
	SecondStrike
	SleepDuration
	AccuracyMultiplier
	EvasionMultiplier
	Infiltrator
	Sturdy
	Scripted
)

var attrNames = [...]string{
	"none", "stat_multiplier", "field_stat_multiplier", "ally_stat_multiplier",
	"bonus_crit", "crit_multiplier", "block_crit", "conditional_crit",
	"move_type_change", "type_immunity", "levitate", "ignore_type_immunity",
	"stab_boost", "damage_boost", "receive_damage_multiplier",
	"ally_damage_reduction", "status_immunity", "ally_status_immunity",
	"tag_immunity", "ally_tag_immunity", "ignore_status_type_immunity",
	"ignore_opponent_stages", "bypass_burn", "second_strike", "sleep_duration",
	"accuracy_multiplier", "evasion_multiplier", "infiltrator", "sturdy", "scripted",
}

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
	return fmt.Errorf("ability: unknown attribute kind %q", value.Value)
}

// When is an optional activation condition on an attribute.
type When int

const (
	Always When = iota
	WhenStatused
	WhenSuperEffective
	WhenNotVeryEffective
	WhenFullHP
	WhenContact
	WhenPhysical
	WhenSpecial
)

var whenNames = [...]string{"always", "statused", "super_effective", "not_very_effective", "full_hp", "contact", "physical", "special"}

// String returns the condition name.
func (w When) String() string {
	if w < Always || int(w) >= len(whenNames) {
		return fmt.Sprintf("when(%d)", int(w))
	}
	return whenNames[w]
}

// UnmarshalYAML decodes a condition from its name.
func (w *When) UnmarshalYAML(value *yaml.Node) error {
	key := strings.ToLower(strings.TrimSpace(value.Value))
	for i, n := range whenNames {
		if n == key {
			*w = When(i)
			return nil
		}
	}
	return fmt.Errorf("ability: unknown condition %q", value.Value)
}

// Attr is one tagged-variant attribute. Only the fields its Kind reads are
// meaningful; Validate rejects attributes missing what their Kind needs.
type Attr struct {
	Kind AttrKind `yaml:"kind"`

	Stat       stat.Stat       `yaml:"stat"`
	Stats      []stat.Stat     `yaml:"stats"`
	Multiplier float64         `yaml:"multiplier"`
	Bonus      int             `yaml:"bonus"`
	Type       types.Type      `yaml:"type"`
	From       types.Type      `yaml:"from"`
	Types      []types.Type    `yaml:"types"`
	Statuses   []status.Effect `yaml:"statuses"`
	Tags       []tag.Kind      `yaml:"tags"`
	Weather    field.Weather   `yaml:"weather"`
	When       When            `yaml:"when"`

	// Script and Site select the Lua hook of a Scripted attribute.
	Script string `yaml:"script"`
	Site   Site   `yaml:"site"`
}

// Validate checks that the fields a kind depends on are set.
func (a *Attr) Validate() error {
	switch a.Kind {
	case AttrNone:
		return fmt.Errorf("kind must be set")
	case StatMultiplier, FieldStatMultiplier, AllyStatMultiplier:
		if a.Multiplier <= 0 || a.Stat == stat.HP {
			return fmt.Errorf("%s: needs a non-hp stat and a positive multiplier", a.Kind)
		}
	case CritMultiplier, DamageBoost, ReceiveDamageMultiplier, AllyDamageReduction,
		SecondStrike, AccuracyMultiplier, EvasionMultiplier:
		if a.Multiplier <= 0 {
			return fmt.Errorf("%s: needs a positive multiplier", a.Kind)
		}
	case BonusCrit:
		if a.Bonus == 0 {
			return fmt.Errorf("%s: needs a bonus", a.Kind)
		}
	case MoveTypeChange, TypeImmunity:
		if !a.Type.Charted() {
			return fmt.Errorf("%s: needs a type", a.Kind)
		}
	case IgnoreTypeImmunity, IgnoreStatusTypeImmunity:
		if len(a.Types) == 0 {
			return fmt.Errorf("%s: needs types", a.Kind)
		}
	case StatusImmunity, AllyStatusImmunity, ConditionalCrit:
		if len(a.Statuses) == 0 {
			return fmt.Errorf("%s: needs statuses", a.Kind)
		}
	case TagImmunity, AllyTagImmunity:
		if len(a.Tags) == 0 {
			return fmt.Errorf("%s: needs tags", a.Kind)
		}
	case Scripted:
		if a.Script == "" || a.Site == SiteNone {
			return fmt.Errorf("%s: needs script and site", a.Kind)
		}
	}
	return nil
}
