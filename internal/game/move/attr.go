package move

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// AttrKind is the variant tag of a move attribute.
type AttrKind int

const (
	AttrNone AttrKind = iota
	HighCrit
	CritOnly
	FixedDamage
	OneHitKO
	Typeless
	ImmuneTypes
	RespectTypeImmunity
	StatusEffect
	AddTag
	HitsTagDouble
	MultiHit
	BypassBurn
	IgnoreOpponentStages
	StatStageChange
	DoubleAfterMove
	WeatherType
	VariableCategory
	ModifiedDamage
	Recoil
	Drain
	SetWeather
	SetTerrain
	AddArenaTag
)

var attrNames = [...]string{
	"none", "high_crit", "crit_only", "fixed_damage", "one_hit_ko", "typeless",
	"immune_types", "respect_type_immunity", "status_effect", "add_tag",
	"hits_tag_double", "multi_hit", "bypass_burn", "ignore_opponent_stages",
	"stat_stage_change", "double_after_move", "weather_type", "variable_category",
	"modified_damage", "recoil", "drain", "set_weather", "set_terrain", "add_arena_tag",
}

// String returns the attribute kind name.
func (k AttrKind) String() string { return nameOf(attrNames[:], int(k), "attr") }

// UnmarshalYAML decodes an attribute kind from its name.
func (k *AttrKind) UnmarshalYAML(value *yaml.Node) error {
	i, err := indexOf(attrNames[:], value.Value, "attribute kind")
	*k = AttrKind(i)
	return err
}

// FixedMode selects how a fixed_damage attribute computes its value.
type FixedMode int

const (
	FixedValue FixedMode = iota
	FixedUserLevel
	FixedHalfTargetHP
)

var fixedNames = [...]string{"value", "user_level", "half_target_hp"}

// UnmarshalYAML decodes a fixed-damage mode from its name.
func (f *FixedMode) UnmarshalYAML(value *yaml.Node) error {
	i, err := indexOf(fixedNames[:], value.Value, "fixed damage mode")
	*f = FixedMode(i)
	return err
}

// Attr is one move attribute. Only the fields its Kind reads are meaningful.
type Attr struct {
	Kind AttrKind `yaml:"kind"`

	// Chance in percent for secondary effects; 0 always applies.
	Chance int `yaml:"chance"`
	// Self applies the effect to the user instead of the target.
	Self bool `yaml:"self"`

	Bonus    int                `yaml:"bonus"`
	Value    int                `yaml:"value"`
	Mode     FixedMode          `yaml:"mode"`
	Types    []types.Type       `yaml:"types"`
	Status   status.Effect      `yaml:"status"`
	Tag      tag.Kind           `yaml:"tag"`
	Turns    int                `yaml:"turns"`
	Min      int                `yaml:"min"`
	Max      int                `yaml:"max"`
	Stats    []stat.Stat        `yaml:"stats"`
	Stages   int                `yaml:"stages"`
	MoveID   string             `yaml:"move"`
	Fraction float64            `yaml:"fraction"`
	OfMaxHP  bool               `yaml:"of_max_hp"`
	Weather  field.Weather      `yaml:"weather"`
	Terrain  field.Terrain      `yaml:"terrain"`
	Arena    field.ArenaTagKind `yaml:"arena_tag"`
}

// Validate checks that the fields a kind depends on are set.
func (a *Attr) Validate() error {
	if a.Chance < 0 || a.Chance > 100 {
		return fmt.Errorf("%s: chance must be in [0,100]", a.Kind)
	}
	switch a.Kind {
	case AttrNone:
		return fmt.Errorf("kind must be set")
	case HighCrit:
		if a.Bonus <= 0 {
			return fmt.Errorf("%s: needs a positive bonus", a.Kind)
		}
	case FixedDamage:
		if a.Mode == FixedValue && a.Value <= 0 {
			return fmt.Errorf("%s: needs a positive value", a.Kind)
		}
	case ImmuneTypes:
		if len(a.Types) == 0 {
			return fmt.Errorf("%s: needs types", a.Kind)
		}
	case StatusEffect:
		if a.Status == status.None || a.Status == status.Faint {
			return fmt.Errorf("%s: needs a non-faint status", a.Kind)
		}
	case AddTag, HitsTagDouble:
		if a.Tag == tag.None {
			return fmt.Errorf("%s: needs a tag", a.Kind)
		}
	case MultiHit:
		if a.Min < 1 || a.Max < a.Min {
			return fmt.Errorf("%s: needs 1 <= min <= max", a.Kind)
		}
	case StatStageChange:
		if len(a.Stats) == 0 || a.Stages == 0 {
			return fmt.Errorf("%s: needs stats and a non-zero stage delta", a.Kind)
		}
	case DoubleAfterMove:
		if a.MoveID == "" {
			return fmt.Errorf("%s: needs a move", a.Kind)
		}
	case Recoil, Drain:
		if a.Fraction <= 0 {
			return fmt.Errorf("%s: needs a positive fraction", a.Kind)
		}
	case SetWeather:
		if a.Weather == field.WeatherNone {
			return fmt.Errorf("%s: needs a weather", a.Kind)
		}
	case SetTerrain:
		if a.Terrain == field.TerrainNone {
			return fmt.Errorf("%s: needs a terrain", a.Kind)
		}
	case AddArenaTag:
		if a.Arena == field.NoArenaTag {
			return fmt.Errorf("%s: needs an arena tag", a.Kind)
		}
	}
	return nil
}
