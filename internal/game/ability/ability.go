package ability

import (
	"fmt"
	"math"
	"slices"

	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// Ability is the static definition of an innate ability, loaded from YAML.
// Every query method is safe on a nil *Ability and then reports no effect.
type Ability struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Attrs       []Attr `yaml:"attrs"`
}

// Validate checks the definition's invariants.
//
// Postcondition: nil iff ID and Name are non-empty and every attribute is valid.
func (a *Ability) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("ability: id must not be empty")
	}
	if a.Name == "" {
		return fmt.Errorf("ability %q: name must not be empty", a.ID)
	}
	for i := range a.Attrs {
		if err := a.Attrs[i].Validate(); err != nil {
			return fmt.Errorf("ability %q attr %d: %w", a.ID, i, err)
		}
	}
	return nil
}

func (a *Ability) each(kind AttrKind, fn func(*Attr)) {
	if a == nil {
		return
	}
	for i := range a.Attrs {
		if a.Attrs[i].Kind == kind {
			fn(&a.Attrs[i])
		}
	}
}

func (a *Ability) hasMatch(kind AttrKind, pred func(*Attr) bool) bool {
	if a == nil {
		return false
	}
	for i := range a.Attrs {
		if a.Attrs[i].Kind == kind && (pred == nil || pred(&a.Attrs[i])) {
			return true
		}
	}
	return false
}

// Has reports whether the ability carries an attribute of kind.
func (a *Ability) Has(kind AttrKind) bool { return a.hasMatch(kind, nil) }

// StatParams is the call-site bundle for stat multipliers.
type StatParams struct {
	Stat      stat.Stat
	Statused  bool
	Weather   field.Weather
	Simulated bool
}

func weatherOK(w, current field.Weather) bool {
	return w == field.WeatherNone || w == current
}

// ApplyStatMultiplier multiplies value by the holder's own stat multipliers.
func (a *Ability) ApplyStatMultiplier(h Hook, p StatParams, value *float64) {
	a.each(StatMultiplier, func(at *Attr) {
		if at.Stat != p.Stat || !weatherOK(at.Weather, p.Weather) {
			return
		}
		if at.When == WhenStatused && !p.Statused {
			return
		}
		*value *= at.Multiplier
	})
	a.callScripts(h, SiteStat, map[string]float64{
		"stat":      float64(p.Stat),
		"statused":  boolNum(p.Statused),
		"simulated": boolNum(p.Simulated),
	}, value)
}

// ApplyFieldStatMultiplier applies the first field-wide multiplier that
// matches stat and reports whether one applied.
func (a *Ability) ApplyFieldStatMultiplier(s stat.Stat, value *float64) bool {
	applied := false
	a.each(FieldStatMultiplier, func(at *Attr) {
		if applied || at.Stat != s {
			return
		}
		*value *= at.Multiplier
		applied = true
	})
	return applied
}

// ApplyAllyStatMultiplier applies this ability's support multipliers to an ally's stat.
func (a *Ability) ApplyAllyStatMultiplier(p StatParams, value *float64) {
	a.each(AllyStatMultiplier, func(at *Attr) {
		if at.Stat == p.Stat && weatherOK(at.Weather, p.Weather) {
			*value *= at.Multiplier
		}
	})
}

// CritParams is the call-site bundle for critical-hit queries.
type CritParams struct {
	TargetStatus status.Effect
	Simulated    bool
}

// ApplyCritStage adds the ability's crit stage bonuses to stage.
func (a *Ability) ApplyCritStage(h Hook, p CritParams, stage *int) {
	a.each(BonusCrit, func(at *Attr) { *stage += at.Bonus })
	v := float64(*stage)
	a.callScripts(h, SiteCritStage, map[string]float64{
		"target_status": float64(p.TargetStatus),
		"simulated":     boolNum(p.Simulated),
	}, &v)
	*stage = int(v)
}

// ApplyCritMultiplier multiplies the critical damage multiplier.
func (a *Ability) ApplyCritMultiplier(value *float64) {
	a.each(CritMultiplier, func(at *Attr) { *value *= at.Multiplier })
}

// BlocksCrit reports whether hits against the holder can never be critical.
func (a *Ability) BlocksCrit() bool { return a.Has(BlockCrit) }

// ForcesCrit reports whether the holder's hits are always critical in p.
func (a *Ability) ForcesCrit(p CritParams) bool {
	return a.hasMatch(ConditionalCrit, func(at *Attr) bool {
		return slices.Contains(at.Statuses, p.TargetStatus)
	})
}

// ApplyMoveType rewrites the move type and scales its power. An attribute
// with From unset converts every type.
func (a *Ability) ApplyMoveType(t *types.Type, power *float64) {
	a.each(MoveTypeChange, func(at *Attr) {
		if at.From != types.Unknown && at.From != *t {
			return
		}
		*t = at.Type
		if at.Multiplier > 0 {
			*power *= at.Multiplier
		}
	})
}

// ImmuneToType reports whether moves of t are cancelled against the holder.
func (a *Ability) ImmuneToType(t types.Type) bool {
	return a.hasMatch(TypeImmunity, func(at *Attr) bool { return at.Type == t })
}

// Levitates reports whether the holder floats above Ground moves and terrain.
func (a *Ability) Levitates() bool { return a.Has(Levitate) }

// IgnoresTypeImmunity reports whether the holder's attack type may hit a
// defending type that is normally immune. Type unset matches every defending type.
func (a *Ability) IgnoresTypeImmunity(attack, defend types.Type) bool {
	return a.hasMatch(IgnoreTypeImmunity, func(at *Attr) bool {
		return slices.Contains(at.Types, attack) && (at.Type == types.Unknown || at.Type == defend)
	})
}

// ApplyStab raises an already-boosted same-type multiplier by 0.5 per attribute.
func (a *Ability) ApplyStab(stab *float64) {
	a.each(StabBoost, func(*Attr) {
		if *stab > 1 {
			*stab += 0.5
		}
	})
}

// DamageParams is the call-site bundle for post-calculation damage multipliers.
type DamageParams struct {
	Effectiveness float64
	Physical      bool
	Contact       bool
	// FullHP refers to the defender for received-damage multipliers.
	FullHP    bool
	Simulated bool
}

func (p DamageParams) matches(w When) bool {
	switch w {
	case Always:
		return true
	case WhenSuperEffective:
		return p.Effectiveness > 1
	case WhenNotVeryEffective:
		return p.Effectiveness > 0 && p.Effectiveness < 1
	case WhenFullHP:
		return p.FullHP
	case WhenContact:
		return p.Contact
	case WhenPhysical:
		return p.Physical
	case WhenSpecial:
		return !p.Physical
	}
	return false
}

func (p DamageParams) numbers() map[string]float64 {
	return map[string]float64{
		"effectiveness": p.Effectiveness,
		"physical":      boolNum(p.Physical),
		"contact":       boolNum(p.Contact),
		"full_hp":       boolNum(p.FullHP),
		"simulated":     boolNum(p.Simulated),
	}
}

// ApplyDamageBoost multiplies outgoing damage.
func (a *Ability) ApplyDamageBoost(h Hook, p DamageParams, value *float64) {
	a.each(DamageBoost, func(at *Attr) {
		if p.matches(at.When) {
			*value *= at.Multiplier
		}
	})
	a.callScripts(h, SiteDamageBoost, p.numbers(), value)
}

// ApplyReceivedDamage multiplies incoming damage.
func (a *Ability) ApplyReceivedDamage(h Hook, p DamageParams, value *float64) {
	a.each(ReceiveDamageMultiplier, func(at *Attr) {
		if p.matches(at.When) {
			*value *= at.Multiplier
		}
	})
	a.callScripts(h, SiteReceivedDamage, p.numbers(), value)
}

// ApplyAllyDamageReduction multiplies damage dealt to the holder's ally.
func (a *Ability) ApplyAllyDamageReduction(value *float64) {
	a.each(AllyDamageReduction, func(at *Attr) { *value *= at.Multiplier })
}

// BlocksStatus reports whether the holder cannot receive e.
func (a *Ability) BlocksStatus(e status.Effect) bool {
	return a.hasMatch(StatusImmunity, func(at *Attr) bool { return slices.Contains(at.Statuses, e) })
}

// BlocksAllyStatus reports whether the holder's allies cannot receive e.
func (a *Ability) BlocksAllyStatus(e status.Effect) bool {
	return a.hasMatch(AllyStatusImmunity, func(at *Attr) bool { return slices.Contains(at.Statuses, e) })
}

// BlocksTag reports whether the holder cannot receive k.
func (a *Ability) BlocksTag(k tag.Kind) bool {
	return a.hasMatch(TagImmunity, func(at *Attr) bool { return slices.Contains(at.Tags, k) })
}

// BlocksAllyTag reports whether the holder's allies cannot receive k.
func (a *Ability) BlocksAllyTag(k tag.Kind) bool {
	return a.hasMatch(AllyTagImmunity, func(at *Attr) bool { return slices.Contains(at.Tags, k) })
}

// IgnoresStatusTypeImmunity reports whether the holder may inflict e on a
// defender of type defend that is normally immune. Statuses unset matches every status.
func (a *Ability) IgnoresStatusTypeImmunity(e status.Effect, defend types.Type) bool {
	return a.hasMatch(IgnoreStatusTypeImmunity, func(at *Attr) bool {
		return slices.Contains(at.Types, defend) && (len(at.Statuses) == 0 || slices.Contains(at.Statuses, e))
	})
}

// IgnoresOpponentStages reports whether the holder disregards the stat
// stages of the combatant it faces.
func (a *Ability) IgnoresOpponentStages() bool { return a.Has(IgnoreOpponentStages) }

// BypassesBurn reports whether burn does not halve the holder's physical damage.
func (a *Ability) BypassesBurn() bool { return a.Has(BypassBurn) }

// SecondStrikeMultiplier returns the damage multiplier of the extra strike
// the holder adds to single-hit moves.
func (a *Ability) SecondStrikeMultiplier() (float64, bool) {
	m, ok := 0.0, false
	a.each(SecondStrike, func(at *Attr) { m, ok = at.Multiplier, true })
	return m, ok
}

// ApplySleepDuration scales a freshly rolled sleep duration.
func (a *Ability) ApplySleepDuration(turns *int) {
	a.each(SleepDuration, func(at *Attr) {
		m := at.Multiplier
		if m <= 0 {
			m = 0.5
		}
		*turns = int(math.Floor(float64(*turns) * m))
	})
}

// AccuracyParams is the call-site bundle for accuracy and evasion multipliers.
type AccuracyParams struct {
	Weather   field.Weather
	Simulated bool
}

// ApplyAccuracy multiplies the holder's move accuracy.
func (a *Ability) ApplyAccuracy(h Hook, p AccuracyParams, value *float64) {
	a.each(AccuracyMultiplier, func(at *Attr) {
		if weatherOK(at.Weather, p.Weather) {
			*value *= at.Multiplier
		}
	})
	a.callScripts(h, SiteAccuracy, map[string]float64{
		"weather":   float64(p.Weather),
		"simulated": boolNum(p.Simulated),
	}, value)
}

// ApplyEvasion multiplies the holder's evasion; the engine divides accuracy by it.
func (a *Ability) ApplyEvasion(p AccuracyParams, value *float64) {
	a.each(EvasionMultiplier, func(at *Attr) {
		if weatherOK(at.Weather, p.Weather) {
			*value *= at.Multiplier
		}
	})
}

// Infiltrates reports whether the holder bypasses screens and substitutes.
func (a *Ability) Infiltrates() bool { return a.Has(Infiltrator) }

// IsSturdy reports whether the holder blocks one-hit KO moves and survives a
// full-HP hit at 1 HP.
func (a *Ability) IsSturdy() bool { return a.Has(Sturdy) }
