package combat

import (
	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/move"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// IsGrounded reports whether cb touches the ground: Ground moves and
// terrain reach it.
func (c *Context) IsGrounded(cb *creature.Combatant) bool {
	if cb.Summon.Tags.Has(tag.Grounded) || c.Field.HasTag(field.Gravity, cb.Side) {
		return true
	}
	if cb.HasType(types.Flying) || cb.Summon.Tags.Has(tag.MagnetRisen) {
		return false
	}
	for _, a := range cb.Abilities() {
		if a.Levitates() {
			return false
		}
	}
	if t, ok := cb.Summon.Tags.Get(tag.SemiInvulnerable); ok && t.Variant == "flying" {
		return false
	}
	return true
}

// TypeQuery is the situational input to AttackTypeEffectiveness.
type TypeQuery struct {
	// Source is the attacker; nil resolves the chart without attacker effects.
	Source            *creature.Combatant
	IgnoreStrongWinds bool
}

// AttackTypeEffectiveness returns the multiplier of an attack of type
// attack against target's current types.
//
// Postcondition: result >= 0.
func (c *Context) AttackTypeEffectiveness(target *creature.Combatant, attack types.Type, q TypeQuery) float64 {
	opts := types.Options{
		RemoveFlying: attack == types.Ground && c.IsGrounded(target),
		StrongWinds:  !q.IgnoreStrongWinds && c.Field.Weather == field.StrongWinds,
	}
	if q.Source != nil {
		opts.AttackerBoosted = q.Source.Tera.Active
		source := q.Source
		opts.IgnoreImmunity = func(a, d types.Type) bool {
			if source.IsActive() {
				for _, ab := range source.Abilities() {
					if ab.IgnoresTypeImmunity(a, d) {
						return true
					}
				}
			}
			if t, ok := target.Summon.Tags.Get(tag.Exposed); ok && t.Type == d && tag.ExposedAllows(d, a) {
				return true
			}
			return false
		}
	}
	return types.Resolve(attack, target.Types(), opts)
}

// MoveType resolves the type and power of m used by user after weather
// and ability conversions and held type boosters.
func (c *Context) MoveType(user *creature.Combatant, m *move.Move) (types.Type, float64) {
	t, power := m.Type, float64(m.Power)
	if m.Has(move.WeatherType) {
		switch c.Field.Weather {
		case field.Sunny, field.HarshSun:
			t, power = types.Fire, power*2
		case field.Rain, field.HeavyRain:
			t, power = types.Water, power*2
		case field.Sandstorm:
			t, power = types.Rock, power*2
		case field.Hail, field.Snow:
			t, power = types.Ice, power*2
		}
	}
	if !m.Has(move.Typeless) {
		for _, a := range user.Abilities() {
			a.ApplyMoveType(&t, &power)
		}
	}
	for _, it := range user.Items {
		it.ApplyTypeBoost(t, &power)
	}
	return t, power
}

// EffectiveCategory resolves a variable-category move to physical when the
// user's attack exceeds its special attack against target.
func (c *Context) EffectiveCategory(user, target *creature.Combatant, m *move.Move) move.Category {
	if !m.Has(move.VariableCategory) || m.Category == move.Status {
		return m.Category
	}
	q := StatQuery{Opponent: target, Simulated: true}
	if c.EffectiveStat(user, stat.Atk, q) > c.EffectiveStat(user, stat.SpAtk, q) {
		return move.Physical
	}
	return move.Special
}

// MoveEffectiveness returns the type multiplier of m used by user against
// target, and whether an immunity ability or tag cancelled the move.
//
// Postcondition: cancelled implies the multiplier is 0.
func (c *Context) MoveEffectiveness(user, target *creature.Combatant, m *move.Move, ignoreAbility bool) (eff float64, cancelled bool) {
	if m.Has(move.Typeless) {
		return 1, false
	}
	moveType, _ := c.MoveType(user, m)
	eff = 1
	if m.IsAttack() || m.Has(move.RespectTypeImmunity) {
		eff = c.AttackTypeEffectiveness(target, moveType, TypeQuery{Source: user})
	}
	if a, ok := m.Attr(move.ImmuneTypes); ok {
		for _, t := range target.Types() {
			if types.Contains(a.Types, t) {
				eff = 0
			}
		}
	}

	if !ignoreAbility {
		for _, ab := range target.Abilities() {
			if ab.ImmuneToType(moveType) {
				cancelled = true
			}
			if moveType == types.Ground && ab.Levitates() && m.IsAttack() &&
				!target.Summon.Tags.Has(tag.Grounded) && !c.Field.HasTag(field.Gravity, target.Side) {
				cancelled = true
			}
			if m.Has(move.OneHitKO) && ab.IsSturdy() {
				cancelled = true
			}
		}
	}

	if moveType == types.Ground && target.Summon.Tags.Has(tag.MagnetRisen) && !hitsTag(m, tag.MagnetRisen) {
		eff = 0
	}
	if cancelled {
		return 0, true
	}
	return eff, false
}

func hitsTag(m *move.Move, k tag.Kind) bool {
	for _, a := range m.AttrsOf(move.HitsTagDouble) {
		if a.Tag == k {
			return true
		}
	}
	return false
}
