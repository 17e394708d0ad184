package combat

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/creature-battle/internal/game/ability"
	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/move"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// StatQuery is the situational input to EffectiveStat.
type StatQuery struct {
	// Opponent is the combatant on the other end of the interaction, if any.
	Opponent *creature.Combatant
	// Move is passed only when computing the defender's defensive stat.
	Move *move.Move
	// IgnoreAbility suppresses the holder's own abilities.
	IgnoreAbility bool
	// IgnoreOpponentAbility suppresses the opponent's stage-ignoring abilities.
	IgnoreOpponentAbility bool
	IgnoreAllyAbility     bool
	Critical              bool
	Simulated             bool
}

func checkBattleStat(fn string, s stat.Stat) {
	if s < stat.Atk || s > stat.Spd {
		panic(fmt.Sprintf("combat.%s: %s is not an effective stat", fn, s))
	}
}

// EffectiveStat combines the permanent stat with held items, field-wide
// abilities, the holder's and its allies' abilities, the stage multiplier and
// situational field and status rules.
//
// Precondition: cb non-nil; s in [stat.Atk, stat.Spd].
// Postcondition: result >= 1.
func (c *Context) EffectiveStat(cb *creature.Combatant, s stat.Stat, q StatQuery) int {
	if cb == nil {
		panic("combat.EffectiveStat: combatant must not be nil")
	}
	checkBattleStat("EffectiveStat", s)

	v := float64(cb.Stats[s])
	for _, it := range cb.Items {
		it.ApplyStatBoost(cb.Species.ID, s, &v)
	}

	// Field-wide multipliers from other combatants: the first one that
	// applies is the only one that applies.
field:
	for _, other := range c.Active() {
		if other.ID == cb.ID {
			continue
		}
		for _, a := range other.Abilities() {
			if a.ApplyFieldStatMultiplier(s, &v) {
				break field
			}
		}
	}

	weather := c.Field.Weather
	if !q.IgnoreAbility {
		p := ability.StatParams{
			Stat:      s,
			Statused:  cb.Status.Active() && !cb.Status.Is(status.Faint),
			Weather:   weather,
			Simulated: q.Simulated,
		}
		for _, a := range cb.Abilities() {
			a.ApplyStatMultiplier(c.hook, p, &v)
		}
	}
	if !q.IgnoreAllyAbility {
		for _, ally := range c.Allies(cb) {
			for _, a := range ally.Abilities() {
				a.ApplyAllyStatMultiplier(ability.StatParams{Stat: s, Weather: weather}, &v)
			}
		}
	}

	v *= c.StatStageMultiplier(cb, s, q)

	switch s {
	case stat.Atk:
		if cb.Summon.Tags.Has(tag.SlowStart) {
			v = math.Floor(v / 2)
		}
	case stat.Def:
		if cb.HasType(types.Ice) && weather == field.Snow {
			v *= 1.5
		}
	case stat.SpDef:
		if cb.HasType(types.Rock) && weather == field.Sandstorm {
			v *= 1.5
		}
	case stat.Spd:
		if c.Field.HasTag(field.Tailwind, cb.Side) {
			v *= 2
		}
		if cb.Summon.Tags.Has(tag.SlowStart) {
			v = math.Floor(v / 2)
		}
		if cb.Status.Is(status.Paralysis) {
			v = math.Floor(v / 2)
		}
	}
	if t, ok := cb.Summon.Tags.Get(tag.HighestStatBoost); ok && t.Stat == s {
		v *= t.Multiplier
	}
	return max(1, int(math.Floor(v)))
}

// StatStageMultiplier returns the stage multiplier of s for cb. Against an
// opponent, a critical hit drops the attacker's negative offensive stages and
// the defender's positive defensive stages, and stage-ignoring abilities or
// moves neutralise the stage entirely.
//
// Postcondition: result ∈ [0.25, 4].
func (c *Context) StatStageMultiplier(cb *creature.Combatant, s stat.Stat, q StatQuery) float64 {
	checkBattleStat("StatStageMultiplier", s)
	stage := cb.Stage(s)
	if q.Opponent != nil {
		if q.Critical {
			switch s {
			case stat.Atk, stat.SpAtk:
				stage = max(stage, 0)
			case stat.Def, stat.SpDef:
				stage = min(stage, 0)
			}
		}
		if !q.IgnoreOpponentAbility && q.Opponent.HasAbility(ability.IgnoreOpponentStages) {
			return 1
		}
		if q.Move != nil && q.Move.Has(move.IgnoreOpponentStages) {
			return 1
		}
	}
	return stat.StageMultiplier(stage)
}

// AccuracyMultiplier returns the accuracy/evasion ratio of user against
// target, adjusted by accuracy and evasion abilities.
func (c *Context) AccuracyMultiplier(user, target *creature.Combatant, m *move.Move, simulated bool) float64 {
	acc, eva := user.Stage(stat.Acc), target.Stage(stat.Eva)
	if target.HasAbility(ability.IgnoreOpponentStages) {
		acc = 0
	}
	if user.HasAbility(ability.IgnoreOpponentStages) || m.Has(move.IgnoreOpponentStages) {
		eva = 0
	}
	ratio := stat.AccuracyMultiplier(acc, eva)

	p := ability.AccuracyParams{Weather: c.Field.Weather, Simulated: simulated}
	for _, a := range user.Abilities() {
		a.ApplyAccuracy(c.hook, p, &ratio)
	}
	evasion := 1.0
	for _, a := range target.Abilities() {
		a.ApplyEvasion(p, &evasion)
	}
	return ratio / evasion
}
