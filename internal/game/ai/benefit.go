package ai

import (
	"math"

	"github.com/cory-johannsen/creature-battle/internal/game/combat"
	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/move"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
)

// failScore marks a move that is unimplemented for scoring or known to fail.
const failScore = -20

// tagBenefit is the value of a tag to whoever ends up holding it.
var tagBenefit = map[tag.Kind]float64{
	tag.Flinched:         -5,
	tag.Confused:         -5,
	tag.Seeded:           -3,
	tag.Nightmare:        -5,
	tag.Drowsy:           -5,
	tag.Cursed:           -5,
	tag.SaltCured:        -3,
	tag.Trapped:          -3,
	tag.Bound:            -3,
	tag.Protected:        10,
	tag.SemiInvulnerable: 5,
	tag.CritBoost:        5,
	tag.DragonCheer:      5,
	tag.AquaRing:         3,
	tag.MagnetRisen:      3,
}

// appliesToUser reports whether attribute a lands on the move's user.
func appliesToUser(m *move.Move, a *move.Attr) bool {
	return a.Self || m.Target == move.TargetSelf
}

func stageBenefit(stages int) float64 {
	if stages > 0 {
		return float64(stages*4 - 2)
	}
	return float64(stages*4 + 2)
}

// UserBenefit scores how much using m on target helps user itself.
func UserBenefit(ctx *combat.Context, user, target *creature.Combatant, m *move.Move) float64 {
	score := 0.0
	power := float64(m.Power)
	for i := range m.Attrs {
		a := &m.Attrs[i]
		switch a.Kind {
		case move.Recoil:
			score += math.Floor(power / 5 / -4)
		case move.Drain:
			ratio := float64(user.HP) / float64(user.MaxHP())
			score += math.Floor(max(1-ratio-0.33, 0) * (power / 5 / 4))
		case move.StatStageChange:
			if appliesToUser(m, a) {
				score += stageBenefit(a.Stages)
			}
		case move.AddTag:
			if appliesToUser(m, a) {
				score += tagBenefit[a.Tag]
			}
		}
	}
	return score
}

// TargetBenefit scores how much using m helps target. Harmful moves score
// negative; the caller flips the sign for opponents.
func TargetBenefit(ctx *combat.Context, user, target *creature.Combatant, m *move.Move) float64 {
	score := 0.0
	for i := range m.Attrs {
		a := &m.Attrs[i]
		if appliesToUser(m, a) {
			continue
		}
		switch a.Kind {
		case move.StatusEffect:
			if !target.Status.Active() {
				chance := a.Chance
				if chance == 0 {
					chance = 100
				}
				score += math.Floor(float64(chance) * -0.1)
			}
		case move.StatStageChange:
			score += stageBenefit(a.Stages)
		case move.AddTag:
			score += tagBenefit[a.Tag]
		}
	}
	if m.IsAttack() {
		score -= attackScore(ctx, user, target, m)
	}
	return score
}

// attackScore rates an attack by type matchup, by whether the move's category
// suits the user's stronger offensive stat, and by power.
func attackScore(ctx *combat.Context, user, target *creature.Combatant, m *move.Move) float64 {
	moveType, _ := ctx.MoveType(user, m)
	eff := ctx.AttackTypeEffectiveness(target, moveType, combat.TypeQuery{Source: user})
	score := -2.0
	if math.Pow(eff-1, 2)*eff >= 1 {
		score = 2
	}
	q := combat.StatQuery{Simulated: true}
	atk := float64(ctx.EffectiveStat(user, stat.Atk, q))
	spAtk := float64(ctx.EffectiveStat(user, stat.SpAtk, q))
	strong, weak := atk, spAtk
	if m.Category == move.Special {
		strong, weak = spAtk, atk
	}
	if strong > weak {
		switch ratio := weak / strong; {
		case ratio <= 0.75:
			score *= 2
		case ratio <= 0.875:
			score *= 1.5
		}
	}
	return score + math.Floor(float64(m.Power)/5)
}

// fails reports whether m is known to do nothing against target.
func fails(ctx *combat.Context, user, target *creature.Combatant, m *move.Move) bool {
	if m.IsAttack() {
		return false
	}
	for i := range m.Attrs {
		a := &m.Attrs[i]
		holder := target
		if appliesToUser(m, a) {
			holder = user
		}
		switch a.Kind {
		case move.StatusEffect:
			ok, _ := ctx.CanSetStatus(holder, a.Status, combat.StatusQuery{Source: user, Simulated: true})
			if !ok {
				return true
			}
		case move.AddTag:
			if holder.Summon.Tags.Has(a.Tag) || !ctx.CanAddTag(holder, a.Tag) {
				return true
			}
		case move.SetWeather:
			if ctx.Field.Weather == a.Weather {
				return true
			}
		case move.SetTerrain:
			if ctx.Field.Terrain == a.Terrain {
				return true
			}
		case move.AddArenaTag:
			side := user.Side
			switch m.Target {
			case move.TargetEnemySide, move.TargetNearOpponent, move.TargetAllNearOpponents:
				side = side.Opposite()
			}
			stacks := a.Arena == field.Spikes || a.Arena == field.ToxicSpikes
			if !stacks && ctx.Field.HasTag(a.Arena, side) {
				return true
			}
		}
	}
	return false
}
