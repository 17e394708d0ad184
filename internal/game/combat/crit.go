package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/creature-battle/internal/game/ability"
	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/move"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// critChance maps a crit stage to the N of a 1-in-N roll.
var critChance = [4]int{24, 8, 2, 1}

// CritStage sums the move, item, ability and tag bonuses of user.
//
// Postcondition: result ∈ [0, 3].
func (c *Context) CritStage(user, target *creature.Combatant, m *move.Move, simulated bool) int {
	stage := 0
	for _, a := range m.AttrsOf(move.HighCrit) {
		stage += a.Bonus
	}
	for _, it := range user.Items {
		stage += it.CritBonus()
	}
	p := ability.CritParams{TargetStatus: target.Status.Effect, Simulated: simulated}
	for _, a := range user.Abilities() {
		a.ApplyCritStage(c.hook, p, &stage)
	}
	if user.Summon.Tags.Has(tag.CritBoost) {
		stage += 2
	}
	if user.Summon.Tags.Has(tag.DragonCheer) {
		if user.HasType(types.Dragon) {
			stage += 2
		} else {
			stage++
		}
	}
	return max(0, min(stage, 3))
}

// IsCritical decides whether m used by user on target is a critical hit.
// Forced crits skip the roll; simulated calls never roll and only report
// forced or guaranteed crits. Blocking applies last.
func (c *Context) IsCritical(user, target *creature.Combatant, m *move.Move, simulated bool) bool {
	if m.Has(move.FixedDamage) || c.Field.HasTag(field.LuckyChant, target.Side) {
		return false
	}
	crit := m.Has(move.CritOnly) || user.Summon.Tags.Has(tag.AlwaysCrit)
	if !crit {
		for _, a := range user.Abilities() {
			if a.ForcesCrit(ability.CritParams{TargetStatus: target.Status.Effect, Simulated: simulated}) {
				crit = true
			}
		}
	}
	if !crit {
		n := critChance[c.CritStage(user, target, m, simulated)]
		switch {
		case n == 1:
			crit = true
		case !simulated:
			crit = c.intn(n) == 0
		}
	}
	for _, a := range target.Abilities() {
		if a.BlocksCrit() {
			crit = false
		}
	}
	c.log(simulated).Debug("crit roll", zap.String("user", user.ID), zap.String("move", m.ID), zap.Bool("critical", crit))
	return crit
}
