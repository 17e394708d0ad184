package combat

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/creature-battle/internal/game/ability"
	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/move"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// Invocation is the per-resolution record of one move against one target.
type Invocation struct {
	User   *creature.Combatant
	Target *creature.Combatant
	Move   *move.Move

	// IgnoreAbility suppresses the target's abilities.
	IgnoreAbility bool
	// IgnoreSourceAbility suppresses the user's abilities.
	IgnoreSourceAbility bool
	IgnoreAllyAbility   bool
	// Simulated resolves without drawing from the RNG, mutating state,
	// logging, or emitting events.
	Simulated bool
	// TargetCount is the number of non-ally targets the move hits.
	TargetCount int
	// SecondStrike marks the extra strike an ability adds to a single-hit move.
	SecondStrike bool
	// Critical, when non-nil, fixes the crit outcome instead of rolling it.
	Critical *bool
}

// Outcome is the structured result of ResolveAttack.
type Outcome struct {
	Cancelled     bool
	Result        HitResult
	Damage        int
	Critical      bool
	Effectiveness float64
}

// BaseDamage is ((2·level/5 + 2) · power · atk / def) / 50 + 2, unfloored.
//
// Precondition: def > 0.
func BaseDamage(level int, power, atk, def float64) float64 {
	return ((2*float64(level)/5+2)*power*atk/def)/50 + 2
}

// toDamage floors v with a minimum of 1.
func toDamage(v float64) int {
	return max(1, int(math.Floor(v)))
}

// ResolveAttack runs the damage pipeline for inv.
//
// Precondition: inv.User, inv.Target and inv.Move are non-nil.
// Postcondition: when inv.Simulated, no state is mutated and the RNG is not advanced.
func (c *Context) ResolveAttack(inv Invocation) Outcome {
	if inv.User == nil || inv.Target == nil || inv.Move == nil {
		panic("combat.ResolveAttack: user, target and move must not be nil")
	}
	user, target, m := inv.User, inv.Target, inv.Move
	log := c.log(inv.Simulated)

	category := c.EffectiveCategory(user, target, m)
	moveType, power := c.MoveType(user, m)
	physical := category == move.Physical

	eff, cancelled := 1.0, false
	if !m.Has(move.Typeless) && (category != move.Status || m.Has(move.RespectTypeImmunity)) {
		eff, cancelled = c.MoveEffectiveness(user, target, m, inv.IgnoreAbility)
	}
	arena := c.Field.AttackTypeMultiplier(moveType, c.IsGrounded(user))
	if cancelled || eff*arena == 0 {
		result := NoEffect
		if m.Has(move.OneHitKO) {
			result = Immune
		}
		log.Debug("attack had no effect", zap.String("move", m.ID), zap.Bool("cancelled", cancelled))
		return Outcome{Cancelled: cancelled, Result: result, Effectiveness: 0}
	}

	if fixed, ok := m.Attr(move.FixedDamage); ok {
		dmg := float64(fixedDamage(fixed, user, target))
		if inv.SecondStrike {
			dmg *= c.secondStrikeMultiplier(user, inv.IgnoreSourceAbility)
		}
		return Outcome{Result: Effective, Damage: toDamage(dmg), Effectiveness: eff}
	}
	if m.Has(move.OneHitKO) {
		return Outcome{Result: OneHitKO, Damage: target.HP, Effectiveness: eff}
	}
	if category == move.Status {
		return Outcome{Result: resultFor(eff), Effectiveness: eff}
	}

	var critical bool
	if inv.Critical != nil {
		critical = *inv.Critical
	} else {
		critical = c.IsCritical(user, target, m, inv.Simulated)
	}

	offense, defense := stat.SpAtk, stat.SpDef
	if physical {
		offense, defense = stat.Atk, stat.Def
	}
	atk := c.EffectiveStat(user, offense, StatQuery{
		Opponent:              target,
		IgnoreAbility:         inv.IgnoreSourceAbility,
		IgnoreOpponentAbility: inv.IgnoreAbility,
		IgnoreAllyAbility:     inv.IgnoreAllyAbility,
		Critical:              critical,
		Simulated:             inv.Simulated,
	})
	def := c.EffectiveStat(target, defense, StatQuery{
		Opponent:              user,
		Move:                  m,
		IgnoreAbility:         inv.IgnoreAbility,
		IgnoreOpponentAbility: inv.IgnoreSourceAbility,
		IgnoreAllyAbility:     inv.IgnoreAllyAbility,
		Critical:              critical,
		Simulated:             inv.Simulated,
	})
	base := BaseDamage(user.Level, power, float64(atk), float64(def))

	spread := 1.0
	if inv.TargetCount > 1 {
		spread = 0.75
	}
	strike := 1.0
	if inv.SecondStrike {
		strike = c.secondStrikeMultiplier(user, inv.IgnoreSourceAbility)
	}
	double := 1.0
	if a, ok := m.Attr(move.DoubleAfterMove); ok && user.Summon.LastMove == a.MoveID {
		double *= 2
	}
	if target.Summon.Tags.Has(tag.ReceiveDoubleDamage) {
		double *= 2
	}
	critMult := 1.0
	if critical {
		critMult = 1.5
		if !inv.IgnoreSourceAbility {
			for _, a := range user.Abilities() {
				a.ApplyCritMultiplier(&critMult)
			}
		}
	}
	random := 1.0
	if !inv.Simulated {
		random = float64(c.intRange(85, 100)) / 100
	}
	stab := 1.0
	if !m.Has(move.Typeless) {
		stab = c.SameTypeMultiplier(user, moveType, inv.IgnoreSourceAbility)
	}

	burn := 1.0
	if physical && user.Status.Is(status.Burn) && !m.Has(move.BypassBurn) {
		bypass := false
		if !inv.IgnoreSourceAbility {
			for _, a := range user.Abilities() {
				bypass = bypass || a.BypassesBurn()
			}
		}
		if !bypass {
			burn = 0.5
		}
	}
	screen := 1.0
	if !critical && !user.HasAbility(ability.Infiltrator) {
		screen = c.Field.ScreenMultiplier(target.Side, physical)
	}
	hitsTagMult := 1.0
	for _, a := range m.AttrsOf(move.HitsTagDouble) {
		if target.Summon.Tags.Has(a.Tag) {
			hitsTagMult *= 2
		}
	}
	misty := 1.0
	if moveType == types.Dragon && c.Field.Terrain == field.MistyTerrain && c.IsGrounded(target) {
		misty = 0.5
	}

	dmg := toDamage(base * spread * strike * arena * double * critMult * random * stab * eff * burn * screen * hitsTagMult * misty)
	log.Debug("damage calculated",
		zap.String("user", user.ID),
		zap.String("target", target.ID),
		zap.String("move", m.ID),
		zap.Int("atk", atk),
		zap.Int("def", def),
		zap.Float64("base", base),
		zap.Float64("stab", stab),
		zap.Float64("effectiveness", eff),
		zap.Float64("random", random),
		zap.Bool("critical", critical),
		zap.Int("damage", dmg),
	)

	dmg = c.postCalc(inv, moveType, eff, physical, dmg)
	return Outcome{Result: resultFor(eff), Damage: dmg, Critical: critical, Effectiveness: eff}
}

// confusionPower is the power of a confused combatant's hit on itself.
const confusionPower = 40

// ConfusionDamage is the damage a confused cb deals itself: base damage from
// its own Attack against its own Defense at power 40, times the random
// factor. No type, same-type, burn, screen, crit, item or ability modifier
// applies.
//
// Postcondition: result >= 1; when simulated the RNG is not advanced.
func (c *Context) ConfusionDamage(cb *creature.Combatant, simulated bool) int {
	if cb == nil {
		panic("combat.ConfusionDamage: combatant must not be nil")
	}
	q := StatQuery{Simulated: simulated}
	atk := c.EffectiveStat(cb, stat.Atk, q)
	def := c.EffectiveStat(cb, stat.Def, q)
	random := 1.0
	if !simulated {
		random = float64(c.intRange(85, 100)) / 100
	}
	dmg := toDamage(BaseDamage(cb.Level, confusionPower, float64(atk), float64(def)) * random)
	c.log(simulated).Debug("confusion self-hit",
		zap.String("combatant", cb.ID),
		zap.Int("atk", atk),
		zap.Int("def", def),
		zap.Float64("random", random),
		zap.Int("damage", dmg),
	)
	return dmg
}

// postCalc applies the attacker's boosts, then the defender's and its
// ally's reductions, then any move override of the final number.
func (c *Context) postCalc(inv Invocation, moveType types.Type, eff float64, physical bool, dmg int) int {
	user, target, m := inv.User, inv.Target, inv.Move
	step := func(fn func(*float64)) {
		v := float64(dmg)
		fn(&v)
		dmg = toDamage(v)
	}
	p := ability.DamageParams{
		Effectiveness: eff,
		Physical:      physical,
		Contact:       m.HasFlag(move.Contact),
		Simulated:     inv.Simulated,
	}
	if !inv.IgnoreSourceAbility {
		for _, a := range user.Abilities() {
			step(func(v *float64) { a.ApplyDamageBoost(c.hook, p, v) })
		}
	}
	for _, it := range user.Items {
		step(func(v *float64) { it.ApplyDamageBoost(moveType, v) })
	}
	for _, it := range target.Items {
		step(func(v *float64) { it.ApplyDamageReduction(moveType, eff, v) })
	}
	if !inv.IgnoreAbility {
		p.FullHP = target.IsFullHP()
		for _, a := range target.Abilities() {
			step(func(v *float64) { a.ApplyReceivedDamage(c.hook, p, v) })
		}
		if c.Field.Double {
			for _, ally := range c.Allies(target) {
				for _, a := range ally.Abilities() {
					step(func(v *float64) { a.ApplyAllyDamageReduction(v) })
				}
			}
		}
	}
	if m.Has(move.ModifiedDamage) {
		dmg = min(dmg, max(target.HP-1, 0))
	}
	return dmg
}

// SameTypeMultiplier returns the same-type bonus for user attacking with
// moveType. A base type match gives 1.5, which abilities may raise; a
// matching tera type adds 0.5; a Stellar tera adds 0.5 on a base type match
// and 0.2 otherwise, once per type.
//
// Postcondition: 1 <= result <= 2.25.
func (c *Context) SameTypeMultiplier(user *creature.Combatant, moveType types.Type, ignoreAbility bool) float64 {
	s := 1.0
	matches := types.Contains(user.BaseTypes(), moveType)
	if matches && moveType != types.Unknown {
		s += 0.5
	}
	if !ignoreAbility {
		for _, a := range user.Abilities() {
			a.ApplyStab(&s)
		}
	}
	if user.Tera.Active && user.Tera.Type == moveType && moveType != types.Stellar {
		s += 0.5
	}
	if user.Tera.Active && user.Tera.Type == types.Stellar && !user.StellarSpent(moveType) {
		if matches {
			s += 0.5
		} else {
			s += 0.2
		}
	}
	return min(s, 2.25)
}

func (c *Context) secondStrikeMultiplier(user *creature.Combatant, ignoreAbility bool) float64 {
	if ignoreAbility {
		return 1
	}
	for _, a := range user.Abilities() {
		if m, ok := a.SecondStrikeMultiplier(); ok {
			return m
		}
	}
	return 1
}

func fixedDamage(a *move.Attr, user, target *creature.Combatant) int {
	switch a.Mode {
	case move.FixedUserLevel:
		return user.Level
	case move.FixedHalfTargetHP:
		return max(1, target.HP/2)
	default:
		return a.Value
	}
}
