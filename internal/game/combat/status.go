package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/creature-battle/internal/game/ability"
	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// StatusQuery is the situational input to CanSetStatus and TrySetStatus.
type StatusQuery struct {
	// Override lets the effect replace a different held status.
	Override bool
	// Source inflicts the status; nil for field hazards and other sourceless effects.
	Source *creature.Combatant
	// IgnoreField skips terrain and weather checks.
	IgnoreField bool
	// SleepTurns fixes the sleep duration; 0 rolls it.
	SleepTurns int
	Simulated  bool
}

// CanSetStatus reports whether e may be applied to target and, when not, why.
//
// Precondition: target non-nil.
// Postcondition: never mutates state.
func (c *Context) CanSetStatus(target *creature.Combatant, e status.Effect, q StatusQuery) (bool, status.Reason) {
	if target == nil {
		panic("combat.CanSetStatus: target must not be nil")
	}
	if e == status.Faint || e == status.None {
		return true, status.ReasonNone
	}
	if target.Status.Is(status.Faint) || target.IsFainted() {
		return false, status.ReasonOther
	}
	if q.Override {
		if target.Status.Is(e) {
			return false, status.ReasonOther
		}
	} else if target.Status.Active() {
		return false, status.ReasonOther
	}
	grounded := c.IsGrounded(target)
	if !q.IgnoreField && grounded && c.Field.Terrain == field.MistyTerrain {
		return false, status.ReasonTerrain
	}

	switch e {
	case status.Poison, status.Toxic:
		for _, t := range target.Types() {
			if t != types.Poison && t != types.Steel {
				continue
			}
			if q.Source == nil || !ignoresStatusImmunity(q.Source, e, t) {
				return false, status.ReasonType
			}
		}
	case status.Paralysis:
		if target.HasType(types.Electric) {
			return false, status.ReasonType
		}
	case status.Sleep:
		if !q.IgnoreField && grounded && c.Field.Terrain == field.ElectricTerrain {
			return false, status.ReasonTerrain
		}
	case status.Freeze:
		if target.HasType(types.Ice) {
			return false, status.ReasonType
		}
		if !q.IgnoreField && (c.Field.Weather == field.Sunny || c.Field.Weather == field.HarshSun) {
			return false, status.ReasonWeather
		}
	case status.Burn:
		if target.HasType(types.Fire) {
			return false, status.ReasonType
		}
	}

	for _, a := range target.Abilities() {
		if a.BlocksStatus(e) {
			return false, status.ReasonAbility
		}
	}
	for _, cb := range append([]*creature.Combatant{target}, c.Allies(target)...) {
		for _, a := range cb.Abilities() {
			if a.BlocksAllyStatus(e) {
				return false, status.ReasonAbility
			}
		}
	}
	if q.Source != nil && q.Source.ID != target.ID &&
		c.Field.HasTag(field.Safeguard, target.Side) && !q.Source.HasAbility(ability.Infiltrator) {
		return false, status.ReasonSafeguard
	}
	return true, status.ReasonNone
}

func ignoresStatusImmunity(source *creature.Combatant, e status.Effect, defend types.Type) bool {
	for _, a := range source.Abilities() {
		if a.IgnoresStatusTypeImmunity(e, defend) {
			return true
		}
	}
	return false
}

// TrySetStatus applies e to target when CanSetStatus allows it. Sleep rolls
// its duration, lifts semi-invulnerability and clears the move queue.
//
// Postcondition: returns whether the status was (or, simulated, would be) set;
// a simulated call mutates nothing.
func (c *Context) TrySetStatus(target *creature.Combatant, e status.Effect, q StatusQuery) bool {
	ok, reason := c.CanSetStatus(target, e, q)
	if !ok {
		c.log(q.Simulated).Debug("status blocked",
			zap.String("target", target.ID), zap.Stringer("status", e), zap.Stringer("reason", reason))
		c.emit(q.Simulated, Event{Kind: EventStatusBlocked, CombatantID: target.ID, Status: e, Reason: reason})
		return false
	}
	if q.Simulated {
		return true
	}
	if e == status.Faint {
		c.Faint(target)
		return true
	}

	old := target.Status.Effect
	next := status.Status{Effect: e}
	if e == status.Sleep {
		turns := q.SleepTurns
		if turns <= 0 {
			turns = c.intRange(2, 4)
		}
		for _, a := range target.Abilities() {
			a.ApplySleepDuration(&turns)
		}
		next.SleepTurns = turns
		target.Summon.Tags.Remove(tag.SemiInvulnerable)
		target.Summon.MoveQueue = nil
	}
	target.Status = next

	sourceID := ""
	if q.Source != nil {
		sourceID = q.Source.ID
	}
	c.logger.Debug("status set",
		zap.String("target", target.ID), zap.Stringer("old", old), zap.Stringer("status", e), zap.Int("sleep_turns", next.SleepTurns))
	c.emit(false, Event{Kind: EventStatusSet, CombatantID: target.ID, SourceID: sourceID, OldStatus: old, Status: e})
	return true
}

// CureStatus returns target to no status. Curing sleep lifts Nightmare;
// confusion is lifted only when asked.
func (c *Context) CureStatus(target *creature.Combatant, includeConfusion bool) {
	old := target.Status.Effect
	if old == status.Faint {
		return
	}
	if includeConfusion {
		target.Summon.Tags.Remove(tag.Confused)
	}
	if old == status.None {
		return
	}
	target.Status = status.Status{}
	if old == status.Sleep {
		target.Summon.Tags.Remove(tag.Nightmare)
	}
	c.logger.Debug("status cured", zap.String("target", target.ID), zap.Stringer("old", old))
	c.emit(false, Event{Kind: EventStatusCured, CombatantID: target.ID, OldStatus: old})
}

// Faint makes target faint: HP drops to 0, every tag lapses, it leaves the
// field and tags it sourced on others are purged.
//
// Postcondition: target.Status is faint; no other status can be set.
func (c *Context) Faint(target *creature.Combatant) {
	if target.Status.Is(status.Faint) {
		return
	}
	target.HP = 0
	old := target.Status.Effect
	target.Status = status.Status{Effect: status.Faint}
	target.Summon.Tags.LapseAll(tag.LapseFaint, c.lapseContext(target))
	c.logger.Debug("fainted", zap.String("combatant", target.ID))
	c.emit(false, Event{Kind: EventFaint, CombatantID: target.ID, OldStatus: old, Status: status.Faint})
	c.Withdraw(target)
}
