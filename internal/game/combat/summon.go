package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// Summon places cb at slot on its side with a fresh summon bag, then applies
// entry hazards on that side.
//
// Precondition: cb is registered and not fainted.
func (c *Context) Summon(cb *creature.Combatant, slot int) {
	if c.Combatant(cb.ID) == nil {
		panic("combat.Context.Summon: combatant is not registered")
	}
	if cb.IsFainted() {
		panic("combat.Context.Summon: combatant has fainted")
	}
	cb.ResetSummon()
	cb.ResetTurn()
	c.Field.Place(cb.Side, slot, cb.ID)
	cb.OnField = true
	c.logger.Debug("switched in", zap.String("combatant", cb.ID), zap.Stringer("side", cb.Side), zap.Int("slot", slot))
	c.emit(false, Event{Kind: EventSwitchIn, CombatantID: cb.ID, Side: cb.Side})
	c.applyHazards(cb)
}

func (c *Context) applyHazards(cb *creature.Combatant) {
	grounded := c.IsGrounded(cb)
	if t, ok := c.Field.Tag(field.StealthRock, cb.Side); ok && t.Layers > 0 {
		eff := c.AttackTypeEffectiveness(cb, types.Rock, TypeQuery{IgnoreStrongWinds: true})
		if eff > 0 {
			c.damage(cb, max(1, int(float64(cb.MaxHP())*eff/8)), "")
		}
	}
	if t, ok := c.Field.Tag(field.Spikes, cb.Side); ok && grounded {
		div := [...]int{0, 8, 6, 4}[min(t.Layers, 3)]
		c.damage(cb, max(1, cb.MaxHP()/div), "")
	}
	if t, ok := c.Field.Tag(field.ToxicSpikes, cb.Side); ok && grounded && !cb.IsFainted() {
		if cb.HasType(types.Poison) {
			c.Field.RemoveTag(field.ToxicSpikes, cb.Side)
			c.emit(false, Event{Kind: EventArenaTagRemoved, ArenaTag: field.ToxicSpikes, Side: cb.Side})
			return
		}
		effect := status.Poison
		if t.Layers >= 2 {
			effect = status.Toxic
		}
		c.TrySetStatus(cb, effect, StatusQuery{})
	}
}

// Withdraw takes cb off the field. Tags it sourced on other combatants that
// are linked to their source are purged.
func (c *Context) Withdraw(cb *creature.Combatant) {
	for _, other := range c.Combatants() {
		if other.ID != cb.ID {
			other.Summon.Tags.RemoveBySource(cb.ID)
		}
	}
	if c.Field.Remove(cb.ID) >= 0 || cb.OnField {
		c.emit(false, Event{Kind: EventSwitchOut, CombatantID: cb.ID, Side: cb.Side})
	}
	cb.OnField = false
}

// SwitchOut withdraws out and summons in into the slot out held.
//
// Precondition: out is on the field; in is on the same side and not fainted.
func (c *Context) SwitchOut(out, in *creature.Combatant) {
	slot := c.Field.Slot(out.Side, out.ID)
	c.Withdraw(out)
	out.ResetSummon()
	c.Summon(in, max(slot, 0))
}

// BatonPass switches out for in, carrying over stat stages and baton-passable
// tags; tags others hold that out sourced are reassigned to in. A replacement
// fainted by entry hazards receives nothing.
func (c *Context) BatonPass(out, in *creature.Combatant) {
	stages := out.Stages()
	passed := out.Summon.Tags.BatonPassable()
	for _, other := range c.Combatants() {
		if other.ID != out.ID {
			other.Summon.Tags.TransferOwnership(out.ID, in.ID)
		}
	}
	c.SwitchOut(out, in)
	if !in.IsActive() {
		c.logger.Debug("baton pass lost to entry hazards", zap.String("from", out.ID), zap.String("to", in.ID))
		return
	}
	in.SetStages(stages)
	for _, t := range passed {
		in.Summon.Tags.Add(t)
	}
	for _, t := range in.Summon.Tags.Snapshot() {
		if t.SourceID == out.ID {
			tt, _ := in.Summon.Tags.Get(t.Kind)
			tt.SourceID = in.ID
		}
	}
	c.logger.Debug("baton pass", zap.String("from", out.ID), zap.String("to", in.ID), zap.Int("tags", len(passed)))
}
