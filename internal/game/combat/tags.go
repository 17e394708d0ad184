package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
)

// CanAddTag reports whether k may be added to target: it must not already be
// present, and no immunity ability on target or its allies may veto it.
func (c *Context) CanAddTag(target *creature.Combatant, k tag.Kind) bool {
	if !target.Summon.Tags.CanAdd(k) {
		return false
	}
	for _, a := range target.Abilities() {
		if a.BlocksTag(k) {
			return false
		}
	}
	for _, cb := range append([]*creature.Combatant{target}, c.Allies(target)...) {
		for _, a := range cb.Abilities() {
			if a.BlocksAllyTag(k) {
				return false
			}
		}
	}
	return true
}

// TagQuery is the situational input to AddTag.
type TagQuery struct {
	Source    *creature.Combatant
	MoveID    string
	Simulated bool
}

// AddTag adds t to target. When a tag of the same kind is live the overlap
// path runs and AddTag returns false. A timed tag with no turns set rolls
// its duration from the battle stream.
//
// Postcondition: a simulated call mutates nothing and returns CanAddTag.
func (c *Context) AddTag(target *creature.Combatant, t tag.Tag, q TagQuery) bool {
	if q.Simulated {
		return c.CanAddTag(target, t.Kind)
	}
	tags := target.Summon.Tags
	if tags.Has(t.Kind) {
		tags.Add(t)
		return false
	}
	if !c.CanAddTag(target, t.Kind) {
		return false
	}
	def := tag.DefOf(t.Kind)
	if t.Turns == 0 && !def.Untimed {
		t.Turns = c.roller.Roll(def.Duration).Total()
	}
	if q.Source != nil && t.SourceID == "" {
		t.SourceID = q.Source.ID
	}
	if t.SourceMove == "" {
		t.SourceMove = q.MoveID
	}
	if t.Kind == tag.Substitute && t.HP == 0 {
		t.HP = max(1, target.MaxHP()/4)
	}
	if !tags.Add(t) {
		return false
	}
	c.logger.Debug("tag added", zap.String("target", target.ID), zap.Stringer("tag", t.Kind), zap.Int("turns", t.Turns))
	return true
}

// RemoveTag force-removes k from target.
func (c *Context) RemoveTag(target *creature.Combatant, k tag.Kind) bool {
	return target.Summon.Tags.Remove(k)
}

// LapseTags lapses every tag of cb reacting to lt and applies the resulting
// damage, healing, sleep and fainting. The caller handles move cancellation
// and confusion self-hits.
func (c *Context) LapseTags(cb *creature.Combatant, lt tag.LapseType) tag.Effects {
	fx := cb.Summon.Tags.LapseAll(lt, c.lapseContext(cb))
	c.applyLapse(cb, fx)
	return fx
}

// LapseTag lapses a single kind.
func (c *Context) LapseTag(cb *creature.Combatant, k tag.Kind, lt tag.LapseType) tag.Effects {
	fx := cb.Summon.Tags.Lapse(k, lt, c.lapseContext(cb))
	c.applyLapse(cb, fx)
	return fx
}

func (c *Context) applyLapse(cb *creature.Combatant, fx tag.Effects) {
	if fx.Damage > 0 {
		dealt := c.damage(cb, fx.Damage, "")
		if fx.DrainTo != "" {
			if src := c.Combatant(fx.DrainTo); src != nil && src.IsActive() {
				c.heal(src, dealt)
			}
		}
	}
	if fx.Heal > 0 {
		c.heal(cb, fx.Heal)
	}
	if fx.Sleep {
		c.TrySetStatus(cb, status.Sleep, StatusQuery{})
	}
	if fx.Faint && !cb.IsFainted() {
		c.damage(cb, cb.HP, "")
	}
}

// damage removes HP from cb, fainting it at zero, and returns the HP lost.
func (c *Context) damage(cb *creature.Combatant, amount int, sourceID string) int {
	if cb.IsFainted() {
		return 0
	}
	dealt := cb.Damage(amount)
	cb.Turn.DamageTaken += dealt
	c.emit(false, Event{Kind: EventDamage, CombatantID: cb.ID, SourceID: sourceID, Amount: dealt})
	if cb.IsFainted() {
		c.Faint(cb)
	}
	return dealt
}

func (c *Context) heal(cb *creature.Combatant, amount int) int {
	if cb.IsFainted() {
		return 0
	}
	healed := cb.Heal(amount)
	if healed > 0 {
		c.emit(false, Event{Kind: EventHeal, CombatantID: cb.ID, Amount: healed})
	}
	return healed
}
