package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/creature-battle/internal/game/ability"
	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/dice"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
)

var nop = zap.NewNop()

// Context is the explicit battle context every engine operation receives:
// the seeded RNG stream, the Field State, the combatant index, and the side
// channels for logs and presentation events.
//
// A Context is not safe for concurrent use; one battle runs on one goroutine.
type Context struct {
	RNG   *dice.Stream
	Field *field.State

	logger     *zap.Logger
	roller     *dice.Roller
	hook       ability.Hook
	listener   func(Event)
	combatants map[string]*creature.Combatant
	order      []string
}

// NewContext creates a Context over rng and f. A nil logger discards logs.
//
// Precondition: rng and f must be non-nil.
func NewContext(rng *dice.Stream, f *field.State, logger *zap.Logger) *Context {
	if rng == nil || f == nil {
		panic("combat.NewContext: rng and field must not be nil")
	}
	if logger == nil {
		logger = nop
	}
	return &Context{
		RNG:        rng,
		Field:      f,
		logger:     logger,
		roller:     dice.NewLoggedRoller(rng, logger),
		combatants: make(map[string]*creature.Combatant),
	}
}

// Roller returns the logged roller over the battle stream. Draws made
// through it advance the same sequence the engine uses.
func (c *Context) Roller() *dice.Roller { return c.roller }

// Logger returns the battle logger.
func (c *Context) Logger() *zap.Logger { return c.logger }

// SetHook installs the handler for scripted ability attributes.
func (c *Context) SetHook(h ability.Hook) { c.hook = h }

// SetListener installs fn to receive presentation events. nil disables events.
func (c *Context) SetListener(fn func(Event)) { c.listener = fn }

// Add registers cb with the context and routes its tag events to the listener.
//
// Precondition: cb must be non-nil with a unique ID.
func (c *Context) Add(cb *creature.Combatant) {
	if cb == nil {
		panic("combat.Context.Add: combatant must not be nil")
	}
	if _, dup := c.combatants[cb.ID]; dup {
		panic("combat.Context.Add: duplicate combatant id " + cb.ID)
	}
	c.combatants[cb.ID] = cb
	c.order = append(c.order, cb.ID)
	cb.Summon.Tags.SetListener(c.tagListener)
}

func (c *Context) tagListener(e tag.Event) {
	kind := EventTagAdded
	switch e.Kind {
	case tag.EventOverlapped:
		kind = EventTagOverlapped
	case tag.EventRemoved:
		kind = EventTagRemoved
	}
	c.logger.Debug("tag event", zap.String("combatant", e.OwnerID), zap.Stringer("tag", e.Tag), zap.Stringer("event", kind))
	c.emit(false, Event{Kind: kind, CombatantID: e.OwnerID, Tag: e.Tag})
}

// Combatant returns the registered combatant with id, or nil.
func (c *Context) Combatant(id string) *creature.Combatant { return c.combatants[id] }

// Combatants returns every registered combatant in registration order.
func (c *Context) Combatants() []*creature.Combatant {
	out := make([]*creature.Combatant, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.combatants[id])
	}
	return out
}

// Active returns the active combatants in field position order.
func (c *Context) Active() []*creature.Combatant {
	var out []*creature.Combatant
	for _, id := range c.Field.All() {
		if cb := c.combatants[id]; cb != nil && cb.IsActive() {
			out = append(out, cb)
		}
	}
	return out
}

func (c *Context) activeOn(side field.Side) []*creature.Combatant {
	var out []*creature.Combatant
	for _, id := range c.Field.Positions(side) {
		if cb := c.combatants[id]; cb != nil && cb.IsActive() {
			out = append(out, cb)
		}
	}
	return out
}

// Allies returns the other active combatants on cb's side.
func (c *Context) Allies(cb *creature.Combatant) []*creature.Combatant {
	var out []*creature.Combatant
	for _, a := range c.activeOn(cb.Side) {
		if a.ID != cb.ID {
			out = append(out, a)
		}
	}
	return out
}

// Opponents returns the active combatants on the side opposite cb.
func (c *Context) Opponents(cb *creature.Combatant) []*creature.Combatant {
	return c.activeOn(cb.Side.Opposite())
}

// log returns the logger for a call; simulated calls never log.
func (c *Context) log(simulated bool) *zap.Logger {
	if simulated {
		return nop
	}
	return c.logger
}

// emit forwards e to the listener unless the call is simulated.
func (c *Context) emit(simulated bool, e Event) {
	if simulated || c.listener == nil {
		return
	}
	c.listener(e)
}

// intn draws from the battle stream through the logged roller.
func (c *Context) intn(n int) int { return c.roller.Intn(n) }

// intRange draws from [lo, hi] inclusive.
func (c *Context) intRange(lo, hi int) int { return lo + c.roller.Intn(hi-lo+1) }

// chance reports whether a percent chance succeeds; 0 and 100 never draw.
func (c *Context) chance(percent int) bool {
	if percent <= 0 || percent >= 100 {
		return true
	}
	return c.intn(100) < percent
}

func (c *Context) lapseContext(cb *creature.Combatant) tag.LapseContext {
	return tag.LapseContext{MaxHP: cb.MaxHP(), OwnerTypes: cb.Types(), RNG: c.roller}
}
