package combat

import (
	"cmp"
	"slices"

	"github.com/cory-johannsen/creature-battle/internal/game/move"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
)

// ActionKind distinguishes what a combatant does with its turn.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionSwitch
)

// switchPriority puts switches ahead of every move.
const switchPriority = 7

// Action is one combatant's choice for a turn.
type Action struct {
	Kind   ActionKind
	UserID string
	// MoveID and Targets are set for ActionMove.
	MoveID  string
	Targets []string
	// SwitchTo is the benched combatant for ActionSwitch.
	SwitchTo string
}

func (c *Context) priority(a Action) int {
	if a.Kind == ActionSwitch {
		return switchPriority
	}
	user := c.Combatant(a.UserID)
	if user == nil {
		return 0
	}
	if s, ok := user.Slot(a.MoveID); ok {
		return s.Move.Priority
	}
	return move.Struggle.Priority
}

// TurnOrder sorts actions by priority, then effective Speed, both descending.
// Ties keep field position order, player side first.
func (c *Context) TurnOrder(actions []Action) []Action {
	position := make(map[string]int)
	for i, id := range c.Field.All() {
		position[id] = i
	}
	speed := func(id string) int {
		cb := c.Combatant(id)
		if cb == nil {
			return 0
		}
		return c.EffectiveStat(cb, stat.Spd, StatQuery{})
	}
	pos := func(id string) int {
		if p, ok := position[id]; ok {
			return p
		}
		return len(position)
	}
	out := slices.Clone(actions)
	slices.SortStableFunc(out, func(a, b Action) int {
		if n := cmp.Compare(c.priority(b), c.priority(a)); n != 0 {
			return n
		}
		if n := cmp.Compare(speed(b.UserID), speed(a.UserID)); n != 0 {
			return n
		}
		return cmp.Compare(pos(a.UserID), pos(b.UserID))
	})
	return out
}
