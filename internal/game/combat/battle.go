package combat

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
)

// Battle sequences turns over a Context for two rosters.
type Battle struct {
	ID string
	// MaxTurns ends the battle in a draw; 0 means no limit.
	MaxTurns int
	Turn     int

	ctx     *Context
	rosters [2][]*creature.Combatant
}

// NewBattle registers both rosters with ctx and summons the leads: one per
// side, two in a double battle.
//
// Precondition: ctx non-nil; each roster has at least one combatant that has
// not fainted.
func NewBattle(ctx *Context, player, enemy []*creature.Combatant, maxTurns int) *Battle {
	if ctx == nil {
		panic("combat.NewBattle: context must not be nil")
	}
	b := &Battle{ID: uuid.NewString(), MaxTurns: maxTurns, ctx: ctx}
	for side, roster := range [2][]*creature.Combatant{player, enemy} {
		if len(roster) == 0 {
			panic("combat.NewBattle: rosters must not be empty")
		}
		for _, cb := range roster {
			cb.Side = field.Side(side)
			ctx.Add(cb)
		}
		b.rosters[side] = roster
	}
	b.fillSlots()
	return b
}

// Context returns the battle context.
func (b *Battle) Context() *Context { return b.ctx }

// Roster returns the combatants of side in roster order.
func (b *Battle) Roster(side field.Side) []*creature.Combatant { return b.rosters[side] }

// Bench returns the combatants of side that could be switched in.
func (b *Battle) Bench(side field.Side) []*creature.Combatant {
	var out []*creature.Combatant
	for _, cb := range b.rosters[side] {
		if !cb.OnField && !cb.IsFainted() {
			out = append(out, cb)
		}
	}
	return out
}

func (b *Battle) slots() int {
	if b.ctx.Field.Double {
		return 2
	}
	return 1
}

// fillSlots summons benched combatants into empty slots.
func (b *Battle) fillSlots() {
	for side := range b.rosters {
		s := field.Side(side)
		used := make(map[int]bool)
		for _, id := range b.ctx.Field.Positions(s) {
			used[b.ctx.Field.Slot(s, id)] = true
		}
		bench := b.Bench(s)
		for slot := 0; slot < b.slots() && len(bench) > 0; slot++ {
			if used[slot] {
				continue
			}
			b.ctx.Summon(bench[0], slot)
			bench = bench[1:]
		}
	}
}

// PlayTurn runs actions in turn order, then the end-of-turn phase, then
// replaces fainted combatants. Actions whose user is no longer active are
// skipped.
func (b *Battle) PlayTurn(actions []Action) []MoveReport {
	if b.Over() {
		return nil
	}
	b.Turn++
	log := b.ctx.logger.With(zap.String("battle", b.ID), zap.Int("turn", b.Turn))
	var reports []MoveReport
	for _, a := range b.ctx.TurnOrder(actions) {
		user := b.ctx.Combatant(a.UserID)
		if user == nil || !user.IsActive() {
			continue
		}
		switch a.Kind {
		case ActionSwitch:
			b.trySwitch(log, user, a.SwitchTo)
		default:
			reports = append(reports, b.ctx.ExecuteMove(user, a.MoveID, a.Targets))
		}
		if b.decided() {
			break
		}
	}
	b.ctx.EndTurn()
	b.fillSlots()
	log.Debug("turn complete", zap.Int("moves", len(reports)))
	return reports
}

func (b *Battle) trySwitch(log *zap.Logger, user *creature.Combatant, id string) {
	in := b.ctx.Combatant(id)
	if in == nil || in.Side != user.Side || in.OnField || in.IsFainted() {
		log.Debug("switch rejected", zap.String("user", user.ID), zap.String("to", id))
		return
	}
	if user.Summon.Tags.Has(tag.Trapped) || user.Summon.Tags.Has(tag.Bound) {
		log.Debug("switch blocked by trap", zap.String("user", user.ID))
		return
	}
	b.ctx.SwitchOut(user, in)
}

func (b *Battle) remaining(side field.Side) int {
	n := 0
	for _, cb := range b.rosters[side] {
		if !cb.IsFainted() {
			n++
		}
	}
	return n
}

func (b *Battle) decided() bool {
	return b.remaining(field.PlayerSide) == 0 || b.remaining(field.EnemySide) == 0
}

// Over reports whether a side is out of combatants or the turn limit was reached.
func (b *Battle) Over() bool {
	return b.decided() || (b.MaxTurns > 0 && b.Turn >= b.MaxTurns)
}

// Winner returns the side that still has combatants once the other has none.
// A battle ended by the turn limit, or with both sides out, has no winner.
func (b *Battle) Winner() (field.Side, bool) {
	p, e := b.remaining(field.PlayerSide), b.remaining(field.EnemySide)
	switch {
	case p > 0 && e == 0:
		return field.PlayerSide, true
	case e > 0 && p == 0:
		return field.EnemySide, true
	}
	return field.PlayerSide, false
}
