package combat_test

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/creature-battle/internal/game/combat"
	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/dice"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/move"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// With zero IVs and a neutral nature, base 100 at level 50 gives HP 160 and
// 105 in every other stat.
func species(id string, ts ...types.Type) *creature.Species {
	return &creature.Species{
		ID:        id,
		Name:      id,
		Types:     ts,
		BaseStats: creature.BaseStats{HP: 100, Atk: 100, Def: 100, SpAtk: 100, SpDef: 100, Spd: 100},
		Abilities: []string{"none"},
		Moves:     []string{"strike"},
	}
}

var (
	strike = &move.Move{ID: "strike", Name: "Strike", Type: types.Normal, Category: move.Physical, Power: 80, Accuracy: -1, PP: 10}
	vine   = &move.Move{ID: "vine", Name: "Vine", Type: types.Grass, Category: move.Physical, Power: 80, Accuracy: -1, PP: 10}
	quick  = &move.Move{ID: "quick", Name: "Quick", Type: types.Normal, Category: move.Physical, Power: 40, Accuracy: -1, PP: 10, Priority: 1}
	drain  = &move.Move{
		ID: "drain", Name: "Drain", Type: types.Grass, Category: move.Special, Power: 75, Accuracy: -1, PP: 10,
		Attrs: []move.Attr{{Kind: move.Drain, Fraction: 0.5}},
	}
	wisp = &move.Move{
		ID: "wisp", Name: "Wisp", Type: types.Fire, Category: move.Status, Accuracy: -1, PP: 10,
		Attrs: []move.Attr{{Kind: move.StatusEffect, Status: status.Burn}},
	}
	dance = &move.Move{
		ID: "dance", Name: "Dance", Type: types.Normal, Category: move.Status, Accuracy: -1, PP: 10, Target: move.TargetSelf,
		Attrs: []move.Attr{{Kind: move.StatStageChange, Stats: []stat.Stat{stat.Atk}, Stages: 2}},
	}
	growl = &move.Move{
		ID: "growl", Name: "Growl", Type: types.Normal, Category: move.Status, Accuracy: -1, PP: 10,
		Attrs: []move.Attr{{Kind: move.StatStageChange, Stats: []stat.Stat{stat.Atk}, Stages: -1}},
	}
	rainDance = &move.Move{
		ID: "rain_dance", Name: "Rain Dance", Type: types.Water, Category: move.Status, Accuracy: -1, PP: 5, Target: move.TargetEntireField,
		Attrs: []move.Attr{{Kind: move.SetWeather, Weather: field.Rain}},
	}
	rocks = &move.Move{
		ID: "rocks", Name: "Rocks", Type: types.Rock, Category: move.Status, Accuracy: -1, PP: 5, Target: move.TargetEnemySide,
		Attrs: []move.Attr{{Kind: move.AddArenaTag, Arena: field.StealthRock}},
	}
	allMoves = []*move.Move{strike, vine, quick, drain, wisp, dance, growl, rainDance, rocks}
)

func newCombatant(id string, side field.Side, level int, ts ...types.Type) *creature.Combatant {
	return creature.New(creature.Params{
		ID:      id,
		Species: species(id, ts...),
		Level:   level,
		Moves:   allMoves,
		Side:    side,
	})
}

func newContext(seed uint64) (*combat.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return combat.NewContext(dice.NewStream(seed), field.NewState(false), zap.New(core)), logs
}

// newDuel returns a context with a Fire attacker on the player side and a
// Water defender on the enemy side, both level 50 and on the field.
func newDuel(t interface{ Helper() }, seed uint64) (*combat.Context, *creature.Combatant, *creature.Combatant) {
	t.Helper()
	ctx, _ := newContext(seed)
	user := newCombatant("user", field.PlayerSide, 50, types.Fire)
	target := newCombatant("target", field.EnemySide, 50, types.Water)
	ctx.Add(user)
	ctx.Add(target)
	ctx.Summon(user, 0)
	ctx.Summon(target, 0)
	return ctx, user, target
}

func recordEvents(ctx *combat.Context) *[]combat.Event {
	var events []combat.Event
	ctx.SetListener(func(e combat.Event) { events = append(events, e) })
	return &events
}

func kinds(events []combat.Event) []combat.EventKind {
	out := make([]combat.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func addTag(ctx *combat.Context, cb *creature.Combatant, k tag.Kind, turns int) bool {
	return ctx.AddTag(cb, tag.Tag{Kind: k, Turns: turns}, combat.TagQuery{})
}
