package ai_test

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/creature-battle/internal/game/ai"
	"github.com/cory-johannsen/creature-battle/internal/game/combat"
	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/dice"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/move"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

var (
	strike = &move.Move{ID: "strike", Name: "Strike", Type: types.Normal, Category: move.Physical, Power: 80, Accuracy: -1, PP: 10}
	vine   = &move.Move{ID: "vine", Name: "Vine", Type: types.Grass, Category: move.Physical, Power: 80, Accuracy: -1, PP: 10}
	wisp   = &move.Move{
		ID: "wisp", Name: "Wisp", Type: types.Fire, Category: move.Status, Accuracy: -1, PP: 10,
		Attrs: []move.Attr{{Kind: move.StatusEffect, Status: status.Burn}},
	}
	growl = &move.Move{
		ID: "growl", Name: "Growl", Type: types.Normal, Category: move.Status, Accuracy: -1, PP: 10,
		Attrs: []move.Attr{{Kind: move.StatStageChange, Stats: []stat.Stat{stat.Atk}, Stages: -1}},
	}
	drain = &move.Move{
		ID: "drain", Name: "Drain", Type: types.Grass, Category: move.Special, Power: 75, Accuracy: -1, PP: 10,
		Attrs: []move.Attr{{Kind: move.Drain, Fraction: 0.5}},
	}
	quake = &move.Move{
		ID: "quake", Name: "Quake", Type: types.Ground, Category: move.Physical, Power: 100, Accuracy: -1, PP: 10,
		Target: move.TargetAllNearOpponents,
	}
)

// Base 100 in every stat at level 50 gives HP 160 and 105 elsewhere.
func newCombatant(id string, side field.Side, moves []*move.Move, ts ...types.Type) *creature.Combatant {
	return creature.New(creature.Params{
		ID: id,
		Species: &creature.Species{
			ID:        id,
			Name:      id,
			Types:     ts,
			BaseStats: creature.BaseStats{HP: 100, Atk: 100, Def: 100, SpAtk: 100, SpDef: 100, Spd: 100},
			Abilities: []string{"none"},
			Moves:     []string{moves[0].ID},
		},
		Level: 50,
		Moves: moves,
		Side:  side,
	})
}

func newContext(seed uint64, double bool) (*combat.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return combat.NewContext(dice.NewStream(seed), field.NewState(double), zap.New(core)), logs
}

// newDuel places a Fire enemy-side user holding moves against a Water
// player-side target.
func newDuel(seed uint64, moves ...*move.Move) (*combat.Context, *creature.Combatant, *creature.Combatant) {
	ctx, _ := newContext(seed, false)
	user := newCombatant("user", field.EnemySide, moves, types.Fire)
	target := newCombatant("target", field.PlayerSide, []*move.Move{strike}, types.Water)
	ctx.Add(user)
	ctx.Add(target)
	ctx.Summon(user, 0)
	ctx.Summon(target, 0)
	return ctx, user, target
}

func profile(tier ai.Tier) *ai.Profile {
	return &ai.Profile{ID: tier.String(), Tier: tier}
}
