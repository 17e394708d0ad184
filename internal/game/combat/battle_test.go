package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/creature-battle/internal/game/combat"
	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

func TestEndTurn_ResidualStatusDamage(t *testing.T) {
	ctx, user, target := newDuel(t, 1)
	user.Status = status.Status{Effect: status.Burn}
	target.Status = status.Status{Effect: status.Toxic}

	ctx.EndTurn()
	assert.Equal(t, 150, user.HP)
	assert.Equal(t, 150, target.HP)

	ctx.EndTurn()
	assert.Equal(t, 140, user.HP)
	assert.Equal(t, 130, target.HP)
	assert.Equal(t, 2, target.Status.ToxicTurn)
}

func TestEndTurn_WeatherDamageAndExpiry(t *testing.T) {
	ctx, user, _ := newDuel(t, 1)
	rock := newCombatant("rock", field.EnemySide, 50, types.Rock)
	ctx.Add(rock)
	ctx.Summon(rock, 1)
	ctx.Field.SetWeather(field.Sandstorm, 1)
	events := recordEvents(ctx)

	ctx.EndTurn()
	assert.Equal(t, 150, user.HP)
	assert.True(t, rock.IsFullHP())
	assert.Equal(t, field.WeatherNone, ctx.Field.Weather)
	assert.Contains(t, kinds(*events), combat.EventWeather)
}

func TestEndTurn_LapsesAndResetsTurn(t *testing.T) {
	ctx, user, target := newDuel(t, 1)
	require.True(t, addTag(ctx, target, tag.Protected, 0))
	user.Turn.Acted = true

	ctx.EndTurn()
	assert.False(t, target.Summon.Tags.Has(tag.Protected))
	assert.False(t, user.Turn.Acted)
	assert.Equal(t, 1, user.Summon.Turns)
}

func TestSummon_EntryHazards(t *testing.T) {
	ctx, _ := newContext(1)
	ctx.Field.AddTag(field.ArenaTag{Kind: field.StealthRock, Side: field.PlayerSide})
	ctx.Field.AddTag(field.ArenaTag{Kind: field.Spikes, Side: field.PlayerSide})

	fire := newCombatant("fire", field.PlayerSide, 50, types.Fire)
	ctx.Add(fire)
	ctx.Summon(fire, 0)
	assert.Equal(t, 160-40-20, fire.HP, "rock is super effective and spikes take an eighth")

	bird := newCombatant("bird", field.PlayerSide, 50, types.Normal, types.Flying)
	ctx.Add(bird)
	ctx.Summon(bird, 1)
	assert.Equal(t, 160-40, bird.HP, "spikes miss airborne combatants")
}

func TestSummon_ToxicSpikes(t *testing.T) {
	ctx, _ := newContext(1)
	ctx.Field.AddTag(field.ArenaTag{Kind: field.ToxicSpikes, Side: field.PlayerSide})
	ctx.Field.AddTag(field.ArenaTag{Kind: field.ToxicSpikes, Side: field.PlayerSide})

	steel := newCombatant("steel", field.PlayerSide, 50, types.Steel)
	ctx.Add(steel)
	ctx.Summon(steel, 0)
	assert.False(t, steel.Status.Active(), "hazards have no source to bypass steel immunity")

	water := newCombatant("water", field.PlayerSide, 50, types.Water)
	ctx.Add(water)
	ctx.Summon(water, 1)
	assert.True(t, water.Status.Is(status.Toxic))

	poison := newCombatant("poison", field.PlayerSide, 50, types.Poison)
	ctx.Add(poison)
	ctx.Summon(poison, 2)
	assert.False(t, ctx.Field.HasTag(field.ToxicSpikes, field.PlayerSide), "poison types absorb toxic spikes")
}

func TestWithdraw_PurgesOnlySourceLinkedTags(t *testing.T) {
	ctx, user, target := newDuel(t, 1)
	require.True(t, ctx.AddTag(target, tag.Tag{Kind: tag.Seeded}, combat.TagQuery{Source: user}))
	require.True(t, ctx.AddTag(target, tag.Tag{Kind: tag.Confused, Turns: 3}, combat.TagQuery{Source: user}))

	ctx.Withdraw(user)
	assert.False(t, user.OnField)
	assert.False(t, target.Summon.Tags.Has(tag.Seeded))
	assert.True(t, target.Summon.Tags.Has(tag.Confused))
}

func TestBatonPass_CarriesStagesAndTags(t *testing.T) {
	ctx, user, target := newDuel(t, 1)
	in := newCombatant("in", field.PlayerSide, 50, types.Grass)
	ctx.Add(in)
	user.SetStage(stat.Atk, 2)
	require.True(t, addTag(ctx, user, tag.Substitute, 0))
	require.True(t, addTag(ctx, user, tag.Flinched, 0))
	require.True(t, ctx.AddTag(target, tag.Tag{Kind: tag.Seeded}, combat.TagQuery{Source: user}))

	ctx.BatonPass(user, in)
	assert.False(t, user.OnField)
	assert.Zero(t, user.Stage(stat.Atk))
	assert.True(t, in.OnField)
	assert.Equal(t, 2, in.Stage(stat.Atk))
	assert.True(t, in.Summon.Tags.Has(tag.Substitute))
	assert.False(t, in.Summon.Tags.Has(tag.Flinched))

	seeded, ok := target.Summon.Tags.Get(tag.Seeded)
	require.True(t, ok)
	assert.Equal(t, in.ID, seeded.SourceID)
	assert.Equal(t, 0, ctx.Field.Slot(field.PlayerSide, in.ID))
}

func TestBatonPass_FaintedOnEntryReceivesNothing(t *testing.T) {
	ctx, user, _ := newDuel(t, 1)
	in := newCombatant("in", field.PlayerSide, 50, types.Grass)
	ctx.Add(in)
	in.Damage(in.MaxHP() - 1)
	ctx.Field.AddTag(field.ArenaTag{Kind: field.StealthRock, Side: field.PlayerSide})
	user.SetStage(stat.Atk, 2)
	require.True(t, addTag(ctx, user, tag.Substitute, 0))

	ctx.BatonPass(user, in)
	assert.True(t, in.IsFainted())
	assert.Zero(t, in.Stage(stat.Atk))
	assert.False(t, in.Summon.Tags.Has(tag.Substitute))
}

func TestTurnOrder(t *testing.T) {
	ctx, user, target := newDuel(t, 1)
	actions := []combat.Action{
		{UserID: user.ID, MoveID: "strike"},
		{UserID: target.ID, MoveID: "strike"},
	}
	order := ctx.TurnOrder(actions)
	assert.Equal(t, user.ID, order[0].UserID, "speed ties keep position order")

	target.SetStage(stat.Spd, 1)
	order = ctx.TurnOrder(actions)
	assert.Equal(t, target.ID, order[0].UserID)

	actions[0].MoveID = "quick"
	order = ctx.TurnOrder(actions)
	assert.Equal(t, user.ID, order[0].UserID, "priority beats speed")

	actions[1] = combat.Action{Kind: combat.ActionSwitch, UserID: target.ID}
	order = ctx.TurnOrder(actions)
	assert.Equal(t, target.ID, order[0].UserID, "switches go first")
}

func TestBattle_PlaysToAWinner(t *testing.T) {
	ctx, _ := newContext(5)
	hero := newCombatant("hero", field.PlayerSide, 50, types.Fire)
	weak1 := newCombatant("weak1", field.EnemySide, 5, types.Water)
	weak2 := newCombatant("weak2", field.EnemySide, 5, types.Water)
	b := combat.NewBattle(ctx, []*creature.Combatant{hero}, []*creature.Combatant{weak1, weak2}, 50)
	require.NotEmpty(t, b.ID)
	assert.True(t, hero.OnField)
	assert.True(t, weak1.OnField)
	assert.Len(t, b.Bench(field.EnemySide), 1)

	for !b.Over() {
		var actions []combat.Action
		for _, cb := range ctx.Active() {
			opp := ctx.Opponents(cb)
			if len(opp) == 0 {
				continue
			}
			actions = append(actions, combat.Action{UserID: cb.ID, MoveID: "strike", Targets: []string{opp[0].ID}})
		}
		b.PlayTurn(actions)
		require.LessOrEqual(t, b.Turn, 50)
	}
	winner, ok := b.Winner()
	require.True(t, ok)
	assert.Equal(t, field.PlayerSide, winner)
	assert.True(t, weak1.IsFainted())
	assert.True(t, weak2.IsFainted())
	assert.Nil(t, b.PlayTurn(nil))
}

func TestBattle_SwitchAction(t *testing.T) {
	ctx, _ := newContext(5)
	a := newCombatant("a", field.PlayerSide, 50, types.Fire)
	bench := newCombatant("bench", field.PlayerSide, 50, types.Grass)
	foe := newCombatant("foe", field.EnemySide, 50, types.Water)
	b := combat.NewBattle(ctx, []*creature.Combatant{a, bench}, []*creature.Combatant{foe}, 0)

	b.PlayTurn([]combat.Action{{Kind: combat.ActionSwitch, UserID: a.ID, SwitchTo: bench.ID}})
	assert.False(t, a.OnField)
	assert.True(t, bench.OnField)

	require.True(t, ctx.AddTag(bench, tag.Tag{Kind: tag.Trapped}, combat.TagQuery{Source: foe}))
	b.PlayTurn([]combat.Action{{Kind: combat.ActionSwitch, UserID: bench.ID, SwitchTo: a.ID}})
	assert.True(t, bench.OnField, "trapped combatants cannot switch")
}

func TestEngine_StartGetEnd(t *testing.T) {
	eng := combat.NewEngine()
	ctx, _ := newContext(1)
	b := combat.NewBattle(ctx,
		[]*creature.Combatant{newCombatant("p", field.PlayerSide, 10, types.Fire)},
		[]*creature.Combatant{newCombatant("e", field.EnemySide, 10, types.Water)}, 10)

	require.NoError(t, eng.Start(b))
	assert.Error(t, eng.Start(b))
	got, ok := eng.Get(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.Equal(t, 1, eng.Len())

	eng.End(b.ID)
	_, ok = eng.Get(b.ID)
	assert.False(t, ok)
}
