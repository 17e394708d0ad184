package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/creature-battle/internal/config"
	"github.com/cory-johannsen/creature-battle/internal/content"
	"github.com/cory-johannsen/creature-battle/internal/game/ability"
	"github.com/cory-johannsen/creature-battle/internal/game/ai"
	"github.com/cory-johannsen/creature-battle/internal/game/combat"
	"github.com/cory-johannsen/creature-battle/internal/game/dice"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/observability"
)

// Result is the outcome of one simulated battle.
type Result struct {
	Seed   uint64
	Turns  int
	Winner field.Side
	// Draw is true when the turn limit ended the battle or both sides fell together.
	Draw bool
}

// Summary aggregates a run of battles.
type Summary struct {
	Battles    int
	PlayerWins int
	EnemyWins  int
	Draws      int
	TotalTurns int
}

// AverageTurns returns the mean battle length.
func (s Summary) AverageTurns() float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Battles)
}

func (s *Summary) add(r Result) {
	s.Battles++
	s.TotalTurns += r.Turns
	switch {
	case r.Draw:
		s.Draws++
	case r.Winner == field.PlayerSide:
		s.PlayerWins++
	default:
		s.EnemyWins++
	}
}

// simulator runs AI-vs-AI battles over a loaded content library.
type simulator struct {
	lib     *content.Library
	profile *ai.Profile
	hook    ability.Hook
	battle  config.BattleConfig
	engine  *combat.Engine
	logger  *zap.Logger
}

// newSimulator resolves the configured AI profile against lib.
//
// Precondition: lib and logger must be non-nil. hook may be nil.
func newSimulator(lib *content.Library, hook ability.Hook, cfg config.BattleConfig, logger *zap.Logger) (*simulator, error) {
	if lib == nil || logger == nil {
		panic("main.newSimulator: lib and logger must not be nil")
	}
	profile, ok := lib.Profiles.Get(cfg.AIProfile)
	if !ok {
		return nil, fmt.Errorf("unknown ai profile %q", cfg.AIProfile)
	}
	return &simulator{
		lib:     lib,
		profile: profile,
		hook:    hook,
		battle:  cfg,
		engine:  combat.NewEngine(),
		logger:  logger,
	}, nil
}

// Play runs one battle from seed to its end. Rosters are drawn from the
// battle stream, so the same seed replays the same battle.
func (s *simulator) Play(ctx context.Context, seed uint64) (Result, error) {
	logger := observability.BattleLogger(s.logger, seed)
	bctx := combat.NewContext(dice.NewStream(seed), field.NewState(s.battle.Double), logger)
	if s.hook != nil {
		bctx.SetHook(s.hook)
	}

	player, err := s.lib.RandomRoster(bctx.Roller(), s.battle.PartySize, s.battle.Level, field.PlayerSide)
	if err != nil {
		return Result{}, err
	}
	enemy, err := s.lib.RandomRoster(bctx.Roller(), s.battle.PartySize, s.battle.Level, field.EnemySide)
	if err != nil {
		return Result{}, err
	}

	b := combat.NewBattle(bctx, player, enemy, s.battle.MaxTurns)
	if err := s.engine.Start(b); err != nil {
		return Result{}, err
	}
	defer s.engine.End(b.ID)

	scorer := ai.NewScorer(bctx, s.profile)
	for !b.Over() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		active := bctx.Active()
		actions := make([]combat.Action, 0, len(active))
		for _, cb := range active {
			actions = append(actions, scorer.Action(cb))
		}
		b.PlayTurn(actions)
	}

	winner, ok := b.Winner()
	r := Result{Seed: seed, Turns: b.Turn, Winner: winner, Draw: !ok}
	logger.Debug("battle finished",
		zap.String("battle", b.ID),
		zap.Int("turns", r.Turns),
		zap.Bool("draw", r.Draw),
		zap.Stringer("winner", r.Winner),
	)
	return r, nil
}

// Run plays battles seeded base, base+1, ... with at most workers running at
// once. Each battle stays on one goroutine.
//
// Precondition: battles >= 1 and workers >= 1.
func (s *simulator) Run(ctx context.Context, base uint64, battles, workers int) (Summary, error) {
	results := make([]Result, battles)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < battles; i++ {
		g.Go(func() error {
			r, err := s.Play(gctx, base+uint64(i))
			if err != nil {
				return fmt.Errorf("battle %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, r := range results {
		sum.add(r)
	}
	return sum, nil
}
