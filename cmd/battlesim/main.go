// Package main provides the battle simulator binary: it loads game content and
// plays many seeded AI-vs-AI battles concurrently, reporting the results.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/creature-battle/internal/config"
	"github.com/cory-johannsen/creature-battle/internal/content"
	"github.com/cory-johannsen/creature-battle/internal/game/ability"
	"github.com/cory-johannsen/creature-battle/internal/game/dice"
	"github.com/cory-johannsen/creature-battle/internal/observability"
	"github.com/cory-johannsen/creature-battle/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	battles := flag.Int("battles", 0, "number of battles; overrides simulation.battles when > 0")
	seed := flag.Uint64("seed", 0, "base seed; overrides battle.seed when > 0")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *battles > 0 {
		cfg.Simulation.Battles = *battles
	}
	if *seed > 0 {
		cfg.Battle.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Battle.Seed == 0 {
		cfg.Battle.Seed = dice.NewSeed()
	}

	// Load content
	contentStart := time.Now()
	lib, err := content.Load(cfg.Content)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("species", len(lib.Species())),
		zap.Int("moves", len(lib.Moves.All())),
		zap.Int("abilities", len(lib.Abilities.All())),
		zap.Int("items", len(lib.Items.All())),
		zap.Duration("elapsed", time.Since(contentStart)),
	)

	// Ability scripts
	var hook ability.Hook
	if cfg.Scripting.Dir != "" {
		mgr := scripting.NewManager(logger, cfg.Scripting.InstructionLimit)
		defer mgr.Close()
		if err := mgr.LoadDir(cfg.Scripting.Dir); err != nil {
			logger.Fatal("loading ability scripts", zap.Error(err))
		}
		hook = mgr
	}

	sim, err := newSimulator(lib, hook, cfg.Battle, logger)
	if err != nil {
		logger.Fatal("creating simulator", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulating",
		zap.Int("battles", cfg.Simulation.Battles),
		zap.Int("workers", cfg.Simulation.Workers),
		zap.Uint64("seed", cfg.Battle.Seed),
		zap.String("ai_profile", cfg.Battle.AIProfile),
		zap.Bool("double", cfg.Battle.Double),
	)
	sum, err := sim.Run(ctx, cfg.Battle.Seed, cfg.Simulation.Battles, cfg.Simulation.Workers)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	logger.Info("simulation complete",
		zap.Int("battles", sum.Battles),
		zap.Int("player_wins", sum.PlayerWins),
		zap.Int("enemy_wins", sum.EnemyWins),
		zap.Int("draws", sum.Draws),
		zap.Float64("average_turns", sum.AverageTurns()),
		zap.Duration("elapsed", time.Since(start)),
	)
}
