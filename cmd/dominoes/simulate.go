package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/Paulmait/dominauts/internal/randutil"
	"github.com/Paulmait/dominauts/internal/simulator"
)

type SimulateCmd struct {
	Games      int      `short:"n" default:"1000" help:"Number of games to play"`
	Mode       string   `short:"m" help:"Game variant (defaults to the config file)"`
	Players    int      `short:"p" help:"Players per game (0 = variant minimum)"`
	Strategies []string `short:"s" sep:"," help:"Bot strategy per seat, hero first (heuristic, random)"`
	Difficulty string   `short:"d" help:"Heuristic difficulty"`
	MaxRounds  int      `help:"Stop each game after N rounds (0 for unlimited)"`
	Seed       int64    `help:"Base seed for the run (0 for random)"`
	Workers    int      `short:"w" help:"Parallel games (0 = GOMAXPROCS)"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	if c.Mode != "" {
		cfg.Game.Mode = c.Mode
	}
	if c.Difficulty != "" {
		cfg.Game.Difficulty = c.Difficulty
	}
	if c.Players != 0 {
		cfg.Game.Players = c.Players
	}
	if c.MaxRounds != 0 {
		cfg.Game.MaxRounds = c.MaxRounds
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := stderrLogger(cfg)
	if err != nil {
		return err
	}

	weights, err := cfg.Weights(cfg.Game.Difficulty)
	if err != nil {
		return err
	}
	seed := randutil.Seed(cfg.Seed)
	sim, err := simulator.New(simulator.Config{
		Games:      c.Games,
		Mode:       cfg.Game.Mode,
		Players:    cfg.Game.Players,
		Strategies: c.Strategies,
		Weights:    &weights,
		Options:    cfg.ModeOptions(),
		Seed:       seed,
		Workers:    c.Workers,
		MaxRounds:  cfg.Game.MaxRounds,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("Starting simulation", "games", c.Games, "mode", cfg.Game.Mode, "lineup", sim.Lineup(), "seed", seed)
	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("Finished", "duration", time.Since(start).Round(time.Millisecond))

	simulator.PrintSummary(os.Stdout, stats, cfg.Game.Mode, sim.Lineup())
	return nil
}
