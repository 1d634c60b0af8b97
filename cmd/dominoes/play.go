package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"

	"github.com/Paulmait/dominauts/internal/bot"
	"github.com/Paulmait/dominauts/internal/config"
	"github.com/Paulmait/dominauts/internal/display"
	"github.com/Paulmait/dominauts/internal/game"
	"github.com/Paulmait/dominauts/internal/randutil"
	"github.com/Paulmait/dominauts/internal/rules"
	"github.com/Paulmait/dominauts/internal/session"
	"github.com/Paulmait/dominauts/internal/tui"
)

type PlayCmd struct {
	Mode        string        `short:"m" help:"Game variant (block, draw, allfives, cross, cutthroat)"`
	Players     int           `short:"p" help:"Number of players including you (0 = variant minimum)"`
	Difficulty  string        `short:"d" help:"Bot difficulty (easy, medium, hard or a config difficulty block)"`
	Name        string        `help:"Your display name"`
	TargetScore int           `help:"Points needed to win (0 = variant default)"`
	MaxRounds   int           `help:"Stop after N rounds (0 for unlimited)"`
	Seed        int64         `help:"Seed for a repeatable deal (0 for random)"`
	Watch       bool          `help:"Let bots play every seat and print the game"`
	Resume      string        `help:"Resume a saved game by ID or file path"`
	BotDelay    time.Duration `default:"400ms" help:"Pause before each bot move"`
	IdleSave    time.Duration `default:"30m" help:"Save the game once it has been idle this long (0 disables)"`
	NoColor     bool          `help:"Disable colors"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	seed := randutil.Seed(cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if c.Watch {
		logger, err := stderrLogger(cfg)
		if err != nil {
			return err
		}
		return c.watch(ctx, cfg, seed, logger)
	}

	// The table owns the terminal, so logs go to a file.
	logPath, err := xdg.StateFile("dominoes/dominoes.log")
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer logFile.Close()
	logger, err := newLogger(logFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Info("Starting game", "seed", seed, "mode", cfg.Game.Mode)

	manager := newManager(ctx, cfg, c.IdleSave, logger)
	var (
		s    *session.Session
		seat int
	)
	if c.Resume != "" {
		s, seat, err = c.resume(manager, cfg, seed, logger)
	} else {
		s, err = c.create(manager, cfg, seed, logger)
	}
	if err != nil {
		return err
	}

	d := display.New(os.Stdout)
	if c.NoColor {
		d = display.NewPlain()
	}
	model := tui.New(s, tui.Options{
		Seat:     seat,
		SaveDir:  cfg.SaveDir,
		BotDelay: c.BotDelay,
		Display:  d,
		Logger:   logger,
	})
	return tui.Run(ctx, model)
}

// newManager hosts the table. A game left idle past idle is saved so it can
// be resumed after the terminal is closed.
func newManager(ctx context.Context, cfg *config.Config, idle time.Duration, logger *log.Logger) *session.Manager {
	if cfg.SaveDir == "" {
		idle = 0
	}
	manager := session.NewManager(logger, nil, idle)
	if idle <= 0 {
		return manager
	}
	manager.OnReap(func(s *session.Session) {
		if _, err := s.Save(cfg.SaveDir); err != nil {
			logger.Error("Failed to save idle game", "game", s.ID, "error", err)
		}
	})
	manager.StartReaper(ctx, min(idle, time.Minute))
	return manager
}

// apply copies flags that were set over the configuration.
func (c *PlayCmd) apply(cfg *config.Config) {
	if c.Mode != "" {
		cfg.Game.Mode = c.Mode
	}
	if c.Players != 0 {
		cfg.Game.Players = c.Players
	}
	if c.Difficulty != "" {
		cfg.Game.Difficulty = c.Difficulty
	}
	if c.Name != "" {
		cfg.Game.PlayerName = c.Name
	}
	if c.TargetScore != 0 {
		cfg.Game.TargetScore = c.TargetScore
	}
	if c.MaxRounds != 0 {
		cfg.Game.MaxRounds = c.MaxRounds
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
}

func engineOptions(cfg *config.Config) []game.Option {
	var opts []game.Option
	if cfg.Game.MaxRounds > 0 {
		opts = append(opts, game.WithMaxRounds(cfg.Game.MaxRounds))
	}
	return opts
}

// table seats the human first and fills the rest with bots.
func table(cfg *config.Config, mode game.Mode, seed int64, logger *log.Logger) ([]*game.Player, []game.Agent, error) {
	n := cfg.PlayerCount(mode)
	players := make([]*game.Player, n)
	agents := make([]game.Agent, n)
	players[0] = game.NewPlayer("human", cfg.Game.PlayerName, game.Human)
	for i := 1; i < n; i++ {
		players[i] = game.NewPlayer(fmt.Sprintf("bot-%d", i), fmt.Sprintf("Bot %d", i), game.Bot)
		agent, err := bot.New("heuristic", randutil.New(randutil.Derive(seed, i)), logger)
		if err != nil {
			return nil, nil, err
		}
		agents[i] = agent
	}
	return players, agents, nil
}

func (c *PlayCmd) create(manager *session.Manager, cfg *config.Config, seed int64, logger *log.Logger) (*session.Session, error) {
	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	players, agents, err := table(cfg, mode, seed, logger)
	if err != nil {
		return nil, err
	}
	return manager.Create(mode, players, agents, seed, engineOptions(cfg)...)
}

// resume hosts a saved game. Human seats stay human; every other seat gets
// a heuristic bot.
func (c *PlayCmd) resume(manager *session.Manager, cfg *config.Config, seed int64, logger *log.Logger) (*session.Session, int, error) {
	path := c.Resume
	if !strings.ContainsAny(path, `/\`) && !strings.HasSuffix(path, ".json") {
		path = session.SavePath(cfg.SaveDir, path)
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, 0, fmt.Errorf("resume: %w", err)
	}
	saved, err := session.Inspect(data)
	if err != nil {
		return nil, 0, err
	}
	weights, err := cfg.Weights(cfg.Game.Difficulty)
	if err != nil {
		return nil, 0, err
	}
	mode, err := rules.New(saved.Mode, weights, savedModeOptions(cfg, saved)...)
	if err != nil {
		return nil, 0, err
	}

	seat := -1
	agents := make([]game.Agent, len(saved.Players))
	for i, p := range saved.Players {
		if p.Kind == game.Human && seat < 0 {
			seat = i
			continue
		}
		agents[i] = bot.NewHeuristic(logger)
	}
	if seat < 0 {
		return nil, 0, fmt.Errorf("resume: saved game %s has no human seat", saved.GameID)
	}
	s, err := manager.Resume(mode, data, agents, seed)
	if err != nil {
		return nil, 0, err
	}
	return s, seat, nil
}

// savedModeOptions returns the configured variant options with the set size
// and deal size of the saved game taking precedence.
func savedModeOptions(cfg *config.Config, saved *game.State) []rules.Option {
	opts := cfg.ModeOptions()
	if saved.MaxPips > 0 {
		opts = append(opts, rules.WithMaxPips(saved.MaxPips))
	}
	if saved.HandSize > 0 {
		opts = append(opts, rules.WithTilesPerPlayer(saved.HandSize))
	}
	return opts
}

// watch plays a bot-only game and prints every move.
func (c *PlayCmd) watch(ctx context.Context, cfg *config.Config, seed int64, logger *log.Logger) error {
	mode, err := cfg.Mode()
	if err != nil {
		return err
	}
	d := display.New(os.Stdout)
	if c.NoColor {
		d = display.NewPlain()
	}

	n := cfg.PlayerCount(mode)
	players := make([]*game.Player, n)
	agents := make([]game.Agent, n)
	for i := range players {
		players[i] = game.NewPlayer(fmt.Sprintf("bot-%d", i), fmt.Sprintf("Bot %d", i+1), game.Bot)
		agents[i] = bot.NewHeuristic(logger)
	}

	engine := game.NewEngine(randutil.New(seed), logger, engineOptions(cfg)...)
	if err := engine.StartRound(mode, players); err != nil {
		return err
	}
	logger.Info("Watching game", "seed", seed, "mode", mode.Info().Name, "players", n)
	return watchGame(ctx, os.Stdout, d, engine, mode, agents, c.BotDelay)
}

func watchGame(ctx context.Context, w io.Writer, d *display.Display, engine *game.Engine, mode game.Mode, agents []game.Agent, delay time.Duration) error {
	seen, header := 0, true
	for {
		state := engine.State()
		if header {
			fmt.Fprintln(w, d.Status(state, mode.Info()))
			header = false
		}
		for ; seen < len(state.History); seen++ {
			fmt.Fprintln(w, d.Record(state, state.History[seen]))
		}

		switch state.Phase {
		case game.AwaitingMove:
			if err := ctx.Err(); err != nil {
				return err
			}
			if delay > 0 {
				time.Sleep(delay)
			}
			if err := engine.PlayTurn(agents[state.Current]); err != nil {
				return err
			}
			continue
		case game.RoundOver, game.GameOver:
			fmt.Fprintln(w, d.Board(state.Board))
			if res, ok := state.LastRound(); ok {
				fmt.Fprintln(w, d.Round(state, res))
			}
			fmt.Fprintln(w, d.Scores(state, true))
		}

		if state.Phase == game.GameOver {
			fmt.Fprintln(w, d.Outcome(state))
			return nil
		}
		if err := engine.NextRound(); err != nil {
			return err
		}
		seen, header = 0, true
	}
}
