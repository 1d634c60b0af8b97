package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/Paulmait/dominauts/internal/bot"
	"github.com/Paulmait/dominauts/internal/game"
	"github.com/Paulmait/dominauts/internal/randutil"
	"github.com/Paulmait/dominauts/internal/rules"
	"github.com/Paulmait/dominauts/internal/statistics"
)

// Config holds configuration for running simulations.
type Config struct {
	Games      int
	Mode       string
	Players    int
	Strategies []string // per seat starting with the hero; missing seats play heuristic
	Difficulty string
	Weights    *rules.Weights // overrides Difficulty when set
	Options    []rules.Option
	Seed       int64
	Workers    int // 0 uses GOMAXPROCS
	MaxRounds  int
	Logger     *log.Logger
}

// Simulator plays independent bot-only games and aggregates the results.
type Simulator struct {
	config  Config
	weights rules.Weights
}

// New creates a simulator, resolving defaults and validating the config.
func New(config Config) (*Simulator, error) {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", config.Games)
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}

	weights := rules.DefaultWeights()
	switch {
	case config.Weights != nil:
		weights = *config.Weights
	case config.Difficulty != "":
		w, err := rules.Preset(config.Difficulty)
		if err != nil {
			return nil, err
		}
		weights = w
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	mode, err := rules.New(config.Mode, weights, config.Options...)
	if err != nil {
		return nil, err
	}
	if config.Players == 0 {
		config.Players = mode.Info().MinPlayers
	}
	if err := mode.Info().Validate(config.Players); err != nil {
		return nil, err
	}
	if len(config.Strategies) > config.Players {
		return nil, fmt.Errorf("%d strategies for %d players", len(config.Strategies), config.Players)
	}
	for _, s := range config.Strategies {
		if _, err := bot.New(s, randutil.New(1), nil); err != nil {
			return nil, err
		}
	}

	config.Logger = config.Logger.WithPrefix("simulator")
	return &Simulator{config: config, weights: weights}, nil
}

// Lineup describes who plays, hero first.
func (s *Simulator) Lineup() string {
	names := make([]string, s.config.Players)
	for i := range names {
		names[i] = s.strategy(i)
	}
	return strings.Join(names, ",")
}

func (s *Simulator) strategy(i int) string {
	if i < len(s.config.Strategies) && s.config.Strategies[i] != "" {
		return s.config.Strategies[i]
	}
	return "heuristic"
}

// Run plays every game and returns the aggregated statistics. Games run on
// up to Workers goroutines; results are added in game order so a seed always
// produces the same statistics.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	results := make([]statistics.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Games {
		g.Go(func() error {
			result, err := s.playGame(ctx, i)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, result.Seed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	s.config.Logger.Info("Simulation complete",
		"games", stats.Games,
		"mode", s.config.Mode,
		"lineup", s.Lineup(),
		"mean", stats.Mean())
	return stats, nil
}

// playGame plays game n. The hero's seat rotates with n to remove the
// advantage of leading the first round.
func (s *Simulator) playGame(ctx context.Context, n int) (statistics.GameResult, error) {
	seed := randutil.Derive(s.config.Seed, n)
	result := statistics.GameResult{Seed: seed, Mode: s.config.Mode, HeroSeat: n % s.config.Players}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	mode, err := rules.New(s.config.Mode, s.weights, s.config.Options...)
	if err != nil {
		return result, err
	}
	var opts []game.Option
	if s.config.MaxRounds > 0 {
		opts = append(opts, game.WithMaxRounds(s.config.MaxRounds))
	}
	engine := game.NewEngine(randutil.New(seed), s.config.Logger, opts...)

	players := make([]*game.Player, s.config.Players)
	agents := make([]game.Agent, s.config.Players)
	for seat := range players {
		// Lineup position i sits in seat (hero + i) mod players.
		i := (seat - result.HeroSeat + s.config.Players) % s.config.Players
		name := fmt.Sprintf("%s-%d", s.strategy(i), i)
		players[seat] = game.NewPlayer(name, name, game.Bot)
		agents[seat], err = bot.New(s.strategy(i), randutil.New(randutil.Derive(seed, seat+1)), s.config.Logger)
		if err != nil {
			return result, err
		}
	}

	if err := engine.StartRound(mode, players); err != nil {
		return result, err
	}
	for {
		if _, err := engine.PlayRound(agents); err != nil {
			return result, err
		}
		if engine.State().Phase == game.GameOver {
			break
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := engine.NextRound(); err != nil {
			return result, err
		}
	}

	state := engine.State()
	result.Rounds = state.Round
	for _, r := range state.Rounds {
		if r.Reason == game.Blocked {
			result.BlockedRounds++
		}
	}
	result.Scores = make([]int, len(state.Players))
	for i, p := range state.Players {
		result.Scores[i] = p.Score
	}
	result.Winner = -1
	if leaders := state.Leaders(); len(leaders) == 1 {
		result.Winner = leaders[0]
	}
	return result, nil
}

// PrintSummary writes a summary of simulation results.
func PrintSummary(w io.Writer, stats *statistics.Statistics, mode, lineup string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS: %s (%s) ===\n", mode, lineup)
	fmt.Fprintf(w, "Games played: %d (%d rounds)\n", stats.Games, stats.Rounds)
	fmt.Fprintf(w, "Hero record: %d won, %d lost, %d tied (%.1f%% wins)\n",
		stats.HeroWins, stats.HeroLosses, stats.Ties, stats.WinRate()*100)

	fmt.Fprintf(w, "\n=== MARGIN (points ahead of best opponent) ===\n")
	fmt.Fprintf(w, "Mean: %.2f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.2f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.2f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== ROUNDS ===\n")
	fmt.Fprintf(w, "Blocked: %d of %d (%.1f%%)\n", stats.BlockedRounds, stats.Rounds, stats.BlockedRate()*100)
	fmt.Fprintf(w, "Highest final score: %d\n", stats.MaxScore)

	fmt.Fprintf(w, "\n=== SEAT ANALYSIS ===\n")
	for seat, ss := range stats.Seats {
		if ss.Games > 0 {
			fmt.Fprintf(w, "Seat %d: %d games, %d wins, %.2f mean margin\n", seat, ss.Games, ss.Wins, stats.SeatMean(seat))
		}
	}
}
