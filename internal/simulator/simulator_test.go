package simulator

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Paulmait/dominauts/internal/rules"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestSimulator_Run(t *testing.T) {
	t.Parallel()
	for _, mode := range rules.Names() {
		t.Run(mode, func(t *testing.T) {
			t.Parallel()
			sim, err := New(Config{
				Games:     6,
				Mode:      mode,
				Seed:      12345,
				Workers:   3,
				MaxRounds: 3,
				Logger:    quietLogger(),
			})
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}

			stats, err := sim.Run(context.Background())
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			if stats.Games != 6 {
				t.Errorf("Expected 6 games, got %d", stats.Games)
			}
			if stats.Rounds < 6 || stats.Rounds > 18 {
				t.Errorf("Expected between 6 and 18 rounds, got %d", stats.Rounds)
			}
			if err := stats.Validate(); err != nil {
				t.Errorf("Statistics invalid: %v", err)
			}
		})
	}
}

func TestSimulator_Deterministic(t *testing.T) {
	t.Parallel()
	config := Config{
		Games:      8,
		Mode:       "allfives",
		Players:    3,
		Strategies: []string{"heuristic", "random"},
		Seed:       99,
		MaxRounds:  2,
		Logger:     quietLogger(),
	}

	run := func(workers int) []float64 {
		c := config
		c.Workers = workers
		sim, err := New(c)
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		stats, err := sim.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
		return stats.Values
	}

	serial, parallel := run(1), run(4)
	if len(serial) != len(parallel) {
		t.Fatalf("Result counts differ: %d vs %d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Errorf("Game %d margin differs: %f vs %f", i, serial[i], parallel[i])
		}
	}
}

func TestSimulator_RotatesHeroSeat(t *testing.T) {
	t.Parallel()
	sim, err := New(Config{Games: 4, Mode: "block", Players: 2, Seed: 1, MaxRounds: 1, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(stats.Seats) != 2 || stats.Seats[0].Games != 2 || stats.Seats[1].Games != 2 {
		t.Errorf("Expected two games from each seat, got %+v", stats.Seats)
	}
}

func TestSimulator_Cancelled(t *testing.T) {
	t.Parallel()
	sim, err := New(Config{Games: 4, Mode: "block", Seed: 1, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sim.Run(ctx); err == nil {
		t.Error("Expected error from cancelled context")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		config Config
	}{
		{"no games", Config{Mode: "block"}},
		{"unknown mode", Config{Games: 1, Mode: "mexican"}},
		{"unknown difficulty", Config{Games: 1, Mode: "block", Difficulty: "godlike"}},
		{"negative weights", Config{Games: 1, Mode: "block", Weights: &rules.Weights{PipValue: -1}}},
		{"wrong player count", Config{Games: 1, Mode: "cutthroat", Players: 2}},
		{"too many strategies", Config{Games: 1, Mode: "block", Players: 2, Strategies: []string{"random", "random", "random"}}},
		{"unknown strategy", Config{Games: 1, Mode: "block", Strategies: []string{"psychic"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.config); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLineup(t *testing.T) {
	t.Parallel()
	sim, err := New(Config{Games: 1, Mode: "cutthroat", Strategies: []string{"random"}})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if got := sim.Lineup(); got != "random,heuristic,heuristic" {
		t.Errorf("Unexpected lineup %q", got)
	}
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()
	sim, err := New(Config{Games: 2, Mode: "draw", Seed: 5, MaxRounds: 1, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	var buf bytes.Buffer
	PrintSummary(&buf, stats, "draw", sim.Lineup())
	out := buf.String()
	for _, want := range []string{"RESULTS: draw", "Games played: 2", "SEAT ANALYSIS"} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary missing %q:\n%s", want, out)
		}
	}
}
