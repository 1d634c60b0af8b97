// Package bot provides automated players. Bots only pick from the moves the
// active mode offers; the engine still validates whatever they choose.
package bot

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Paulmait/dominauts/internal/game"
)

// Heuristic plays the move with the highest heuristic score. Ties go to the
// move enumerated first, so play is deterministic for a given state.
type Heuristic struct {
	logger *log.Logger
}

// NewHeuristic creates a heuristic bot.
func NewHeuristic(logger *log.Logger) *Heuristic {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Heuristic{logger: logger.WithPrefix("bot")}
}

// ChooseMove implements game.Agent.
func (h *Heuristic) ChooseMove(state *game.State, seat int, moves []game.Move) (game.Move, bool) {
	move, ok := Best(moves)
	if ok {
		h.logger.Debug("Chose move",
			"seat", seat,
			"move", move,
			"heuristic", move.HeuristicScore,
			"options", len(moves))
	}
	return move, ok
}

// Best returns the highest scoring move, keeping the earliest on ties.
func Best(moves []game.Move) (game.Move, bool) {
	if len(moves) == 0 {
		return game.Move{}, false
	}
	best := moves[0]
	for _, m := range moves[1:] {
		if m.HeuristicScore > best.HeuristicScore {
			best = m
		}
	}
	return best, true
}

// Random plays a uniformly random legal move.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random bot driven by rng.
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		panic("rng is required for random bot")
	}
	return &Random{rng: rng}
}

// ChooseMove implements game.Agent.
func (r *Random) ChooseMove(_ *game.State, _ int, moves []game.Move) (game.Move, bool) {
	if len(moves) == 0 {
		return game.Move{}, false
	}
	return moves[r.rng.IntN(len(moves))], true
}

// Strategies lists the names accepted by New.
func Strategies() []string {
	return []string{"heuristic", "random"}
}

// New builds a bot by strategy name.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	switch strings.ToLower(strategy) {
	case "", "heuristic":
		return NewHeuristic(logger), nil
	case "random":
		return NewRandom(rng), nil
	default:
		return nil, fmt.Errorf("unknown bot strategy %q (available: %s)", strategy, strings.Join(Strategies(), ", "))
	}
}
