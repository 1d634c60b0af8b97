package game

import (
	"errors"
	"fmt"
)

// Agent chooses moves for a seat. Agents receive the state read-only and the
// legal moves the mode produced; the engine applies the chosen move.
type Agent interface {
	// ChooseMove returns the move to play. Returning false declines to move,
	// which the driver treats as a defect when moves were available.
	ChooseMove(state *State, seat int, moves []Move) (Move, bool)
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(state *State, seat int, moves []Move) (Move, bool)

// ChooseMove implements Agent.
func (f AgentFunc) ChooseMove(state *State, seat int, moves []Move) (Move, bool) {
	return f(state, seat, moves)
}

// ErrAgentDeclined is returned when an agent refuses to pick from a
// non-empty move list.
var ErrAgentDeclined = errors.New("agent declined to move")

// PlayTurn lets agent act for the current seat: a move when one is legal,
// otherwise a draw or pass. A move chosen from GetValidMoves that then fails
// ValidateMove is returned as ErrStructuralInvariant because the two
// must agree.
func (e *Engine) PlayTurn(agent Agent) error {
	s := e.state
	if s == nil || s.Phase != AwaitingMove {
		return ErrRoundNotActive
	}
	seat := s.Current
	moves := e.ValidMoves()
	if len(moves) == 0 {
		_, err := e.AdvanceIfNoLegalMoves()
		return err
	}

	move, ok := agent.ChooseMove(s, seat, moves)
	if !ok {
		return fmt.Errorf("seat %d: %w", seat, ErrAgentDeclined)
	}
	if _, err := e.SubmitMove(seat, move.Tile, move.Position); err != nil {
		if errors.Is(err, ErrInvalidMove) {
			e.logger.Error("Automated move rejected", "seat", seat, "move", move, "error", err)
			return fmt.Errorf("%w: seat %d chose %s: %v", ErrStructuralInvariant, seat, move, err)
		}
		return err
	}
	return nil
}

// PlayRound drives the current round to its end with one agent per seat.
func (e *Engine) PlayRound(agents []Agent) (RoundResult, error) {
	s := e.state
	if s == nil {
		return RoundResult{}, ErrRoundNotActive
	}
	if len(agents) != len(s.Players) {
		return RoundResult{}, fmt.Errorf("need %d agents, got %d", len(s.Players), len(agents))
	}

	// Every turn either places a tile, draws one or passes; a round that runs
	// longer than this has stopped making progress.
	limit := (len(s.Players) + 2) * (len(s.Board.Placements) + len(s.Boneyard) + totalHand(s) + 1)
	for turns := 0; s.Phase == AwaitingMove; turns++ {
		if turns > limit {
			return RoundResult{}, fmt.Errorf("%w: round %d made no progress after %d turns", ErrStructuralInvariant, s.Round, turns)
		}
		if err := e.PlayTurn(agents[s.Current]); err != nil {
			return RoundResult{}, err
		}
		s = e.state
	}
	last, _ := s.LastRound()
	return last, nil
}

// PlayGame plays rounds until the game is over.
func (e *Engine) PlayGame(agents []Agent) error {
	for {
		if _, err := e.PlayRound(agents); err != nil {
			return err
		}
		if e.state.Phase == GameOver {
			return nil
		}
		if err := e.NextRound(); err != nil {
			return err
		}
	}
}

func totalHand(s *State) int {
	n := 0
	for _, p := range s.Players {
		n += len(p.Hand)
	}
	return n
}
