package rules

import (
	"fmt"

	"github.com/Paulmait/dominauts/domino"
	"github.com/Paulmait/dominauts/internal/game"
)

// validLinear is the matching rule shared by the line variants: the first
// tile goes to the center, every later tile must match the end it joins.
func validLinear(tile domino.Tile, pos game.Position, board *game.Board) bool {
	if board.Kind != game.Linear {
		return false
	}
	return board.CanPlace(tile, pos)
}

// checkLinear verifies a line still exposes both ends after a move.
func checkLinear(board *game.Board) error {
	if board.Kind != game.Linear {
		return fmt.Errorf("%w: expected a linear board, got %s", game.ErrStructuralInvariant, board.Kind)
	}
	if len(board.OpenEnds()) != 2 {
		return fmt.Errorf("%w: linear board tracks %d open ends", game.ErrStructuralInvariant, len(board.OpenEnds()))
	}
	return nil
}

// opponentPips is the settlement of the block-style variants.
func opponentPips(state *game.State) int {
	if state.Winner < 0 || state.Winner >= len(state.Players) {
		return 0
	}
	return state.OpponentPips(state.Winner)
}
