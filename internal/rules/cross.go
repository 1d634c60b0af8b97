package rules

import (
	"fmt"

	"github.com/Paulmait/dominauts/domino"
	"github.com/Paulmait/dominauts/internal/game"
)

// CrossMode is played on a cross board. The round opens with a double in the
// center; every arm then grows independently from that double. Arms stay
// open for the rest of the round.
type CrossMode struct {
	info    game.ModeInfo
	weights Weights
}

// NewCross returns the cross (star) variant.
func NewCross(w Weights, opts ...Option) *CrossMode {
	return &CrossMode{
		info: applyOptions(game.ModeInfo{
			Name:           "cross",
			DisplayName:    "Cross Dominoes",
			Board:          game.Cross,
			MaxPips:        domino.StandardMaxPips,
			TilesPerPlayer: 7,
			MinPlayers:     2,
			MaxPlayers:     4,
			TargetScore:    150,
		}, opts),
		weights: w,
	}
}

func (m *CrossMode) Info() game.ModeInfo { return m.info }

func (m *CrossMode) GetValidMoves(p *game.Player, board *game.Board, state *game.State) []game.Move {
	return enumerate(m, m.weights, p, board, state, m.openDirectionBonus)
}

func (m *CrossMode) ValidateMove(tile domino.Tile, pos game.Position, board *game.Board, _ *game.State) bool {
	if board.Kind != game.Cross {
		return false
	}
	if board.IsEmpty() {
		return pos == game.Center && tile.IsDouble()
	}
	return board.CanPlaceOnCrossEnd(tile, pos)
}

// OnMoveExecuted checks the four arms are tracked once the center is down.
func (m *CrossMode) OnMoveExecuted(_ domino.Tile, _ game.Position, board *game.Board, _ *game.State) error {
	if board.Spinner == nil {
		return fmt.Errorf("%w: cross board has no center", game.ErrStructuralInvariant)
	}
	if n := len(board.OpenDirections()); n != len(game.Directions) {
		return fmt.Errorf("%w: cross board tracks %d directions", game.ErrStructuralInvariant, n)
	}
	return nil
}

// CalculateScore scores the total of the four arm values when it is a
// positive multiple of five.
func (m *CrossMode) CalculateScore(_ domino.Tile, board *game.Board, _ *game.State) int {
	return multipleOfFive(board.CrossSum())
}

// CalculateRoundScore rounds the opponents' pips down to a multiple of five.
func (m *CrossMode) CalculateRoundScore(state *game.State) int {
	return roundDownFive(opponentPips(state))
}

func (m *CrossMode) openDirectionBonus(_ domino.Tile, after *game.Board, rest []domino.Tile, _ *game.State) float64 {
	return m.weights.OpenDirectionBonus * float64(playableEnds(after, rest))
}
