package rules

import (
	"github.com/Paulmait/dominauts/domino"
	"github.com/Paulmait/dominauts/internal/game"
)

// AllFives scores during play: whenever the open ends total a positive
// multiple of five (a double at an end counts twice) the player scores that
// total.
type AllFives struct {
	info    game.ModeInfo
	weights Weights
}

// NewAllFives returns the All Fives (muggins) variant.
func NewAllFives(w Weights, opts ...Option) *AllFives {
	return &AllFives{
		info: applyOptions(game.ModeInfo{
			Name:           "allfives",
			DisplayName:    "All Fives",
			Board:          game.Linear,
			CanDraw:        true,
			MaxPips:        domino.StandardMaxPips,
			TilesPerPlayer: 7,
			MinPlayers:     2,
			MaxPlayers:     4,
			TargetScore:    150,
		}, opts),
		weights: w,
	}
}

func (m *AllFives) Info() game.ModeInfo { return m.info }

func (m *AllFives) GetValidMoves(p *game.Player, board *game.Board, state *game.State) []game.Move {
	return enumerate(m, m.weights, p, board, state, nil)
}

func (m *AllFives) ValidateMove(tile domino.Tile, pos game.Position, board *game.Board, _ *game.State) bool {
	return validLinear(tile, pos, board)
}

func (m *AllFives) OnMoveExecuted(_ domino.Tile, _ game.Position, board *game.Board, _ *game.State) error {
	return checkLinear(board)
}

// CalculateScore reads the ends of the board as it stands after the move.
func (m *AllFives) CalculateScore(_ domino.Tile, board *game.Board, _ *game.State) int {
	return multipleOfFive(board.EndSum())
}

// CalculateRoundScore rounds the opponents' pips to the nearest five.
func (m *AllFives) CalculateRoundScore(state *game.State) int {
	return roundNearestFive(opponentPips(state))
}
