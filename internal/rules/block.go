package rules

import (
	"github.com/Paulmait/dominauts/domino"
	"github.com/Paulmait/dominauts/internal/game"
)

// Block is the plain line game: match an open end or pass. Only the round
// settlement scores. The draw variant is the same game with a boneyard.
type Block struct {
	info    game.ModeInfo
	weights Weights
}

// NewBlock returns the blocking game: no drawing, settlement only.
func NewBlock(w Weights, opts ...Option) *Block {
	return &Block{
		info: applyOptions(game.ModeInfo{
			Name:           "block",
			DisplayName:    "Block Dominoes",
			Board:          game.Linear,
			MaxPips:        domino.StandardMaxPips,
			TilesPerPlayer: 7,
			MinPlayers:     2,
			MaxPlayers:     4,
			TargetScore:    100,
		}, opts),
		weights: w,
	}
}

// NewDraw returns the draw game: block rules, but a player who cannot move
// draws from the boneyard until they can or it runs out.
func NewDraw(w Weights, opts ...Option) *Block {
	m := NewBlock(w)
	m.info.Name = "draw"
	m.info.DisplayName = "Draw Dominoes"
	m.info.CanDraw = true
	m.info = applyOptions(m.info, opts)
	return m
}

func (m *Block) Info() game.ModeInfo { return m.info }

func (m *Block) GetValidMoves(p *game.Player, board *game.Board, state *game.State) []game.Move {
	return enumerate(m, m.weights, p, board, state, nil)
}

func (m *Block) ValidateMove(tile domino.Tile, pos game.Position, board *game.Board, _ *game.State) bool {
	return validLinear(tile, pos, board)
}

func (m *Block) OnMoveExecuted(_ domino.Tile, _ game.Position, board *game.Board, _ *game.State) error {
	return checkLinear(board)
}

func (m *Block) CalculateScore(domino.Tile, *game.Board, *game.State) int {
	return 0
}

// CalculateRoundScore awards the pips left in the opponents' hands.
func (m *Block) CalculateRoundScore(state *game.State) int {
	return opponentPips(state)
}
