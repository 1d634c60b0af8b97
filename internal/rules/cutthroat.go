package rules

import (
	"github.com/Paulmait/dominauts/domino"
	"github.com/Paulmait/dominauts/internal/game"
)

// Cutthroat is a three-handed line game with no partnerships. Nine tiles
// each are dealt, the round must open with the highest double in play and
// only the settlement scores.
type Cutthroat struct {
	info    game.ModeInfo
	weights Weights
}

// NewCutthroat returns the three-player variant.
func NewCutthroat(w Weights, opts ...Option) *Cutthroat {
	return &Cutthroat{
		info: applyOptions(game.ModeInfo{
			Name:           "cutthroat",
			DisplayName:    "Cutthroat",
			Board:          game.Linear,
			MaxPips:        domino.StandardMaxPips,
			TilesPerPlayer: 9,
			MinPlayers:     3,
			MaxPlayers:     3,
			TargetScore:    100,
		}, opts),
		weights: w,
	}
}

func (m *Cutthroat) Info() game.ModeInfo { return m.info }

// RequiredOpening is the highest double held by any player. With nine tiles
// each from a double-six set only one tile is undealt, so this is the 6|6
// unless it sits in the boneyard. Without a state there is no requirement.
func (m *Cutthroat) RequiredOpening(state *game.State) (domino.Tile, bool) {
	if state == nil {
		return domino.Tile{}, false
	}
	var held []domino.Tile
	for _, p := range state.Players {
		held = append(held, p.Hand...)
	}
	return domino.HighestDouble(held)
}

func (m *Cutthroat) GetValidMoves(p *game.Player, board *game.Board, state *game.State) []game.Move {
	return enumerate(m, m.weights, p, board, state, m.blockingBonus)
}

func (m *Cutthroat) ValidateMove(tile domino.Tile, pos game.Position, board *game.Board, state *game.State) bool {
	if !validLinear(tile, pos, board) {
		return false
	}
	if board.IsEmpty() {
		if opening, ok := m.RequiredOpening(state); ok {
			return tile.Equal(opening)
		}
	}
	return true
}

func (m *Cutthroat) OnMoveExecuted(_ domino.Tile, _ game.Position, board *game.Board, _ *game.State) error {
	return checkLinear(board)
}

func (m *Cutthroat) CalculateScore(domino.Tile, *game.Board, *game.State) int {
	return 0
}

// CalculateRoundScore sums the pips left in every hand that is not empty.
func (m *Cutthroat) CalculateRoundScore(state *game.State) int {
	total := 0
	for _, p := range state.Players {
		if !p.HandEmpty() {
			total += p.PipCount()
		}
	}
	return total
}

// blockingBonus rewards moves that leave opponents few answers. Opponent
// hands are hidden, so every tile not in our hand and not on the board is
// treated as a possible reply.
func (m *Cutthroat) blockingBonus(_ domino.Tile, after *game.Board, rest []domino.Tile, _ *game.State) float64 {
	unseen := unseenTiles(m.info.MaxPips, after, rest)
	ends := after.OpenEnds()
	blocked := 0
	for _, t := range unseen {
		answers := false
		for _, end := range ends {
			if t.HasValue(end.Value) {
				answers = true
				break
			}
		}
		if !answers {
			blocked++
		}
	}
	return m.weights.BlockingBonus * float64(blocked)
}
