package rules

import (
	"github.com/Paulmait/dominauts/domino"
	"github.com/Paulmait/dominauts/internal/game"
)

// bonusFunc adds a variant-specific term to a move's heuristic score. after
// is a copy of the board with the move applied; rest is the hand without
// the tile played.
type bonusFunc func(tile domino.Tile, after *game.Board, rest []domino.Tile, state *game.State) float64

// enumerate offers every hand tile at every position the board exposes and
// keeps those the mode validates, so the result agrees with ValidateMove.
func enumerate(m game.Mode, w Weights, p *game.Player, board *game.Board, state *game.State, bonus bonusFunc) []game.Move {
	if p == nil {
		return nil
	}
	var moves []game.Move
	positions := board.Positions()
	for _, tile := range p.Hand {
		for _, pos := range positions {
			if !m.ValidateMove(tile, pos, board, state) {
				continue
			}
			moves = append(moves, game.Move{
				Tile:           tile,
				Position:       pos,
				HeuristicScore: potentialScore(m, w, tile, pos, p, board, state, bonus),
			})
		}
	}
	return moves
}

// potentialScore ranks a candidate move. It plays the move on a copy of the
// board; the live board is never touched.
func potentialScore(m game.Mode, w Weights, tile domino.Tile, pos game.Position, p *game.Player, board *game.Board, state *game.State, bonus bonusFunc) float64 {
	score := w.PipValue * float64(tile.Value())

	rest := without(p.Hand, tile)
	if len(rest) == 0 {
		score += w.EmptyHandBonus
	}
	if tile.IsDouble() {
		score += w.DoubleBonus
	}

	after := board.Clone()
	if err := after.PlaceTile(tile, pos); err != nil {
		return score
	}
	score += w.ScoreMultiplier * float64(m.CalculateScore(tile, after, state))
	if bonus != nil {
		score += bonus(tile, after, rest, state)
	}
	return score
}

func without(hand []domino.Tile, tile domino.Tile) []domino.Tile {
	rest := make([]domino.Tile, 0, len(hand))
	removed := false
	for _, t := range hand {
		if !removed && t.Equal(tile) {
			removed = true
			continue
		}
		rest = append(rest, t)
	}
	return rest
}

// playableEnds counts the open ends that at least one tile of hand matches.
func playableEnds(board *game.Board, hand []domino.Tile) int {
	n := 0
	for _, end := range board.OpenEnds() {
		for _, t := range hand {
			if t.HasValue(end.Value) {
				n++
				break
			}
		}
	}
	return n
}

// unseenTiles returns the tiles of the set that are neither on the board nor
// in hand. Opponents' hands and the boneyard are drawn from these.
func unseenTiles(maxPips int, board *game.Board, hand []domino.Tile) []domino.Tile {
	seen := make(map[domino.Tile]bool, board.Len()+len(hand))
	for _, t := range board.Tiles() {
		seen[t.Canonical()] = true
	}
	for _, t := range hand {
		seen[t.Canonical()] = true
	}
	var unseen []domino.Tile
	for _, t := range domino.FullSet(maxPips) {
		if !seen[t] {
			unseen = append(unseen, t)
		}
	}
	return unseen
}

// multipleOfFive returns sum when it is a positive multiple of five, else 0.
func multipleOfFive(sum int) int {
	if sum > 0 && sum%5 == 0 {
		return sum
	}
	return 0
}

// roundNearestFive rounds to the nearest multiple of five.
func roundNearestFive(n int) int {
	return (n + 2) / 5 * 5
}

// roundDownFive rounds down to a multiple of five.
func roundDownFive(n int) int {
	return n / 5 * 5
}
