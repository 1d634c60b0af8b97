package game

import (
	"fmt"

	"github.com/Paulmait/dominauts/domino"
)

// Move is a legal play offered by a Mode. HeuristicScore ranks moves for
// automated players only; it has no bearing on legality or scoring.
type Move struct {
	Tile           domino.Tile `json:"tile"`
	Position       Position    `json:"position"`
	HeuristicScore float64     `json:"heuristic_score"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s@%s", m.Tile, m.Position)
}

// ModeInfo is the fixed configuration of a variant.
type ModeInfo struct {
	Name           string
	DisplayName    string
	Board          BoardKind
	CanDraw        bool
	MaxPips        int
	TilesPerPlayer int
	MinPlayers     int
	MaxPlayers     int
	TargetScore    int
}

// Validate checks that the variant can deal a round for the given number of
// players.
func (i ModeInfo) Validate(players int) error {
	if players < i.MinPlayers || players > i.MaxPlayers {
		if i.MinPlayers == i.MaxPlayers {
			return configErrorf("%s requires exactly %d players, got %d", i.Name, i.MinPlayers, players)
		}
		return configErrorf("%s requires %d-%d players, got %d", i.Name, i.MinPlayers, i.MaxPlayers, players)
	}
	if i.TilesPerPlayer <= 0 {
		return configErrorf("%s deals %d tiles per player", i.Name, i.TilesPerPlayer)
	}
	if need, have := i.TilesPerPlayer*players, domino.SetSize(i.MaxPips); need > have {
		return configErrorf("%s needs %d tiles for %d players but a double-%d set has %d",
			i.Name, need, players, i.MaxPips, have)
	}
	return nil
}

// Mode supplies the rules of one variant. Implementations must keep
// GetValidMoves and ValidateMove in agreement: every returned move validates
// and every (tile, position) not returned does not.
type Mode interface {
	Info() ModeInfo

	// GetValidMoves enumerates every legal (tile, position) pair for player.
	GetValidMoves(player *Player, board *Board, state *State) []Move

	// ValidateMove is the authoritative legality check. It must not mutate
	// its arguments.
	ValidateMove(tile domino.Tile, pos Position, board *Board, state *State) bool

	// OnMoveExecuted runs after the tile is on the board. An error means the
	// board no longer satisfies the variant's structural invariants.
	OnMoveExecuted(tile domino.Tile, pos Position, board *Board, state *State) error

	// CalculateScore returns the points earned by the move just applied.
	CalculateScore(tile domino.Tile, board *Board, state *State) int

	// CalculateRoundScore returns the settlement for state.Winner once the
	// round has ended.
	CalculateRoundScore(state *State) int
}

// Opener is implemented by modes that dictate the opening tile. The engine
// seats the holder of that tile as round leader.
type Opener interface {
	RequiredOpening(state *State) (domino.Tile, bool)
}
