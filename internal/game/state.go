package game

import (
	"fmt"

	"github.com/Paulmait/dominauts/domino"
)

// Phase is the engine's position in the turn state machine.
type Phase int

const (
	// NotStarted is the phase before the first StartRound.
	NotStarted Phase = iota
	AwaitingMove
	MoveApplied
	RoundOver
	GameOver
)

var phaseNames = [...]string{"not_started", "awaiting_move", "move_applied", "round_over", "game_over"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(b []byte) error {
	for i, name := range phaseNames {
		if name == string(b) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase: %q", string(b))
}

// Action is the kind of entry in the move history.
type Action string

const (
	ActionPlay Action = "play"
	ActionDraw Action = "draw"
	ActionPass Action = "pass"
)

// MoveRecord is one entry of the round history.
type MoveRecord struct {
	Round    int         `json:"round"`
	Player   int         `json:"player"`
	Action   Action      `json:"action"`
	Tile     domino.Tile `json:"tile,omitzero"`
	Position Position    `json:"position,omitempty"`
	Score    int         `json:"score,omitempty"`
}

// EndReason explains how a round finished.
type EndReason string

const (
	// Domino means a player emptied their hand.
	Domino EndReason = "domino"
	// Blocked means no player could move and nobody could draw.
	Blocked EndReason = "blocked"
)

// RoundResult is the settlement of a finished round.
type RoundResult struct {
	Round     int       `json:"round"`
	Reason    EndReason `json:"reason"`
	Winner    int       `json:"winner"` // -1 when a blocked round is tied
	Points    int       `json:"points"`
	PipCounts []int     `json:"pip_counts"`
}

// State is the authoritative game state. It is plain data so a session
// layer can serialise it for save and resume.
type State struct {
	GameID      string        `json:"game_id"`
	Mode        string        `json:"mode"`
	MaxPips     int           `json:"max_pips"`
	HandSize    int           `json:"tiles_per_player"`
	Players     []*Player     `json:"players"`
	Board       *Board        `json:"board"`
	Boneyard    []domino.Tile `json:"boneyard"`
	Current     int           `json:"current"`
	Leader      int           `json:"leader"`
	Round       int           `json:"round"`
	Phase       Phase         `json:"phase"`
	Winner      int           `json:"winner"`
	TargetScore int           `json:"target_score"`
	MaxRounds   int           `json:"max_rounds,omitempty"`
	History     []MoveRecord  `json:"history"`
	Rounds      []RoundResult `json:"rounds"`
}

// CurrentPlayer returns the acting player, or nil outside a round.
func (s *State) CurrentPlayer() *Player {
	if s.Current < 0 || s.Current >= len(s.Players) {
		return nil
	}
	return s.Players[s.Current]
}

// NextSeat returns the seat after i in round-robin order.
func (s *State) NextSeat(i int) int {
	return (i + 1) % len(s.Players)
}

// PipCounts returns the pips left in each hand by seat.
func (s *State) PipCounts() []int {
	counts := make([]int, len(s.Players))
	for i, p := range s.Players {
		counts[i] = p.PipCount()
	}
	return counts
}

// OpponentPips sums the hands of every seat except seat.
func (s *State) OpponentPips(seat int) int {
	total := 0
	for i, p := range s.Players {
		if i != seat {
			total += p.PipCount()
		}
	}
	return total
}

// LastRound returns the most recent settlement, if any.
func (s *State) LastRound() (RoundResult, bool) {
	if len(s.Rounds) == 0 {
		return RoundResult{}, false
	}
	return s.Rounds[len(s.Rounds)-1], true
}

// Leaders returns the seats with the highest score.
func (s *State) Leaders() []int {
	best := -1
	var seats []int
	for i, p := range s.Players {
		switch {
		case p.Score > best:
			best = p.Score
			seats = []int{i}
		case p.Score == best:
			seats = append(seats, i)
		}
	}
	return seats
}
