package game

import (
	"slices"

	"github.com/Paulmait/dominauts/domino"
)

// PlayerKind distinguishes interactive players from automated ones.
type PlayerKind int

const (
	Human PlayerKind = iota
	Bot
)

func (k PlayerKind) String() string {
	if k == Human {
		return "human"
	}
	return "bot"
}

// Player is a seat at the table. Score persists across the rounds of a game.
type Player struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Kind  PlayerKind    `json:"kind"`
	Hand  []domino.Tile `json:"hand"`
	Score int           `json:"score"`
}

// NewPlayer creates a player with an empty hand.
func NewPlayer(id, name string, kind PlayerKind) *Player {
	return &Player{ID: id, Name: name, Kind: kind, Hand: []domino.Tile{}}
}

// HasTile checks hand membership ignoring orientation.
func (p *Player) HasTile(t domino.Tile) bool {
	return domino.IndexOf(p.Hand, t) >= 0
}

// RemoveTile takes t out of the hand. It returns false if t was not held.
func (p *Player) RemoveTile(t domino.Tile) bool {
	i := domino.IndexOf(p.Hand, t)
	if i < 0 {
		return false
	}
	p.Hand = slices.Delete(p.Hand, i, i+1)
	return true
}

// PipCount returns the pips left in hand.
func (p *Player) PipCount() int {
	return domino.PipCount(p.Hand)
}

// HandEmpty reports whether the player has gone out.
func (p *Player) HandEmpty() bool {
	return len(p.Hand) == 0
}
