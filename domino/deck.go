package domino

import (
	"fmt"
	"math/rand/v2"
)

// Deck is an ordered pile of face-down tiles. Tiles are dealt from the top;
// whatever is left after the deal becomes the boneyard.
type Deck struct {
	tiles []Tile
	next  int
}

// NewDeck returns a full double-maxPips set shuffled with rng.
func NewDeck(rng *rand.Rand, maxPips int) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{tiles: FullSet(maxPips)}
	d.shuffle(rng)
	return d
}

// NewDeckFromTiles returns a deck that deals tiles in the given order.
func NewDeckFromTiles(tiles []Tile) *Deck {
	return &Deck{tiles: append([]Tile(nil), tiles...)}
}

// shuffle performs a Fisher-Yates shuffle.
func (d *Deck) shuffle(rng *rand.Rand) {
	d.next = 0
	for i := len(d.tiles) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.tiles[i], d.tiles[j] = d.tiles[j], d.tiles[i]
	}
}

// Deal removes n tiles from the top of the deck.
func (d *Deck) Deal(n int) ([]Tile, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot deal %d tiles", n)
	}
	if d.next+n > len(d.tiles) {
		return nil, fmt.Errorf("cannot deal %d tiles: only %d remaining", n, d.Len())
	}
	hand := append([]Tile(nil), d.tiles[d.next:d.next+n]...)
	d.next += n
	return hand, nil
}

// Remaining returns a copy of the undealt tiles.
func (d *Deck) Remaining() []Tile {
	return append([]Tile(nil), d.tiles[d.next:]...)
}

// Len returns the number of undealt tiles.
func (d *Deck) Len() int {
	return len(d.tiles) - d.next
}
