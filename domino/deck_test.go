package domino

import (
	"testing"

	"github.com/Paulmait/dominauts/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckDealIsDisjointAndComplete(t *testing.T) {
	t.Parallel()
	deck := NewDeck(randutil.New(42), StandardMaxPips)

	seen := map[Tile]bool{}
	for range 4 {
		hand, err := deck.Deal(7)
		require.NoError(t, err)
		require.Len(t, hand, 7)
		for _, tile := range hand {
			assert.False(t, seen[tile.Canonical()], "tile %s dealt twice", tile)
			seen[tile.Canonical()] = true
		}
	}
	assert.Equal(t, 0, deck.Len())
	assert.Len(t, seen, SetSize(StandardMaxPips))
}

func TestDeckBoneyardHoldsTheRest(t *testing.T) {
	t.Parallel()
	deck := NewDeck(randutil.New(3), 9)

	var dealt []Tile
	for range 3 {
		hand, err := deck.Deal(9)
		require.NoError(t, err)
		dealt = append(dealt, hand...)
	}
	union := append(dealt, deck.Remaining()...)

	assert.Len(t, union, SetSize(9))
	assert.ElementsMatch(t, FullSet(9), canonicalAll(union))
}

func TestDeckDealTooMany(t *testing.T) {
	t.Parallel()
	deck := NewDeck(randutil.New(1), StandardMaxPips)
	_, err := deck.Deal(29)
	assert.Error(t, err)
	assert.Equal(t, 28, deck.Len(), "failed deal must not consume tiles")
}

func TestDeckShuffleIsReproducible(t *testing.T) {
	t.Parallel()
	a := NewDeck(randutil.New(99), StandardMaxPips)
	b := NewDeck(randutil.New(99), StandardMaxPips)
	c := NewDeck(randutil.New(100), StandardMaxPips)

	assert.Equal(t, a.Remaining(), b.Remaining())
	assert.NotEqual(t, a.Remaining(), c.Remaining())
}

func TestNewDeckFromTilesKeepsOrder(t *testing.T) {
	t.Parallel()
	tiles := MustParseTiles("6|6 1|2 3|4")
	deck := NewDeckFromTiles(tiles)

	hand, err := deck.Deal(2)
	require.NoError(t, err)
	assert.Equal(t, tiles[:2], hand)
	assert.Equal(t, tiles[2:], deck.Remaining())
}

func canonicalAll(tiles []Tile) []Tile {
	out := make([]Tile, len(tiles))
	for i, t := range tiles {
		out[i] = t.Canonical()
	}
	return out
}
