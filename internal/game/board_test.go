package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paulmait/dominauts/domino"
)

func tile(s string) domino.Tile {
	t, err := domino.ParseTile(s)
	if err != nil {
		panic(err)
	}
	return t
}

func linearBoard(t *testing.T, plays ...string) *Board {
	t.Helper()
	b := NewBoard(Linear)
	for i, play := range plays {
		pos := Center
		if i > 0 {
			pos = Right
			if play[0] == '<' {
				pos = Left
				play = play[1:]
			}
		}
		require.NoError(t, b.PlaceTile(tile(play), pos))
	}
	return b
}

func TestEmptyBoard(t *testing.T) {
	t.Parallel()
	b := NewBoard(Linear)

	assert.True(t, b.IsEmpty())
	assert.Empty(t, b.OpenEnds())
	assert.Equal(t, []Position{Center}, b.Positions())

	_, _, err := b.EndValues()
	assert.ErrorIs(t, err, ErrBoardEmpty)
}

func TestLinearFlipOnEachSide(t *testing.T) {
	t.Parallel()
	b := NewBoard(Linear)

	require.NoError(t, b.PlaceTile(tile("3|5"), Center))
	// Right end is 5; 6|5 must be flipped so the 5 faces inward.
	require.NoError(t, b.PlaceTile(tile("6|5"), Right))
	// Left end is 3; 3|2 must be flipped so the 3 faces inward.
	require.NoError(t, b.PlaceTile(tile("3|2"), Left))

	assert.Equal(t, []domino.Tile{tile("2|3"), tile("3|5"), tile("5|6")}, b.Line)

	left, right, err := b.EndValues()
	require.NoError(t, err)
	assert.Equal(t, 2, left)
	assert.Equal(t, 6, right)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []Placement{
		{Tile: tile("3|5"), Position: Center},
		{Tile: tile("5|6"), Position: Right},
		{Tile: tile("2|3"), Position: Left},
	}, b.Placements)
}

func TestLinearStructuralErrors(t *testing.T) {
	t.Parallel()

	t.Run("first tile off center", func(t *testing.T) {
		b := NewBoard(Linear)
		err := b.PlaceTile(tile("1|2"), Left)
		assert.ErrorIs(t, err, ErrStructuralInvariant)
		assert.True(t, b.IsEmpty())
	})

	t.Run("tile does not match", func(t *testing.T) {
		b := linearBoard(t, "1|2")
		err := b.PlaceTile(tile("3|4"), Right)
		assert.ErrorIs(t, err, ErrStructuralInvariant)
		assert.Equal(t, 1, b.Len())
	})

	t.Run("direction on linear board", func(t *testing.T) {
		b := linearBoard(t, "1|2")
		err := b.PlaceTile(tile("2|4"), North)
		assert.ErrorIs(t, err, ErrStructuralInvariant)
	})

	t.Run("cross center on linear board", func(t *testing.T) {
		b := NewBoard(Linear)
		assert.ErrorIs(t, b.PlaceCrossCenter(tile("6|6")), ErrStructuralInvariant)
	})
}

func TestEndSum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		plays []string
		want  int
	}{
		{"empty", nil, 0},
		{"single tile counts whole", []string{"5|5"}, 10},
		{"single non-double", []string{"3|2"}, 5},
		{"plain ends", []string{"5|1", "1|3"}, 8},
		{"double at one end counts twice", []string{"5|2", "2|5", "5|5"}, 15},
		{"doubles at both ends", []string{"5|5", "5|0", "0|0"}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := linearBoard(t, tt.plays...)
			assert.Equal(t, tt.want, b.EndSum())
		})
	}
}

func TestCrossBoard(t *testing.T) {
	t.Parallel()
	b := NewBoard(Cross)

	assert.ErrorIs(t, b.PlaceCrossCenter(tile("6|4")), ErrStructuralInvariant)
	assert.True(t, b.IsEmpty(), "rejected center must not be placed")
	assert.False(t, b.CanPlace(tile("6|4"), Center))
	assert.True(t, b.CanPlace(tile("6|6"), Center))

	require.NoError(t, b.PlaceTile(tile("6|6"), Center))
	assert.Equal(t, []Position{North, East, South, West}, b.OpenDirections())
	for _, end := range b.OpenEnds() {
		assert.Equal(t, 6, end.Value)
	}
	assert.Equal(t, 24, b.CrossSum())

	assert.True(t, b.CanPlaceOnCrossEnd(tile("4|6"), North))
	assert.False(t, b.CanPlaceOnCrossEnd(tile("4|3"), North))
	assert.False(t, b.CanPlaceOnCrossEnd(tile("4|6"), Left))

	require.NoError(t, b.PlaceTileOnCross(tile("4|6"), North))
	end, ok := b.End(North)
	require.True(t, ok)
	assert.Equal(t, 4, end.Value)
	assert.Equal(t, []domino.Tile{tile("6|4")}, b.Arms[armIndex(North)].Tiles)
	assert.Equal(t, 22, b.CrossSum())

	err := b.PlaceTileOnCross(tile("6|1"), North)
	assert.ErrorIs(t, err, ErrStructuralInvariant)

	err = b.PlaceTile(tile("6|6"), Center)
	assert.ErrorIs(t, err, ErrStructuralInvariant, "center can only be placed once")

	_, _, err = b.EndValues()
	assert.ErrorIs(t, err, ErrStructuralInvariant)
}

func TestCrossArmBeforeCenter(t *testing.T) {
	t.Parallel()
	b := NewBoard(Cross)
	err := b.PlaceTileOnCross(tile("6|4"), East)
	assert.True(t, errors.Is(err, ErrStructuralInvariant))
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()
	b := NewBoard(Cross)
	require.NoError(t, b.PlaceTile(tile("5|5"), Center))

	c := b.Clone()
	require.NoError(t, c.PlaceTile(tile("5|3"), West))
	c.Spinner.Left = 0

	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 5, b.Arms[armIndex(West)].Value)
	assert.Empty(t, b.Arms[armIndex(West)].Tiles)
	assert.Equal(t, 5, b.Spinner.Left)
}

func TestReset(t *testing.T) {
	t.Parallel()
	b := linearBoard(t, "1|2", "2|3")
	b.Reset()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, Linear, b.Kind)
	assert.Empty(t, b.Line)
}

func TestParsePosition(t *testing.T) {
	t.Parallel()
	for _, pos := range []Position{Center, Left, Right, North, East, South, West} {
		got, err := ParsePosition(pos.String())
		require.NoError(t, err)
		assert.Equal(t, pos, got)

		short, err := ParsePosition(pos.String()[:1])
		require.NoError(t, err)
		assert.Equal(t, pos, short)
	}
	_, err := ParsePosition("up")
	assert.Error(t, err)
}
