package domino

import (
	"fmt"
	"strconv"
	"strings"
)

// StandardMaxPips is the highest pip value of a double-six set.
const StandardMaxPips = 6

// Tile is a single domino. Left and Right describe orientation once the tile
// has been placed; in a hand the orientation carries no meaning.
type Tile struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// NewTile returns the tile a|b.
func NewTile(a, b int) Tile {
	return Tile{Left: a, Right: b}
}

// HasValue reports whether either half shows v pips.
func (t Tile) HasValue(v int) bool {
	return t.Left == v || t.Right == v
}

// IsDouble reports whether both halves are equal.
func (t Tile) IsDouble() bool {
	return t.Left == t.Right
}

// Value returns the total pip count of the tile.
func (t Tile) Value() int {
	return t.Left + t.Right
}

// Flip returns the tile with its halves swapped.
func (t Tile) Flip() Tile {
	return Tile{Left: t.Right, Right: t.Left}
}

// Canonical returns the orientation with the lower pip first.
func (t Tile) Canonical() Tile {
	if t.Left > t.Right {
		return t.Flip()
	}
	return t
}

// Equal compares two tiles ignoring orientation.
func (t Tile) Equal(o Tile) bool {
	return t.Canonical() == o.Canonical()
}

// Other returns the pip on the opposite half from v. The second result is
// false when the tile does not show v at all.
func (t Tile) Other(v int) (int, bool) {
	switch v {
	case t.Left:
		return t.Right, true
	case t.Right:
		return t.Left, true
	}
	return 0, false
}

// InRange reports whether both halves lie within 0..maxPips.
func (t Tile) InRange(maxPips int) bool {
	return t.Left >= 0 && t.Right >= 0 && t.Left <= maxPips && t.Right <= maxPips
}

// String returns the tile as "left|right".
func (t Tile) String() string {
	return strconv.Itoa(t.Left) + "|" + strconv.Itoa(t.Right)
}

// ParseTile parses "6|4", "6-4" or "6:4".
func ParseTile(s string) (Tile, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, "|-:")
	if sep <= 0 || sep == len(s)-1 {
		return Tile{}, fmt.Errorf("invalid tile string: %q", s)
	}
	left, err := strconv.Atoi(s[:sep])
	if err != nil {
		return Tile{}, fmt.Errorf("invalid tile %q: %w", s, err)
	}
	right, err := strconv.Atoi(s[sep+1:])
	if err != nil {
		return Tile{}, fmt.Errorf("invalid tile %q: %w", s, err)
	}
	if left < 0 || right < 0 {
		return Tile{}, fmt.Errorf("invalid tile %q: negative pips", s)
	}
	return NewTile(left, right), nil
}

// MustParseTiles parses a space separated list of tiles and panics on error.
// Intended for tests and fixtures.
func MustParseTiles(s string) []Tile {
	fields := strings.Fields(s)
	tiles := make([]Tile, 0, len(fields))
	for _, f := range fields {
		t, err := ParseTile(f)
		if err != nil {
			panic(err)
		}
		tiles = append(tiles, t)
	}
	return tiles
}

// SetSize returns the number of tiles in a double-maxPips set.
func SetSize(maxPips int) int {
	if maxPips < 0 {
		return 0
	}
	return (maxPips + 1) * (maxPips + 2) / 2
}

// FullSet returns every tile of a double-maxPips set in canonical order:
// 0|0, 0|1, ..., 0|N, 1|1, ...
func FullSet(maxPips int) []Tile {
	tiles := make([]Tile, 0, SetSize(maxPips))
	for a := 0; a <= maxPips; a++ {
		for b := a; b <= maxPips; b++ {
			tiles = append(tiles, NewTile(a, b))
		}
	}
	return tiles
}

// PipCount sums the pips on all tiles.
func PipCount(tiles []Tile) int {
	total := 0
	for _, t := range tiles {
		total += t.Value()
	}
	return total
}

// IndexOf returns the position of t in tiles ignoring orientation, or -1.
func IndexOf(tiles []Tile, t Tile) int {
	for i, candidate := range tiles {
		if candidate.Equal(t) {
			return i
		}
	}
	return -1
}

// HighestDouble returns the double with the most pips among tiles.
func HighestDouble(tiles []Tile) (Tile, bool) {
	var best Tile
	found := false
	for _, t := range tiles {
		if !t.IsDouble() {
			continue
		}
		if !found || t.Left > best.Left {
			best = t
			found = true
		}
	}
	return best, found
}

// FormatTiles renders tiles separated by spaces.
func FormatTiles(tiles []Tile) string {
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
