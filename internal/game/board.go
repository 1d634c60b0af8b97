package game

import (
	"fmt"

	"github.com/Paulmait/dominauts/domino"
)

// End is an exposed pip value a tile may be matched against.
type End struct {
	Position Position `json:"position"`
	Value    int      `json:"value"`
	Double   bool     `json:"double"` // the exposed tile at this end is a double
}

// Placement records one tile as it was laid, in play order.
type Placement struct {
	Tile     domino.Tile `json:"tile"` // oriented as it sits on the board
	Position Position    `json:"position"`
}

// Arm is one direction of a cross board. Tiles are stored outward from the
// center, each oriented with its inward pip on the Left.
type Arm struct {
	Value int           `json:"value"`
	Open  bool          `json:"open"`
	Tiles []domino.Tile `json:"tiles,omitempty"`
}

// Board is the shared layout. It is append-only within a round.
//
// Linear boards keep Line ordered from the left end to the right end with
// every tile oriented so adjacent halves touch. Cross boards keep a center
// double and four arms.
type Board struct {
	Kind       BoardKind     `json:"kind"`
	Line       []domino.Tile `json:"line,omitempty"`
	Spinner    *domino.Tile  `json:"spinner,omitempty"`
	Arms       [4]Arm        `json:"arms"`
	Placements []Placement   `json:"placements"`
}

// NewBoard returns an empty board of the given kind.
func NewBoard(kind BoardKind) *Board {
	return &Board{Kind: kind, Placements: []Placement{}}
}

// IsEmpty reports whether no tile has been placed this round.
func (b *Board) IsEmpty() bool {
	return len(b.Placements) == 0
}

// Len returns the number of tiles on the board.
func (b *Board) Len() int {
	return len(b.Placements)
}

// Tiles returns every tile on the board in play order.
func (b *Board) Tiles() []domino.Tile {
	tiles := make([]domino.Tile, len(b.Placements))
	for i, p := range b.Placements {
		tiles[i] = p.Tile
	}
	return tiles
}

// EndValues returns the left and right exposed pips of a linear board.
// Callers must check IsEmpty first.
func (b *Board) EndValues() (int, int, error) {
	if b.Kind != Linear {
		return 0, 0, fmt.Errorf("%w: end values requested from a %s board", ErrStructuralInvariant, b.Kind)
	}
	if len(b.Line) == 0 {
		return 0, 0, ErrBoardEmpty
	}
	return b.Line[0].Left, b.Line[len(b.Line)-1].Right, nil
}

// OpenEnds lists every end a tile may currently attach to. An empty board
// has none; the opening tile goes to Center.
func (b *Board) OpenEnds() []End {
	switch b.Kind {
	case Linear:
		if len(b.Line) == 0 {
			return nil
		}
		first, last := b.Line[0], b.Line[len(b.Line)-1]
		return []End{
			{Position: Left, Value: first.Left, Double: first.IsDouble()},
			{Position: Right, Value: last.Right, Double: last.IsDouble()},
		}
	case Cross:
		if b.Spinner == nil {
			return nil
		}
		ends := make([]End, 0, len(Directions))
		for _, dir := range Directions {
			arm := b.Arms[armIndex(dir)]
			if !arm.Open {
				continue
			}
			double := len(arm.Tiles) == 0 || arm.Tiles[len(arm.Tiles)-1].IsDouble()
			ends = append(ends, End{Position: dir, Value: arm.Value, Double: double})
		}
		return ends
	}
	return nil
}

// End returns the open end at pos.
func (b *Board) End(pos Position) (End, bool) {
	for _, end := range b.OpenEnds() {
		if end.Position == pos {
			return end, true
		}
	}
	return End{}, false
}

// Positions returns the positions a tile could be offered to right now:
// Center on an empty board, otherwise the open ends.
func (b *Board) Positions() []Position {
	if b.IsEmpty() {
		return []Position{Center}
	}
	ends := b.OpenEnds()
	positions := make([]Position, len(ends))
	for i, end := range ends {
		positions[i] = end.Position
	}
	return positions
}

// CanPlace reports whether tile physically fits at pos. It knows nothing of
// variant rules such as a required opening double.
func (b *Board) CanPlace(tile domino.Tile, pos Position) bool {
	if b.IsEmpty() {
		if pos != Center {
			return false
		}
		return b.Kind != Cross || tile.IsDouble()
	}
	if b.Kind == Cross {
		return b.CanPlaceOnCrossEnd(tile, pos)
	}
	end, ok := b.End(pos)
	return ok && tile.HasValue(end.Value)
}

// PlaceTile attaches tile at pos, orienting it so the matching half faces
// inward. It does not apply variant rules; a tile that cannot physically be
// attached is a structural error and leaves the board untouched.
func (b *Board) PlaceTile(tile domino.Tile, pos Position) error {
	if b.Kind == Cross {
		if pos == Center {
			return b.PlaceCrossCenter(tile)
		}
		return b.PlaceTileOnCross(tile, pos)
	}

	if b.IsEmpty() {
		if pos != Center {
			return fmt.Errorf("%w: first tile must go to center, got %s", ErrStructuralInvariant, pos)
		}
		b.Line = append(b.Line, tile)
		b.record(tile, pos)
		return nil
	}

	end, ok := b.End(pos)
	if !ok {
		return fmt.Errorf("%w: no open end at %s", ErrStructuralInvariant, pos)
	}
	if !tile.HasValue(end.Value) {
		return fmt.Errorf("%w: tile %s does not match %s end %d", ErrStructuralInvariant, tile, pos, end.Value)
	}

	switch pos {
	case Left:
		oriented := tile
		if oriented.Right != end.Value {
			oriented = oriented.Flip()
		}
		b.Line = append([]domino.Tile{oriented}, b.Line...)
		b.record(oriented, pos)
	case Right:
		oriented := tile
		if oriented.Left != end.Value {
			oriented = oriented.Flip()
		}
		b.Line = append(b.Line, oriented)
		b.record(oriented, pos)
	}
	return nil
}

// PlaceCrossCenter lays the spinner double and opens all four directions at
// its pip value.
func (b *Board) PlaceCrossCenter(tile domino.Tile) error {
	if b.Kind != Cross {
		return fmt.Errorf("%w: cross center on a %s board", ErrStructuralInvariant, b.Kind)
	}
	if !b.IsEmpty() {
		return fmt.Errorf("%w: cross center already placed", ErrStructuralInvariant)
	}
	if !tile.IsDouble() {
		return fmt.Errorf("%w: cross center %s is not a double", ErrStructuralInvariant, tile)
	}
	spinner := tile
	b.Spinner = &spinner
	for i := range b.Arms {
		b.Arms[i] = Arm{Value: tile.Left, Open: true}
	}
	b.record(tile, Center)
	return nil
}

// CanPlaceOnCrossEnd reports whether dir is open and tile matches its value.
func (b *Board) CanPlaceOnCrossEnd(tile domino.Tile, dir Position) bool {
	if b.Kind != Cross || b.Spinner == nil || !dir.IsDirection() {
		return false
	}
	arm := b.Arms[armIndex(dir)]
	return arm.Open && tile.HasValue(arm.Value)
}

// PlaceTileOnCross extends one arm; the arm's value becomes the tile's
// outward pip.
func (b *Board) PlaceTileOnCross(tile domino.Tile, dir Position) error {
	if !dir.IsDirection() {
		return fmt.Errorf("%w: %s is not a cross direction", ErrStructuralInvariant, dir)
	}
	if b.Kind != Cross || b.Spinner == nil {
		return fmt.Errorf("%w: no cross ends tracked", ErrStructuralInvariant)
	}
	if !b.CanPlaceOnCrossEnd(tile, dir) {
		return fmt.Errorf("%w: tile %s does not match %s end %d", ErrStructuralInvariant, tile, dir, b.Arms[armIndex(dir)].Value)
	}

	arm := &b.Arms[armIndex(dir)]
	oriented := tile
	if oriented.Left != arm.Value {
		oriented = oriented.Flip()
	}
	arm.Tiles = append(arm.Tiles, oriented)
	arm.Value = oriented.Right
	b.record(oriented, dir)
	return nil
}

// EndSum is the total of the exposed ends of a linear board, counting a
// double at an end twice. A lone opening tile counts its full pip value.
func (b *Board) EndSum() int {
	switch len(b.Line) {
	case 0:
		return 0
	case 1:
		return b.Line[0].Value()
	}
	sum := 0
	for _, end := range b.OpenEnds() {
		if end.Double {
			sum += 2 * end.Value
		} else {
			sum += end.Value
		}
	}
	return sum
}

// CrossSum is the total of the open directional values of a cross board.
func (b *Board) CrossSum() int {
	sum := 0
	for _, end := range b.OpenEnds() {
		sum += end.Value
	}
	return sum
}

// OpenDirections returns the open arms of a cross board.
func (b *Board) OpenDirections() []Position {
	if b.Kind != Cross || b.Spinner == nil {
		return nil
	}
	var dirs []Position
	for _, dir := range Directions {
		if b.Arms[armIndex(dir)].Open {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Clone returns a deep copy that can be mutated freely.
func (b *Board) Clone() *Board {
	c := &Board{
		Kind:       b.Kind,
		Line:       append([]domino.Tile(nil), b.Line...),
		Placements: append([]Placement{}, b.Placements...),
	}
	if b.Spinner != nil {
		spinner := *b.Spinner
		c.Spinner = &spinner
	}
	for i, arm := range b.Arms {
		c.Arms[i] = Arm{Value: arm.Value, Open: arm.Open, Tiles: append([]domino.Tile(nil), arm.Tiles...)}
	}
	return c
}

// Reset clears the board for a new round.
func (b *Board) Reset() {
	*b = *NewBoard(b.Kind)
}

func (b *Board) record(tile domino.Tile, pos Position) {
	b.Placements = append(b.Placements, Placement{Tile: tile, Position: pos})
}
