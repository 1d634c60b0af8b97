package game

import (
	"fmt"
	"strings"
)

// Position identifies where a tile attaches to the board.
type Position int

const (
	// Center is the first tile of a round (and the spinner of a cross board).
	Center Position = iota
	Left
	Right
	North
	East
	South
	West
)

// Directions lists the four arms of a cross board in clockwise order.
var Directions = [4]Position{North, East, South, West}

var positionNames = [...]string{"center", "left", "right", "north", "east", "south", "west"}

func (p Position) String() string {
	if p < 0 || int(p) >= len(positionNames) {
		return fmt.Sprintf("position(%d)", int(p))
	}
	return positionNames[p]
}

// IsDirection reports whether p is one of the cross arms.
func (p Position) IsDirection() bool {
	return p >= North && p <= West
}

// ParsePosition parses a position name; single letters are accepted.
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range positionNames {
		if s == name || (len(s) == 1 && s[0] == name[0]) {
			return Position(i), nil
		}
	}
	return 0, fmt.Errorf("unknown position: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(b []byte) error {
	v, err := ParsePosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func armIndex(p Position) int {
	return int(p - North)
}

// BoardKind selects the board topology.
type BoardKind int

const (
	Linear BoardKind = iota
	Cross
)

func (k BoardKind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Cross:
		return "cross"
	default:
		return fmt.Sprintf("board(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k BoardKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *BoardKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "linear":
		*k = Linear
	case "cross":
		*k = Cross
	default:
		return fmt.Errorf("unknown board kind: %q", string(b))
	}
	return nil
}
