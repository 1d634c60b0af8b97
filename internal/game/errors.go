package game

import (
	"errors"
	"fmt"

	"github.com/Paulmait/dominauts/domino"
)

var (
	// ErrInvalidMove is the category of every rejected submission. The game
	// state is unchanged when it is returned.
	ErrInvalidMove = errors.New("invalid move")

	ErrNotYourTurn     = errors.New("not your turn")
	ErrTileNotInHand   = errors.New("tile not in hand")
	ErrIllegalMove     = errors.New("move not allowed here")
	ErrRoundNotActive  = errors.New("no round in progress")
	ErrDrawNotAllowed  = errors.New("drawing not allowed")
	ErrBoneyardEmpty   = errors.New("boneyard is empty")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrRoundInProgress = errors.New("round still in progress")
	ErrGameOver        = errors.New("game is over")

	// ErrIllegalConfiguration means a round cannot be dealt for the chosen
	// variant and players. No state is created.
	ErrIllegalConfiguration = errors.New("illegal mode configuration")

	// ErrStructuralInvariant signals a defect: the board or a mode reached a
	// state that validation should have made impossible.
	ErrStructuralInvariant = errors.New("structural invariant violated")

	// ErrBoardEmpty is returned when end values are requested before the
	// opening tile.
	ErrBoardEmpty = errors.New("board is empty")
)

// MoveError describes a rejected submission. Its message names the failed
// precondition only.
type MoveError struct {
	Player   int
	Tile     domino.Tile
	Position Position
	Reason   error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidMove, e.Reason)
}

// Unwrap exposes both ErrInvalidMove and the specific reason to errors.Is.
func (e *MoveError) Unwrap() []error {
	return []error{ErrInvalidMove, e.Reason}
}

// ConfigError is returned by StartRound when the variant cannot be dealt.
type ConfigError struct {
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrIllegalConfiguration, e.Detail)
}

func (e *ConfigError) Unwrap() error {
	return ErrIllegalConfiguration
}

func configErrorf(format string, args ...any) error {
	return &ConfigError{Detail: fmt.Sprintf(format, args...)}
}

func rejectMove(player int, tile domino.Tile, pos Position, reason error) error {
	return &MoveError{Player: player, Tile: tile, Position: pos, Reason: reason}
}
