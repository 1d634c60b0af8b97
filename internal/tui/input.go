package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Paulmait/dominauts/domino"
	"github.com/Paulmait/dominauts/internal/game"
)

type commandKind int

const (
	cmdContinue commandKind = iota
	cmdPlayIndex
	cmdPlayTile
	cmdDraw
	cmdPass
	cmdSave
	cmdHelp
	cmdQuit
)

type command struct {
	kind   commandKind
	index  int // 0-based, cmdPlayIndex
	tile   domino.Tile
	pos    game.Position
	hasPos bool
}

var errAmbiguousMove = errors.New("that tile fits more than one end, add a position (left, right, north...)")

// parseCommand turns a line of user input into a command.
//
//	<n>            play the n-th legal move
//	<tile> [pos]   play a tile, e.g. "6|4 left" or "6-4 r"
//	draw, pass, save, help, quit
//	(empty)        continue to the next round
func parseCommand(input string) (command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return command{kind: cmdContinue}, nil
	}

	switch fields[0] {
	case "draw", "d":
		return command{kind: cmdDraw}, nil
	case "pass", "p":
		return command{kind: cmdPass}, nil
	case "next", "n":
		return command{kind: cmdContinue}, nil
	case "save":
		return command{kind: cmdSave}, nil
	case "help", "h", "?":
		return command{kind: cmdHelp}, nil
	case "quit", "q", "exit":
		return command{kind: cmdQuit}, nil
	}

	if n, err := strconv.Atoi(fields[0]); err == nil {
		if n < 1 {
			return command{}, fmt.Errorf("move numbers start at 1")
		}
		if len(fields) > 1 {
			return command{}, fmt.Errorf("unexpected %q after move number", fields[1])
		}
		return command{kind: cmdPlayIndex, index: n - 1}, nil
	}

	tile, err := domino.ParseTile(fields[0])
	if err != nil {
		return command{}, fmt.Errorf("unknown command %q, type help", fields[0])
	}
	cmd := command{kind: cmdPlayTile, tile: tile}
	switch len(fields) {
	case 1:
	case 2:
		pos, err := game.ParsePosition(fields[1])
		if err != nil {
			return command{}, err
		}
		cmd.pos, cmd.hasPos = pos, true
	default:
		return command{}, fmt.Errorf("too many words, expected a tile and a position")
	}
	return cmd, nil
}

// resolveMove matches a command against the legal moves.
func resolveMove(cmd command, moves []game.Move) (game.Move, error) {
	if cmd.kind == cmdPlayIndex {
		if cmd.index >= len(moves) {
			return game.Move{}, fmt.Errorf("there are only %d legal moves", len(moves))
		}
		return moves[cmd.index], nil
	}

	var matches []game.Move
	for _, m := range moves {
		if !m.Tile.Equal(cmd.tile) {
			continue
		}
		if cmd.hasPos && m.Position != cmd.pos {
			continue
		}
		matches = append(matches, m)
	}
	switch len(matches) {
	case 0:
		if cmd.hasPos {
			// Let the engine explain why the move is illegal.
			return game.Move{Tile: cmd.tile, Position: cmd.pos}, nil
		}
		return game.Move{}, fmt.Errorf("%s cannot be played", cmd.tile)
	case 1:
		return matches[0], nil
	}
	return game.Move{}, errAmbiguousMove
}

const helpText = `Commands:
  <n>            play move number n from the list
  <tile> [pos]   play a tile, e.g. "6|4 left", "5-5 n"
  draw           take a tile from the boneyard
  pass           draw as allowed, then pass when nothing fits
  enter          deal the next round when one is over
  save           save the game
  quit           leave the table`
