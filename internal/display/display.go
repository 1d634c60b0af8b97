// Package display renders game state as styled terminal text. It is used by
// the interactive table and by the command line when watching bots play.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/Paulmait/dominauts/domino"
	"github.com/Paulmait/dominauts/internal/game"
)

// Display renders game elements with a fixed set of styles.
type Display struct {
	styles Styles
}

// New returns a Display whose color profile is detected from w.
func New(w io.Writer) *Display {
	return newDisplay(lipgloss.NewRenderer(w))
}

// NewPlain returns a Display that never emits escape sequences.
func NewPlain() *Display {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return newDisplay(r)
}

// NewWithProfile returns a Display for w using an explicit color profile.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Display {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return newDisplay(r)
}

func newDisplay(r *lipgloss.Renderer) *Display {
	return &Display{styles: NewStyles(r)}
}

// Styles returns the styles in use.
func (d *Display) Styles() Styles {
	return d.styles
}

// Tile renders one tile as [a|b]. Doubles are highlighted.
func (d *Display) Tile(t domino.Tile) string {
	style := d.styles.Tile
	if t.IsDouble() {
		style = d.styles.Double
	}
	return style.Render("[" + t.String() + "]")
}

// Tiles renders tiles side by side.
func (d *Display) Tiles(tiles []domino.Tile) string {
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = d.Tile(t)
	}
	return strings.Join(parts, " ")
}

// Hand renders a hand with 1-based indexes for selection.
func (d *Display) Hand(tiles []domino.Tile) string {
	if len(tiles) == 0 {
		return d.styles.Info.Render("(empty)")
	}
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = d.styles.Index.Render(strconv.Itoa(i+1)) + " " + d.Tile(t)
	}
	return strings.Join(parts, "  ")
}

// Board renders the layout with its open ends.
func (d *Display) Board(b *game.Board) string {
	if b.IsEmpty() {
		return d.styles.Info.Render("(no tiles played)")
	}
	if b.Kind == game.Cross {
		return d.crossBoard(b)
	}

	var sb strings.Builder
	sb.WriteString(d.Tiles(b.Line))
	sb.WriteString("\n")
	left, right, err := b.EndValues()
	if err != nil {
		return d.styles.Error.Render(err.Error())
	}
	fmt.Fprintf(&sb, "%s %s  %s %s  %s",
		d.styles.Info.Render("left"), d.styles.End.Render(strconv.Itoa(left)),
		d.styles.Info.Render("right"), d.styles.End.Render(strconv.Itoa(right)),
		d.styles.Info.Render(fmt.Sprintf("(ends total %d)", b.EndSum())))
	return sb.String()
}

func (d *Display) crossBoard(b *game.Board) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s  %s\n",
		d.styles.Info.Render("center"),
		d.styles.Spinner.Render("["+b.Spinner.String()+"]"),
		d.styles.Info.Render(fmt.Sprintf("(open total %d)", b.CrossSum())))
	for i, dir := range game.Directions {
		arm := b.Arms[i]
		line := fmt.Sprintf("%-5s ", dir)
		if len(arm.Tiles) > 0 {
			line += d.Tiles(arm.Tiles) + " "
		}
		if arm.Open {
			line += d.styles.End.Render("(" + strconv.Itoa(arm.Value) + ")")
		} else {
			line += d.styles.Info.Render("closed")
		}
		sb.WriteString(line)
		if i < len(game.Directions)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Moves renders a numbered list of legal moves.
func (d *Display) Moves(moves []game.Move) string {
	if len(moves) == 0 {
		return d.styles.Warning.Render("no legal moves")
	}
	lines := make([]string, len(moves))
	for i, m := range moves {
		lines[i] = fmt.Sprintf("%s %s %s %s",
			d.styles.Index.Render(fmt.Sprintf("%2d)", i+1)),
			d.Tile(m.Tile),
			d.styles.Info.Render("on"),
			m.Position)
	}
	return strings.Join(lines, "\n")
}

// Status renders a one-line header for the current round.
func (d *Display) Status(state *game.State, info game.ModeInfo) string {
	parts := []string{
		info.DisplayName,
		fmt.Sprintf("Round %d", state.Round),
		fmt.Sprintf("Target %d", state.TargetScore),
	}
	if info.CanDraw {
		parts = append(parts, fmt.Sprintf("Boneyard %d", len(state.Boneyard)))
	}
	return d.styles.Header.Render(strings.Join(parts, " · "))
}

// Scores renders the players with scores and hand sizes. The acting seat is
// marked. Pip totals are shown only when reveal is set.
func (d *Display) Scores(state *game.State, reveal bool) string {
	headers := []string{"", "Player", "Score", "Tiles"}
	if reveal {
		headers = append(headers, "Pips")
	}
	rows := make([][]string, len(state.Players))
	for i, p := range state.Players {
		marker := ""
		if i == state.Current && state.Phase == game.AwaitingMove {
			marker = "▶"
		}
		row := []string{marker, p.Name, strconv.Itoa(p.Score), strconv.Itoa(len(p.Hand))}
		if reveal {
			row = append(row, strconv.Itoa(p.PipCount()))
		}
		rows[i] = row
	}

	current := state.Current
	active := state.Phase == game.AwaitingMove
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(d.styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return d.styles.Info.Padding(0, 1)
			case active && row == current:
				return d.styles.Current.Padding(0, 1)
			case col == 2:
				return d.styles.Score.Padding(0, 1)
			}
			return d.styles.Tile.Padding(0, 1)
		})
	return t.Render()
}

// Record renders one history entry.
func (d *Display) Record(state *game.State, rec game.MoveRecord) string {
	name := d.playerName(state, rec.Player)
	switch rec.Action {
	case game.ActionPlay:
		line := fmt.Sprintf("%s plays %s on %s", name, d.Tile(rec.Tile), rec.Position)
		if rec.Score > 0 {
			line += " " + d.styles.Success.Render(fmt.Sprintf("+%d", rec.Score))
		}
		return line
	case game.ActionDraw:
		return name + " draws a tile"
	case game.ActionPass:
		return d.styles.Info.Render(name + " passes")
	}
	return fmt.Sprintf("%s: %s", name, rec.Action)
}

// Round renders the settlement of a finished round.
func (d *Display) Round(state *game.State, res game.RoundResult) string {
	prefix := fmt.Sprintf("Round %d", res.Round)
	if res.Winner < 0 {
		return d.styles.Warning.Render(prefix + " blocked: tied on pips, no points")
	}
	name := d.playerName(state, res.Winner)
	if res.Reason == game.Blocked {
		return d.styles.Success.Render(fmt.Sprintf("%s blocked: %s has the fewest pips (%d) and scores %d",
			prefix, name, res.PipCounts[res.Winner], res.Points))
	}
	return d.styles.Success.Render(fmt.Sprintf("%s: %s dominoes and scores %d", prefix, name, res.Points))
}

// Outcome renders the final result of a finished game.
func (d *Display) Outcome(state *game.State) string {
	leaders := state.Leaders()
	if len(leaders) == 0 {
		return ""
	}
	score := state.Players[leaders[0]].Score
	if len(leaders) > 1 {
		names := make([]string, len(leaders))
		for i, seat := range leaders {
			names[i] = d.playerName(state, seat)
		}
		return d.styles.Warning.Render(fmt.Sprintf("Game over: %s tie with %d", strings.Join(names, " and "), score))
	}
	return d.styles.Header.Render(fmt.Sprintf("Game over: %s wins with %d", d.playerName(state, leaders[0]), score))
}

func (d *Display) playerName(state *game.State, seat int) string {
	if seat < 0 || seat >= len(state.Players) {
		return fmt.Sprintf("seat %d", seat)
	}
	return state.Players[seat].Name
}
