// Package tui is the interactive table: one human seat against bots, drawn
// with Bubble Tea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Paulmait/dominauts/internal/display"
	"github.com/Paulmait/dominauts/internal/game"
	"github.com/Paulmait/dominauts/internal/session"
)

// Options configures the table.
type Options struct {
	Seat     int           // the human seat
	SaveDir  string        // where "save" writes; empty disables saving
	BotDelay time.Duration // pause before each bot turn
	Display  *display.Display
	Logger   *log.Logger
}

type botTurnMsg struct{}

// Model is the Bubble Tea model for one game.
type Model struct {
	session *session.Session
	opts    Options
	display *display.Display
	logger  *log.Logger

	logViewport viewport.Model
	input       textinput.Model
	help        help.Model
	keys        keyMap

	entries     []string
	round       int
	historySeen int
	roundsSeen  int
	status      string
	statusErr   bool
	showHelp    bool
	focusedLog  bool
	finished    bool
	quitting    bool

	width, height int
}

// New creates a table for s.
func New(s *session.Session, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Display == nil {
		opts.Display = display.NewPlain()
	}

	vp := viewport.New(10, 5)

	ti := textinput.New()
	ti.Placeholder = "move number, tile and end (6|4 left), draw, pass"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 60
	ti.Prompt = "> "
	ti.PromptStyle = opts.Display.Styles().Current

	m := &Model{
		session:     s,
		opts:        opts,
		display:     opts.Display,
		logger:      opts.Logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		help:        help.New(),
		keys:        defaultKeyMap(),
	}
	m.sync()
	return m
}

// Run shows the table until the player quits or ctx is cancelled.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.nextBotTurn())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case botTurnMsg:
		if err := m.session.PlayBotTurn(); err != nil && !errors.Is(err, session.ErrHumanTurn) && !errors.Is(err, game.ErrRoundNotActive) {
			m.logger.Error("Bot turn failed", "error", err)
			m.setError(err)
			return m, nil
		}
		m.sync()
		return m, m.nextBotTurn()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Focus):
			m.focusedLog = !m.focusedLog
			if m.focusedLog {
				m.input.Blur()
			} else {
				cmds = append(cmds, m.input.Focus())
			}
			return m, tea.Batch(cmds...)
		case key.Matches(msg, m.keys.Submit) && !m.focusedLog:
			line := m.input.Value()
			m.input.SetValue("")
			return m, m.handleInput(line)
		}
		if m.focusedLog {
			switch {
			case key.Matches(msg, m.keys.Up):
				m.logViewport.ScrollUp(1)
			case key.Matches(msg, m.keys.Down):
				m.logViewport.ScrollDown(1)
			case key.Matches(msg, m.keys.PageUp):
				m.logViewport.HalfPageUp()
			case key.Matches(msg, m.keys.PageDown):
				m.logViewport.HalfPageDown()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if !m.focusedLog {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleInput runs one line typed by the player.
func (m *Model) handleInput(line string) tea.Cmd {
	cmd, err := parseCommand(line)
	if err != nil {
		m.setError(err)
		return nil
	}
	m.status, m.statusErr = "", false

	switch cmd.kind {
	case cmdQuit:
		m.quitting = true
		return tea.Quit
	case cmdHelp:
		m.addEntry(helpText)
		return nil
	case cmdSave:
		m.save()
		return nil
	}

	phase, current := m.phase()
	switch phase {
	case game.GameOver:
		if cmd.kind == cmdContinue {
			m.quitting = true
			return tea.Quit
		}
		m.setError(errors.New("the game is over, press enter to leave"))
		return nil
	case game.RoundOver:
		if cmd.kind != cmdContinue {
			m.setError(errors.New("the round is over, press enter to deal"))
			return nil
		}
		if err := m.session.NextRound(); err != nil {
			m.setError(err)
			return nil
		}
		m.sync()
		return m.nextBotTurn()
	}

	if current != m.opts.Seat {
		m.setError(errors.New("wait for your turn"))
		return nil
	}

	switch cmd.kind {
	case cmdContinue:
		return nil
	case cmdDraw:
		tile, err := m.session.Draw(m.opts.Seat)
		if err != nil {
			m.setError(err)
			return nil
		}
		m.status = "You drew " + m.display.Tile(tile)
	case cmdPass:
		res, err := m.session.Pass()
		if err != nil {
			m.setError(err)
			return nil
		}
		switch {
		case len(res.Drawn) > 0 && !res.Passed:
			m.status = "You drew " + m.display.Tiles(res.Drawn)
		case !res.Passed:
			m.setError(errors.New("you have a legal move"))
		}
	case cmdPlayIndex, cmdPlayTile:
		move, err := resolveMove(cmd, m.session.ValidMoves())
		if err != nil {
			m.setError(err)
			return nil
		}
		if _, err := m.session.Submit(m.opts.Seat, move.Tile, move.Position); err != nil {
			m.setError(err)
			return nil
		}
	}
	m.sync()
	return m.nextBotTurn()
}

// nextBotTurn schedules a bot turn when an automated seat must act.
func (m *Model) nextBotTurn() tea.Cmd {
	phase, current := m.phase()
	if phase != game.AwaitingMove || m.session.IsHuman(current) {
		return nil
	}
	if m.opts.BotDelay <= 0 {
		return func() tea.Msg { return botTurnMsg{} }
	}
	return tea.Tick(m.opts.BotDelay, func(time.Time) tea.Msg { return botTurnMsg{} })
}

func (m *Model) phase() (phase game.Phase, current int) {
	m.session.View(func(st *game.State) {
		phase, current = st.Phase, st.Current
	})
	return phase, current
}

// sync appends log entries for everything that happened since the last call.
func (m *Model) sync() {
	m.session.View(func(st *game.State) {
		if st.Round != m.round {
			m.round = st.Round
			m.historySeen = 0
			m.addEntry(m.display.Styles().Header.Render(fmt.Sprintf("Round %d", st.Round)))
			m.addEntry("Your hand: " + m.display.Tiles(st.Players[m.opts.Seat].Hand))
		}
		for ; m.historySeen < len(st.History); m.historySeen++ {
			m.addEntry(m.display.Record(st, st.History[m.historySeen]))
		}
		for ; m.roundsSeen < len(st.Rounds); m.roundsSeen++ {
			m.addEntry(m.display.Round(st, st.Rounds[m.roundsSeen]))
		}
		if st.Phase == game.GameOver && !m.finished {
			m.finished = true
			m.addEntry(m.display.Outcome(st))
		}
	})
}

func (m *Model) save() {
	if m.opts.SaveDir == "" {
		m.setError(errors.New("saving is disabled"))
		return
	}
	path, err := m.session.Save(m.opts.SaveDir)
	if err != nil {
		m.setError(err)
		return
	}
	m.status = "Saved to " + path
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

func (m *Model) addEntry(entry string) {
	if entry == "" {
		return
	}
	m.entries = append(m.entries, entry)
	m.logViewport.SetContent(strings.Join(m.entries, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Entries returns the game log shown in the left pane.
func (m *Model) Entries() []string {
	return append([]string(nil), m.entries...)
}

// Status returns the message under the input line and whether it is an error.
func (m *Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// Quitting reports whether the player left the table.
func (m *Model) Quitting() bool {
	return m.quitting
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	info := m.session.Mode().Info()
	moves := m.session.ValidMoves()
	var sidebar, action string
	m.session.View(func(st *game.State) {
		sidebar = m.renderSidebar(st, info)
		action = m.renderActionPane(st, moves)
	})

	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1)).
		Render(action)

	topHeight := max(m.height-lipgloss.Height(actionPane)-2, 1)
	sidebarWidth := max(lipgloss.Width(sidebar), 25)
	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(topHeight).
		Render(sidebar)

	m.logViewport.Width = max(m.width-sidebarWidth-4, 1)
	m.logViewport.Height = topHeight
	logBorder := lipgloss.Color("#626262")
	if m.focusedLog {
		logBorder = lipgloss.Color("#04B575")
	}
	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(logBorder).
		Width(m.logViewport.Width).
		Height(topHeight).
		Render(m.logViewport.View())

	top := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Left, top, actionPane)
}

func (m *Model) renderSidebar(st *game.State, info game.ModeInfo) string {
	var sb strings.Builder
	sb.WriteString(m.display.Status(st, info))
	sb.WriteString("\n\n")
	sb.WriteString(m.display.Scores(st, st.Phase != game.AwaitingMove))
	return sb.String()
}

func (m *Model) renderActionPane(st *game.State, moves []game.Move) string {
	styles := m.display.Styles()
	var sb strings.Builder

	sb.WriteString(m.display.Board(st.Board))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Info.Render("Your hand: "))
	sb.WriteString(m.display.Hand(st.Players[m.opts.Seat].Hand))
	sb.WriteString("\n")

	switch {
	case st.Phase == game.GameOver:
		sb.WriteString(m.display.Outcome(st))
		m.input.Placeholder = "enter to leave"
	case st.Phase == game.RoundOver:
		sb.WriteString(styles.Warning.Render("Round over."))
		m.input.Placeholder = "enter to deal the next round"
	case st.Current == m.opts.Seat:
		sb.WriteString(m.display.Moves(moves))
		m.input.Placeholder = "move number, tile and end (6|4 left), draw, pass"
	default:
		sb.WriteString(styles.Info.Render(st.Players[st.Current].Name + " is thinking..."))
	}
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	if m.status != "" {
		sb.WriteString("\n")
		if m.statusErr {
			sb.WriteString(styles.Error.Render(m.status))
		} else {
			sb.WriteString(styles.Success.Render(m.status))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}
