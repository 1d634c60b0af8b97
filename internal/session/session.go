// Package session hosts running games. Each Session owns one engine behind a
// mutex; the Manager tracks sessions by game ID and reaps idle ones.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/Paulmait/dominauts/domino"
	"github.com/Paulmait/dominauts/internal/fileutil"
	"github.com/Paulmait/dominauts/internal/game"
)

// ErrHumanTurn is returned by PlayBots when it stops because a human seat
// must act.
var ErrHumanTurn = errors.New("waiting for human player")

// Session is one hosted game. All methods are safe for concurrent use.
type Session struct {
	ID string

	mu         sync.Mutex
	clock      quartz.Clock
	logger     *log.Logger
	engine     *game.Engine
	agents     []game.Agent // nil entries are human seats
	created    time.Time
	lastActive time.Time
}

func newSession(id string, engine *game.Engine, agents []game.Agent, clock quartz.Clock, logger *log.Logger) *Session {
	now := clock.Now()
	return &Session{
		ID:         id,
		clock:      clock,
		logger:     logger.With("game", id),
		engine:     engine,
		agents:     agents,
		created:    now,
		lastActive: now,
	}
}

func (s *Session) touch() {
	s.lastActive = s.clock.Now()
}

// LastActive returns when the session last handled a request.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// View calls fn with the game state under the session lock. fn must not
// retain or modify the state.
func (s *Session) View(fn func(*game.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine.State())
}

// Mode returns the variant being played.
func (s *Session) Mode() game.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Mode()
}

// IsHuman reports whether seat is controlled by a person.
func (s *Session) IsHuman(seat int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seat >= 0 && seat < len(s.agents) && s.agents[seat] == nil
}

// ValidMoves returns the acting player's legal moves.
func (s *Session) ValidMoves() []game.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ValidMoves()
}

// Submit plays a move for seat.
func (s *Session) Submit(seat int, tile domino.Tile, pos game.Position) (game.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.engine.SubmitMove(seat, tile, pos)
}

// Draw takes a boneyard tile for seat.
func (s *Session) Draw(seat int) (domino.Tile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.engine.DrawTile(seat)
}

// Pass draws as allowed and then passes for a player with no legal move.
func (s *Session) Pass() (game.PassResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.engine.AdvanceIfNoLegalMoves()
}

// PlayBots plays turns for automated seats until a human must act or the
// round ends. It returns the number of turns taken; when it stopped at a
// human seat the error is ErrHumanTurn.
func (s *Session) PlayBots() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	turns := 0
	for {
		if s.engine.State().Phase != game.AwaitingMove {
			return turns, nil
		}
		if err := s.playBotTurn(); err != nil {
			return turns, err
		}
		turns++
	}
}

// PlayBotTurn plays a single turn for the acting seat, which must be
// automated.
func (s *Session) PlayBotTurn() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.engine.State().Phase != game.AwaitingMove {
		return game.ErrRoundNotActive
	}
	return s.playBotTurn()
}

func (s *Session) playBotTurn() error {
	agent := s.agents[s.engine.State().Current]
	if agent == nil {
		return ErrHumanTurn
	}
	return s.engine.PlayTurn(agent)
}

// NextRound deals the next round.
func (s *Session) NextRound() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.engine.NextRound()
}

// Snapshot serialises the game.
func (s *Session) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Save writes the game to dir as <id>.json and returns the path.
func (s *Session) Save(dir string) (string, error) {
	data, err := s.Snapshot()
	if err != nil {
		return "", err
	}
	path := SavePath(dir, s.ID)
	if err := fileutil.WriteFileAtomic(path, data, 0o600); err != nil {
		return "", fmt.Errorf("save game %s: %w", s.ID, err)
	}
	s.logger.Info("Game saved", "path", path)
	return path, nil
}

// Inspect decodes a saved game without hosting it, so callers can pick the
// variant and agents to resume it with.
func Inspect(data []byte) (*game.State, error) {
	var state game.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("read saved game: %w", err)
	}
	if len(state.Players) == 0 {
		return nil, errors.New("read saved game: no players")
	}
	return &state, nil
}

// SavePath is where Save puts the game with the given ID.
func SavePath(dir, id string) string {
	return filepath.Join(dir, id+".json")
}

// Summary is a read-only description of a session.
type Summary struct {
	ID         string     `json:"id"`
	Mode       string     `json:"mode"`
	Round      int        `json:"round"`
	Phase      game.Phase `json:"phase"`
	Players    []string   `json:"players"`
	Scores     []int      `json:"scores"`
	Created    time.Time  `json:"created"`
	LastActive time.Time  `json:"last_active"`
}

func (s *Session) summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.engine.State()
	sum := Summary{
		ID:         s.ID,
		Mode:       state.Mode,
		Round:      state.Round,
		Phase:      state.Phase,
		Created:    s.created,
		LastActive: s.lastActive,
	}
	for _, p := range state.Players {
		sum.Players = append(sum.Players, p.Name)
		sum.Scores = append(sum.Scores, p.Score)
	}
	return sum
}

func discardLogger(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
