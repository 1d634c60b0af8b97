package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/Paulmait/dominauts/internal/game"
	"github.com/Paulmait/dominauts/internal/gameid"
	"github.com/Paulmait/dominauts/internal/randutil"
)

// Manager tracks hosted sessions.
type Manager struct {
	logger      *log.Logger
	clock       quartz.Clock
	idleTimeout time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
	onReap   func(*Session)
}

// NewManager creates a manager. Sessions idle for longer than idleTimeout
// are removed by Reap; zero disables reaping.
func NewManager(logger *log.Logger, clock quartz.Clock, idleTimeout time.Duration) *Manager {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Manager{
		logger:      discardLogger(logger).WithPrefix("session"),
		clock:       clock,
		idleTimeout: idleTimeout,
		sessions:    make(map[string]*Session),
	}
}

// Create deals the first round of a new game. agents has one entry per
// seat; nil marks a human seat.
func (m *Manager) Create(mode game.Mode, players []*game.Player, agents []game.Agent, seed int64, opts ...game.Option) (*Session, error) {
	if len(agents) != len(players) {
		return nil, fmt.Errorf("need %d agents, got %d", len(players), len(agents))
	}
	id := gameid.Generate()
	opts = append(opts, game.WithGameID(id))
	engine := game.NewEngine(randutil.New(randutil.Seed(seed)), m.logger, opts...)
	if err := engine.StartRound(mode, players); err != nil {
		return nil, err
	}
	return m.add(id, engine, agents)
}

// Resume hosts a game from a snapshot produced by Session.Snapshot.
func (m *Manager) Resume(mode game.Mode, data []byte, agents []game.Agent, seed int64) (*Session, error) {
	engine := game.NewEngine(randutil.New(randutil.Seed(seed)), m.logger)
	if err := engine.Restore(mode, data); err != nil {
		return nil, err
	}
	state := engine.State()
	if len(agents) != len(state.Players) {
		return nil, fmt.Errorf("need %d agents, got %d", len(state.Players), len(agents))
	}
	if err := gameid.Validate(state.GameID); err != nil {
		return nil, fmt.Errorf("snapshot game id: %w", err)
	}
	return m.add(state.GameID, engine, agents)
}

func (m *Manager) add(id string, engine *game.Engine, agents []game.Agent) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[id]; exists {
		return nil, fmt.Errorf("game %s is already hosted", id)
	}
	s := newSession(id, engine, slices.Clone(agents), m.clock, m.logger)
	m.sessions[id] = s
	m.logger.Info("Session created", "game", id, "mode", engine.Mode().Info().Name, "sessions", len(m.sessions))
	return s, nil
}

// Get retrieves a session by game ID.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete removes a session.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// List returns a summary of every session ordered by game ID.
func (m *Manager) List() []Summary {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	summaries := make([]Summary, len(sessions))
	for i, s := range sessions {
		summaries[i] = s.summary()
	}
	slices.SortFunc(summaries, func(a, b Summary) int { return strings.Compare(a.ID, b.ID) })
	return summaries
}

// OnReap registers fn to be called with each session removed by Reap. It
// runs outside the manager lock, so fn may save the session.
func (m *Manager) OnReap(fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReap = fn
}

// Reap removes sessions idle for longer than the idle timeout and returns
// their IDs.
func (m *Manager) Reap() []string {
	if m.idleTimeout <= 0 {
		return nil
	}
	now := m.clock.Now()

	m.mu.Lock()
	var reaped []*Session
	for id, s := range m.sessions {
		if now.Sub(s.LastActive()) > m.idleTimeout {
			delete(m.sessions, id)
			reaped = append(reaped, s)
		}
	}
	remaining, hook := len(m.sessions), m.onReap
	m.mu.Unlock()

	if len(reaped) == 0 {
		return nil
	}
	slices.SortFunc(reaped, func(a, b *Session) int { return strings.Compare(a.ID, b.ID) })
	ids := make([]string, len(reaped))
	for i, s := range reaped {
		ids[i] = s.ID
		if hook != nil {
			hook(s)
		}
	}
	m.logger.Info("Reaped idle sessions", "count", len(reaped), "remaining", remaining)
	return ids
}

// StartReaper calls Reap every interval until ctx is done.
func (m *Manager) StartReaper(ctx context.Context, interval time.Duration) quartz.Waiter {
	return m.clock.TickerFunc(ctx, interval, func() error {
		m.Reap()
		return nil
	}, "session", "reaper")
}
