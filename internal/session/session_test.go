package session

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paulmait/dominauts/internal/bot"
	"github.com/Paulmait/dominauts/internal/game"
	"github.com/Paulmait/dominauts/internal/gameid"
	"github.com/Paulmait/dominauts/internal/rules"
)

func twoPlayers() []*game.Player {
	return []*game.Player{
		game.NewPlayer("human", "You", game.Human),
		game.NewPlayer("bot", "Bot", game.Bot),
	}
}

func humanVsBot() []game.Agent {
	return []game.Agent{nil, bot.NewHeuristic(nil)}
}

func currentSeat(s *Session) (seat int, phase game.Phase) {
	s.View(func(st *game.State) {
		seat, phase = st.Current, st.Phase
	})
	return seat, phase
}

// playRound acts for the human with the first legal move and lets the bots
// play the rest.
func playRound(t *testing.T, s *Session) {
	t.Helper()
	for range 500 {
		seat, phase := currentSeat(s)
		if phase != game.AwaitingMove {
			return
		}
		if !s.IsHuman(seat) {
			_, err := s.PlayBots()
			if err != nil && !errors.Is(err, ErrHumanTurn) {
				require.NoError(t, err)
			}
			continue
		}
		moves := s.ValidMoves()
		if len(moves) == 0 {
			_, err := s.Pass()
			require.NoError(t, err)
			continue
		}
		_, err := s.Submit(seat, moves[0].Tile, moves[0].Position)
		require.NoError(t, err)
	}
	t.Fatal("round did not finish")
}

func TestCreateAndPlayRound(t *testing.T) {
	t.Parallel()
	m := NewManager(nil, quartz.NewMock(t), 0)
	s, err := m.Create(rules.NewBlock(rules.DefaultWeights()), twoPlayers(), humanVsBot(), 7)
	require.NoError(t, err)

	require.NoError(t, gameid.Validate(s.ID))
	s.View(func(st *game.State) {
		assert.Equal(t, s.ID, st.GameID)
		assert.Equal(t, 0, st.Leader)
	})
	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	turns, err := s.PlayBots()
	assert.ErrorIs(t, err, ErrHumanTurn)
	assert.Zero(t, turns)

	playRound(t, s)
	_, phase := currentSeat(s)
	assert.Contains(t, []game.Phase{game.RoundOver, game.GameOver}, phase)

	if phase == game.RoundOver {
		require.NoError(t, s.NextRound())
		s.View(func(st *game.State) { assert.Equal(t, 2, st.Round) })
	}
}

func TestSubmitRejectsWrongSeat(t *testing.T) {
	t.Parallel()
	m := NewManager(nil, quartz.NewMock(t), 0)
	s, err := m.Create(rules.NewDraw(rules.DefaultWeights()), twoPlayers(), humanVsBot(), 3)
	require.NoError(t, err)

	moves := s.ValidMoves()
	require.NotEmpty(t, moves)
	_, err = s.Submit(1, moves[0].Tile, moves[0].Position)
	assert.ErrorIs(t, err, game.ErrNotYourTurn)
}

func TestCreateErrors(t *testing.T) {
	t.Parallel()
	m := NewManager(nil, quartz.NewMock(t), 0)

	_, err := m.Create(rules.NewBlock(rules.DefaultWeights()), twoPlayers(), []game.Agent{nil}, 1)
	assert.Error(t, err)

	_, err = m.Create(rules.NewCutthroat(rules.DefaultWeights()), twoPlayers(), humanVsBot(), 1)
	assert.ErrorIs(t, err, game.ErrIllegalConfiguration)

	assert.Empty(t, m.List())
}

func TestReapIdleSessions(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	m := NewManager(nil, clock, 10*time.Minute)
	mode := rules.NewBlock(rules.DefaultWeights())

	idle, err := m.Create(mode, twoPlayers(), humanVsBot(), 1)
	require.NoError(t, err)
	active, err := m.Create(mode, twoPlayers(), humanVsBot(), 2)
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)
	_, err = active.Pass()
	require.NoError(t, err)
	assert.Empty(t, m.Reap())

	clock.Advance(6 * time.Minute)
	assert.Equal(t, []string{idle.ID}, m.Reap())

	_, ok := m.Get(idle.ID)
	assert.False(t, ok)
	_, ok = m.Get(active.ID)
	assert.True(t, ok)
}

func TestReaperTicks(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := quartz.NewMock(t)
	m := NewManager(nil, clock, 2*time.Minute)
	s, err := m.Create(rules.NewAllFives(rules.DefaultWeights()), twoPlayers(), humanVsBot(), 1)
	require.NoError(t, err)

	waiter := m.StartReaper(ctx, time.Minute)

	clock.Advance(time.Minute).MustWait(ctx)
	clock.Advance(time.Minute).MustWait(ctx)
	_, ok := m.Get(s.ID)
	assert.True(t, ok, "idle for exactly the timeout is kept")

	clock.Advance(time.Minute).MustWait(ctx)
	_, ok = m.Get(s.ID)
	assert.False(t, ok)

	cancel()
	assert.ErrorIs(t, waiter.Wait(), context.Canceled)
}

func TestReapSavesIdleGames(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	clock := quartz.NewMock(t)
	m := NewManager(nil, clock, time.Minute)
	var saved []string
	m.OnReap(func(s *Session) {
		path, err := s.Save(dir)
		assert.NoError(t, err)
		saved = append(saved, path)
	})

	s, err := m.Create(rules.NewBlock(rules.DefaultWeights()), twoPlayers(), humanVsBot(), 1)
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)

	assert.Equal(t, []string{s.ID}, m.Reap())
	assert.Equal(t, []string{SavePath(dir, s.ID)}, saved)
	_, err = os.Stat(SavePath(dir, s.ID))
	assert.NoError(t, err)

	assert.Empty(t, m.Reap(), "a reaped session is only reported once")
	assert.Len(t, saved, 1)
}

func TestReapDisabled(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	m := NewManager(nil, clock, 0)
	_, err := m.Create(rules.NewBlock(rules.DefaultWeights()), twoPlayers(), humanVsBot(), 1)
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	assert.Empty(t, m.Reap())
	assert.Len(t, m.List(), 1)
}

func TestSaveAndResume(t *testing.T) {
	t.Parallel()
	mode := rules.NewCross(rules.DefaultWeights())
	m := NewManager(nil, quartz.NewMock(t), 0)
	s, err := m.Create(mode, twoPlayers(), humanVsBot(), 5)
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := s.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, SavePath(dir, s.ID), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = m.Resume(mode, data, humanVsBot(), 1)
	assert.ErrorContains(t, err, "already hosted")

	other := NewManager(nil, quartz.NewMock(t), 0)
	resumed, err := other.Resume(mode, data, humanVsBot(), 1)
	require.NoError(t, err)
	assert.Equal(t, s.ID, resumed.ID)
	assert.Equal(t, s.ValidMoves(), resumed.ValidMoves())

	_, err = other.Resume(rules.NewBlock(rules.DefaultWeights()), data, humanVsBot(), 1)
	assert.ErrorIs(t, err, game.ErrIllegalConfiguration)

	_, err = NewManager(nil, quartz.NewMock(t), 0).Resume(mode, data, []game.Agent{nil}, 1)
	assert.Error(t, err)
}

func TestListAndDelete(t *testing.T) {
	t.Parallel()
	m := NewManager(nil, quartz.NewMock(t), 0)
	mode := rules.NewBlock(rules.DefaultWeights())
	for seed := range int64(3) {
		_, err := m.Create(mode, twoPlayers(), humanVsBot(), seed+1)
		require.NoError(t, err)
	}

	list := m.List()
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
	assert.Equal(t, []string{"You", "Bot"}, list[0].Players)
	assert.Equal(t, "block", list[0].Mode)

	assert.True(t, m.Delete(list[0].ID))
	assert.False(t, m.Delete(list[0].ID))
	assert.Len(t, m.List(), 2)
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()
	m := NewManager(nil, quartz.NewMock(t), time.Hour)
	s, err := m.Create(rules.NewDraw(rules.DefaultWeights()), twoPlayers(), humanVsBot(), 9)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_ = s.ValidMoves()
				_, _ = s.Pass()
				s.View(func(st *game.State) { _ = st.Board.Len() })
				_ = m.List()
				_ = m.Reap()
			}
		}()
	}
	wg.Wait()
	_, ok := m.Get(s.ID)
	assert.True(t, ok)
}

func TestPlayBotTurn(t *testing.T) {
	t.Parallel()
	m := NewManager(nil, quartz.NewMock(t), 0)
	agents := []game.Agent{bot.NewHeuristic(nil), nil}
	s, err := m.Create(rules.NewBlock(rules.DefaultWeights()), twoPlayers(), agents, 11)
	require.NoError(t, err)

	seat, phase := currentSeat(s)
	require.Equal(t, game.AwaitingMove, phase)
	require.Equal(t, 0, seat)

	require.NoError(t, s.PlayBotTurn())
	seat, phase = currentSeat(s)
	if phase == game.AwaitingMove {
		assert.Equal(t, 1, seat)
		assert.ErrorIs(t, s.PlayBotTurn(), ErrHumanTurn)
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()
	m := NewManager(nil, quartz.NewMock(t), 0)
	s, err := m.Create(rules.NewAllFives(rules.DefaultWeights()), twoPlayers(), humanVsBot(), 4)
	require.NoError(t, err)
	data, err := s.Snapshot()
	require.NoError(t, err)

	state, err := Inspect(data)
	require.NoError(t, err)
	assert.Equal(t, "allfives", state.Mode)
	assert.Equal(t, s.ID, state.GameID)
	require.Len(t, state.Players, 2)
	assert.Equal(t, game.Human, state.Players[0].Kind)

	_, err = Inspect([]byte("{"))
	assert.Error(t, err)
	_, err = Inspect([]byte(`{"players":[]}`))
	assert.ErrorContains(t, err, "no players")
}
