package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paulmait/dominauts/domino"
	"github.com/Paulmait/dominauts/internal/game"
)

func tile(s string) domino.Tile {
	return domino.MustParseTiles(s)[0]
}

type play struct {
	tile string
	pos  game.Position
}

func boardOf(t *testing.T, kind game.BoardKind, plays ...play) *game.Board {
	t.Helper()
	b := game.NewBoard(kind)
	for _, p := range plays {
		require.NoError(t, b.PlaceTile(tile(p.tile), p.pos))
	}
	return b
}

func stateWith(mode game.Mode, board *game.Board, hands ...string) *game.State {
	s := &game.State{Mode: mode.Info().Name, Board: board, Winner: -1, Phase: game.AwaitingMove}
	for i, h := range hands {
		p := game.NewPlayer(string(rune('a'+i)), string(rune('A'+i)), game.Bot)
		p.Hand = domino.MustParseTiles(h)
		s.Players = append(s.Players, p)
	}
	return s
}

func TestAllFivesMoveScore(t *testing.T) {
	t.Parallel()
	m := NewAllFives(DefaultWeights())
	tests := []struct {
		name  string
		plays []play
		want  int
	}{
		{"five and double five", []play{{"5|2", game.Center}, {"2|5", game.Right}, {"5|5", game.Right}}, 15},
		{"five and three", []play{{"5|1", game.Center}, {"1|3", game.Right}}, 0},
		{"opening five blank", []play{{"5|0", game.Center}}, 5},
		{"opening double five", []play{{"5|5", game.Center}}, 10},
		{"opening six four", []play{{"6|4", game.Center}}, 10},
		{"ends total twenty", []play{{"6|4", game.Center}, {"4|4", game.Right}, {"6|6", game.Left}}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardOf(t, game.Linear, tt.plays...)
			last := tt.plays[len(tt.plays)-1]
			assert.Equal(t, tt.want, m.CalculateScore(tile(last.tile), b, nil))
		})
	}
}

func TestCrossMoveScore(t *testing.T) {
	t.Parallel()
	m := NewCross(DefaultWeights())

	b := boardOf(t, game.Cross, play{"6|6", game.Center})
	assert.Equal(t, 0, m.CalculateScore(tile("6|6"), b, nil), "24 is not a multiple of five")

	require.NoError(t, b.PlaceTile(tile("6|4"), game.North))
	assert.Equal(t, 22, b.CrossSum())
	assert.Equal(t, 0, m.CalculateScore(tile("6|4"), b, nil))

	require.NoError(t, b.PlaceTile(tile("4|6"), game.East))
	assert.Equal(t, 20, m.CalculateScore(tile("4|6"), b, nil))

	five := boardOf(t, game.Cross, play{"5|5", game.Center})
	assert.Equal(t, 20, m.CalculateScore(tile("5|5"), five, nil))
}

func TestBlockAndCutthroatDoNotScoreMoves(t *testing.T) {
	t.Parallel()
	b := boardOf(t, game.Linear, play{"5|5", game.Center})
	for _, m := range []game.Mode{NewBlock(DefaultWeights()), NewDraw(DefaultWeights()), NewCutthroat(DefaultWeights())} {
		assert.Zero(t, m.CalculateScore(tile("5|5"), b, nil), m.Info().Name)
	}
}

func TestRoundSettlement(t *testing.T) {
	t.Parallel()
	w := DefaultWeights()
	tests := []struct {
		mode   game.Mode
		hands  []string
		winner int
		want   int
	}{
		{NewBlock(w), []string{"", "6|6 1|2", "0|1"}, 0, 16},
		{NewDraw(w), []string{"3|3", ""}, 1, 6},
		{NewAllFives(w), []string{"", "6|6 1|1"}, 0, 15},
		{NewAllFives(w), []string{"", "6|5 1|0"}, 0, 10},
		{NewCross(w), []string{"6|6 1|1", ""}, 1, 10},
		{NewCross(w), []string{"2|2", ""}, 1, 0},
		{NewCutthroat(w), []string{"", "6|6 1|2", "0|1"}, 0, 16},
		{NewCutthroat(w), []string{"0|0", "6|6 1|2", "3|4"}, 0, 22},
	}
	for _, tt := range tests {
		s := stateWith(tt.mode, game.NewBoard(tt.mode.Info().Board), tt.hands...)
		s.Winner = tt.winner
		assert.Equal(t, tt.want, tt.mode.CalculateRoundScore(s), "%s %v", tt.mode.Info().Name, tt.hands)
	}
}

func TestRoundSettlementWithoutWinner(t *testing.T) {
	t.Parallel()
	for _, m := range []game.Mode{NewBlock(DefaultWeights()), NewAllFives(DefaultWeights()), NewCross(DefaultWeights())} {
		s := stateWith(m, game.NewBoard(m.Info().Board), "1|1", "2|2")
		assert.Zero(t, m.CalculateRoundScore(s), m.Info().Name)
	}
}

func TestRounding(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, roundNearestFive(2))
	assert.Equal(t, 5, roundNearestFive(3))
	assert.Equal(t, 15, roundNearestFive(14))
	assert.Equal(t, 15, roundNearestFive(17))
	assert.Equal(t, 20, roundNearestFive(18))
	assert.Equal(t, 15, roundDownFive(19))
	assert.Equal(t, 0, roundDownFive(4))
	assert.Equal(t, 0, multipleOfFive(0))
	assert.Equal(t, 0, multipleOfFive(12))
	assert.Equal(t, 25, multipleOfFive(25))
}

func TestCrossValidation(t *testing.T) {
	t.Parallel()
	m := NewCross(DefaultWeights())
	empty := game.NewBoard(game.Cross)

	assert.True(t, m.ValidateMove(tile("3|3"), game.Center, empty, nil))
	assert.False(t, m.ValidateMove(tile("3|4"), game.Center, empty, nil))
	assert.False(t, m.ValidateMove(tile("3|3"), game.North, empty, nil))

	b := boardOf(t, game.Cross, play{"3|3", game.Center})
	for _, dir := range game.Directions {
		assert.True(t, m.ValidateMove(tile("3|1"), dir, b, nil), dir.String())
	}
	assert.False(t, m.ValidateMove(tile("3|1"), game.Left, b, nil))
	assert.False(t, m.ValidateMove(tile("3|1"), game.Center, b, nil))
	assert.False(t, m.ValidateMove(tile("4|1"), game.North, b, nil))

	linear := boardOf(t, game.Linear, play{"3|3", game.Center})
	assert.False(t, m.ValidateMove(tile("3|1"), game.North, linear, nil))
	assert.False(t, NewBlock(DefaultWeights()).ValidateMove(tile("3|1"), game.North, b, nil))
}

func TestCrossOnMoveExecuted(t *testing.T) {
	t.Parallel()
	m := NewCross(DefaultWeights())
	b := boardOf(t, game.Cross, play{"3|3", game.Center}, play{"3|2", game.West})
	assert.NoError(t, m.OnMoveExecuted(tile("3|2"), game.West, b, nil))
	assert.ErrorIs(t, m.OnMoveExecuted(tile("3|2"), game.West, game.NewBoard(game.Cross), nil), game.ErrStructuralInvariant)
}

func TestCutthroatOpening(t *testing.T) {
	t.Parallel()
	m := NewCutthroat(DefaultWeights())
	s := stateWith(m, game.NewBoard(game.Linear), "1|2 4|4", "5|5 0|1", "3|3 2|6")

	opening, ok := m.RequiredOpening(s)
	require.True(t, ok)
	assert.Equal(t, tile("5|5"), opening)

	assert.True(t, m.ValidateMove(tile("5|5"), game.Center, s.Board, s))
	assert.False(t, m.ValidateMove(tile("4|4"), game.Center, s.Board, s))
	assert.False(t, m.ValidateMove(tile("0|1"), game.Center, s.Board, s))

	assert.Empty(t, m.GetValidMoves(s.Players[0], s.Board, s))
	moves := m.GetValidMoves(s.Players[1], s.Board, s)
	require.Len(t, moves, 1)
	assert.Equal(t, game.Center, moves[0].Position)

	require.NoError(t, s.Board.PlaceTile(tile("5|5"), game.Center))
	assert.True(t, m.ValidateMove(tile("1|5"), game.Left, s.Board, s), "after the opening any match is fine")
}

func TestCutthroatWithoutDoubles(t *testing.T) {
	t.Parallel()
	m := NewCutthroat(DefaultWeights())
	s := stateWith(m, game.NewBoard(game.Linear), "1|2", "0|1", "2|6")
	_, ok := m.RequiredOpening(s)
	assert.False(t, ok)
	assert.True(t, m.ValidateMove(tile("2|6"), game.Center, s.Board, s))
}

func TestCutthroatNilState(t *testing.T) {
	t.Parallel()
	m := NewCutthroat(DefaultWeights())
	_, ok := m.RequiredOpening(nil)
	assert.False(t, ok)
	assert.True(t, m.ValidateMove(tile("2|6"), game.Center, game.NewBoard(game.Linear), nil))
	assert.False(t, m.ValidateMove(tile("2|6"), game.North, game.NewBoard(game.Linear), nil))
}

func TestValidateMoveIsPureAndIdempotent(t *testing.T) {
	t.Parallel()
	boards := map[game.BoardKind]*game.Board{
		game.Linear: boardOf(t, game.Linear, play{"3|4", game.Center}, play{"4|4", game.Right}),
		game.Cross:  boardOf(t, game.Cross, play{"4|4", game.Center}, play{"4|1", game.South}),
	}
	positions := []game.Position{game.Center, game.Left, game.Right, game.North, game.East, game.South, game.West}

	for _, m := range All() {
		board := boards[m.Info().Board]
		before := board.Clone()
		s := stateWith(m, board, "4|6 1|2 3|0", "5|5 2|2 1|4", "0|0 6|6 5|6")
		for _, tl := range domino.FullSet(6) {
			for _, pos := range positions {
				first := m.ValidateMove(tl, pos, board, s)
				second := m.ValidateMove(tl, pos, board, s)
				assert.Equal(t, first, second, "%s %s@%s", m.Info().Name, tl, pos)
			}
		}
		assert.Equal(t, before, board, "%s mutated the board", m.Info().Name)
	}
}

func TestGetValidMovesAgreesWithValidateMove(t *testing.T) {
	t.Parallel()
	boards := []*game.Board{
		game.NewBoard(game.Linear),
		boardOf(t, game.Linear, play{"2|2", game.Center}),
		boardOf(t, game.Linear, play{"2|5", game.Center}, play{"5|5", game.Right}),
		game.NewBoard(game.Cross),
		boardOf(t, game.Cross, play{"2|2", game.Center}, play{"2|5", game.East}),
	}
	positions := []game.Position{game.Center, game.Left, game.Right, game.North, game.East, game.South, game.West}

	for _, m := range All() {
		for _, board := range boards {
			s := stateWith(m, board, "2|5 5|6 2|2", "0|0 1|5 3|3", "4|4 2|6 0|5")
			for _, p := range s.Players {
				offered := map[game.Move]bool{}
				for _, mv := range m.GetValidMoves(p, board, s) {
					assert.True(t, m.ValidateMove(mv.Tile, mv.Position, board, s))
					offered[game.Move{Tile: mv.Tile, Position: mv.Position}] = true
				}
				for _, tl := range p.Hand {
					for _, pos := range positions {
						assert.Equal(t, m.ValidateMove(tl, pos, board, s), offered[game.Move{Tile: tl, Position: pos}],
							"%s on %s: %s@%s", m.Info().Name, board.Kind, tl, pos)
					}
				}
			}
		}
	}
}

func TestHeuristicPrefersGoingOut(t *testing.T) {
	t.Parallel()
	m := NewBlock(DefaultWeights())
	b := boardOf(t, game.Linear, play{"1|2", game.Center})
	s := stateWith(m, b, "2|6 6|6", "0|1")

	moves := m.GetValidMoves(s.Players[1], b, s)
	require.Len(t, moves, 1)
	assert.Equal(t, DefaultWeights().EmptyHandBonus+1, moves[0].HeuristicScore)

	moves = m.GetValidMoves(s.Players[0], b, s)
	require.Len(t, moves, 1)
	assert.Equal(t, 8.0, moves[0].HeuristicScore, "pip value only")
}

func TestHeuristicRewardsScoringAndDoubles(t *testing.T) {
	t.Parallel()
	w := DefaultWeights()
	m := NewAllFives(w)
	b := boardOf(t, game.Linear, play{"5|1", game.Center})
	s := stateWith(m, b, "1|0 1|1 3|4", "")

	scores := map[domino.Tile]float64{}
	for _, mv := range m.GetValidMoves(s.Players[0], b, s) {
		scores[mv.Tile] = mv.HeuristicScore
	}
	// 1|0 leaves ends 5 and 0 for five points.
	assert.Equal(t, w.PipValue*1+w.ScoreMultiplier*5, scores[tile("1|0")])
	// 1|1 leaves 5 and a double one: seven, no score.
	assert.Equal(t, w.PipValue*2+w.DoubleBonus, scores[tile("1|1")])
	assert.NotContains(t, scores, tile("3|4"))
}

func TestHeuristicDoesNotTouchBoard(t *testing.T) {
	t.Parallel()
	m := NewCross(DefaultWeights())
	b := boardOf(t, game.Cross, play{"4|4", game.Center})
	before := b.Clone()
	s := stateWith(m, b, "4|1 4|2 1|1", "")
	require.NotEmpty(t, m.GetValidMoves(s.Players[0], b, s))
	assert.Equal(t, before, b)
}

func TestCrossOpenDirectionBonus(t *testing.T) {
	t.Parallel()
	w := Weights{OpenDirectionBonus: 1}
	m := NewCross(w)
	b := boardOf(t, game.Cross, play{"4|4", game.Center})
	s := stateWith(m, b, "4|1 4|2 4|3", "")

	for _, mv := range m.GetValidMoves(s.Players[0], b, s) {
		// The remaining two tiles still answer the three untouched 4 arms.
		assert.Equal(t, 3.0, mv.HeuristicScore, mv.String())
	}
}

func TestCutthroatBlockingBonus(t *testing.T) {
	t.Parallel()
	w := Weights{BlockingBonus: 1}
	m := NewCutthroat(w)
	b := boardOf(t, game.Linear, play{"6|6", game.Center})
	s := stateWith(m, b, "6|0 6|5", "1|2", "2|3")

	scores := map[domino.Tile]float64{}
	for _, mv := range m.GetValidMoves(s.Players[0], b, s) {
		scores[mv.Tile] = mv.HeuristicScore
	}
	require.Len(t, scores, 2)
	for tl, score := range scores {
		assert.Positive(t, score, tl.String())
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"allfives", "block", "cross", "cutthroat", "draw"}, Names())

	for _, name := range Names() {
		m, err := New(name, DefaultWeights())
		require.NoError(t, err)
		assert.Equal(t, name, m.Info().Name)
	}

	m, err := New("AllFives", DefaultWeights(), WithMaxPips(9), WithTilesPerPlayer(12), WithTargetScore(300))
	require.NoError(t, err)
	info := m.Info()
	assert.Equal(t, 9, info.MaxPips)
	assert.Equal(t, 12, info.TilesPerPlayer)
	assert.Equal(t, 300, info.TargetScore)
	assert.NoError(t, info.Validate(4))

	_, err = New("mexican-train", DefaultWeights())
	assert.ErrorContains(t, err, "unknown game mode")
}

func TestDrawVariant(t *testing.T) {
	t.Parallel()
	m := NewDraw(DefaultWeights(), WithTargetScore(50))
	info := m.Info()
	assert.Equal(t, "draw", info.Name)
	assert.True(t, info.CanDraw)
	assert.Equal(t, 50, info.TargetScore)
	assert.False(t, NewBlock(DefaultWeights()).Info().CanDraw)
}

func TestWeights(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"easy", "medium", "hard"}, Difficulties())
	for _, name := range Difficulties() {
		w, err := Preset(name)
		require.NoError(t, err)
		assert.NoError(t, w.Validate())
	}
	_, err := Preset("impossible")
	assert.Error(t, err)

	assert.Error(t, Weights{PipValue: -1}.Validate())
	for range 20 {
		err := Weights{DoubleBonus: -1, BlockingBonus: -2, PipValue: -3}.Validate()
		assert.ErrorContains(t, err, "pip_value")
	}
	assert.Equal(t, presets["medium"], DefaultWeights())
}
