package game

import (
	"fmt"
	"io"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/Paulmait/dominauts/domino"
	"github.com/Paulmait/dominauts/internal/gameid"
)

// Engine is the single owner of a game's State. It runs the turn state
// machine and delegates every rule decision to the active Mode.
type Engine struct {
	rng    *rand.Rand
	logger *log.Logger
	cfg    engineConfig
	mode   Mode
	state  *State
}

// MoveResult reports the outcome of an accepted move.
type MoveResult struct {
	Player    int          `json:"player"`
	Tile      domino.Tile  `json:"tile"`
	Position  Position     `json:"position"`
	Score     int          `json:"score"`
	RoundOver bool         `json:"round_over"`
	GameOver  bool         `json:"game_over"`
	Round     *RoundResult `json:"round,omitempty"`
}

// PassResult reports what AdvanceIfNoLegalMoves did for the acting player.
type PassResult struct {
	Player    int           `json:"player"`
	Drawn     []domino.Tile `json:"drawn,omitempty"`
	Passed    bool          `json:"passed"`
	RoundOver bool          `json:"round_over"`
	GameOver  bool          `json:"game_over"`
}

// NewEngine creates an engine. The RNG is required so that every deal can be
// reproduced from a seed.
func NewEngine(rng *rand.Rand, logger *log.Logger, opts ...Option) *Engine {
	if rng == nil {
		panic("rng is required for engine creation")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Engine{
		rng:    rng,
		logger: logger.WithPrefix("engine"),
	}
	for _, opt := range opts {
		opt(&e.cfg)
	}
	return e
}

// State returns the live game state. Callers must treat it as read-only.
func (e *Engine) State() *State {
	return e.state
}

// Mode returns the active variant.
func (e *Engine) Mode() Mode {
	return e.mode
}

// StartRound deals a round of mode to players. When the previous round of
// the same game is over it continues that game; otherwise a new game begins
// and scores are reset. On error nothing is changed.
func (e *Engine) StartRound(mode Mode, players []*Player) error {
	if mode == nil {
		return configErrorf("no game mode")
	}
	info := mode.Info()
	if err := info.Validate(len(players)); err != nil {
		return err
	}
	for i, p := range players {
		if p == nil {
			return configErrorf("player %d is nil", i)
		}
		for _, other := range players[:i] {
			if other == p || (p.ID != "" && other.ID == p.ID) {
				return configErrorf("player %q seated twice", p.ID)
			}
		}
	}

	var deck *domino.Deck
	if e.cfg.deck != nil {
		deck = domino.NewDeckFromTiles(e.cfg.deck.Remaining())
	} else {
		deck = domino.NewDeck(e.rng, info.MaxPips)
	}
	hands := make([][]domino.Tile, len(players))
	for i := range players {
		hand, err := deck.Deal(info.TilesPerPlayer)
		if err != nil {
			return configErrorf("deal: %v", err)
		}
		for _, t := range hand {
			if !t.InRange(info.MaxPips) {
				return configErrorf("tile %s outside double-%d set", t, info.MaxPips)
			}
		}
		hands[i] = hand
	}
	e.cfg.deck = nil

	prev := e.state
	continuing := prev != nil && prev.Phase == RoundOver && e.mode == mode && slices.Equal(prev.Players, players)

	state := &State{
		Mode:        info.Name,
		MaxPips:     info.MaxPips,
		HandSize:    info.TilesPerPlayer,
		Players:     players,
		Board:       NewBoard(info.Board),
		Boneyard:    deck.Remaining(),
		Round:       1,
		Phase:       AwaitingMove,
		Winner:      -1,
		TargetScore: info.TargetScore,
		MaxRounds:   e.cfg.maxRounds,
		History:     []MoveRecord{},
		Rounds:      []RoundResult{},
	}
	if e.cfg.targetScore > 0 {
		state.TargetScore = e.cfg.targetScore
	}
	if continuing {
		state.GameID = prev.GameID
		state.Round = prev.Round + 1
		state.Rounds = prev.Rounds
	} else {
		state.GameID = e.cfg.gameID
		if state.GameID == "" {
			state.GameID = gameid.Generate()
		}
		for _, p := range players {
			p.Score = 0
		}
	}
	for i, p := range players {
		p.Hand = hands[i]
	}
	state.Leader = e.chooseLeader(mode, state, prev, continuing)
	state.Current = state.Leader

	e.mode = mode
	e.state = state

	e.logger.Info("Round started",
		"game", state.GameID,
		"mode", info.Name,
		"round", state.Round,
		"players", len(players),
		"leader", players[state.Leader].Name,
		"boneyard", len(state.Boneyard))

	if e.isBlocked() {
		e.endRound(Blocked, e.lowestPipSeat())
	}
	return nil
}

func (e *Engine) chooseLeader(mode Mode, state, prev *State, continuing bool) int {
	if opener, ok := mode.(Opener); ok {
		if tile, ok := opener.RequiredOpening(state); ok {
			for i, p := range state.Players {
				if p.HasTile(tile) {
					return i
				}
			}
		}
	}
	if continuing && prev.Winner >= 0 {
		return prev.Winner
	}
	return (state.Round - 1) % len(state.Players)
}

// NextRound deals the next round of the current game.
func (e *Engine) NextRound() error {
	if e.state == nil {
		return fmt.Errorf("%w: no game started", ErrRoundNotActive)
	}
	switch e.state.Phase {
	case RoundOver:
		return e.StartRound(e.mode, e.state.Players)
	case GameOver:
		return fmt.Errorf("game %s: %w", e.state.GameID, ErrGameOver)
	default:
		return ErrRoundInProgress
	}
}

// ValidMoves returns the legal moves of the acting player.
func (e *Engine) ValidMoves() []Move {
	if e.state == nil || e.state.Phase != AwaitingMove {
		return nil
	}
	return e.mode.GetValidMoves(e.state.CurrentPlayer(), e.state.Board, e.state)
}

// SubmitMove plays tile at pos for the player in seat playerIndex. A
// rejected move returns a *MoveError and leaves the state unchanged.
// An error wrapping ErrStructuralInvariant is reported after the tile has
// been placed; the state is not rolled back and stays in MoveApplied.
func (e *Engine) SubmitMove(playerIndex int, tile domino.Tile, pos Position) (MoveResult, error) {
	s := e.state
	if s == nil || s.Phase != AwaitingMove {
		return MoveResult{}, rejectMove(playerIndex, tile, pos, ErrRoundNotActive)
	}
	if playerIndex < 0 || playerIndex >= len(s.Players) {
		return MoveResult{}, rejectMove(playerIndex, tile, pos, ErrUnknownPlayer)
	}
	if playerIndex != s.Current {
		return MoveResult{}, rejectMove(playerIndex, tile, pos, ErrNotYourTurn)
	}
	p := s.Players[playerIndex]
	if !p.HasTile(tile) {
		return MoveResult{}, rejectMove(playerIndex, tile, pos, ErrTileNotInHand)
	}
	if !e.mode.ValidateMove(tile, pos, s.Board, s) {
		return MoveResult{}, rejectMove(playerIndex, tile, pos, ErrIllegalMove)
	}

	if err := s.Board.PlaceTile(tile, pos); err != nil {
		return MoveResult{}, fmt.Errorf("apply %s at %s: %w", tile, pos, err)
	}
	p.RemoveTile(tile)
	s.Phase = MoveApplied

	if err := e.mode.OnMoveExecuted(tile, pos, s.Board, s); err != nil {
		return MoveResult{}, fmt.Errorf("after %s at %s: %w", tile, pos, err)
	}
	score := e.mode.CalculateScore(tile, s.Board, s)
	if score < 0 {
		return MoveResult{}, fmt.Errorf("%w: negative move score %d", ErrStructuralInvariant, score)
	}
	p.Score += score
	s.History = append(s.History, MoveRecord{
		Round:    s.Round,
		Player:   playerIndex,
		Action:   ActionPlay,
		Tile:     tile,
		Position: pos,
		Score:    score,
	})

	e.logger.Debug("Move applied",
		"round", s.Round,
		"player", p.Name,
		"tile", tile,
		"position", pos,
		"score", score,
		"hand", len(p.Hand))

	result := MoveResult{Player: playerIndex, Tile: tile, Position: pos, Score: score}
	if p.HandEmpty() {
		e.endRound(Domino, playerIndex)
	} else {
		e.advanceTurn()
	}
	e.fillOutcome(&result.RoundOver, &result.GameOver, &result.Round)
	return result, nil
}

// DrawTile takes one tile from the boneyard for the acting player. Drawing
// is only allowed in draw variants and only while the player cannot move.
func (e *Engine) DrawTile(playerIndex int) (domino.Tile, error) {
	s := e.state
	if s == nil || s.Phase != AwaitingMove {
		return domino.Tile{}, rejectMove(playerIndex, domino.Tile{}, Center, ErrRoundNotActive)
	}
	if playerIndex != s.Current {
		return domino.Tile{}, rejectMove(playerIndex, domino.Tile{}, Center, ErrNotYourTurn)
	}
	if !e.mode.Info().CanDraw || e.hasLegalMove(s.Players[playerIndex]) {
		return domino.Tile{}, rejectMove(playerIndex, domino.Tile{}, Center, ErrDrawNotAllowed)
	}
	if len(s.Boneyard) == 0 {
		return domino.Tile{}, rejectMove(playerIndex, domino.Tile{}, Center, ErrBoneyardEmpty)
	}
	return e.draw(playerIndex), nil
}

func (e *Engine) draw(seat int) domino.Tile {
	s := e.state
	last := len(s.Boneyard) - 1
	tile := s.Boneyard[last]
	s.Boneyard = s.Boneyard[:last]
	p := s.Players[seat]
	p.Hand = append(p.Hand, tile)
	s.History = append(s.History, MoveRecord{Round: s.Round, Player: seat, Action: ActionDraw})
	e.logger.Debug("Tile drawn", "player", p.Name, "boneyard", len(s.Boneyard))
	return tile
}

// AdvanceIfNoLegalMoves handles a turn for a player who cannot play: it
// draws while the variant allows, then passes without touching the board.
// It does nothing when the acting player has a legal move.
func (e *Engine) AdvanceIfNoLegalMoves() (PassResult, error) {
	s := e.state
	if s == nil || s.Phase != AwaitingMove {
		return PassResult{}, ErrRoundNotActive
	}
	seat := s.Current
	result := PassResult{Player: seat}
	p := s.Players[seat]
	if e.hasLegalMove(p) {
		return result, nil
	}

	for e.mode.Info().CanDraw && len(s.Boneyard) > 0 {
		result.Drawn = append(result.Drawn, e.draw(seat))
		if e.hasLegalMove(p) {
			return result, nil
		}
	}

	result.Passed = true
	s.History = append(s.History, MoveRecord{Round: s.Round, Player: seat, Action: ActionPass})
	e.logger.Debug("Player passed", "round", s.Round, "player", p.Name)

	e.advanceTurn()
	e.fillOutcome(&result.RoundOver, &result.GameOver, nil)
	return result, nil
}

// advanceTurn hands the turn to the next seat or ends a blocked round.
func (e *Engine) advanceTurn() {
	s := e.state
	s.Current = s.NextSeat(s.Current)
	s.Phase = AwaitingMove
	if e.isBlocked() {
		e.endRound(Blocked, e.lowestPipSeat())
	}
}

func (e *Engine) fillOutcome(roundOver, gameOver *bool, round **RoundResult) {
	s := e.state
	*roundOver = s.Phase == RoundOver || s.Phase == GameOver
	*gameOver = s.Phase == GameOver
	if *roundOver && round != nil {
		if last, ok := s.LastRound(); ok {
			*round = &last
		}
	}
}

// hasLegalMove asks the mode, through ValidateMove, whether any tile in the
// hand fits any position on the board.
func (e *Engine) hasLegalMove(p *Player) bool {
	s := e.state
	positions := s.Board.Positions()
	for _, tile := range p.Hand {
		for _, pos := range positions {
			if e.mode.ValidateMove(tile, pos, s.Board, s) {
				return true
			}
		}
	}
	return false
}

// isBlocked reports whether nobody can play and nobody can draw.
func (e *Engine) isBlocked() bool {
	s := e.state
	if e.mode.Info().CanDraw && len(s.Boneyard) > 0 {
		return false
	}
	for _, p := range s.Players {
		if e.hasLegalMove(p) {
			return false
		}
	}
	return true
}

// lowestPipSeat returns the seat with the fewest pips, or -1 on a tie.
func (e *Engine) lowestPipSeat() int {
	counts := e.state.PipCounts()
	best := slices.Min(counts)
	seat := -1
	for i, c := range counts {
		if c != best {
			continue
		}
		if seat >= 0 {
			return -1
		}
		seat = i
	}
	return seat
}

func (e *Engine) endRound(reason EndReason, winner int) {
	s := e.state
	s.Phase = RoundOver
	s.Winner = winner

	points := 0
	if winner >= 0 {
		points = e.mode.CalculateRoundScore(s)
		if points < 0 {
			e.logger.Error("Negative round settlement ignored", "mode", s.Mode, "points", points)
			points = 0
		}
		s.Players[winner].Score += points
	}
	result := RoundResult{
		Round:     s.Round,
		Reason:    reason,
		Winner:    winner,
		Points:    points,
		PipCounts: s.PipCounts(),
	}
	s.Rounds = append(s.Rounds, result)

	winnerName := "none"
	if winner >= 0 {
		winnerName = s.Players[winner].Name
	}
	e.logger.Info("Round over",
		"game", s.GameID,
		"round", s.Round,
		"reason", reason,
		"winner", winnerName,
		"points", points)

	if e.gameFinished() {
		s.Phase = GameOver
		e.logger.Info("Game over", "game", s.GameID, "rounds", s.Round, "leaders", s.Leaders())
	}
}

func (e *Engine) gameFinished() bool {
	s := e.state
	if s.MaxRounds > 0 && s.Round >= s.MaxRounds {
		return true
	}
	if s.TargetScore <= 0 {
		return false
	}
	for _, p := range s.Players {
		if p.Score >= s.TargetScore {
			return true
		}
	}
	return false
}
