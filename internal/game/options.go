package game

import "github.com/Paulmait/dominauts/domino"

// Option configures an Engine during creation.
type Option func(*engineConfig)

type engineConfig struct {
	targetScore int          // 0 uses the mode's default
	maxRounds   int          // 0 means unlimited
	deck        *domino.Deck // consumed by the next StartRound
	gameID      string
}

// WithTargetScore ends the game once any player reaches score points.
func WithTargetScore(score int) Option {
	return func(c *engineConfig) {
		c.targetScore = score
	}
}

// WithMaxRounds ends the game after n settled rounds.
func WithMaxRounds(n int) Option {
	return func(c *engineConfig) {
		c.maxRounds = n
	}
}

// WithDeck deals the next round from a pre-arranged deck instead of a fresh
// shuffle. Hands are dealt in contiguous blocks by seat.
func WithDeck(deck *domino.Deck) Option {
	return func(c *engineConfig) {
		c.deck = deck
	}
}

// WithGameID fixes the game identifier instead of generating one.
func WithGameID(id string) Option {
	return func(c *engineConfig) {
		c.gameID = id
	}
}
