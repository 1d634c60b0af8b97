// Package domino provides the tile value type and the shuffled deck that
// every variant deals from.
//
// Tiles are plain values. Flipping a tile returns a new value; nothing in this
// package mutates a tile in place. Hand membership compares tiles without
// regard to orientation, so 4|6 and 6|4 are the same piece.
//
// # Deterministic Dealing
//
// Decks take an explicit *rand.Rand so that tests can reproduce a deal:
//
//	rng := randutil.New(42)
//	deck := domino.NewDeck(rng, domino.StandardMaxPips)
//	hand, err := deck.Deal(7)
package domino
