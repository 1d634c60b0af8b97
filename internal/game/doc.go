// Package game implements the turn engine shared by every domino variant.
//
// The main type is Engine, which owns a single State: the players, the
// Board, the boneyard, the acting seat and the round/game score history.
// Variant rules are supplied by a Mode; the engine asks the mode which moves
// are legal, validates every submitted move against it, applies the move to
// the Board and asks the mode for scores.
//
// # Basic Usage
//
//	e := game.NewEngine(randutil.New(42), logger)
//	if err := e.StartRound(rules.NewAllFives(rules.DefaultWeights()), players); err != nil {
//	    return err
//	}
//	moves := e.ValidMoves()
//	res, err := e.SubmitMove(e.State().Current, moves[0].Tile, moves[0].Position)
//
// A player with no legal move is passed with AdvanceIfNoLegalMoves, which
// draws from the boneyard first when the variant allows it.
//
// # Board Kinds
//
// Linear boards expose two open ends (Left and Right). Cross boards start
// from a center double and expose four directional ends (North, East, South,
// West). The topology lives entirely on the Board so modes remain pure
// functions over the state they are handed.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Callers that expose a game to
// several goroutines must serialise calls per engine; independent engines
// share nothing and may run in parallel.
package game
