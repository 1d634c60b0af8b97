package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Paulmait/dominauts/internal/game"
)

// Constructor builds a variant with the given heuristic weights.
type Constructor func(w Weights, opts ...Option) game.Mode

var registry = map[string]Constructor{
	"block":     func(w Weights, opts ...Option) game.Mode { return NewBlock(w, opts...) },
	"draw":      func(w Weights, opts ...Option) game.Mode { return NewDraw(w, opts...) },
	"allfives":  func(w Weights, opts ...Option) game.Mode { return NewAllFives(w, opts...) },
	"cross":     func(w Weights, opts ...Option) game.Mode { return NewCross(w, opts...) },
	"cutthroat": func(w Weights, opts ...Option) game.Mode { return NewCutthroat(w, opts...) },
}

// New returns the named variant.
func New(name string, w Weights, opts ...Option) (game.Mode, error) {
	ctor, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown game mode %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(w, opts...), nil
}

// Names lists the registered variants alphabetically.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns one instance of every variant with default weights.
func All() []game.Mode {
	modes := make([]game.Mode, 0, len(registry))
	for _, name := range Names() {
		modes = append(modes, registry[name](DefaultWeights()))
	}
	return modes
}
