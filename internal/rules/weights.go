package rules

import (
	"fmt"
	"slices"
	"strings"
)

// Weights tune the heuristic used to rank moves for automated players.
type Weights struct {
	PipValue           float64 // per pip on the tile played
	EmptyHandBonus     float64 // flat bonus when the move empties the hand
	ScoreMultiplier    float64 // per point scored by the move itself
	DoubleBonus        float64 // flat bonus for shedding a double
	OpenDirectionBonus float64 // cross: per open arm the remaining hand can still play
	BlockingBonus      float64 // cutthroat: per unseen tile that cannot answer the new ends
}

// DefaultWeights returns the medium difficulty preset.
func DefaultWeights() Weights {
	return presets["medium"]
}

var presets = map[string]Weights{
	"easy": {
		PipValue:        0.5,
		EmptyHandBonus:  20,
		ScoreMultiplier: 0.5,
		DoubleBonus:     1,
	},
	"medium": {
		PipValue:           1,
		EmptyHandBonus:     100,
		ScoreMultiplier:    2,
		DoubleBonus:        5,
		OpenDirectionBonus: 3,
		BlockingBonus:      2,
	},
	"hard": {
		PipValue:           1.5,
		EmptyHandBonus:     150,
		ScoreMultiplier:    4,
		DoubleBonus:        8,
		OpenDirectionBonus: 5,
		BlockingBonus:      4,
	},
}

// Preset returns the named difficulty preset.
func Preset(name string) (Weights, error) {
	w, ok := presets[strings.ToLower(name)]
	if !ok {
		return Weights{}, fmt.Errorf("unknown difficulty %q (available: %s)", name, strings.Join(Difficulties(), ", "))
	}
	return w, nil
}

// Difficulties lists the preset names in increasing strength.
func Difficulties() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	order := map[string]int{"easy": 0, "medium": 1, "hard": 2}
	slices.SortFunc(names, func(a, b string) int { return order[a] - order[b] })
	return names
}

// Validate rejects negative weights.
func (w Weights) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"pip_value", w.PipValue},
		{"empty_hand_bonus", w.EmptyHandBonus},
		{"score_multiplier", w.ScoreMultiplier},
		{"double_bonus", w.DoubleBonus},
		{"open_direction_bonus", w.OpenDirectionBonus},
		{"blocking_bonus", w.BlockingBonus},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("weight %s must not be negative, got %g", f.name, f.value)
		}
	}
	return nil
}
