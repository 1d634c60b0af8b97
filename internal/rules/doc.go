// Package rules contains the domino variants. Each variant is its own type
// implementing game.Mode; they share helper functions rather than a base
// type, so one ruleset can change without disturbing the others.
//
// Variants:
//   - block: linear, no drawing, settlement only
//   - draw: block with drawing from the boneyard
//   - allfives: linear, scores whenever the ends total a multiple of five
//   - cross: four arms from a center double, scores on multiples of five
//   - cutthroat: three players, nine tiles each, opens on the highest double
//
// Heuristic move scores are computed from Weights, which are tuning knobs
// for automated players and never affect legality or official scores.
package rules
