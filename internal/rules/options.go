package rules

import "github.com/Paulmait/dominauts/internal/game"

// Option adjusts a variant's fixed configuration at construction time.
type Option func(*game.ModeInfo)

// WithMaxPips plays with a larger set, e.g. double-nine.
func WithMaxPips(n int) Option {
	return func(i *game.ModeInfo) {
		i.MaxPips = n
	}
}

// WithTilesPerPlayer changes the deal size.
func WithTilesPerPlayer(n int) Option {
	return func(i *game.ModeInfo) {
		i.TilesPerPlayer = n
	}
}

// WithTargetScore changes the default game target.
func WithTargetScore(n int) Option {
	return func(i *game.ModeInfo) {
		i.TargetScore = n
	}
}

func applyOptions(info game.ModeInfo, opts []Option) game.ModeInfo {
	for _, opt := range opts {
		opt(&info)
	}
	return info
}
