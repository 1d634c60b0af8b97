package game

import (
	"encoding/json"
	"fmt"
)

// Snapshot serialises the game state to JSON.
func (e *Engine) Snapshot() ([]byte, error) {
	if e.state == nil {
		return nil, fmt.Errorf("%w: nothing to snapshot", ErrRoundNotActive)
	}
	data, err := json.Marshal(e.state)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

// Restore replaces the engine state with a snapshot taken under mode.
func (e *Engine) Restore(mode Mode, data []byte) error {
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("unmarshal state: %w", err)
	}
	info := mode.Info()
	if state.Mode != info.Name {
		return configErrorf("snapshot is for mode %q, not %q", state.Mode, info.Name)
	}
	if state.MaxPips != info.MaxPips || state.HandSize != info.TilesPerPlayer {
		return configErrorf("snapshot uses a double-%d set with %d tiles each, mode %s uses double-%d with %d",
			state.MaxPips, state.HandSize, info.Name, info.MaxPips, info.TilesPerPlayer)
	}
	if err := info.Validate(len(state.Players)); err != nil {
		return err
	}
	if state.Board == nil || state.Board.Kind != info.Board {
		return configErrorf("snapshot board does not match %s", info.Name)
	}
	if state.Phase == AwaitingMove && (state.Current < 0 || state.Current >= len(state.Players)) {
		return configErrorf("snapshot seat %d out of range", state.Current)
	}
	e.mode = mode
	e.state = &state
	e.logger.Info("State restored", "game", state.GameID, "round", state.Round, "phase", state.Phase)
	return nil
}
