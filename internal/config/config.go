// Package config loads player preferences from an HCL file with environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/Paulmait/dominauts/internal/fileutil"
	"github.com/Paulmait/dominauts/internal/game"
	"github.com/Paulmait/dominauts/internal/rules"
)

// RelPath is the config file location relative to the XDG config directories.
const RelPath = "dominoes/config.hcl"

// Config is the complete configuration.
type Config struct {
	Seed         int64              `hcl:"seed,optional"`
	LogLevel     string             `hcl:"log_level,optional"`
	SaveDir      string             `hcl:"save_dir,optional"`
	Game         GameSettings       `hcl:"game,block"`
	Difficulties []DifficultyConfig `hcl:"difficulty,block"`
}

// GameSettings are the defaults for a new game.
type GameSettings struct {
	Mode           string `hcl:"mode,optional" env:"DOMINOES_MODE"`
	Players        int    `hcl:"players,optional" env:"DOMINOES_PLAYERS"`
	PlayerName     string `hcl:"player_name,optional" env:"DOMINOES_PLAYER_NAME"`
	Difficulty     string `hcl:"difficulty,optional" env:"DOMINOES_DIFFICULTY"`
	TargetScore    int    `hcl:"target_score,optional" env:"DOMINOES_TARGET_SCORE"`
	MaxRounds      int    `hcl:"max_rounds,optional" env:"DOMINOES_MAX_ROUNDS"`
	MaxPips        int    `hcl:"max_pips,optional" env:"DOMINOES_MAX_PIPS"`
	TilesPerPlayer int    `hcl:"tiles_per_player,optional" env:"DOMINOES_TILES_PER_PLAYER"`
}

// DifficultyConfig defines or adjusts a named set of heuristic weights.
// Unset weights are taken from Base, or from the preset of the same name.
type DifficultyConfig struct {
	Name               string   `hcl:"name,label"`
	Base               string   `hcl:"base,optional"`
	PipValue           *float64 `hcl:"pip_value,optional"`
	EmptyHandBonus     *float64 `hcl:"empty_hand_bonus,optional"`
	ScoreMultiplier    *float64 `hcl:"score_multiplier,optional"`
	DoubleBonus        *float64 `hcl:"double_bonus,optional"`
	OpenDirectionBonus *float64 `hcl:"open_direction_bonus,optional"`
	BlockingBonus      *float64 `hcl:"blocking_bonus,optional"`
}

// general holds the top-level settings that can come from the environment.
type general struct {
	Seed     int64  `env:"DOMINOES_SEED"`
	LogLevel string `env:"DOMINOES_LOG_LEVEL"`
	SaveDir  string `env:"DOMINOES_SAVE_DIR"`
}

// fileConfig mirrors Config with the game block optional.
type fileConfig struct {
	Seed         int64              `hcl:"seed,optional"`
	LogLevel     string             `hcl:"log_level,optional"`
	SaveDir      string             `hcl:"save_dir,optional"`
	Game         *GameSettings      `hcl:"game,block"`
	Difficulties []DifficultyConfig `hcl:"difficulty,block"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		SaveDir:  defaultSaveDir(),
		Game: GameSettings{
			Mode:       "allfives",
			PlayerName: "Player",
			Difficulty: "medium",
		},
	}
}

func defaultSaveDir() string {
	return filepath.Join(xdg.DataHome, "dominoes", "saves")
}

// Load reads path (or the XDG search path when empty), applies environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := xdg.SearchConfigFile(RelPath)
		if err == nil {
			path = found
		}
	}

	cfg := Default()
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads an HCL config file on top of the defaults.
func LoadFile(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if fc.Seed != 0 {
		cfg.Seed = fc.Seed
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.SaveDir != "" {
		cfg.SaveDir = fc.SaveDir
	}
	if fc.Game != nil {
		g := *fc.Game
		if g.Mode == "" {
			g.Mode = cfg.Game.Mode
		}
		if g.PlayerName == "" {
			g.PlayerName = cfg.Game.PlayerName
		}
		if g.Difficulty == "" {
			g.Difficulty = cfg.Game.Difficulty
		}
		cfg.Game = g
	}
	cfg.Difficulties = fc.Difficulties
	return cfg, nil
}

// ApplyEnv overrides cfg with any DOMINOES_* environment variables.
func ApplyEnv(cfg *Config) error {
	g := general{Seed: cfg.Seed, LogLevel: cfg.LogLevel, SaveDir: cfg.SaveDir}
	if err := env.Parse(&g); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg.Seed, cfg.LogLevel, cfg.SaveDir = g.Seed, g.LogLevel, g.SaveDir

	if err := env.Parse(&cfg.Game); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that the configured game can be played.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.Game.MaxPips < 0 || c.Game.TilesPerPlayer < 0 || c.Game.TargetScore < 0 || c.Game.MaxRounds < 0 {
		return fmt.Errorf("game settings must not be negative")
	}

	seen := make(map[string]bool, len(c.Difficulties))
	for _, d := range c.Difficulties {
		key := strings.ToLower(d.Name)
		if seen[key] {
			return fmt.Errorf("difficulty %q defined twice", d.Name)
		}
		seen[key] = true
	}

	mode, err := c.Mode()
	if err != nil {
		return err
	}
	return mode.Info().Validate(c.PlayerCount(mode))
}

// PlayerCount returns the configured number of players, or the variant's
// minimum when unset.
func (c *Config) PlayerCount(mode game.Mode) int {
	if c.Game.Players > 0 {
		return c.Game.Players
	}
	return mode.Info().MinPlayers
}

// Mode builds the configured variant at the configured difficulty.
func (c *Config) Mode() (game.Mode, error) {
	w, err := c.Weights(c.Game.Difficulty)
	if err != nil {
		return nil, err
	}
	return rules.New(c.Game.Mode, w, c.ModeOptions()...)
}

// Weights resolves a difficulty name against the configured difficulty
// blocks and then the built-in presets.
func (c *Config) Weights(name string) (rules.Weights, error) {
	for _, d := range c.Difficulties {
		if !strings.EqualFold(d.Name, name) {
			continue
		}
		base := d.Base
		if base == "" {
			base = d.Name
			if _, err := rules.Preset(base); err != nil {
				base = "medium"
			}
		}
		w, err := rules.Preset(base)
		if err != nil {
			return rules.Weights{}, fmt.Errorf("difficulty %q: %w", d.Name, err)
		}
		override(&w.PipValue, d.PipValue)
		override(&w.EmptyHandBonus, d.EmptyHandBonus)
		override(&w.ScoreMultiplier, d.ScoreMultiplier)
		override(&w.DoubleBonus, d.DoubleBonus)
		override(&w.OpenDirectionBonus, d.OpenDirectionBonus)
		override(&w.BlockingBonus, d.BlockingBonus)
		if err := w.Validate(); err != nil {
			return rules.Weights{}, fmt.Errorf("difficulty %q: %w", d.Name, err)
		}
		return w, nil
	}
	return rules.Preset(name)
}

func override(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// ModeOptions turns the game settings into variant options.
func (c *Config) ModeOptions() []rules.Option {
	var opts []rules.Option
	if c.Game.MaxPips > 0 {
		opts = append(opts, rules.WithMaxPips(c.Game.MaxPips))
	}
	if c.Game.TilesPerPlayer > 0 {
		opts = append(opts, rules.WithTilesPerPlayer(c.Game.TilesPerPlayer))
	}
	if c.Game.TargetScore > 0 {
		opts = append(opts, rules.WithTargetScore(c.Game.TargetScore))
	}
	return opts
}

// Encode renders cfg as HCL.
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return f.Bytes()
}

// Write saves cfg as HCL to filename.
func (c *Config) Write(filename string) error {
	return fileutil.WriteFileAtomic(filename, c.Encode(), 0o644)
}

// DefaultPath returns the file Write should use when no path is given,
// creating its directory.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(RelPath)
}
