package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/Paulmait/dominauts/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	ConfigFile string `name:"config" short:"c" type:"path" help:"Config file (default: dominoes/config.hcl in the XDG config dirs)"`
	LogLevel   string `help:"Log level (debug|info|warn|error); overrides the config file"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play a game against bots"`
	Simulate SimulateCmd      `cmd:"" aliases:"sim" help:"Play many bot-only games and report statistics"`
	Variants VariantsCmd      `cmd:"" help:"List the game variants and difficulties"`
	Config   ConfigCmd        `cmd:"" help:"Show or create the config file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("dominoes"),
		kong.Description("Terminal dominoes: block, draw, all fives, cross and cutthroat"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads the configuration and applies the global flags.
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.ConfigFile)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		if _, err := log.ParseLevel(g.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid --log-level %q: %w", g.LogLevel, err)
		}
		cfg.LogLevel = g.LogLevel
	}
	return cfg, nil
}

// newLogger builds the process logger at the configured level.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	}), nil
}

func stderrLogger(cfg *config.Config) (*log.Logger, error) {
	return newLogger(os.Stderr, cfg.LogLevel)
}
