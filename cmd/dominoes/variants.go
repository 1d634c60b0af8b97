package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Paulmait/dominauts/internal/bot"
	"github.com/Paulmait/dominauts/internal/display"
	"github.com/Paulmait/dominauts/internal/rules"
)

type VariantsCmd struct {
	NoColor bool `help:"Disable colors"`
}

func (c *VariantsCmd) Run() error {
	d := display.New(os.Stdout)
	if c.NoColor {
		d = display.NewPlain()
	}
	printVariants(os.Stdout, d)
	return nil
}

func printVariants(w io.Writer, d *display.Display) {
	styles := d.Styles()
	for _, mode := range rules.All() {
		info := mode.Info()
		players := fmt.Sprintf("%d-%d players", info.MinPlayers, info.MaxPlayers)
		if info.MinPlayers == info.MaxPlayers {
			players = fmt.Sprintf("%d players", info.MinPlayers)
		}
		draw := "no drawing"
		if info.CanDraw {
			draw = "draws from the boneyard"
		}
		fmt.Fprintf(w, "%s %s\n", styles.Current.Render(fmt.Sprintf("%-10s", info.Name)), info.DisplayName)
		fmt.Fprintf(w, "           %s board, double-%d set, %d tiles each, %s, %s, first to %d\n",
			info.Board, info.MaxPips, info.TilesPerPlayer, players, draw, info.TargetScore)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Difficulties: %s\n", strings.Join(rules.Difficulties(), ", "))
	fmt.Fprintf(w, "Bot strategies: %s\n", strings.Join(bot.Strategies(), ", "))
}
