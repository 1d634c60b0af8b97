package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Paulmait/dominauts/internal/config"
)

type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"1" help:"Print the effective configuration"`
	Init ConfigInitCmd `cmd:"" help:"Write a config file with the defaults"`
	Path ConfigPathCmd `cmd:"" help:"Print the default config file path"`
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(cfg.Encode())
	return err
}

type ConfigInitCmd struct {
	Force bool `short:"f" help:"Overwrite an existing file"`
}

func (c *ConfigInitCmd) Run(globals *Globals) error {
	path := globals.ConfigFile
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := config.Default().Write(path); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

type ConfigPathCmd struct{}

func (c *ConfigPathCmd) Run() error {
	path, err := config.DefaultPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
