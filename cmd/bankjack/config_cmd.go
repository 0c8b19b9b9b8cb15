package main

import (
	"fmt"
	"os"

	"github.com/lox/bankjack/internal/config"
	"github.com/lox/bankjack/internal/fileutil"
)

type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write the default config file"`
	Show ConfigShowCmd `cmd:"" help:"Print the effective config after environment overrides"`
}

type ConfigInitCmd struct {
	Path  string `default:"${config_path}" type:"path" help:"Where to write the config"`
	Force bool   `short:"f" help:"Overwrite an existing file"`
}

func (c *ConfigInitCmd) Run(g *Globals) error {
	data := config.Default().Encode()
	if err := fileutil.WriteFileExclusive(c.Path, data, 0o644, c.Force); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	newLogger(g).Info("Wrote config", "path", c.Path)
	fmt.Fprintln(os.Stderr, "wrote", c.Path)
	return nil
}

type ConfigShowCmd struct {
	Config string `short:"c" default:"${config_path}" type:"path" help:"HCL config file"`
}

func (c *ConfigShowCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	_, err = os.Stdout.Write(cfg.Encode())
	return err
}

// configPath is the default config location, overridable with BANKJACK_CONFIG
func configPath() string {
	if p := os.Getenv("BANKJACK_CONFIG"); p != "" {
		return p
	}
	return config.DefaultPath
}
