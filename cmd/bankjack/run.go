package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"

	"github.com/lox/bankjack/internal/config"
	"github.com/lox/bankjack/internal/progress"
	"github.com/lox/bankjack/internal/report"
	"github.com/lox/bankjack/internal/simulator"
)

type RunCmd struct {
	Rounds   int    `short:"n" help:"Number of rounds to simulate (overrides config)"`
	Seed     int64  `short:"s" help:"RNG seed, 0 for time based (overrides config)"`
	Workers  int    `short:"w" help:"Parallel workers (overrides config)"`
	Config   string `short:"c" default:"${config_path}" type:"path" help:"HCL config file"`
	Progress bool   `short:"p" help:"Show a progress bar on stderr"`
	NoColor  bool   `help:"Disable colored output"`
	Top      int    `default:"40" help:"Combinations listed per table"`
}

// settings loads the config file, environment and flags in that order of
// precedence, lowest first
func (c *RunCmd) settings() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if c.Rounds != 0 {
		cfg.Rounds = c.Rounds
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if c.Workers != 0 {
		cfg.Workers = c.Workers
	}
	return cfg, nil
}

func (c *RunCmd) Run(g *Globals) error {
	logger := newLogger(g)

	cfg, err := c.settings()
	if err != nil {
		return err
	}
	simCfg, err := cfg.Simulation(logger)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var bar *progress.Reporter
	if c.Progress {
		bar = progress.Start(os.Stderr, simCfg.Rounds, quartz.NewReal())
		simCfg.Progress = bar.Update
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := simulator.New(simCfg).Run(ctx)
	if bar != nil {
		if ferr := bar.Finish(); ferr != nil {
			logger.Warn("Progress display failed", "error", ferr)
		}
	}
	if err != nil {
		return err
	}

	opts := []report.Option{report.WithTop(c.Top)}
	if c.NoColor {
		opts = append(opts, report.WithColor(false))
	}
	report.New(os.Stdout, opts...).Print(result)
	return nil
}
