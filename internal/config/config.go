// Package config loads simulation settings from an HCL file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/kelseyhightower/envconfig"

	"github.com/lox/bankjack/internal/game"
	"github.com/lox/bankjack/internal/simulator"
)

// EnvPrefix is prepended to environment overrides, e.g. BANKJACK_ROUNDS
const EnvPrefix = "bankjack"

// DefaultPath is where config init writes and run looks by default
const DefaultPath = "bankjack.hcl"

// MaxPlayers is the number of seats at the table
const MaxPlayers = 4

// Config represents a simulation config file
type Config struct {
	Rounds          int            `hcl:"rounds,optional" envconfig:"rounds"`
	Seed            int64          `hcl:"seed,optional" envconfig:"seed"`
	Workers         int            `hcl:"workers,optional" envconfig:"workers"`
	StartingBalance int            `hcl:"starting_balance,optional" envconfig:"starting_balance"`
	Bid             int            `hcl:"bid,optional" envconfig:"bid"`
	Tracked         []int          `hcl:"tracked,optional" envconfig:"tracked"`
	Players         []PlayerConfig `hcl:"player,block" ignored:"true"`
}

// PlayerConfig seats one player
type PlayerConfig struct {
	ID     string `hcl:"id,label"`
	Policy string `hcl:"policy,optional"`
	Margin *int   `hcl:"margin,optional"`
}

// Default returns the configuration of the reference run
func Default() *Config {
	cfg := &Config{
		Rounds:          10_000_000,
		Workers:         1,
		StartingBalance: game.DefaultStartingBalance,
		Bid:             1,
		Tracked:         []int{1, 2},
	}
	for id := 1; id <= MaxPlayers; id++ {
		cfg.Players = append(cfg.Players, PlayerConfig{
			ID:     strconv.Itoa(id),
			Policy: game.DefaultPolicyFor(id).Name(),
		})
	}
	return cfg
}

// Load reads an HCL config file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return LoadBytes(data, filename)
}

// LoadBytes parses HCL source; filename is only used in diagnostics
func LoadBytes(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Rounds == 0 {
		c.Rounds = def.Rounds
	}
	if c.Workers == 0 {
		c.Workers = def.Workers
	}
	if c.StartingBalance == 0 {
		c.StartingBalance = def.StartingBalance
	}
	if c.Bid == 0 {
		c.Bid = def.Bid
	}
	if len(c.Players) == 0 {
		c.Players = def.Players
	}
	if c.Tracked == nil {
		c.Tracked = def.Tracked
	}
	for i := range c.Players {
		if c.Players[i].Policy != "" {
			continue
		}
		if id, err := strconv.Atoi(c.Players[i].ID); err == nil {
			c.Players[i].Policy = game.DefaultPolicyFor(id).Name()
		}
	}
}

// ApplyEnv overrides scalar settings from BANKJACK_* environment variables
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.StartingBalance <= 0 {
		return fmt.Errorf("starting balance must be positive, got %d", c.StartingBalance)
	}
	if c.Bid <= 0 || c.Bid > c.StartingBalance {
		return fmt.Errorf("bid must be between 1 and the starting balance %d, got %d", c.StartingBalance, c.Bid)
	}
	if len(c.Players) == 0 || len(c.Players) > MaxPlayers {
		return fmt.Errorf("between 1 and %d players must be configured, got %d", MaxPlayers, len(c.Players))
	}

	ids := make([]int, 0, len(c.Players))
	for _, p := range c.Players {
		id, err := strconv.Atoi(p.ID)
		if err != nil || id <= 0 {
			return fmt.Errorf("player %q: id must be a positive integer", p.ID)
		}
		if slices.Contains(ids, id) {
			return fmt.Errorf("player %d: configured more than once", id)
		}
		ids = append(ids, id)

		if _, err := game.PolicyByName(p.Policy); err != nil {
			return fmt.Errorf("player %d: %w", id, err)
		}
		if p.Margin != nil && *p.Margin < 0 {
			return fmt.Errorf("player %d: margin must not be negative", id)
		}
	}

	for _, id := range c.Tracked {
		if !slices.Contains(ids, id) {
			return fmt.Errorf("tracked player %d is not seated", id)
		}
	}
	return nil
}

// Encode renders the configuration as HCL
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return f.Bytes()
}

// Simulation converts a validated configuration into simulator settings
func (c *Config) Simulation(logger *log.Logger) (simulator.Config, error) {
	if err := c.Validate(); err != nil {
		return simulator.Config{}, err
	}

	players := make([]simulator.PlayerSpec, 0, len(c.Players))
	for _, p := range c.Players {
		id, _ := strconv.Atoi(p.ID)
		policy, err := game.PolicyByName(p.Policy)
		if err != nil {
			return simulator.Config{}, err
		}
		if fixed, ok := policy.(game.FixedThresholdPolicy); ok && p.Margin != nil {
			fixed.Margin = *p.Margin
			policy = fixed
		}
		players = append(players, simulator.PlayerSpec{ID: id, Policy: policy})
	}

	return simulator.Config{
		Rounds:          c.Rounds,
		Seed:            c.Seed,
		Workers:         c.Workers,
		StartingBalance: c.StartingBalance,
		Bid:             c.Bid,
		Players:         players,
		Tracked:         slices.Clone(c.Tracked),
		Logger:          logger,
	}, nil
}
