package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Debug bool `help:"Enable debug logging"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Run     RunCmd           `cmd:"" default:"withargs" help:"Simulate rounds and print the statistics"`
	Config  ConfigCmd        `cmd:"" help:"Manage the simulation config file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bankjack"),
		kong.Description("Monte Carlo simulator for a bank-versus-players card game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_path": configPath(),
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

func newLogger(g *Globals) *log.Logger {
	level := log.WarnLevel
	if g.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "bankjack",
	})
}
