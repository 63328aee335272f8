package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/lox/pokersim/cmd/pokersim/shared"
	"github.com/lox/pokersim/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config  string `short:"c" default:"pokersim.hcl" help:"HCL run configuration (defaults apply when missing)"`
	Debug   bool   `help:"Enable debug logging"`
	JSON    bool   `name:"json-logs" help:"Log structured JSON instead of console output"`
	NoColor bool   `name:"no-color" env:"NO_COLOR" help:"Render hands without colors"`
}

// AfterApply runs once the flags are parsed, before any command.
func (g *Globals) AfterApply() error {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return nil
}

func (g *Globals) logger() zerolog.Logger {
	if g.JSON {
		return shared.SetupStructuredLogger(g.Debug)
	}
	return shared.SetupLogger(g.Debug)
}

func (g *Globals) load() (*config.Config, error) {
	return config.Load(g.Config)
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Play a table until one seat is left or the hand cap is hit"`
	Bench    BenchCmd         `cmd:"" help:"Measure each seat over independent hands"`
	Replay   ReplayCmd        `cmd:"" help:"Render the hands of a PHH file"`
	Profiles ProfilesCmd      `cmd:"" help:"List the built-in game profiles"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokersim"),
		kong.Description("Limit poker simulator for bots and training data"),
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
