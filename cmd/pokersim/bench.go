package main

import (
	rand "math/rand/v2"
	"os"

	"github.com/coder/quartz"

	"github.com/lox/pokersim/cmd/pokersim/shared"
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/simulator"
	"github.com/lox/pokersim/poker"
)

// BenchCmd plays independent hands in parallel and reports every seat.
type BenchCmd struct {
	Hands   int   `help:"Override the configured hand count (0 keeps it)"`
	Workers int   `help:"Override the configured worker count (0 keeps it)"`
	Seed    int64 `help:"Override the configured seed (0 keeps it)"`
}

func (cmd *BenchCmd) Run(g *Globals) error {
	logger := g.logger()
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if cmd.Hands > 0 {
		cfg.Run.Hands = cmd.Hands
	}
	if cmd.Workers > 0 {
		cfg.Run.Workers = cmd.Workers
	}
	if cmd.Seed != 0 {
		cfg.Run.Seed = cmd.Seed
	}

	sim, err := cfg.Sim()
	if err != nil {
		return err
	}
	sim.Logger = shared.SetupEngineLogger(g.Debug)
	eval := poker.Texas{}

	bench := simulator.Bench{
		Sim:  &sim,
		Eval: eval,
		Players: func(rng *rand.Rand) (game.Players, error) {
			return cfg.Players(rng, &sim, eval)
		},
		Hands:   cfg.Run.Hands,
		Workers: cfg.Run.Workers,
		Fund:    cfg.Fund(),
		Seed:    cfg.Run.Seed,
		Clock:   quartz.NewReal(),
		Logger:  sim.Logger,
	}

	logger.Info().
		Str("profile", sim.Profile.ID).
		Int("hands", bench.Hands).
		Int("workers", bench.Workers).
		Int64("seed", bench.Seed).
		Strs("bots", cfg.BotNames()).
		Msg("Starting bench")

	ctx := shared.SetupSignalHandler(logger)
	report, err := bench.Run(ctx)
	if err != nil {
		return err
	}
	simulator.PrintSummary(os.Stdout, report, cfg.BotNames())
	return nil
}
