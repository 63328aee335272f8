package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lox/pokersim/cmd/pokersim/shared"
	"github.com/lox/pokersim/internal/config"
	"github.com/lox/pokersim/internal/episode"
	"github.com/lox/pokersim/internal/fileutil"
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/internal/phh"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/internal/replay"
	"github.com/lox/pokersim/internal/simulator"
	"github.com/lox/pokersim/poker"
)

// SimulateCmd plays one table with the configured bots.
type SimulateCmd struct {
	Seed     int64  `help:"Override the configured seed (0 keeps it)"`
	GamesMax int    `name:"games-max" help:"Override the configured hand cap (0 keeps it)"`
	PHH      string `name:"phh" type:"path" help:"Write the hands to a PHHS file"`
	Show     bool   `help:"Render every hand"`
	Samples  bool   `help:"Push training samples of every hand into the replay store"`
}

func (cmd *SimulateCmd) Run(g *Globals) error {
	logger := g.logger()
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if cmd.Seed != 0 {
		cfg.Run.Seed = cmd.Seed
	}
	if cmd.GamesMax != 0 {
		cfg.Run.GamesMax = cmd.GamesMax
	}

	sim, err := cfg.Sim()
	if err != nil {
		return err
	}
	sim.Logger = shared.SetupEngineLogger(g.Debug)
	eval := poker.Texas{}

	rng := randutil.New(cfg.Run.Seed)
	players, err := cfg.Players(randutil.Split(rng), &sim, eval)
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandler(logger)
	table := simulator.Table{
		Sim:      &sim,
		Eval:     eval,
		Players:  players,
		GamesMax: cfg.Run.GamesMax,
		Logger:   sim.Logger,
	}
	logger.Info().
		Str("profile", sim.Profile.ID).
		Int("players", sim.Profile.Players).
		Int64("seed", cfg.Run.Seed).
		Int("games_max", cfg.Run.GamesMax).
		Msg("Starting table")

	funds, records, simErr := table.Simulate(ctx, rng, cfg.Funds(), cfg.Run.First)
	var tableErr *simulator.TableError
	switch {
	case errors.As(simErr, &tableErr):
		logger.Error().Err(tableErr.Err).Int("hand", tableErr.Hands+1).Msg("Hand failed, keeping earlier hands")
	case errors.Is(simErr, context.Canceled):
		logger.Warn().Int("hands", len(records)).Msg("Interrupted")
		simErr = nil
	case simErr != nil:
		return simErr
	}

	names := cfg.BotNames()
	hands, convErr := histories(&sim, records, cfg.Run.Seed, names)
	if convErr != nil {
		return convErr
	}
	if cmd.Show {
		for i, h := range hands {
			RenderHand(os.Stdout, i, h)
		}
	}
	if cmd.PHH != "" {
		if err := writePHH(cmd.PHH, hands); err != nil {
			return err
		}
		logger.Info().Str("file", cmd.PHH).Int("hands", len(hands)).Msg("Wrote hand histories")
	}
	if cmd.Samples {
		if err := pushSamples(ctx, cfg, &sim, eval, records, logger); err != nil {
			return err
		}
	}

	printFunds(os.Stdout, cfg.Fund(), sim.BlindBiggest, funds, names, len(records))
	return simErr
}

func histories(sim *game.Sim, records []simulator.HandRecord, seed int64, names []string) ([]*phh.HandHistory, error) {
	hands := make([]*phh.HandHistory, 0, len(records))
	for i, rec := range records {
		h, err := phh.FromHand(sim, rec.Log, rec.Score, phh.HandID(seed, i))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		for _, p := range rec.Log.Players {
			h.Players = append(h.Players, fmt.Sprintf("%s-%d", names[p.Seat], p.Seat))
		}
		hands = append(hands, h)
	}
	return hands, nil
}

func writePHH(path string, hands []*phh.HandHistory) error {
	return fileutil.WriteAtomic(filepath.Clean(path), 0o644, func(w io.Writer) error {
		return phh.EncodeAll(w, hands)
	})
}

func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (replay.Store[episode.Sample], func() error, error) {
	r := cfg.Replay
	if r.RedisAddr == "" {
		return replay.NewMemoryStore[episode.Sample](r.Capacity), func() error { return nil }, nil
	}
	client, err := replay.DialRedis(ctx, r.RedisAddr, r.Password, r.DB)
	if err != nil {
		return nil, nil, err
	}
	return replay.NewRedisStore[episode.Sample](client, r.Namespace, r.Capacity, logger), client.Close, nil
}

func pushSamples(ctx context.Context, cfg *config.Config, sim *game.Sim, eval poker.Evaluator, records []simulator.HandRecord, logger zerolog.Logger) error {
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	replayer := episode.Replayer{Sim: sim, Eval: eval, Logger: sim.Logger}
	pushed := 0
	for i, rec := range records {
		ep, err := replayer.Replay(rec.Log)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		samples := episode.FromEpisode(ep, sim.BlindBiggest)
		for j := range samples {
			samples[j].Hand = i
		}
		if err := store.Push(ctx, samples...); err != nil {
			return err
		}
		pushed += len(samples)
	}
	n, err := store.Len(ctx)
	if err != nil {
		return err
	}
	logger.Info().Int("pushed", pushed).Int("stored", n).Str("namespace", cfg.Replay.Namespace).Msg("Pushed training samples")
	return nil
}

func printFunds(w io.Writer, start, bb money.Money, funds []game.SeatFund, names []string, hands int) {
	fmt.Fprintf(w, "\n=== TABLE RESULTS ===\n")
	fmt.Fprintf(w, "Hands played: %d\n", hands)
	for _, f := range funds {
		delta := f.Fund.Delta(start)
		fmt.Fprintf(w, "Seat %d (%s): %s (%+.2f, %+.1f bb)\n",
			f.Seat, names[f.Seat], f.Fund, float64(delta)/100, float64(delta)/float64(bb))
	}
}
