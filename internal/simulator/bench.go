package simulator

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/internal/statistics"
	"github.com/lox/pokersim/poker"
)

// Rate converts a fund change into milli big blinds.
func Rate(blind, init, final money.Money) float64 {
	return 1000 * float64(final.Delta(init)) / float64(blind)
}

// PlayersFactory builds the players of one worker.
type PlayersFactory func(rng *rand.Rand) (game.Players, error)

// Bench plays independent hands from fixed funds and measures each seat.
type Bench struct {
	Sim     *game.Sim
	Eval    poker.Evaluator
	Players PlayersFactory
	Hands   int
	// Workers defaults to GOMAXPROCS.
	Workers int
	Fund    money.Money
	Seed    int64
	Clock   quartz.Clock
	Logger  *log.Logger
}

// Report summarizes a benchmark run. Seats holds one Statistics per seat, in
// big blinds per hand, with results keyed by position from the button.
type Report struct {
	Hands   int
	Seats   []statistics.Statistics
	Elapsed time.Duration
}

// HandsPerSecond returns the throughput of the run.
func (r *Report) HandsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Hands) / r.Elapsed.Seconds()
}

// MBB returns a seat's rate in milli big blinds per hand and its 95%
// confidence half width.
func (r *Report) MBB(seat int) (float64, float64) {
	s := &r.Seats[seat]
	return s.MBBPerHand(), 1.96 * s.StdError() * 1000
}

// Run plays the hands, spreading them over the workers. Worker w plays hands
// w, w+W, ... from its own stream so a run is reproducible for a given seed
// and worker count.
func (b *Bench) Run(ctx context.Context) (*Report, error) {
	if b.Players == nil {
		return nil, errors.New("bench requires a players factory")
	}
	if b.Hands <= 0 {
		return nil, fmt.Errorf("invalid hands count: %d", b.Hands)
	}
	n := b.Sim.Profile.Players
	if b.Fund < b.Sim.BlindBiggest {
		return nil, fmt.Errorf("fund %s below the big blind %s", b.Fund, b.Sim.BlindBiggest)
	}
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, b.Hands)
	clock := b.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	logger := b.Logger
	if logger == nil {
		logger = discard
	}

	root := randutil.New(b.Seed)
	streams := make([]*rand.Rand, workers)
	for w := range streams {
		streams[w] = randutil.Split(root)
	}
	perWorker := make([][]statistics.Statistics, workers)

	start := clock.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			rng := streams[w]
			players, err := b.Players(rng)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			seats := make([]statistics.Statistics, n)
			for hand := w; hand < b.Hands; hand += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := b.play(rng, players, hand, seats); err != nil {
					return fmt.Errorf("hand %d: %w", hand, err)
				}
			}
			perWorker[w] = seats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Hands: b.Hands, Seats: make([]statistics.Statistics, n), Elapsed: clock.Since(start)}
	for _, seats := range perWorker {
		for i := range seats {
			report.Seats[i].Merge(&seats[i])
		}
	}
	logger.Info("bench finished", "hands", b.Hands, "workers", workers, "elapsed", report.Elapsed)
	return report, nil
}

func (b *Bench) play(rng *rand.Rand, players game.Players, hand int, seats []statistics.Statistics) error {
	n := b.Sim.Profile.Players
	bb := b.Sim.BlindBiggest
	funds := make([]game.SeatFund, n)
	for i := range funds {
		funds[i] = game.SeatFund{Seat: i, Fund: b.Fund}
	}
	first := hand % n

	seed := rng.Int64()
	handLog, score, err := game.SimulateHand(randutil.New(seed), b.Sim, b.Eval, players, funds, first)
	if err != nil {
		return err
	}
	if err := game.CheckConservation(handLog.Players, score); err != nil {
		return err
	}
	pot := float64(score.Pot) / float64(bb)
	for _, f := range score.Funds {
		seats[f.Seat].Add(statistics.HandResult{
			NetBB:    Rate(bb, b.Fund, f.Fund) / 1000,
			Seed:     seed,
			Seat:     (f.Seat - first + n) % n,
			Showdown: score.Terminal == game.TerminalShowdown,
			Dead:     score.Dead(),
			PotBB:    pot,
		})
	}
	return nil
}
