package simulator

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/poker"
)

// DeadStreak is the number of consecutive dead hands that ends a table.
const DeadStreak = 6

// HandRecord is one played hand of a table.
type HandRecord struct {
	First game.SeatID
	Log   game.Log
	Score game.Score
}

// TableError reports a hand that failed mid-table. Records played before the
// failure are returned alongside it.
type TableError struct {
	Hands int
	Log   game.Log
	Err   error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("hand %d: %v", e.Hands+1, e.Err)
}

func (e *TableError) Unwrap() error { return e.Err }

// Table plays successive hands between the same seats until one is left
// standing.
type Table struct {
	Sim     *game.Sim
	Eval    poker.Evaluator
	Players game.Players
	// GamesMax caps the number of hands; zero means no cap.
	GamesMax int
	Logger   *log.Logger
}

var discard = log.New(io.Discard)

func (t *Table) logger() *log.Logger {
	if t.Logger == nil {
		return discard
	}
	return t.Logger
}

// Simulate plays from the given funds. The button starts at first and moves
// to the next seat still in play before every hand. Seats left with no more
// than a big blind sit out the rest of the table.
//
// It returns the final fund of every seat and the hands played, without a
// trailing run of dead hands.
func (t *Table) Simulate(ctx context.Context, rng *rand.Rand, funds []game.SeatFund, first game.SeatID) ([]game.SeatFund, []HandRecord, error) {
	if rng == nil {
		panic("simulator: Simulate requires a non-nil RNG")
	}
	n := t.Sim.Profile.Players
	if first < 0 || first >= n {
		return nil, nil, fmt.Errorf("first seat %d out of range for %d players", first, n)
	}
	for i, f := range funds {
		if f.Seat < 0 || f.Seat >= n {
			return nil, nil, fmt.Errorf("seat %d out of range for %d players", f.Seat, n)
		}
		if slices.ContainsFunc(funds[:i], func(o game.SeatFund) bool { return o.Seat == f.Seat }) {
			return nil, nil, fmt.Errorf("seat %d listed twice", f.Seat)
		}
	}

	logger := t.logger()
	current := slices.Clone(funds)
	total := sumFunds(current)
	bb := t.Sim.BlindBiggest

	actives := make([]game.SeatID, 0, len(current))
	for _, f := range current {
		actives = append(actives, f.Seat)
	}
	actives = dropShort(actives, current, bb)

	var records []HandRecord
	deads := 0
	button := first
	for len(actives) > 1 && deads < DeadStreak && (t.GamesMax == 0 || len(records) < t.GamesMax) {
		if err := ctx.Err(); err != nil {
			return current, records, err
		}
		button, _ = game.SeatNextActive(n, actives, button)

		dealt := make([]game.SeatFund, 0, len(actives))
		for _, f := range current {
			if slices.Contains(actives, f.Seat) {
				dealt = append(dealt, f)
			}
		}

		handLog, score, err := game.SimulateHand(rng, t.Sim, t.Eval, t.Players, dealt, button)
		if err != nil {
			return current, records, &TableError{Hands: len(records), Log: handLog, Err: err}
		}
		records = append(records, HandRecord{First: button, Log: handLog, Score: score})

		if slices.Equal(score.Funds, dealt) {
			deads++
		} else {
			deads = 0
			for i := range current {
				if fund, ok := score.Fund(current[i].Seat); ok {
					current[i].Fund = fund
				}
			}
		}
		if after := sumFunds(current); after != total {
			return current, records, &TableError{
				Hands: len(records) - 1,
				Log:   handLog,
				Err:   fmt.Errorf("%w: table held %s, now %s", game.ErrConservation, total, after),
			}
		}

		actives = dropShort(actives, current, bb)
		logger.Debug("hand played", "hand", len(records), "button", button, "terminal", score.Terminal, "actives", len(actives))
	}

	if deads == DeadStreak {
		records = records[:len(records)-DeadStreak]
		logger.Info("table stalled", "dead_hands", DeadStreak, "hands", len(records))
	}
	return current, records, nil
}

// dropShort removes seats whose fund no longer exceeds the big blind.
func dropShort(actives []game.SeatID, funds []game.SeatFund, bb money.Money) []game.SeatID {
	return slices.DeleteFunc(actives, func(seat game.SeatID) bool {
		i := slices.IndexFunc(funds, func(f game.SeatFund) bool { return f.Seat == seat })
		return funds[i].Fund <= bb
	})
}

func sumFunds(funds []game.SeatFund) money.Money {
	var total money.Money
	for _, f := range funds {
		total = total.Add(f.Fund)
	}
	return total
}
