package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/poker"
)

// Log is the replayable record of a hand.
type Log struct {
	Players    []PlayerInit
	Events     []Event
	Rounds     Rounds
	TableCards []poker.Card
}

// Terminal is how a hand ended.
type Terminal uint8

const (
	TerminalShowdown Terminal = iota
	TerminalFoldOut
	TerminalDead
)

func (t Terminal) String() string {
	return [...]string{"showdown", "fold-out", "dead"}[t]
}

// Score is the settled result of a hand.
type Score struct {
	// Funds holds the final fund of each seat dealt in, in deal order.
	Funds        []SeatFund
	Pot          money.Money
	Winners      []SeatID
	WinnersScore float32
	Terminal     Terminal
}

// Fund returns the final fund of seat.
func (s Score) Fund(seat SeatID) (money.Money, bool) {
	for _, f := range s.Funds {
		if f.Seat == seat {
			return f.Fund, true
		}
	}
	return 0, false
}

// SimulateHand shuffles the deck, deals every seat in funds, plays the hand
// and settles it. Seats are dealt in the order given.
//
// On error the returned log holds the partial hand.
func SimulateHand(rng *rand.Rand, sim *Sim, eval poker.Evaluator, players Players, funds []SeatFund, first SeatID) (Log, Score, error) {
	if rng == nil {
		panic("game: SimulateHand requires a non-nil RNG")
	}
	p := sim.Profile
	deck := poker.NewDeck(rng, p.Deck)

	inits := make([]PlayerInit, len(funds))
	for i, f := range funds {
		cards := deck.Deal(p.Rounds[0])
		if cards == nil {
			return Log{}, Score{}, fmt.Errorf("deck of %d cards exhausted dealing seat %d", len(p.Deck), f.Seat)
		}
		inits[i] = PlayerInit{Seat: f.Seat, Fund: f.Fund, Cards: cards}
	}
	tableCards := deck.Deal(p.TableCards())
	if tableCards == nil {
		return Log{}, Score{}, fmt.Errorf("deck of %d cards exhausted dealing the table", len(p.Deck))
	}

	table := NewTableStatic(players, p.Rounds, tableCards)
	return PlayLog(sim, eval, table, inits, tableCards, first)
}

// PlayLog plays and settles a hand with known private and community cards.
func PlayLog(sim *Sim, eval poker.Evaluator, pt PlayersTable, inits []PlayerInit, tableCards []poker.Card, first SeatID) (Log, Score, error) {
	out, err := PlayHand(sim, eval, pt, inits, first)
	log := Log{
		Players:    inits,
		Events:     out.Events,
		Rounds:     out.Rounds,
		TableCards: tableCards,
	}
	if err != nil {
		return log, Score{}, err
	}
	score := Settle(eval, tableCards, inits, out)
	if err := CheckConservation(inits, score); err != nil {
		return log, score, err
	}
	return log, score, nil
}

// Settle awards the pots of a finished hand.
func Settle(eval poker.Evaluator, tableCards []poker.Card, inits []PlayerInit, out *Outcome) Score {
	if out.Dead {
		funds := make([]SeatFund, len(inits))
		for i, p := range inits {
			funds[i] = SeatFund{Seat: p.Seat, Fund: p.Fund}
		}
		return Score{Funds: funds, Terminal: TerminalDead}
	}

	winners, best := Showdown(eval, tableCards, out.States)
	terminal := TerminalShowdown
	if len(out.Finalists()) == 1 {
		terminal = TerminalFoldOut
	}
	final := append([]money.Money(nil), out.Funds...)
	Distribute(final, out.Pots, winners)

	funds := make([]SeatFund, len(inits))
	for i, p := range inits {
		funds[i] = SeatFund{Seat: p.Seat, Fund: final[p.Seat]}
	}
	return Score{
		Funds:        funds,
		Pot:          money.Sum(out.Pots),
		Winners:      winners,
		WinnersScore: best,
		Terminal:     terminal,
	}
}

// CheckConservation verifies a hand neither created nor destroyed funds.
func CheckConservation(inits []PlayerInit, score Score) error {
	var before, after money.Money
	for _, p := range inits {
		before = before.Add(p.Fund)
	}
	for _, f := range score.Funds {
		after = after.Add(f.Fund)
	}
	if before != after {
		return fmt.Errorf("%w: %s before, %s after", ErrConservation, before, after)
	}
	return nil
}

// Dead reports whether the hand was voided.
func (s Score) Dead() bool {
	return s.Terminal == TerminalDead
}
