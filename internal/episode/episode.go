// Package episode turns recorded hands back into the decisions that
// produced them, for analysis and for training samples.
package episode

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/poker"
)

// ErrDiverged is returned when a replayed hand does not reproduce its log.
var ErrDiverged = errors.New("replay diverged from log")

// Decision is one turn of a hand as the acting seat saw it.
type Decision struct {
	Seat        game.SeatID
	Round       int
	Target      money.Money
	TargetRaise money.Money
	Raisable    bool
	Pots        []money.Money
	Fund        money.Money
	Mask        game.Mask
	Class       uint8
	// Cards are the seat's private cards followed by the table cards
	// revealed so far.
	Cards []poker.Card
}

// Episode is a replayed hand.
type Episode struct {
	Log       game.Log
	Score     game.Score
	Decisions []Decision
}

// Replayer re-runs logged hands through the engine.
type Replayer struct {
	Sim    *game.Sim
	Eval   poker.Evaluator
	Logger *log.Logger
}

var discard = log.New(io.Discard)

// Replay re-runs a logged hand with sim and eval.
func Replay(sim *game.Sim, eval poker.Evaluator, hand game.Log) (*Episode, error) {
	return (&Replayer{Sim: sim, Eval: eval}).Replay(hand)
}

// Replay plays the logged classes against the logged cards and checks the
// engine reproduces the same events.
func (r *Replayer) Replay(hand game.Log) (*Episode, error) {
	logger := r.Logger
	if logger == nil {
		logger = discard
	}
	if len(hand.Players) == 0 {
		return nil, errors.New("log has no players")
	}

	skip := 0
	if !r.Sim.Profile.Ante() {
		skip = min(len(r.Sim.Profile.Blinds), len(hand.Players))
	}
	p := &logPlayers{
		sim:    r.Sim,
		events: hand.Events,
		skip:   skip,
		cards:  make(map[game.SeatID][]poker.Card, len(hand.Players)),
	}
	for _, init := range hand.Players {
		p.cards[init.Seat] = init.Cards
	}

	first, err := firstBlind(hand)
	if err != nil {
		return nil, err
	}
	table := game.NewTableStatic(p, r.Sim.Profile.Rounds, hand.TableCards)
	replayed, score, err := game.PlayLog(r.Sim, r.Eval, table, hand.Players, hand.TableCards, first)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	if err := sameEvents(hand.Events, replayed.Events); err != nil {
		logger.Debug("replay diverged", "events", len(hand.Events), "replayed", len(replayed.Events))
		return nil, err
	}
	return &Episode{Log: replayed, Score: score, Decisions: p.decisions}, nil
}

// firstBlind recovers the seat that posted the first blind from the first
// round record.
func firstBlind(hand game.Log) (game.SeatID, error) {
	if len(hand.Rounds) == 0 || len(hand.Rounds[0]) == 0 {
		return 0, errors.New("log has no blinds")
	}
	return hand.Rounds[0][0].Seat, nil
}

func sameEvents(want, got []game.Event) error {
	if len(want) != len(got) {
		return fmt.Errorf("%w: %d events logged, %d replayed", ErrDiverged, len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if w.Kind != g.Kind || w.Act != g.Act || !slices.Equal(w.Cards, g.Cards) {
			return fmt.Errorf("%w: event %d logged %v, replayed %v", ErrDiverged, i, w, g)
		}
	}
	return nil
}

// logPlayers answers each turn with the next logged class and records what
// the seat saw.
type logPlayers struct {
	sim       *game.Sim
	events    []game.Event
	next      int
	skip      int
	table     []poker.Card
	cards     map[game.SeatID][]poker.Card
	decisions []Decision
}

func (p *logPlayers) Init([]money.Money, game.SeatID, []money.Money, []game.SeatCards) {}

func (p *logPlayers) Play(t game.Turn) (uint8, error) {
	for p.next < len(p.events) {
		e := p.events[p.next]
		if e.Kind == game.EventTable {
			p.table = append(p.table, e.Cards...)
			p.next++
			continue
		}
		if p.skip > 0 {
			p.skip--
			p.next++
			continue
		}
		break
	}
	if p.next >= len(p.events) {
		return 0, fmt.Errorf("%w: seat %d asked to act after the last logged event", ErrDiverged, t.Seat)
	}
	e := p.events[p.next]
	if e.Act.Seat != t.Seat {
		return 0, fmt.Errorf("%w: seat %d asked to act, log has seat %d", ErrDiverged, t.Seat, e.Act.Seat)
	}
	p.next++

	p.decisions = append(p.decisions, Decision{
		Seat:        t.Seat,
		Round:       t.Round,
		Target:      t.Target,
		TargetRaise: t.TargetRaise,
		Raisable:    t.Raisable,
		Pots:        slices.Clone(t.Pots),
		Fund:        t.Fund,
		Mask:        p.sim.ActionClass.Normalize(t.Betting(p.sim.BlindBiggest)),
		Class:       e.Act.Class,
		Cards:       append(slices.Clone(p.cards[t.Seat]), p.table...),
	})
	return e.Act.Class, nil
}
