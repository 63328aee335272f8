package game

import (
	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/poker"
)

// Turn is what a seat is told when it is asked to act.
type Turn struct {
	Round  int
	Target money.Money
	// TargetRaise is the last raise size; it is only set when Raisable.
	TargetRaise money.Money
	Raisable    bool
	Pots        []money.Money
	Seat        SeatID
	Fund        money.Money
	// Events holds the events since this seat last acted, starting with its
	// own previous action, or every event before its first turn.
	Events []Event
}

// Betting returns the decoding context of the turn.
func (t Turn) Betting(blindBiggest money.Money) Betting {
	return Betting{
		BlindBiggest: blindBiggest,
		Round:        t.Round,
		Target:       t.Target,
		TargetRaise:  t.TargetRaise,
		Raisable:     t.Raisable,
		Fund:         t.Fund,
		Pot:          t.Pots[t.Seat],
	}
}

// Players decides actions for the seats of a table.
type Players interface {
	// Init is called once per hand before any blind is posted.
	Init(blinds []money.Money, first SeatID, funds []money.Money, hands []SeatCards)
	// Play returns the action class for the seat to act.
	Play(turn Turn) (uint8, error)
}

// Table reveals community cards.
type Table interface {
	// GameStart is called once the blinds are posted.
	GameStart(posts []BlindPost) error
	// RoundStart returns the community cards of a round, possibly none.
	RoundStart(eval poker.Evaluator, round int, target money.Money) ([]poker.Card, error)
}

// PlayersTable is a collaborator serving both roles.
type PlayersTable interface {
	Players
	Table
}
