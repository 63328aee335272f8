package game

import (
	"fmt"

	"github.com/lox/pokersim/internal/money"
)

// Action is the semantic action a seat takes.
type Action uint8

const (
	Fold Action = iota
	Call
	Raise
)

func (a Action) String() string {
	if int(a) >= 3 {
		return fmt.Sprintf("action(%d)", uint8(a))
	}
	return [...]string{"fold", "call", "raise"}[a]
}

// Move is a decoded action with the amount it commits. A Call without a
// pledge is a check.
type Move struct {
	Action  Action
	Pledge  money.Money
	Pledged bool
}

// FoldMove returns a fold.
func FoldMove() Move { return Move{Action: Fold} }

// CheckMove returns a call without a pledge.
func CheckMove() Move { return Move{Action: Call} }

// CallMove returns a call committing amount.
func CallMove(amount money.Money) Move {
	return Move{Action: Call, Pledge: amount, Pledged: true}
}

// RaiseMove returns a raise committing amount.
func RaiseMove(amount money.Money) Move {
	return Move{Action: Raise, Pledge: amount, Pledged: true}
}

// IsCheck reports whether the move is a call with nothing to pay.
func (m Move) IsCheck() bool {
	return m.Action == Call && !m.Pledged
}

func (m Move) String() string {
	switch {
	case m.IsCheck():
		return "check"
	case m.Pledged:
		return fmt.Sprintf("%s %s", m.Action, m.Pledge)
	default:
		return m.Action.String()
	}
}
