package game

import (
	"errors"
	"fmt"

	"github.com/lox/pokersim/internal/money"
)

// ErrConservation is returned when a hand does not conserve total funds.
var ErrConservation = errors.New("fund conservation violation")

// SemanticError is a betting rule violation.
type SemanticError struct {
	Msg string
}

func (e *SemanticError) Error() string {
	return "semantic error: " + e.Msg
}

func semanticf(format string, args ...any) error {
	return &SemanticError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientBringInError rejects a seat dealt in with less than the big blind.
type InsufficientBringInError struct {
	Seat SeatID
}

func (e *InsufficientBringInError) Error() string {
	return fmt.Sprintf("seat %d cannot bring in the big blind", e.Seat)
}

// InsufficientFundError is a pledge larger than the seat's fund in strict mode.
type InsufficientFundError struct {
	Seat SeatID
	Fund money.Money
	Bet  money.Money
}

func (e *InsufficientFundError) Error() string {
	return fmt.Sprintf("seat %d bet %s with fund %s", e.Seat, e.Bet, e.Fund)
}

// PlayError carries an error returned by a Players or Table collaborator.
type PlayError struct {
	Err error
}

func (e *PlayError) Error() string {
	return "play: " + e.Err.Error()
}

func (e *PlayError) Unwrap() error {
	return e.Err
}
