package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/poker"
)

// script plays a fixed list of acts and records every turn it is given.
type script struct {
	acts  []Act
	turns []Turn
	inits int
}

func newScript(acts ...Act) *script {
	return &script{acts: acts}
}

func (s *script) Init([]money.Money, SeatID, []money.Money, []SeatCards) {
	s.inits++
}

func (s *script) Play(t Turn) (uint8, error) {
	s.turns = append(s.turns, t)
	if len(s.acts) == 0 {
		return 0, errors.New("script exhausted")
	}
	a := s.acts[0]
	s.acts = s.acts[1:]
	if a.Seat != t.Seat {
		return 0, fmt.Errorf("script expected seat %d, engine asked seat %d", a.Seat, t.Seat)
	}
	return a.Class, nil
}

// randomPlayers picks uniformly among the legal classes.
type randomPlayers struct {
	rng *rand.Rand
	ac  ActionClass
	bb  money.Money
}

func (r *randomPlayers) Init(blinds []money.Money, _ SeatID, _ []money.Money, _ []SeatCards) {
	r.bb = money.Max(blinds)
}

func (r *randomPlayers) Play(t Turn) (uint8, error) {
	classes := r.ac.Normalize(t.Betting(r.bb)).Classes()
	if len(classes) == 0 {
		return 0, errors.New("no legal class")
	}
	return classes[r.rng.IntN(len(classes))], nil
}

func act(seat SeatID, class uint8) Act {
	return Act{Seat: seat, Class: class}
}

func dollars(n uint16) money.Money {
	return money.New(n, 0)
}

func cards(s string) []poker.Card {
	return poker.MustParseCards(s)
}
