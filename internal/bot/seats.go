package bot

import (
	"fmt"
	"slices"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/money"
)

// Seats dispatches turns to the Players assigned to each seat, so that
// different strategies share one table.
type Seats struct {
	players []game.Players
	owner   map[game.SeatID]int
}

// NewSeats creates an empty multiplexer.
func NewSeats() *Seats {
	return &Seats{owner: make(map[game.SeatID]int)}
}

// Assign hands seats to p, taking them from any previous owner.
func (s *Seats) Assign(p game.Players, seats ...game.SeatID) *Seats {
	i := slices.Index(s.players, p)
	if i < 0 {
		i = len(s.players)
		s.players = append(s.players, p)
	}
	for _, seat := range seats {
		s.owner[seat] = i
	}
	return s
}

// Owner returns the Players assigned to seat.
func (s *Seats) Owner(seat game.SeatID) (game.Players, bool) {
	i, ok := s.owner[seat]
	if !ok {
		return nil, false
	}
	return s.players[i], true
}

// Init forwards to every assigned Players with only its own private cards.
func (s *Seats) Init(blinds []money.Money, first game.SeatID, funds []money.Money, hands []game.SeatCards) {
	own := make([][]game.SeatCards, len(s.players))
	for _, h := range hands {
		if i, ok := s.owner[h.Seat]; ok {
			own[i] = append(own[i], h)
		}
	}
	for i, p := range s.players {
		if len(own[i]) == 0 {
			continue
		}
		p.Init(blinds, first, funds, own[i])
	}
}

func (s *Seats) Play(t game.Turn) (uint8, error) {
	p, ok := s.Owner(t.Seat)
	if !ok {
		return 0, fmt.Errorf("no player assigned to seat %d", t.Seat)
	}
	return p.Play(t)
}
