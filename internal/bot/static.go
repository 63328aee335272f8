package bot

import (
	"fmt"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/money"
)

// Static replays a scripted list of acts in order.
type Static struct {
	acts []game.Act
	next int
}

// NewStatic creates a player that answers with acts, one per turn.
func NewStatic(acts []game.Act) *Static {
	return &Static{acts: acts}
}

// Init keeps the script position; a script may span several hands.
func (s *Static) Init([]money.Money, game.SeatID, []money.Money, []game.SeatCards) {}

func (s *Static) Play(t game.Turn) (uint8, error) {
	if s.next >= len(s.acts) {
		return 0, fmt.Errorf("script exhausted after %d acts", len(s.acts))
	}
	a := s.acts[s.next]
	if a.Seat != t.Seat {
		return 0, fmt.Errorf("script act %d is for seat %d, seat %d is to act", s.next, a.Seat, t.Seat)
	}
	s.next++
	return a.Class, nil
}

// Remaining returns the number of acts not yet played.
func (s *Static) Remaining() int {
	return len(s.acts) - s.next
}
