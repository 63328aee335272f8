package game

import (
	"fmt"

	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/poker"
)

// TableStatic deals community cards from a fixed list and forwards player
// decisions to the wrapped Players.
type TableStatic struct {
	Players
	rounds []int
	cards  []poker.Card
}

var _ PlayersTable = (*TableStatic)(nil)

// NewTableStatic serves cards round by round: round i gets rounds[i] cards
// after those of rounds 1 to i-1.
func NewTableStatic(players Players, rounds []int, cards []poker.Card) *TableStatic {
	return &TableStatic{Players: players, rounds: rounds, cards: cards}
}

func (t *TableStatic) GameStart([]BlindPost) error {
	return nil
}

func (t *TableStatic) RoundStart(_ poker.Evaluator, round int, _ money.Money) ([]poker.Card, error) {
	if round == 0 {
		return nil, nil
	}
	if round >= len(t.rounds) {
		return nil, fmt.Errorf("no round %d in a %d round game", round, len(t.rounds))
	}
	skip := 0
	for _, n := range t.rounds[1:round] {
		skip += n
	}
	end := skip + t.rounds[round]
	if end > len(t.cards) {
		return nil, fmt.Errorf("round %d needs cards %d to %d, have %d", round, skip, end, len(t.cards))
	}
	return append([]poker.Card(nil), t.cards[skip:end]...), nil
}
