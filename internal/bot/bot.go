// Package bot provides Players implementations for the game engine: simple
// baselines, scripted replays, the optimal two player Kuhn strategy and a
// Monte Carlo hand strength player.
package bot

import (
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/money"
)

// blinds remembers the big blind of the current hand.
type blinds struct {
	biggest money.Money
}

func (b *blinds) init(bl []money.Money) {
	b.biggest = money.Max(bl)
}

func (b *blinds) mask(ac game.ActionClass, t game.Turn) game.Mask {
	return ac.Normalize(t.Betting(b.biggest))
}

// pick returns the first class of order that is legal, falling back to the
// lowest legal class.
func pick(mask game.Mask, order ...uint8) (uint8, bool) {
	for _, c := range order {
		if mask.Has(c) {
			return c, true
		}
	}
	classes := mask.Classes()
	if len(classes) == 0 {
		return 0, false
	}
	return classes[0], true
}
