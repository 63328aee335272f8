package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/poker"
)

// Kuhn2 plays the Nash equilibrium family of heads-up Kuhn poker. The
// first player bluffs a jack with probability alpha and value bets a king
// with probability 3*alpha; the second player's strategy is fixed.
type Kuhn2 struct {
	rng   *rand.Rand
	ac    game.ActionClass
	fixed bool
	alpha float64
	first game.SeatID
	cards map[game.SeatID]int
	acts  map[game.SeatID]int
	blinds
}

// NewKuhn2 creates a Kuhn player drawing a fresh alpha in [0, 1/3) each hand.
func NewKuhn2(rng *rand.Rand, ac game.ActionClass) *Kuhn2 {
	if rng == nil {
		panic("bot: NewKuhn2 requires a non-nil RNG")
	}
	return &Kuhn2{rng: rng, ac: ac}
}

// WithAlpha fixes alpha, clamped to [0, 1/3].
func (k *Kuhn2) WithAlpha(alpha float64) *Kuhn2 {
	k.fixed = true
	k.alpha = min(max(alpha, 0), 1.0/3)
	return k
}

// Alpha returns the bluffing frequency of the current hand.
func (k *Kuhn2) Alpha() float64 { return k.alpha }

func (k *Kuhn2) Init(bl []money.Money, first game.SeatID, _ []money.Money, hands []game.SeatCards) {
	k.init(bl)
	if !k.fixed {
		k.alpha = k.rng.Float64() / 3
	}
	k.first = first
	k.cards = make(map[game.SeatID]int, len(hands))
	k.acts = make(map[game.SeatID]int, len(hands))
	for _, h := range hands {
		k.cards[h.Seat] = kuhnIndex(h.Cards)
	}
}

// kuhnIndex ranks a hand of the Kuhn deck: jack 0, queen 1, king 2.
func kuhnIndex(cards []poker.Card) int {
	if len(cards) == 0 {
		return -1
	}
	for i, c := range poker.KuhnDeck {
		if c.Rank == cards[0].Rank {
			return i
		}
	}
	return -1
}

func (k *Kuhn2) Play(t game.Turn) (uint8, error) {
	card, ok := k.cards[t.Seat]
	if !ok || card < 0 {
		return 0, fmt.Errorf("kuhn: no Kuhn card dealt to seat %d", t.Seat)
	}
	mask := k.mask(k.ac, t)
	act := k.acts[t.Seat]
	k.acts[t.Seat]++

	var probs [3]float64
	if t.Seat == k.first {
		probs = k.opener(card, act)
	} else {
		probs = k.responder(card, mask.Has(game.ClassFold))
	}
	for c := range probs {
		if !mask.Has(uint8(c)) {
			probs[c] = 0
		}
	}
	if i := randutil.Sample(k.rng, probs[:]); i >= 0 {
		return uint8(i), nil
	}
	class, ok := pick(mask, game.ClassCall, game.ClassFold)
	if !ok {
		return 0, ErrNoLegalClass
	}
	return class, nil
}

func (k *Kuhn2) opener(card, act int) [3]float64 {
	a := k.alpha
	switch card {
	case 2:
		if act == 0 {
			return [3]float64{0, 1 - 3*a, 3 * a}
		}
		return [3]float64{0, 1, 0}
	case 1:
		if act == 0 {
			return [3]float64{0, 1, 0}
		}
		return [3]float64{0.66 - a, 0.33 + a, 0}
	default:
		if act == 0 {
			return [3]float64{0, 1 - a, a}
		}
		return [3]float64{1, 0, 0}
	}
}

func (k *Kuhn2) responder(card int, facingBet bool) [3]float64 {
	switch card {
	case 2:
		if facingBet {
			return [3]float64{0, 1, 0}
		}
		return [3]float64{0, 0, 1}
	case 1:
		if facingBet {
			return [3]float64{0.66, 0.33, 0}
		}
		return [3]float64{0, 1, 0}
	default:
		if facingBet {
			return [3]float64{1, 0, 0}
		}
		return [3]float64{0, 0.66, 0.33}
	}
}
