package poker

import (
	ph "github.com/paulhankin/poker"
)

// Evaluator scores a hand. Higher scores are better and equal scores tie.
type Evaluator interface {
	Score(cards []Card) float32
}

// Naive scores a hand by its most repeated rank.
//
// The first rank with the highest count wins, so pairs beat high cards and a
// higher pair beats a lower one. Suits are ignored.
type Naive struct{}

func (Naive) Score(cards []Card) float32 {
	var hist [NumRanks]int
	for _, c := range cards {
		hist[c.Rank]++
	}
	best, n := 0, 0
	for i, count := range hist {
		if count > n {
			best, n = i, count
		}
	}
	return float32(best*n) / float32(NumRanks*NumSuits)
}

// Texas scores hold'em hands as the best five card hand among the cards.
// Hands with fewer than five cards (other than three) fall back to Naive.
type Texas struct{}

func (Texas) Score(cards []Card) float32 {
	pcs := make([]ph.Card, len(cards))
	for i, c := range cards {
		pcs[i] = toPH(c)
	}
	switch len(pcs) {
	case 7:
		var a [7]ph.Card
		copy(a[:], pcs)
		return float32(ph.Eval7(&a))
	case 5:
		var a [5]ph.Card
		copy(a[:], pcs)
		return float32(ph.Eval5(&a))
	case 3:
		var a [3]ph.Card
		copy(a[:], pcs)
		return float32(ph.Eval3(&a))
	case 6:
		return float32(best5of6(pcs))
	default:
		return Naive{}.Score(cards)
	}
}

// best5of6 evaluates every hand formed by dropping one card.
func best5of6(pcs []ph.Card) int16 {
	var best int16 = -1 << 15
	var five [5]ph.Card
	for skip := range pcs {
		k := 0
		for i, c := range pcs {
			if i == skip {
				continue
			}
			five[k] = c
			k++
		}
		if s := ph.Eval5(&five); s > best {
			best = s
		}
	}
	return best
}

// Describe names the hand, e.g. "king-high flush".
func Describe(cards []Card) (string, error) {
	pcs := make([]ph.Card, len(cards))
	for i, c := range cards {
		pcs[i] = toPH(c)
	}
	return ph.Describe(pcs)
}

func toPH(c Card) ph.Card {
	var s ph.Suit
	switch c.Suit {
	case Spade:
		s = ph.Spade
	case Heart:
		s = ph.Heart
	case Diamond:
		s = ph.Diamond
	default:
		s = ph.Club
	}
	// The library numbers ranks 1..13 with the ace as 1.
	r := ph.Rank(c.Rank + 2)
	if c.Rank == Ace {
		r = ph.Rank(1)
	}
	card, _ := ph.MakeCard(s, r)
	return card
}
