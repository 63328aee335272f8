package game

import (
	"slices"

	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/poker"
)

// Showdown scores the seats still in the hand and returns the winners with
// their score. A lone finalist wins with score zero.
func Showdown(eval poker.Evaluator, tableCards []poker.Card, states []PlayerState) ([]SeatID, float32) {
	var finalists []SeatID
	for seat, s := range states {
		if s.InHand() {
			finalists = append(finalists, seat)
		}
	}
	if len(finalists) <= 1 {
		return finalists, 0
	}

	var winners []SeatID
	var best float32
	hand := make([]poker.Card, 0, len(tableCards)+4)
	for _, seat := range finalists {
		hand = append(hand[:0], tableCards...)
		hand = append(hand, states[seat].Cards...)
		score := eval.Score(hand)
		switch {
		case len(winners) == 0 || score > best:
			winners = []SeatID{seat}
			best = score
		case score == best:
			winners = append(winners, seat)
		}
	}
	return winners, best
}

// Distribute awards the committed pots to the winners, adding to funds.
//
// When every winner committed the largest pot, the whole pot is shared.
// Otherwise it is split into side pots at each winner's contribution, each
// shared by the winners who reached it, and anything committed above the
// biggest winning contribution goes back to the seat that committed it.
func Distribute(funds, pots []money.Money, winners []SeatID) {
	if len(winners) == 0 {
		return
	}
	potMax := money.Max(pots)
	side := false
	for _, w := range winners {
		if pots[w] != potMax {
			side = true
			break
		}
	}
	if !side {
		prorata(funds, winners, money.Sum(pots))
		return
	}

	tiers := make([]money.Money, 0, len(winners))
	for _, w := range winners {
		tiers = append(tiers, pots[w])
	}
	slices.Sort(tiers)
	tiers = slices.Compact(tiers)
	winnersTarget := tiers[len(tiers)-1]

	var last money.Money
	for _, tier := range tiers {
		var pot money.Money
		for _, p := range pots {
			// What this seat put in between the previous tier and this one.
			pot = pot.Add(min(p, tier) - min(p, last))
		}
		eligible := make([]SeatID, 0, len(winners))
		for _, w := range winners {
			if pots[w] >= tier {
				eligible = append(eligible, w)
			}
		}
		prorata(funds, eligible, pot)
		last = tier
	}

	for seat, p := range pots {
		if p > winnersTarget {
			funds[seat] = funds[seat].Add(p - winnersTarget)
		}
	}
}

// prorata shares amount evenly among seats. The remainder goes to the seat
// with the lowest fund, the first one on ties.
func prorata(funds []money.Money, seats []SeatID, amount money.Money) {
	if len(seats) == 0 || amount == 0 {
		return
	}
	share, rest := amount.Div(uint32(len(seats)))
	if rest > 0 {
		lowest := seats[0]
		for _, s := range seats[1:] {
			if funds[s] < funds[lowest] {
				lowest = s
			}
		}
		funds[lowest] = funds[lowest].Add(rest)
	}
	for _, s := range seats {
		funds[s] = funds[s].Add(share)
	}
}
