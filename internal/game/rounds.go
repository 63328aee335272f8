package game

import (
	"slices"

	"github.com/lox/pokersim/internal/money"
)

// SeatNext returns the seat after seat.
func SeatNext(players int, seat SeatID) SeatID {
	return (seat + 1) % players
}

// SeatPrevious returns the seat before seat.
func SeatPrevious(players int, seat SeatID) SeatID {
	return (seat + players - 1) % players
}

// SeatNextActive walks forward from the seat after seat and returns the
// first seat in actives, trying at most players seats.
func SeatNextActive(players int, actives []SeatID, seat SeatID) (SeatID, bool) {
	next := seat
	for range players {
		next = SeatNext(players, next)
		if slices.Contains(actives, next) {
			return next, true
		}
	}
	return 0, false
}

// PlayerActives returns the seats that can still act.
func PlayerActives(states []PlayerState) []SeatID {
	actives := make([]SeatID, 0, len(states))
	for seat, s := range states {
		if s.Active() {
			actives = append(actives, seat)
		}
	}
	return actives
}

// PledgeApply moves amount from the seat's fund to its pot. It reports false
// and changes nothing when the fund is short.
func PledgeApply(funds, pots []money.Money, seat SeatID, amount money.Money) bool {
	fund, ok := funds[seat].Sub(amount)
	if !ok {
		return false
	}
	funds[seat] = fund
	pots[seat] = pots[seat].Add(amount)
	return true
}

// PledgeUnapply moves amount back from the seat's pot to its fund.
func PledgeUnapply(funds, pots []money.Money, seat SeatID, amount money.Money) bool {
	pot, ok := pots[seat].Sub(amount)
	if !ok {
		return false
	}
	pots[seat] = pot
	funds[seat] = funds[seat].Add(amount)
	return true
}

// ActionApply pledges amount for seat and returns the class it is logged as.
func ActionApply(sim *Sim, funds, pots []money.Money, seat SeatID, action Action, amount money.Money) (Act, bool) {
	class := sim.ActionClass.Apply(sim.BlindBiggest, funds[seat], action, amount)
	if !PledgeApply(funds, pots, seat, amount) {
		return Act{}, false
	}
	return Act{Seat: seat, Class: class}, true
}

// BlindsApply posts the profile blinds in seat order from first, skipping
// seats that are not playing. It returns the seat to act next and the posts.
// Callers must have checked every playing seat covers a big blind.
func BlindsApply(sim *Sim, first SeatID, funds, pots []money.Money, states []PlayerState) (SeatID, []BlindPost) {
	players := sim.Profile.Players
	actives := PlayerActives(states)
	n := min(len(sim.Profile.Blinds), len(actives))

	posts := make([]BlindPost, 0, n)
	seat := first
	if !slices.Contains(actives, seat) {
		seat, _ = SeatNextActive(players, actives, seat)
	}
	for _, blind := range sim.Profile.Blinds[:n] {
		act, ok := ActionApply(sim, funds, pots, seat, Raise, blind)
		if !ok {
			panic("game: blind posted by a seat below the big blind")
		}
		if funds[seat] == 0 {
			states[seat].AllIn = true
		}
		posts = append(posts, BlindPost{Act: act, Amount: blind})
		seat, _ = SeatNextActive(players, actives, seat)
	}
	return seat, posts
}
