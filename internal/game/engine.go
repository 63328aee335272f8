package game

import (
	"fmt"
	"slices"

	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/poker"
)

// Outcome is the betting record of a hand, before the pots are awarded.
type Outcome struct {
	Events []Event
	Rounds Rounds
	// Funds and Pots are per seat. Pots hold what each seat committed.
	Funds  []money.Money
	Pots   []money.Money
	States []PlayerState
	// Dead hands saw no call or raise; their blinds have been refunded.
	Dead bool
}

// hand owns the mutable state of one hand in play.
type hand struct {
	sim  *Sim
	eval poker.Evaluator
	pt   PlayersTable

	funds  []money.Money
	pots   []money.Money
	states []PlayerState

	dealer      SeatID
	round       int
	target      money.Money
	targetRaise money.Money
	by          SeatID
	bySet       bool
	raises      int

	lastBlind    SeatID
	bootstrapped bool

	events []Event
	rounds Rounds
	buffer []RoundEntry
}

// PlayHand plays one hand from blinds to the end of betting. The seats in
// players are dealt in and first posts the first blind.
//
// On error the returned outcome holds the events and rounds played so far.
func PlayHand(sim *Sim, eval poker.Evaluator, pt PlayersTable, players []PlayerInit, first SeatID) (*Outcome, error) {
	n := sim.Profile.Players
	h := &hand{
		sim:         sim,
		eval:        eval,
		pt:          pt,
		funds:       make([]money.Money, n),
		pots:        make([]money.Money, n),
		states:      make([]PlayerState, n),
		dealer:      SeatPrevious(n, first),
		target:      sim.BlindBiggest,
		targetRaise: sim.BlindBiggest,
	}
	if err := h.seat(players); err != nil {
		return h.outcome(), err
	}
	if err := h.play(players, first); err != nil {
		return h.abort(), err
	}
	return h.finish(), nil
}

func (h *hand) seat(players []PlayerInit) error {
	n := h.sim.Profile.Players
	if n <= 0 || len(h.sim.Profile.Blinds) == 0 {
		return semanticf("profile has no seats or blinds")
	}
	for _, p := range players {
		if p.Seat < 0 || p.Seat >= n {
			return semanticf("seat %d out of range", p.Seat)
		}
		if h.states[p.Seat].Kind != Off {
			return semanticf("seat %d dealt twice", p.Seat)
		}
		if p.Fund < h.sim.BlindBiggest {
			return &InsufficientBringInError{Seat: p.Seat}
		}
		h.funds[p.Seat] = p.Fund
		h.states[p.Seat] = Playing(p.Cards)
	}
	if len(players) < 2 {
		return semanticf("a hand needs two seats, got %d", len(players))
	}
	return nil
}

func (h *hand) play(players []PlayerInit, first SeatID) error {
	sim, logger := h.sim, h.sim.logger()
	n := sim.Profile.Players

	hands := make([]SeatCards, len(players))
	for i, p := range players {
		hands[i] = SeatCards{Seat: p.Seat, Cards: p.Cards}
	}
	h.pt.Init(slices.Clone(sim.Profile.Blinds), first, slices.Clone(h.funds), hands)

	active, posts := BlindsApply(sim, first, h.funds, h.pots, h.states)
	h.lastBlind = posts[len(posts)-1].Act.Seat

	if err := h.pt.GameStart(posts); err != nil {
		return &PlayError{Err: err}
	}
	// Round zero cards are private and already dealt.
	if _, err := h.pt.RoundStart(h.eval, 0, h.target); err != nil {
		return &PlayError{Err: err}
	}

	ante := sim.Profile.Ante()
	for _, post := range posts {
		h.buffer = append(h.buffer, RoundEntry{Seat: post.Act.Seat, Move: RaiseMove(post.Amount)})
		if !ante {
			h.events = append(h.events, PlayEvent(post.Act.Seat, post.Act.Class))
		}
	}
	logger.Debug("blinds posted", "profile", sim.Profile.ID, "first", first, "posts", len(posts), "ante", ante)

	if !h.states[active].Active() {
		if next, ok := SeatNextActive(n, PlayerActives(h.states), active); ok {
			active = next
		}
	}
	// An ante hand is live even when the antes leave nobody to act.
	if ante {
		h.setBy(active)
	}
	if h.over() {
		return nil
	}

	limit := h.stepLimit()
	actionID := len(posts)
	for step := 0; ; step++ {
		if step > limit {
			return semanticf("hand did not terminate after %d actions", limit)
		}
		if actionID == 0 {
			cards, err := h.pt.RoundStart(h.eval, h.round, h.target)
			if err != nil {
				return &PlayError{Err: err}
			}
			h.events = append(h.events, TableEvent(cards))
		}

		turn := h.turn(active)
		class, err := h.pt.Play(turn)
		if err != nil {
			return &PlayError{Err: err}
		}
		move, err := h.apply(active, class, turn.Raisable)
		if err != nil {
			return err
		}
		if sim.ActionClass.IsFold(class) && move.Action != Fold {
			// A matched fold is played as a check; log it as one.
			class = sim.ActionClass.Apply(sim.BlindBiggest, h.funds[active], move.Action, move.Pledge)
		}
		logger.Debug("player action", "round", h.round, "seat", active, "class", class, "move", move, "target", h.target)

		h.events = append(h.events, PlayEvent(active, class))
		h.buffer = append(h.buffer, RoundEntry{Seat: active, Move: move})
		if move.Action == Raise {
			h.raises++
		}
		actionID++

		next, newRound, done, err := h.next(active)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if newRound {
			h.rounds = append(h.rounds, h.buffer)
			h.buffer = nil
			h.round++
			h.raises = 0
			actionID = 0
		}
		active = next
	}
}

// stepLimit bounds the actions of a hand: each round can see every seat
// act once per raise plus the closing pass.
func (h *hand) stepLimit() int {
	p := h.sim.Profile
	caps := p.Players * 8
	if p.Limit != nil {
		caps = p.Limit.Caps
	}
	return len(p.Rounds)*p.Players*(caps+2) + len(p.Blinds)
}

func (h *hand) setBy(seat SeatID) {
	h.by, h.bySet = seat, true
}

func (h *hand) turn(seat SeatID) Turn {
	raisable := true
	if l := h.sim.Profile.Limit; l != nil {
		raisable = h.raises < l.Caps
	}
	t := Turn{
		Round:    h.round,
		Target:   h.target,
		Raisable: raisable,
		Pots:     slices.Clone(h.pots),
		Seat:     seat,
		Fund:     h.funds[seat],
		Events:   h.window(seat),
	}
	if raisable {
		t.TargetRaise = h.targetRaise
	}
	return t
}

// window returns the events since the seat's own last play. Every event is
// sent until the last blind poster has had a first turn.
func (h *hand) window(seat SeatID) []Event {
	if !h.bootstrapped {
		if seat == h.lastBlind {
			h.bootstrapped = true
		}
		return slices.Clip(h.events)
	}
	for i := len(h.events) - 1; i >= 0; i-- {
		e := h.events[i]
		if e.Kind == EventPlay && e.Act.Seat == seat {
			return slices.Clip(h.events[i:])
		}
	}
	return slices.Clip(h.events)
}

// apply decodes class for seat and updates funds, pots, states and the
// table target. It returns the normalized move.
func (h *hand) apply(seat SeatID, class uint8, raisable bool) (Move, error) {
	sim := h.sim
	b := Betting{
		BlindBiggest: sim.BlindBiggest,
		Round:        h.round,
		Target:       h.target,
		TargetRaise:  h.targetRaise,
		Raisable:     raisable,
		Fund:         h.funds[seat],
		Pot:          h.pots[seat],
	}
	move, err := sim.ActionClass.Unapply(b, class)
	if err != nil {
		return Move{}, err
	}

	pot := h.pots[seat]
	switch {
	case move.Action == Fold:
		if pot >= h.target {
			if sim.Strict {
				return Move{}, semanticf("seat %d folded with nothing to call", seat)
			}
			return CheckMove(), nil
		}
		h.states[seat].Kind = Folded
		return move, nil

	case move.IsCheck():
		if pot != h.target {
			return Move{}, semanticf("seat %d checked with pot %s against target %s", seat, pot, h.target)
		}
		return move, nil

	case move.Action == Call && pot >= h.target:
		if sim.Strict {
			return Move{}, semanticf("seat %d called with nothing to call", seat)
		}
		return CheckMove(), nil

	case move.Action == Raise && !raisable:
		return Move{}, semanticf("seat %d raised after the cap of round %d", seat, h.round)
	}

	if move.Pledge == 0 {
		return Move{}, semanticf("seat %d %s without a pledge", seat, move.Action)
	}
	return h.pledge(seat, move)
}

func (h *hand) pledge(seat SeatID, move Move) (Move, error) {
	fund := h.funds[seat]
	amount := move.Pledge
	if amount > fund {
		if h.sim.Strict {
			return Move{}, &InsufficientFundError{Seat: seat, Fund: fund, Bet: amount}
		}
		amount = fund
	}
	if !PledgeApply(h.funds, h.pots, seat, amount) {
		return Move{}, &InsufficientFundError{Seat: seat, Fund: fund, Bet: amount}
	}
	allIn := h.funds[seat] == 0
	if allIn {
		h.states[seat].AllIn = true
	}
	// Calls are priced at target minus pot and only clipped down, so they
	// never lift the target.
	if move.Action == Call {
		if !h.bySet || h.states[h.by].AllIn {
			h.setBy(seat)
		}
		return CallMove(amount), nil
	}

	raise := h.pots[seat].Delta(h.target)
	switch {
	case raise >= int64(h.targetRaise):
		h.targetRaise = money.Money(raise)
		h.target = h.pots[seat]
		h.setBy(seat)
	case !allIn || h.sim.Strict:
		return Move{}, semanticf("seat %d raised by %d below the minimum %s", seat, raise, h.targetRaise)
	case raise > 0:
		// A short all-in raise lifts the target without reopening the
		// minimum raise.
		h.target = h.pots[seat]
		h.setBy(seat)
	default:
		// Short of the target: an all-in call.
		if !h.bySet || h.states[h.by].AllIn {
			h.setBy(seat)
		}
		return CallMove(amount), nil
	}
	return RaiseMove(amount), nil
}

// over reports whether betting cannot continue: nobody can act, or the one
// seat that can has already matched the target.
func (h *hand) over() bool {
	actives := PlayerActives(h.states)
	switch len(actives) {
	case 0:
		return true
	case 1:
		return h.pots[actives[0]] >= h.target
	}
	return false
}

// next picks the seat to act after seat. It reports when a new round starts
// or the hand is over.
func (h *hand) next(seat SeatID) (next SeatID, newRound, done bool, err error) {
	if h.over() {
		return 0, false, true, nil
	}
	n := h.sim.Profile.Players
	actives := PlayerActives(h.states)
	next, ok := SeatNextActive(n, actives, seat)
	if !ok {
		return 0, false, true, nil
	}
	if !h.bySet || next != h.by {
		return next, false, false, nil
	}
	if h.pots[next] != h.target {
		return 0, false, false, semanticf("round %d closed at seat %d with pot %s against target %s", h.round, next, h.pots[next], h.target)
	}
	if h.round+1 >= len(h.sim.Profile.Rounds) {
		return 0, false, true, nil
	}
	first, _ := SeatNextActive(n, actives, h.dealer)
	h.targetRaise = h.sim.BlindBiggest
	h.setBy(first)
	return first, true, false, nil
}

func (h *hand) flush() {
	if h.buffer != nil {
		h.rounds = append(h.rounds, h.buffer)
		h.buffer = nil
	}
}

func (h *hand) abort() *Outcome {
	h.flush()
	return h.outcome()
}

func (h *hand) finish() *Outcome {
	h.flush()
	out := h.outcome()
	if !h.bySet {
		for seat := range h.pots {
			if h.pots[seat] > 0 {
				PledgeUnapply(out.Funds, out.Pots, seat, out.Pots[seat])
			}
		}
		out.Dead = true
		h.sim.logger().Debug("dead hand refunded", "profile", h.sim.Profile.ID)
	}
	return out
}

func (h *hand) outcome() *Outcome {
	return &Outcome{
		Events: h.events,
		Rounds: h.rounds,
		Funds:  slices.Clone(h.funds),
		Pots:   slices.Clone(h.pots),
		States: slices.Clone(h.states),
	}
}

// Finalists returns the seats still in the hand.
func (o *Outcome) Finalists() []SeatID {
	var seats []SeatID
	for seat, s := range o.States {
		if s.InHand() {
			seats = append(seats, seat)
		}
	}
	return seats
}

func (o *Outcome) String() string {
	return fmt.Sprintf("outcome{events:%d rounds:%d dead:%t}", len(o.Events), len(o.Rounds), o.Dead)
}
