package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/poker"
)

// SeatID is a table position for the duration of one hand.
type SeatID = int

// Sim holds the rules a hand is played under.
type Sim struct {
	ActionClass  ActionClass
	BlindBiggest money.Money
	Profile      Profile
	// Strict rejects folding when matched and pledges beyond a seat's
	// fund. Without it a matched fold counts as a check and an oversized
	// pledge is clipped to an all-in.
	Strict bool
	Logger *log.Logger
}

// NewSim returns the rules for profile.
func NewSim(profile Profile, ac ActionClass, strict bool) Sim {
	return Sim{
		ActionClass:  ac,
		BlindBiggest: profile.BlindBiggest(),
		Profile:      profile,
		Strict:       strict,
	}
}

// SetBlinds replaces the profile blinds and the big blind.
func (s *Sim) SetBlinds(blinds []money.Money) {
	if len(blinds) == 0 {
		panic("game: can't set empty blinds")
	}
	s.Profile.Blinds = append([]money.Money(nil), blinds...)
	s.BlindBiggest = money.Max(blinds)
}

var discard = log.New(io.Discard)

func (s *Sim) logger() *log.Logger {
	if s.Logger == nil {
		return discard
	}
	return s.Logger
}

// StateKind tags a PlayerState.
type StateKind uint8

const (
	// Off seats were not dealt in.
	Off StateKind = iota
	Play
	Folded
)

func (k StateKind) String() string {
	return [...]string{"off", "play", "folded"}[k]
}

// PlayerState is the per seat state of a hand.
type PlayerState struct {
	Kind  StateKind
	Cards []poker.Card
	AllIn bool
}

// Playing returns the state of a seat dealt cards.
func Playing(cards []poker.Card) PlayerState {
	return PlayerState{Kind: Play, Cards: cards}
}

// Active reports whether the seat can still act.
func (s PlayerState) Active() bool {
	return s.Kind == Play && !s.AllIn
}

// InHand reports whether the seat can still win the pot.
func (s PlayerState) InHand() bool {
	return s.Kind == Play
}

func (s PlayerState) String() string {
	if s.Kind == Play && s.AllIn {
		return "all-in"
	}
	return s.Kind.String()
}

// Act is an action class chosen by a seat.
type Act struct {
	Seat  SeatID
	Class uint8
}

// EventKind tags an Event.
type EventKind uint8

const (
	EventPlay EventKind = iota
	EventTable
)

// Event is one entry of the append-only hand record: either a seat's action
// class or the community cards revealed at the start of a round.
type Event struct {
	Kind  EventKind
	Act   Act
	Cards []poker.Card
}

// PlayEvent records a seat's action class.
func PlayEvent(seat SeatID, class uint8) Event {
	return Event{Kind: EventPlay, Act: Act{Seat: seat, Class: class}}
}

// TableEvent records revealed community cards.
func TableEvent(cards []poker.Card) Event {
	return Event{Kind: EventTable, Cards: cards}
}

func (e Event) String() string {
	if e.Kind == EventTable {
		return fmt.Sprintf("table %s", poker.FormatCards(e.Cards))
	}
	return fmt.Sprintf("seat %d class %d", e.Act.Seat, e.Act.Class)
}

// SeatFund pairs a seat with its fund.
type SeatFund struct {
	Seat SeatID
	Fund money.Money
}

// PlayerInit is a seat's fund and private cards at the start of a hand.
type PlayerInit struct {
	Seat  SeatID
	Fund  money.Money
	Cards []poker.Card
}

// SeatCards pairs a seat with its private cards.
type SeatCards struct {
	Seat  SeatID
	Cards []poker.Card
}

// BlindPost is a blind posted by a seat.
type BlindPost struct {
	Act    Act
	Amount money.Money
}

// RoundEntry is a normalized action of a round, for display and export.
type RoundEntry struct {
	Seat SeatID
	Move Move
}

// Rounds holds the entries of each betting round.
type Rounds [][]RoundEntry
