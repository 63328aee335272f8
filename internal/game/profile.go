package game

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/poker"
)

// Limit caps the raises of each round.
type Limit struct {
	// Caps is the maximum number of raises in a round.
	Caps int
	// Raises is the raise size per round, in big blinds.
	Raises []uint32
}

// Profile describes a game variant. Profiles are never mutated during play.
type Profile struct {
	ID      string
	Blinds  []money.Money
	Deck    []poker.Card
	Players int
	// Rounds holds the cards dealt per round: Rounds[0] private cards per
	// seat, then community cards for each later street.
	Rounds []int
	Limit  *Limit
}

// BlindBiggest returns the largest blind.
func (p Profile) BlindBiggest() money.Money {
	return money.Max(p.Blinds)
}

// Ante reports whether every blind is the big blind, in which case the
// blinds act as antes and are not logged as plays.
func (p Profile) Ante() bool {
	bb := p.BlindBiggest()
	for _, b := range p.Blinds {
		if b != bb {
			return false
		}
	}
	return true
}

// TableCards returns the number of community cards dealt over a hand.
func (p Profile) TableCards() int {
	n := 0
	for _, c := range p.Rounds[1:] {
		n += c
	}
	return n
}

// DeltaBiggest returns the largest amount, in big blinds, that a seat can
// win in one hand.
func (p Profile) DeltaBiggest() uint32 {
	bb := uint32(p.BlindBiggest())
	if bb == 0 || p.Limit == nil {
		return 0
	}
	others := uint32(p.Players - 1)
	delta := bb * others
	for _, raise := range p.Limit.Raises {
		delta += bb * raise * uint32(p.Limit.Caps) * others
	}
	return delta / bb
}

// Validate checks that the profile can be dealt and played.
func (p Profile) Validate() error {
	var errs []error
	if p.Players < 2 {
		errs = append(errs, fmt.Errorf("players must be at least 2, got %d", p.Players))
	}
	if len(p.Blinds) == 0 {
		errs = append(errs, errors.New("at least one blind is required"))
	}
	if len(p.Blinds) > p.Players {
		errs = append(errs, fmt.Errorf("%d blinds for %d players", len(p.Blinds), p.Players))
	}
	if p.BlindBiggest() == 0 {
		errs = append(errs, errors.New("big blind must be positive"))
	}
	if len(p.Rounds) == 0 {
		errs = append(errs, errors.New("at least one round is required"))
	} else {
		need := p.Rounds[0]*p.Players + p.TableCards()
		if need > len(p.Deck) {
			errs = append(errs, fmt.Errorf("deck of %d cards cannot deal %d", len(p.Deck), need))
		}
	}
	if p.Limit != nil {
		if p.Limit.Caps < 1 {
			errs = append(errs, fmt.Errorf("limit caps must be positive, got %d", p.Limit.Caps))
		}
		if len(p.Limit.Raises) < len(p.Rounds) {
			errs = append(errs, fmt.Errorf("limit has %d raise sizes for %d rounds", len(p.Limit.Raises), len(p.Rounds)))
		}
	}
	return errors.Join(errs...)
}

func checkPlayers(id string, players, lo, hi int) {
	if players < lo || players > hi {
		panic(fmt.Sprintf("game: %s needs %d to %d players, got %d", id, lo, hi, players))
	}
}

func antes(players int) []money.Money {
	blinds := make([]money.Money, players)
	for i := range blinds {
		blinds[i] = money.New(1, 0)
	}
	return blinds
}

// Kuhn is three card Kuhn poker for 2 or 3 players.
func Kuhn(players int) Profile {
	checkPlayers("kuhn", players, 2, 3)
	return Profile{
		ID:      "kuhn",
		Blinds:  antes(players),
		Deck:    slices.Clone(poker.KuhnDeck),
		Players: players,
		Rounds:  []int{1},
		Limit:   &Limit{Caps: 1, Raises: []uint32{1}},
	}
}

// Leduc is Leduc hold'em for 2 to 5 players: one private card, one board
// card, two raises per round of 2 then 4.
func Leduc(players int) Profile {
	checkPlayers("leduc", players, 2, 5)
	return Profile{
		ID:      "leduc",
		Blinds:  antes(players),
		Deck:    slices.Clone(poker.LeducDeck),
		Players: players,
		Rounds:  []int{1, 1},
		Limit:   &Limit{Caps: 2, Raises: []uint32{2, 4}},
	}
}

// LeducFrench is Leduc betting dealt from a full deck.
func LeducFrench(players int) Profile {
	checkPlayers("leduc-french", players, 2, 10)
	return Profile{
		ID:      "leduc-french",
		Blinds:  antes(players),
		Deck:    poker.FrenchDeck(),
		Players: players,
		Rounds:  []int{1, 1},
		Limit:   &Limit{Caps: 2, Raises: []uint32{2, 4}},
	}
}

// Cochard deals two private cards and two single board cards.
func Cochard(players int) Profile {
	checkPlayers("cochard", players, 2, 10)
	return Profile{
		ID:      "cochard",
		Blinds:  antes(players),
		Deck:    poker.FrenchDeck(),
		Players: players,
		Rounds:  []int{2, 1, 1},
		Limit:   &Limit{Caps: 2, Raises: []uint32{1, 2, 4}},
	}
}

// TexasLimit is fixed limit hold'em with small and big blinds.
func TexasLimit(players int, small, big money.Money) Profile {
	checkPlayers("texas-limit", players, 2, 10)
	return Profile{
		ID:      "texas-limit",
		Blinds:  []money.Money{small, big},
		Deck:    poker.FrenchDeck(),
		Players: players,
		Rounds:  []int{2, 3, 1, 1},
		Limit:   &Limit{Caps: 4, Raises: []uint32{1, 1, 2, 2}},
	}
}

var profiles = map[string]func(players int) Profile{
	"kuhn":         Kuhn,
	"leduc":        Leduc,
	"leduc-french": LeducFrench,
	"cochard":      Cochard,
	"texas-limit": func(players int) Profile {
		return TexasLimit(players, money.Cents(50), money.New(1, 0))
	},
}

var profileRange = map[string][2]int{
	"kuhn":         {2, 3},
	"leduc":        {2, 5},
	"leduc-french": {2, 10},
	"cochard":      {2, 10},
	"texas-limit":  {2, 10},
}

// ProfileIDs lists the built-in profiles.
func ProfileIDs() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LookupProfile builds a built-in profile by id.
func LookupProfile(id string, players int) (Profile, error) {
	build, ok := profiles[id]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q", id)
	}
	r := profileRange[id]
	if players < r[0] || players > r[1] {
		return Profile{}, fmt.Errorf("profile %s needs %d to %d players, got %d", id, r[0], r[1], players)
	}
	return build(players), nil
}

// ProfilePlayers returns the player range of a built-in profile.
func ProfilePlayers(id string) (lo, hi int, ok bool) {
	r, ok := profileRange[id]
	return r[0], r[1], ok
}
