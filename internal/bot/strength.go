package bot

import (
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/poker"
)

// Strength estimates the share of showdowns a hand wins against opponents
// holding random cards, completing the board from the unseen cards. Ties
// count fractionally. It returns a value in [0, 1].
func Strength(rng *rand.Rand, eval poker.Evaluator, p game.Profile, opponents int, hole, table []poker.Card, accuracy int) float64 {
	if accuracy <= 0 {
		return 0
	}
	known := append(slices.Clone(hole), table...)
	unseen := slices.DeleteFunc(slices.Clone(p.Deck), func(c poker.Card) bool {
		return slices.Contains(known, c)
	})
	hole0, missing := p.Rounds[0], p.TableCards()-len(table)
	if missing < 0 || missing > len(unseen) {
		return 0
	}
	if hole0 > 0 {
		opponents = min(opponents, (len(unseen)-missing)/hole0)
	}
	need := opponents*hole0 + missing

	board := make([]poker.Card, 0, p.TableCards())
	hand := make([]poker.Card, 0, p.Rounds[0]+p.TableCards())
	var won float64
	for range accuracy {
		randutil.PartialShuffle(rng, unseen, need)
		board = append(board[:0], table...)
		next := opponents * hole0
		board = append(board, unseen[next:next+missing]...)

		hand = append(append(hand[:0], hole...), board...)
		ours := eval.Score(hand)
		best, tied := true, 1
		for o := range opponents {
			hand = append(append(hand[:0], unseen[o*hole0:(o+1)*hole0]...), board...)
			s := eval.Score(hand)
			if s > ours {
				best = false
				break
			}
			if s == ours {
				tied++
			}
		}
		if best {
			won += 1 / float64(tied)
		}
	}
	return won / float64(accuracy)
}

// DefaultAccuracy is the number of Monte Carlo deals per decision.
const DefaultAccuracy = 200

// Lex bets in proportion to the return rate of its estimated hand strength
// against the price of the next raise.
type Lex struct {
	rng      *rand.Rand
	ac       game.ActionClass
	eval     poker.Evaluator
	profile  game.Profile
	accuracy int
	seats    map[game.SeatID]*lexSeat
	dealt    int
	blinds
}

type lexSeat struct {
	hole   []poker.Card
	table  []poker.Card
	folded map[game.SeatID]bool
}

// NewLex creates a strength player for a profile.
func NewLex(rng *rand.Rand, ac game.ActionClass, eval poker.Evaluator, p game.Profile, accuracy int) *Lex {
	if rng == nil {
		panic("bot: NewLex requires a non-nil RNG")
	}
	if accuracy <= 0 {
		accuracy = DefaultAccuracy
	}
	return &Lex{rng: rng, ac: ac, eval: eval, profile: p, accuracy: accuracy}
}

func (l *Lex) Init(bl []money.Money, _ game.SeatID, funds []money.Money, hands []game.SeatCards) {
	l.init(bl)
	l.dealt = 0
	for _, f := range funds {
		if f > 0 {
			l.dealt++
		}
	}
	l.seats = make(map[game.SeatID]*lexSeat, len(hands))
	for _, h := range hands {
		l.seats[h.Seat] = &lexSeat{hole: h.Cards, folded: map[game.SeatID]bool{}}
	}
}

func (l *Lex) Play(t game.Turn) (uint8, error) {
	st, ok := l.seats[t.Seat]
	if !ok {
		return 0, fmt.Errorf("lex: seat %d was not dealt", t.Seat)
	}
	for _, e := range t.Events {
		switch {
		case e.Kind == game.EventTable:
			st.table = append(st.table, e.Cards...)
		case l.ac.IsFold(e.Act.Class) && e.Act.Seat != t.Seat:
			st.folded[e.Act.Seat] = true
		}
	}
	opponents := max(l.dealt-1-len(st.folded), 1)
	strength := Strength(l.rng, l.eval, l.profile, opponents, st.hole, st.table, l.accuracy)

	mask := l.mask(l.ac, t)
	probs := lexProbs(strength, t)
	for c := range probs {
		if !mask.Has(uint8(c)) {
			probs[c] = 0
		}
	}
	if i := randutil.Sample(l.rng, probs[:]); i >= 0 {
		return uint8(i), nil
	}
	class, ok := pick(mask, game.ClassCall, game.ClassFold)
	if !ok {
		return 0, ErrNoLegalClass
	}
	return class, nil
}

// lexProbs maps strength to fold, call and raise weights.
func lexProbs(strength float64, t game.Turn) [3]float64 {
	var toCall money.Money
	if pot := t.Pots[t.Seat]; t.Target > pot {
		toCall = t.Target - pot
	}
	raise := toCall
	if t.Raisable {
		raise += t.TargetRaise
	}
	price := float64(max(uint32(raise), 1)) / float64(uint32(raise)+uint32(money.Sum(t.Pots)))
	rate := strength / price

	var probs [3]float64
	switch {
	case rate < 0.8:
		probs = [3]float64{0.95, 0, 0.05}
	case rate < 1.0:
		probs = [3]float64{0.80, 0.05, 0.15}
	case rate < 1.3:
		probs = [3]float64{0, 0.6, 0.4}
	default:
		probs = [3]float64{0, 0.3, 0.7}
	}
	if toCall == 0 {
		probs[game.ClassCall] += probs[game.ClassFold]
		probs[game.ClassFold] = 0
	}
	if !t.Raisable {
		probs[game.ClassCall] += probs[game.ClassRaise]
		probs[game.ClassRaise] = 0
	}
	return probs
}
