package game

import (
	"math/bits"
	"strings"

	"github.com/lox/pokersim/internal/money"
)

// Class indices shared by the shipped action classes.
const (
	ClassFold  uint8 = 0
	ClassCall  uint8 = 1
	ClassRaise uint8 = 2
)

// Mask is the set of legal action classes.
type Mask uint32

// With returns the mask with class added.
func (m Mask) With(class uint8) Mask { return m | 1<<class }

// Has reports whether class is legal.
func (m Mask) Has(class uint8) bool { return class < 32 && m&(1<<class) != 0 }

// Len returns the number of legal classes.
func (m Mask) Len() int { return bits.OnesCount32(uint32(m)) }

// Classes lists the legal classes in ascending order.
func (m Mask) Classes() []uint8 {
	classes := make([]uint8, 0, m.Len())
	for c := uint8(0); c < 32; c++ {
		if m.Has(c) {
			classes = append(classes, c)
		}
	}
	return classes
}

func (m Mask) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range m.Classes() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('0' + c)
	}
	b.WriteByte('}')
	return b.String()
}

// Betting is the context an action class is decoded in.
type Betting struct {
	BlindBiggest money.Money
	Round        int
	Target       money.Money
	// TargetRaise is the size of the last raise. It is only meaningful
	// when Raisable is set.
	TargetRaise money.Money
	// Raisable is false once the round's raise cap has been reached.
	Raisable bool
	Fund     money.Money
	Pot      money.Money
}

// ToCall returns what the seat still owes to match the target.
func (b Betting) ToCall() money.Money {
	owed, _ := b.Target.Sub(b.Pot)
	return owed
}

// ActionClass maps between semantic actions and compact class indices, and
// decides which classes are legal. Implementations must be stateless and
// safe for concurrent use.
type ActionClass interface {
	// Apply encodes an action as its class index.
	Apply(blindBiggest, fund money.Money, action Action, pledge money.Money) uint8
	// Unapply decodes a class into a move for the betting context.
	Unapply(b Betting, class uint8) (Move, error)
	// Normalize returns the legal classes for the betting context.
	Normalize(b Betting) Mask
	IsFold(class uint8) bool
	IsRaise(class uint8) bool
	// Size is the number of classes.
	Size() int
}

// ToAction returns the semantic action behind a class.
func ToAction(ac ActionClass, class uint8) Action {
	switch {
	case ac.IsFold(class):
		return Fold
	case ac.IsRaise(class):
		return Raise
	default:
		return Call
	}
}

// roundRaiser gives the raise size for a round.
type roundRaiser interface {
	raiseSize(blindBiggest money.Money, round int) (money.Money, bool)
}

func applyClass(action Action) uint8 {
	switch action {
	case Fold:
		return ClassFold
	case Call:
		return ClassCall
	default:
		return ClassRaise
	}
}

func unapplyClass(r roundRaiser, b Betting, class uint8) (Move, error) {
	switch class {
	case ClassFold:
		return FoldMove(), nil
	case ClassCall:
		if b.Pot >= b.Target {
			return CheckMove(), nil
		}
		return CallMove(b.ToCall()), nil
	case ClassRaise:
		size, ok := r.raiseSize(b.BlindBiggest, b.Round)
		if !ok {
			return Move{}, semanticf("no raise size for round %d", b.Round)
		}
		pledge, ok := b.Target.Add(size).Sub(b.Pot)
		if !ok || pledge == 0 {
			return Move{}, semanticf("raise from pot %s over target %s has no pledge", b.Pot, b.Target)
		}
		return RaiseMove(pledge), nil
	default:
		return Move{}, semanticf("invalid action class %d", class)
	}
}

// normalizeClass builds the mask shared by the shipped classes. callable
// decides whether a seat that owes money may call.
func normalizeClass(r roundRaiser, b Betting, callable func(Betting) bool) Mask {
	var mask Mask
	if b.Pot < b.Target {
		mask = mask.With(ClassFold)
	}
	if b.Pot >= b.Target || callable(b) {
		mask = mask.With(ClassCall)
	}
	if b.Raisable {
		if size, ok := r.raiseSize(b.BlindBiggest, b.Round); ok {
			if need, ok := b.Target.Add(size).Sub(b.Pot); ok && need > 0 && b.Fund >= need {
				mask = mask.With(ClassRaise)
			}
		}
	}
	return mask
}

// ActionKuhn raises by one big blind in every round.
type ActionKuhn struct{}

var _ ActionClass = ActionKuhn{}

func (ActionKuhn) raiseSize(blindBiggest money.Money, _ int) (money.Money, bool) {
	return blindBiggest, true
}

func (ActionKuhn) Apply(_, _ money.Money, action Action, _ money.Money) uint8 {
	return applyClass(action)
}

func (a ActionKuhn) Unapply(b Betting, class uint8) (Move, error) {
	return unapplyClass(a, b, class)
}

// Normalize allows a call when the seat holds at least a big blind and can
// cover what it owes.
func (a ActionKuhn) Normalize(b Betting) Mask {
	return normalizeClass(a, b, func(b Betting) bool {
		return b.Fund >= b.BlindBiggest && b.Fund >= b.ToCall()
	})
}

func (ActionKuhn) IsFold(class uint8) bool  { return class == ClassFold }
func (ActionKuhn) IsRaise(class uint8) bool { return class == ClassRaise }
func (ActionKuhn) Size() int                { return 3 }

// ActionLimit raises by a per-round multiple of the big blind.
type ActionLimit struct {
	// Raises holds the raise size for each round, in big blinds.
	Raises []uint32
}

var _ ActionClass = ActionLimit{}

// NewActionLimit builds the limit action class for a profile.
func NewActionLimit(l Limit) ActionLimit {
	return ActionLimit{Raises: l.Raises}
}

func (a ActionLimit) raiseSize(blindBiggest money.Money, round int) (money.Money, bool) {
	if round < 0 || round >= len(a.Raises) {
		return 0, false
	}
	return blindBiggest.Mul(a.Raises[round]), true
}

func (ActionLimit) Apply(_, _ money.Money, action Action, _ money.Money) uint8 {
	return applyClass(action)
}

func (a ActionLimit) Unapply(b Betting, class uint8) (Move, error) {
	return unapplyClass(a, b, class)
}

// Normalize allows a call only when the seat has funds left after paying.
func (a ActionLimit) Normalize(b Betting) Mask {
	return normalizeClass(a, b, func(b Betting) bool {
		return int64(b.Fund)+int64(b.Pot) > int64(b.Target)
	})
}

func (ActionLimit) IsFold(class uint8) bool  { return class == ClassFold }
func (ActionLimit) IsRaise(class uint8) bool { return class == ClassRaise }
func (ActionLimit) Size() int                { return 3 }
