package bot

import (
	"errors"
	rand "math/rand/v2"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/money"
)

// ErrNoLegalClass is returned when a mask leaves nothing to play.
var ErrNoLegalClass = errors.New("no legal action class")

// Fold plays the first legal class: it folds when facing a bet and checks
// otherwise.
type Fold struct {
	ac game.ActionClass
	blinds
}

// NewFold creates a Fold player.
func NewFold(ac game.ActionClass) *Fold {
	return &Fold{ac: ac}
}

func (f *Fold) Init(bl []money.Money, _ game.SeatID, _ []money.Money, _ []game.SeatCards) {
	f.init(bl)
}

func (f *Fold) Play(t game.Turn) (uint8, error) {
	mask := f.mask(f.ac, t)
	for c := uint8(0); int(c) < f.ac.Size(); c++ {
		if mask.Has(c) {
			return c, nil
		}
	}
	return 0, ErrNoLegalClass
}

// Call checks or calls whenever it can and never raises.
type Call struct {
	ac game.ActionClass
	blinds
}

// NewCall creates a calling station.
func NewCall(ac game.ActionClass) *Call {
	return &Call{ac: ac}
}

func (c *Call) Init(bl []money.Money, _ game.SeatID, _ []money.Money, _ []game.SeatCards) {
	c.init(bl)
}

func (c *Call) Play(t game.Turn) (uint8, error) {
	class, ok := pick(c.mask(c.ac, t), game.ClassCall, game.ClassFold)
	if !ok {
		return 0, ErrNoLegalClass
	}
	return class, nil
}

// Random plays uniformly among the legal classes.
type Random struct {
	rng *rand.Rand
	ac  game.ActionClass
	blinds
}

// NewRandom creates a random player drawing from rng.
func NewRandom(rng *rand.Rand, ac game.ActionClass) *Random {
	if rng == nil {
		panic("bot: NewRandom requires a non-nil RNG")
	}
	return &Random{rng: rng, ac: ac}
}

func (r *Random) Init(bl []money.Money, _ game.SeatID, _ []money.Money, _ []game.SeatCards) {
	r.init(bl)
}

func (r *Random) Play(t game.Turn) (uint8, error) {
	classes := r.mask(r.ac, t).Classes()
	if len(classes) == 0 {
		return 0, ErrNoLegalClass
	}
	return classes[r.rng.IntN(len(classes))], nil
}
