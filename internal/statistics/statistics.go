package statistics

import (
	"fmt"
	"math"
	"slices"
)

// BigPotBB is the pot size, in big blinds, from which a hand counts as a big pot.
const BigPotBB = 50

// HandResult is one seat's outcome of a single hand.
type HandResult struct {
	NetBB    float64 // Fund change in big blinds
	Seed     int64   // RNG seed of the hand, for replay
	Seat     int     // Seat the strategy sat in
	Showdown bool    // Hand reached a showdown
	Dead     bool    // Hand was refunded
	PotBB    float64 // Total committed, in big blinds
}

// SeatStats accumulates results for one seat.
type SeatStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Mean returns the seat's mean result.
func (s SeatStats) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Statistics tracks the results of one strategy over many hands.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // Sum of squares for variance calculation
	Values []float64 // Every result, for median and percentiles

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64 // Showdown results, wins and losses
	NonShowdownBB   float64 // Fold-out and dead results
	DeadHands       int

	Seats []SeatStats

	MaxPotBB  float64
	BigPots   int
	BigPotsBB float64
}

// Mean returns the mean result in big blinds per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// MBBPerHand returns the win rate in milli big blinds per hand.
func (s *Statistics) MBBPerHand() float64 {
	return s.Mean() * 1000
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(s.Variance(), 0))
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a hand result.
func (s *Statistics) Add(r HandResult) {
	s.Hands++
	s.SumBB += r.NetBB
	s.SumBB2 += r.NetBB * r.NetBB
	s.Values = append(s.Values, r.NetBB)

	if r.Showdown {
		s.ShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.NonShowdownWins++
		}
	}
	if r.Dead {
		s.DeadHands++
	}

	if r.Seat >= 0 {
		if r.Seat >= len(s.Seats) {
			s.Seats = append(s.Seats, make([]SeatStats, r.Seat+1-len(s.Seats))...)
		}
		seat := &s.Seats[r.Seat]
		seat.Hands++
		seat.SumBB += r.NetBB
		seat.SumBB2 += r.NetBB * r.NetBB
	}

	s.MaxPotBB = max(s.MaxPotBB, r.PotBB)
	if r.PotBB >= BigPotBB {
		s.BigPots++
		s.BigPotsBB += r.NetBB
	}
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	s.DeadHands += other.DeadHands
	if len(other.Seats) > len(s.Seats) {
		s.Seats = append(s.Seats, make([]SeatStats, len(other.Seats)-len(s.Seats))...)
	}
	for i, o := range other.Seats {
		s.Seats[i].Hands += o.Hands
		s.Seats[i].SumBB += o.SumBB
		s.Seats[i].SumBB2 += o.SumBB2
	}
	s.MaxPotBB = max(s.MaxPotBB, other.MaxPotBB)
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
}

// Median returns the median result.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the interpolated value at p in [0, 1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := min(max(p, 0), 1) * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatMean returns the mean result from seat, or 0 if it never played.
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= len(s.Seats) {
		return 0
	}
	return s.Seats[seat].Mean()
}

// IsLedgerBalanced checks the showdown split adds up to the total.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.SumBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the internal consistency of the counters.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: SumBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.SumBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	seated := 0
	for _, seat := range s.Seats {
		seated += seat.Hands
	}
	if seated != s.Hands {
		return fmt.Errorf("seat hands total (%d) does not match total hands (%d)", seated, s.Hands)
	}
	return nil
}
