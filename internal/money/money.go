// Package money implements a non-negative fixed-point currency value.
//
// A Money counts cents. Subtraction that would go negative is checked and
// reported to the caller; Delta gives the signed difference used when
// comparing pots against a target.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in cents.
type Money uint32

// Zero is the empty amount.
const Zero Money = 0

// New returns dollars and cents as a Money.
func New(dollars uint16, cents uint8) Money {
	return Money(uint32(dollars)*100 + uint32(cents))
}

// Cents returns n cents.
func Cents(n uint32) Money {
	return Money(n)
}

// FromInt converts a signed amount, reporting false when it is negative.
func FromInt(n int64) (Money, bool) {
	if n < 0 || n > math.MaxUint32 {
		return 0, false
	}
	return Money(n), true
}

// Parse reads an amount written as "12", "12.3" or "12.34".
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && !hasFrac {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	var dollars uint64
	if whole != "" {
		d, err := strconv.ParseUint(whole, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		dollars = d
	}
	var cents uint64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("invalid amount %q: expected at most two decimals", s)
		}
		c, err := strconv.ParseUint(frac, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		if len(frac) == 1 {
			c *= 10
		}
		cents = c
	}
	total := dollars*100 + cents
	if total > math.MaxUint32 {
		return 0, fmt.Errorf("amount %q out of range", s)
	}
	return Money(total), nil
}

// Add returns m+o. It panics on overflow.
func (m Money) Add(o Money) Money {
	r := m + o
	if r < m {
		panic(fmt.Sprintf("money: overflow adding %v and %v", m, o))
	}
	return r
}

// Sub returns m-o, or false when o exceeds m.
func (m Money) Sub(o Money) (Money, bool) {
	if o > m {
		return 0, false
	}
	return m - o, true
}

// Delta returns the signed difference m-o.
func (m Money) Delta(o Money) int64 {
	return int64(m) - int64(o)
}

// Mul returns m*n. It panics on overflow.
func (m Money) Mul(n uint32) Money {
	r := uint64(m) * uint64(n)
	if r > math.MaxUint32 {
		panic(fmt.Sprintf("money: overflow multiplying %v by %d", m, n))
	}
	return Money(r)
}

// Div returns m/n and the remainder.
func (m Money) Div(n uint32) (Money, Money) {
	return m / Money(n), m % Money(n)
}

// Float returns the amount in whole units.
func (m Money) Float() float64 {
	return float64(m) / 100
}

// String renders "0", "0.05", "0.50", "12" or "12.34".
func (m Money) String() string {
	dollars, cents := uint32(m)/100, uint32(m)%100
	if cents == 0 {
		return strconv.FormatUint(uint64(dollars), 10)
	}
	return fmt.Sprintf("%d.%02d", dollars, cents)
}

// Sum adds up amounts.
func Sum(amounts []Money) Money {
	var total Money
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Max returns the largest amount, or zero.
func Max(amounts []Money) Money {
	var best Money
	for _, a := range amounts {
		best = max(best, a)
	}
	return best
}
