package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Split draws a seed from rng and returns an independent child stream.
// Workers each take one child so parallel runs stay reproducible.
func Split(rng *rand.Rand) *rand.Rand {
	return New(rng.Int64())
}

// Sample picks an index with probability proportional to its weight.
// It returns the last index with positive weight when rounding leaves a
// remainder, and -1 if no weight is positive.
func Sample(rng *rand.Rand, weights []float64) int {
	var total float64
	last := -1
	for i, w := range weights {
		if w > 0 {
			total += w
			last = i
		}
	}
	if last < 0 {
		return -1
	}
	x := rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if x < w {
			return i
		}
		x -= w
	}
	return last
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// PartialShuffle moves a uniform random selection of n elements of s to its
// front, in random order. The rest of s is left in unspecified order.
func PartialShuffle[T any](rng *rand.Rand, s []T, n int) {
	n = min(n, len(s))
	for i := range n {
		j := i + rng.IntN(len(s)-i)
		s[i], s[j] = s[j], s[i]
	}
}
