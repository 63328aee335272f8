package replay

import rand "math/rand/v2"

// Reservoir keeps a uniform sample of everything pushed to it (algorithm R).
// PMin puts a floor under the acceptance probability so recent values keep
// entering a long running sample.
type Reservoir[T any] struct {
	values []T
	size   int
	pMin   float64
	seen   int
}

// NewReservoir creates a reservoir of size values with acceptance floor pMin.
func NewReservoir[T any](size int, pMin float64) *Reservoir[T] {
	if size <= 0 {
		panic("replay: reservoir size must be positive")
	}
	return &Reservoir[T]{values: make([]T, 0, size), size: size, pMin: pMin}
}

// Push offers values to the sample and returns how many were kept.
func (r *Reservoir[T]) Push(rng *rand.Rand, values ...T) int {
	kept := 0
	for _, v := range values {
		r.seen++
		if len(r.values) < r.size {
			r.values = append(r.values, v)
			kept++
			continue
		}
		p := max(float64(r.size)/float64(r.seen), r.pMin)
		if rng.Float64() < p {
			r.values[rng.IntN(r.size)] = v
			kept++
		}
	}
	return kept
}

// Len returns the number of values held.
func (r *Reservoir[T]) Len() int { return len(r.values) }

// Seen returns the number of values offered so far.
func (r *Reservoir[T]) Seen() int { return r.seen }

// At returns the i-th held value. Order carries no meaning.
func (r *Reservoir[T]) At(i int) T { return r.values[i] }

// Usage returns the filled fraction of the reservoir.
func (r *Reservoir[T]) Usage() float64 {
	return float64(len(r.values)) / float64(r.size)
}

// Sample returns n held values drawn without replacement.
func (r *Reservoir[T]) Sample(rng *rand.Rand, n int) []T {
	n = min(n, len(r.values))
	out := make([]T, 0, n)
	for _, i := range rng.Perm(len(r.values))[:n] {
		out = append(out, r.values[i])
	}
	return out
}
