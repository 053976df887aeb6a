package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// IntRange returns a random int in the closed interval [lo, hi].
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

// Float32Range returns a random float32 in [lo, hi).
func (r *RNG) Float32Range(lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	return lo + r.r.Float32()*(hi-lo)
}

// Uint32Range returns a random uint32 in the closed interval [lo, hi].
func (r *RNG) Uint32Range(lo, hi uint32) uint32 {
	if hi <= lo {
		return lo
	}
	return lo + uint32(r.r.Uint64N(uint64(hi-lo)+1))
}

// Percent reports whether a roll in [0, 100) falls below pct.
func (r *RNG) Percent(pct int) bool {
	return r.r.IntN(100) < pct
}

// Choose returns a uniformly selected index into a collection of length n,
// or -1 when the collection is empty.
func (r *RNG) Choose(n int) int {
	if n <= 0 {
		return -1
	}
	return r.r.IntN(n)
}

// ChooseMultiple returns k distinct indices into a collection of length n in
// selection order. It returns nil when k > n.
func (r *RNG) ChooseMultiple(n, k int) []int {
	if k > n || k < 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + r.r.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

// FillUniform32 fills buf with float32 values drawn from [lo, hi).
func FillUniform32(r *RNG, buf []float32, lo, hi float32) {
	for i := range buf {
		buf[i] = r.Float32Range(lo, hi)
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
