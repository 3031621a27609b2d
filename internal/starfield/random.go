package starfield

import "math/rand"

// Source supplies every random sample the simulation takes.
// Seeding it fixes initial placement and every recycle.
type Source interface {
	Float64() float64
}

// NewSource returns a deterministic Source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// uniform draws from [lo, hi). A degenerate range returns lo.
func uniform(rng Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// symmetric draws from [-extent, extent).
func symmetric(rng Source, extent float64) float64 {
	return (rng.Float64()*2 - 1) * extent
}
