package core

import (
	"hash/fnv"
	"math"
)

// zeroSeed replaces a zero seed so the stream never starts from the
// degenerate all-zero state.
const zeroSeed uint64 = 0x9E3779B97F4A7C15

// RNG is a deterministic pseudo-random number generator.
// Uses a 64-bit LCG; every platform produces the same sequence for a seed.
type RNG struct {
	state uint64
	calls uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = zeroSeed
	}
	return &RNG{state: seed}
}

// Next generates the next random uint64.
func (r *RNG) Next() uint64 {
	r.calls++
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 11) % uint64(n)) //#nosec G115 -- n is always positive
}

// Range returns a random float64 in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Angle returns a random angle in [0, 2π).
func (r *RNG) Angle() float64 {
	return r.Float64() * 2 * math.Pi
}

// Shuffle permutes n elements with a Fisher-Yates pass.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}

// Calls returns how many raw values the generator has produced.
func (r *RNG) Calls() uint64 {
	return r.calls
}

// Mix folds v into seed with a splitmix64 finalizer.
func Mix(seed, v uint64) uint64 {
	z := seed ^ (v + 0x9E3779B97F4A7C15 + (seed << 6) + (seed >> 2))
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// KindSalt separates the black and white streams of the same game.
func KindSalt(k Kind) uint64 {
	switch k {
	case White:
		return 0xD1B54A32D192ED03
	default:
		return 0x8CB92BA72F3D8DD7
	}
}

// DeriveSeed builds a reproducible seed from a game fingerprint, the bowl
// kind and a variant-specific constant.
func DeriveSeed(fingerprint string, kind Kind, salt uint64) uint64 {
	h := fnv.New64a()
	h.Write([]byte(fingerprint)) //nolint:errcheck // hash writes never fail
	return Mix(Mix(h.Sum64(), KindSalt(kind)), salt)
}
