package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Random is the single deterministic pseudo-random stream shared by every
// generation stage. Reproducibility of a run depends on each stage consuming
// this stream in the documented pipeline order, so there is exactly one
// instance per run, created at the composition root.
type Random struct {
	rng  *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRandom creates a new Random instance with the given seed.
// If seed is 0, a cryptographically random seed is generated and the run
// is not reproducible.
func NewRandom(seed int64) *Random {
	var actualSeed uint64
	if seed == 0 {
		actualSeed = generateRandomSeed()
	} else {
		actualSeed = uint64(seed)
	}

	return &Random{
		rng:  rand.New(rand.NewPCG(actualSeed, actualSeed^0xDEADBEEF)),
		seed: actualSeed,
	}
}

// generateRandomSeed creates a cryptographically random seed
func generateRandomSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// Fallback to time-based seed if crypto/rand fails
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Seed returns the seed used to initialize this RNG
func (r *Random) Seed() uint64 {
	return r.seed
}

// IntN returns a pseudo-random int in [0, n)
func (r *Random) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// IntRange returns a pseudo-random int in [min, max]
func (r *Random) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + r.IntN(max-min+1)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0)
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Float64Range returns a pseudo-random float64 in [min, max)
func (r *Random) Float64Range(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + r.Float64()*(max-min)
}

// Probability returns true with the given probability (0.0 to 1.0)
func (r *Random) Probability(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// WeightedChoice selects an index from a fixed categorical distribution.
// Probabilities are relative weights; they do not need to sum to 1.
// Returns -1 for an empty table.
func (r *Random) WeightedChoice(probs []float64) int {
	if len(probs) == 0 {
		return -1
	}

	total := 0.0
	for _, p := range probs {
		total += p
	}
	if total <= 0 {
		return r.IntN(len(probs))
	}

	target := r.Float64() * total
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if target < cumulative {
			return i
		}
	}

	return len(probs) - 1
}

// NormalFloat64 returns a normally distributed float64 with mean 0 and stddev 1
func (r *Random) NormalFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.NormFloat64()
}

// NormalFloat64Range returns a normally distributed float64 with given mean and stddev
func (r *Random) NormalFloat64Range(mean, stddev float64) float64 {
	return mean + r.NormalFloat64()*stddev
}

// ClampedNormal draws from Normal(mean, stddev) and clamps into [min, max]
func (r *Random) ClampedNormal(mean, stddev, min, max float64) float64 {
	v := r.NormalFloat64Range(mean, stddev)
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// LogNormal returns exp(Normal(mu, sigma)), the multiplicative noise term
// used for transaction prices
func (r *Random) LogNormal(mu, sigma float64) float64 {
	return math.Exp(r.NormalFloat64Range(mu, sigma))
}

// Poisson returns a Poisson-distributed count with the given mean, using
// Knuth's multiplication method. Fine for the small lambdas this generator
// works with; not suited to lambda much beyond ~30.
func (r *Random) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}

	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= r.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// Date returns a random date between start and end (inclusive)
func (r *Random) Date(start, end time.Time) time.Time {
	if !start.Before(end) {
		return start
	}
	delta := end.Sub(start)
	return start.Add(time.Duration(r.Float64() * float64(delta)))
}
