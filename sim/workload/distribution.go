package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// LengthSampler generates token count samples.
type LengthSampler interface {
	// Sample returns a token count >= the sampler's configured floor.
	Sample(rng *rand.Rand) int
}

// LognormalSampler produces lognormal token lengths clamped to a hard floor.
// Parameterized in log space: X = exp(mu + sigma*Z) with Z standard normal.
type LognormalSampler struct {
	mu       float64 // mean of ln(X)
	sigma    float64 // std dev of ln(X)
	minValue int     // hard floor after truncation to integer
}

// NewLognormalSampler validates the log-space parameters and returns the
// sampler. sigma must be strictly positive and the floor at least 1.
func NewLognormalSampler(mu, sigma float64, minValue int) (*LognormalSampler, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("lognormal sigma must be positive, got %g", sigma)
	}
	if minValue < 1 {
		return nil, fmt.Errorf("lognormal min_value must be at least 1, got %d", minValue)
	}
	return &LognormalSampler{mu: mu, sigma: sigma, minValue: minValue}, nil
}

func (s *LognormalSampler) Sample(rng *rand.Rand) int {
	val := math.Exp(s.mu + s.sigma*rng.NormFloat64())
	// Guard against overflow from extreme sigma*Z draws
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return s.minValue
	}
	result := int(val)
	if result < s.minValue {
		return s.minValue
	}
	return result
}

// Min returns the sampler's hard floor.
func (s *LognormalSampler) Min() int { return s.minValue }
