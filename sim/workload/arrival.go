package workload

import (
	"fmt"
	"math/rand"
)

// ArrivalSampler generates inter-arrival gaps for the request stream.
type ArrivalSampler interface {
	// SampleGap returns the next inter-arrival gap in seconds.
	// Always returns a positive value.
	SampleGap(rng *rand.Rand) float64
}

// PoissonSampler generates exponentially-distributed inter-arrival gaps
// (a Poisson arrival process with rate ratePerS).
type PoissonSampler struct {
	ratePerS float64
}

// NewPoissonSampler validates the rate and returns the sampler.
func NewPoissonSampler(ratePerS float64) (*PoissonSampler, error) {
	if ratePerS <= 0 {
		return nil, fmt.Errorf("arrival rate must be positive, got %g", ratePerS)
	}
	return &PoissonSampler{ratePerS: ratePerS}, nil
}

func (s *PoissonSampler) SampleGap(rng *rand.Rand) float64 {
	return rng.ExpFloat64() / s.ratePerS
}
