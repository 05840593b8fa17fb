package workload

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoissonSampler_RejectsNonPositiveRate(t *testing.T) {
	for _, rate := range []float64{0, -1.5} {
		_, err := NewPoissonSampler(rate)
		assert.Error(t, err)
	}
}

func TestPoissonSampler_GapsArePositive(t *testing.T) {
	s, err := NewPoissonSampler(2.0)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 10000; i++ {
		assert.Greater(t, s.SampleGap(rng), 0.0)
	}
}

func TestPoissonSampler_MeanGapApproaches1OverRate(t *testing.T) {
	s, err := NewPoissonSampler(4.0)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))

	const n = 200000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.SampleGap(rng)
	}
	// mean of Exp(4) is 0.25; with n=200k the sample mean is well inside 2%
	assert.InDelta(t, 0.25, sum/n, 0.005)
}
