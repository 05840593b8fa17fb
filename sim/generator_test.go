package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttft-sim/ttft-sim/sim/workload"
)

func newTestGenerator(t *testing.T, seed int64, rate float64, sys LifecycleStarter) *Generator {
	t.Helper()
	arrivals, err := workload.NewPoissonSampler(rate)
	require.NoError(t, err)
	prompt, err := workload.NewLognormalSampler(5.0, 0.5, 8)
	require.NoError(t, err)
	output, err := workload.NewLognormalSampler(4.0, 0.5, 4)
	require.NoError(t, err)
	return NewGenerator(arrivals, prompt, output, rand.New(rand.NewSource(seed)), sys)
}

// captureStarter records the requests handed to it without running any
// lifecycle, isolating the generator from the pools.
type captureStarter struct {
	requests []*Request
}

func (c *captureStarter) StartRequest(_ *Scheduler, req *Request) {
	c.requests = append(c.requests, req)
}

func TestGenerator_AssignsSequentialIDsAndArrivalTimes(t *testing.T) {
	s := NewScheduler(50)
	capture := &captureStarter{}
	gen := newTestGenerator(t, 7, 2.0, capture)

	gen.Start(s)
	s.Run()

	require.NotEmpty(t, capture.requests)
	assert.Equal(t, gen.Generated(), len(capture.requests))

	prev := 0.0
	for i, req := range capture.requests {
		assert.Equal(t, i, req.ID)
		assert.GreaterOrEqual(t, req.ArrivalTime, prev)
		assert.Less(t, req.ArrivalTime, 50.0)
		assert.GreaterOrEqual(t, req.PromptTokens, 8)
		assert.GreaterOrEqual(t, req.OutputTokens, 4)
		prev = req.ArrivalTime
	}
}

func TestGenerator_ArrivalCountTracksRate(t *testing.T) {
	s := NewScheduler(1000)
	capture := &captureStarter{}
	gen := newTestGenerator(t, 11, 2.0, capture)

	gen.Start(s)
	s.Run()

	// Poisson(rate*horizon) = Poisson(2000): +/- 5 sigma ~ 225
	n := gen.Generated()
	assert.Greater(t, n, 1775)
	assert.Less(t, n, 2225)
}

func TestGenerator_SameSeedReplaysIdentically(t *testing.T) {
	runOnce := func() []*Request {
		s := NewScheduler(100)
		capture := &captureStarter{}
		gen := newTestGenerator(t, 42, 3.0, capture)
		gen.Start(s)
		s.Run()
		return capture.requests
	}

	first := runOnce()
	second := runOnce()

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, *first[i], *second[i])
	}
}
