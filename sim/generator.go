// Implements the workload generator: a Poisson arrival stream that is the
// sole creator of Request entities. Each arrival samples its interarrival
// gap, prompt length, and output length in that fixed order from one
// explicit RNG instance, which is what makes runs replayable.

package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/ttft-sim/ttft-sim/sim/workload"
)

// LifecycleStarter launches a request's lifecycle process. MonoSystem and
// DisaggSystem implement it.
type LifecycleStarter interface {
	StartRequest(s *Scheduler, req *Request)
}

// Generator drives the Poisson arrival process for the whole run and
// assigns sequential request IDs starting at 0.
type Generator struct {
	arrivals workload.ArrivalSampler
	prompt   workload.LengthSampler
	output   workload.LengthSampler
	rng      *rand.Rand
	system   LifecycleStarter
	nextID   int
}

// NewGenerator wires the samplers, the run's RNG instance, and the
// lifecycle entry point.
func NewGenerator(arrivals workload.ArrivalSampler, prompt, output workload.LengthSampler, rng *rand.Rand, system LifecycleStarter) *Generator {
	return &Generator{
		arrivals: arrivals,
		prompt:   prompt,
		output:   output,
		rng:      rng,
		system:   system,
	}
}

// Start schedules the first arrival. Subsequent arrivals are chained from
// each arrivalEvent, so the generator runs until the horizon cuts it off.
func (g *Generator) Start(s *Scheduler) {
	g.scheduleNextArrival(s)
}

// Generated returns how many requests have been created so far.
func (g *Generator) Generated() int {
	return g.nextID
}

func (g *Generator) scheduleNextArrival(s *Scheduler) {
	gap := g.arrivals.SampleGap(g.rng)
	s.Schedule(&arrivalEvent{time: s.Now() + gap, gen: g})
}

// arrivalEvent represents the arrival of a new request into the system.
type arrivalEvent struct {
	time float64
	gen  *Generator
}

func (e *arrivalEvent) Time() float64 { return e.time }

// Execute creates the request, spawns its lifecycle, and chains the next
// arrival. Token counts are sampled here, at the arrival instant, after the
// gap draw that produced this event.
func (e *arrivalEvent) Execute(s *Scheduler) {
	g := e.gen
	req := &Request{
		ID:           g.nextID,
		ArrivalTime:  s.Now(),
		PromptTokens: g.prompt.Sample(g.rng),
		OutputTokens: g.output.Sample(g.rng),
		State:        StateArrived,
	}
	g.nextID++
	logrus.Debugf("<< arrival: %s", req)

	g.system.StartRequest(s, req)
	g.scheduleNextArrival(s)
}
