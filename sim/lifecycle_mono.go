// Request lifecycle for the monolithic architecture: one shared pool held
// from the start of prefill through the last decode token.
//
// State chain: arrived -> awaiting_pool -> prefilling -> decoding_first
// -> decoding_rest -> done. Each suspension point is an explicit event on
// the scheduler heap; between events a request's transition runs atomically
// at a single virtual instant.

package sim

import "github.com/sirupsen/logrus"

// MonoSystem holds the single shared accelerator pool and the per-stage
// token-processing rates for the monolithic architecture.
type MonoSystem struct {
	pool        *Pool
	prefillRate float64 // prompt tokens per second
	decodeRate  float64 // output tokens per second
	metrics     *Metrics
}

// NewMonoSystem builds the shared pool and registers its capacity with the
// metrics collector.
func NewMonoSystem(params MonoParams, metrics *Metrics) (*MonoSystem, error) {
	pool, err := NewPool(PoolKeyGPU, params.NumGPUs, metrics)
	if err != nil {
		return nil, err
	}
	metrics.RegisterPool(PoolKeyGPU, params.NumGPUs)
	return &MonoSystem{
		pool:        pool,
		prefillRate: params.PrefillTokensPerS,
		decodeRate:  params.DecodeTokensPerS,
		metrics:     metrics,
	}, nil
}

// Pool exposes the shared pool for inspection in tests.
func (m *MonoSystem) Pool() *Pool { return m.pool }

// StartRequest begins the lifecycle: the request queues FCFS for the shared pool.
func (m *MonoSystem) StartRequest(s *Scheduler, req *Request) {
	req.State = StateAwaitingPool
	m.pool.Acquire(s, &monoWaiter{sys: m, req: req})
}

// monoWaiter resumes the request once the shared pool grants a slot.
type monoWaiter struct {
	sys *MonoSystem
	req *Request
}

func (w *monoWaiter) Granted(s *Scheduler, slot *Slot) {
	w.req.State = StatePrefilling
	prefillTime := float64(w.req.PromptTokens) / w.sys.prefillRate
	s.Schedule(&monoPrefillDoneEvent{
		time: s.Now() + prefillTime,
		sys:  w.sys,
		req:  w.req,
		slot: slot,
	})
}

// monoPrefillDoneEvent fires when the prompt has been fully processed;
// the request moves into its first decode step, still holding the pool.
type monoPrefillDoneEvent struct {
	time float64
	sys  *MonoSystem
	req  *Request
	slot *Slot
}

func (e *monoPrefillDoneEvent) Time() float64 { return e.time }

func (e *monoPrefillDoneEvent) Execute(s *Scheduler) {
	e.req.State = StateDecodingFirst
	firstTokenTime := 1.0 / e.sys.decodeRate
	s.Schedule(&monoFirstTokenEvent{
		time: s.Now() + firstTokenTime,
		sys:  e.sys,
		req:  e.req,
		slot: e.slot,
	})
}

// monoFirstTokenEvent fires at the instant the first decode token completes:
// the TTFT-defining event.
type monoFirstTokenEvent struct {
	time float64
	sys  *MonoSystem
	req  *Request
	slot *Slot
}

func (e *monoFirstTokenEvent) Time() float64 { return e.time }

func (e *monoFirstTokenEvent) Execute(s *Scheduler) {
	ttft := s.Now() - e.req.ArrivalTime
	e.sys.metrics.RecordTTFT(ttft, s.Now())
	logrus.Debugf("[t=%10.6f] request %d first token, ttft=%.6f", s.Now(), e.req.ID, ttft)

	e.req.State = StateDecodingRest
	remaining := max(e.req.OutputTokens-1, 0)
	restTime := float64(remaining) / e.sys.decodeRate
	s.Schedule(&monoDoneEvent{
		time: s.Now() + restTime,
		sys:  e.sys,
		req:  e.req,
		slot: e.slot,
	})
}

// monoDoneEvent releases the pool slot and marks the request complete.
// Terminal: a request reaches it exactly once.
type monoDoneEvent struct {
	time float64
	sys  *MonoSystem
	req  *Request
	slot *Slot
}

func (e *monoDoneEvent) Time() float64 { return e.time }

func (e *monoDoneEvent) Execute(s *Scheduler) {
	e.slot.Release(s)
	e.req.State = StateDone
	e.sys.metrics.MarkCompleted()
	logrus.Debugf("[t=%10.6f] request %d done", s.Now(), e.req.ID)
}
