// Request lifecycle for the disaggregated architecture: prefill and decode
// draw from two independent capacity-limited pools, and the two FCFS waits
// compose additively into TTFT.
//
// State chain: arrived -> awaiting_prefill_pool -> prefilling ->
// awaiting_decode_pool -> decoding_first -> decoding_rest -> done. The
// prefill slot is released before the decode pool is requested.

package sim

import "github.com/sirupsen/logrus"

// DisaggSystem holds the two independent pools and the per-stage rates for
// the disaggregated architecture.
type DisaggSystem struct {
	prefillPool *Pool
	decodePool  *Pool
	prefillRate float64
	decodeRate  float64
	metrics     *Metrics
}

// NewDisaggSystem builds both pools and registers their capacities with the
// metrics collector.
func NewDisaggSystem(params DisaggParams, metrics *Metrics) (*DisaggSystem, error) {
	prefillPool, err := NewPool(PoolKeyPrefill, params.PrefillGPUs, metrics)
	if err != nil {
		return nil, err
	}
	decodePool, err := NewPool(PoolKeyDecode, params.DecodeGPUs, metrics)
	if err != nil {
		return nil, err
	}
	metrics.RegisterPool(PoolKeyPrefill, params.PrefillGPUs)
	metrics.RegisterPool(PoolKeyDecode, params.DecodeGPUs)
	return &DisaggSystem{
		prefillPool: prefillPool,
		decodePool:  decodePool,
		prefillRate: params.PrefillTokensPerS,
		decodeRate:  params.DecodeTokensPerS,
		metrics:     metrics,
	}, nil
}

// PrefillPool exposes the prefill pool for inspection in tests.
func (d *DisaggSystem) PrefillPool() *Pool { return d.prefillPool }

// DecodePool exposes the decode pool for inspection in tests.
func (d *DisaggSystem) DecodePool() *Pool { return d.decodePool }

// StartRequest begins the lifecycle: the request queues FCFS for the
// prefill pool.
func (d *DisaggSystem) StartRequest(s *Scheduler, req *Request) {
	req.State = StateAwaitingPrefillPool
	d.prefillPool.Acquire(s, &prefillWaiter{sys: d, req: req})
}

// prefillWaiter resumes the request once the prefill pool grants a slot.
type prefillWaiter struct {
	sys *DisaggSystem
	req *Request
}

func (w *prefillWaiter) Granted(s *Scheduler, slot *Slot) {
	w.req.State = StatePrefilling
	prefillTime := float64(w.req.PromptTokens) / w.sys.prefillRate
	s.Schedule(&prefillDoneEvent{
		time: s.Now() + prefillTime,
		sys:  w.sys,
		req:  w.req,
		slot: slot,
	})
}

// prefillDoneEvent releases the prefill slot and moves the request into the
// decode pool's wait queue at the same virtual instant.
type prefillDoneEvent struct {
	time float64
	sys  *DisaggSystem
	req  *Request
	slot *Slot
}

func (e *prefillDoneEvent) Time() float64 { return e.time }

func (e *prefillDoneEvent) Execute(s *Scheduler) {
	e.slot.Release(s)
	e.req.State = StateAwaitingDecodePool
	e.sys.decodePool.Acquire(s, &decodeWaiter{sys: e.sys, req: e.req})
}

// decodeWaiter resumes the request once the decode pool grants a slot.
type decodeWaiter struct {
	sys *DisaggSystem
	req *Request
}

func (w *decodeWaiter) Granted(s *Scheduler, slot *Slot) {
	w.req.State = StateDecodingFirst
	firstTokenTime := 1.0 / w.sys.decodeRate
	s.Schedule(&disaggFirstTokenEvent{
		time: s.Now() + firstTokenTime,
		sys:  w.sys,
		req:  w.req,
		slot: slot,
	})
}

// disaggFirstTokenEvent fires at the instant the first decode token
// completes: the TTFT-defining event, exactly as in the monolithic chain.
type disaggFirstTokenEvent struct {
	time float64
	sys  *DisaggSystem
	req  *Request
	slot *Slot
}

func (e *disaggFirstTokenEvent) Time() float64 { return e.time }

func (e *disaggFirstTokenEvent) Execute(s *Scheduler) {
	ttft := s.Now() - e.req.ArrivalTime
	e.sys.metrics.RecordTTFT(ttft, s.Now())
	logrus.Debugf("[t=%10.6f] request %d first token, ttft=%.6f", s.Now(), e.req.ID, ttft)

	e.req.State = StateDecodingRest
	remaining := max(e.req.OutputTokens-1, 0)
	restTime := float64(remaining) / e.sys.decodeRate
	s.Schedule(&disaggDoneEvent{
		time: s.Now() + restTime,
		sys:  e.sys,
		req:  e.req,
		slot: e.slot,
	})
}

// disaggDoneEvent releases the decode slot and marks the request complete.
type disaggDoneEvent struct {
	time float64
	sys  *DisaggSystem
	req  *Request
	slot *Slot
}

func (e *disaggDoneEvent) Time() float64 { return e.time }

func (e *disaggDoneEvent) Execute(s *Scheduler) {
	e.slot.Release(s)
	e.req.State = StateDone
	e.sys.metrics.MarkCompleted()
	logrus.Debugf("[t=%10.6f] request %d done", s.Now(), e.req.ID)
}
