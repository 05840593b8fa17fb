// Implements the capacity-limited resource pool. Requests waiting for a
// slot are parked in a FIFO; grants are strictly first-come-first-served
// with no priority and no preemption.

package sim

import "github.com/sirupsen/logrus"

// BusyRecorder accumulates per-pool busy time. *Metrics implements it; the
// pool only ever reports completed grant->release spans, so utilization of
// a pool over a window is busyTime / (capacity * elapsed).
type BusyRecorder interface {
	AddBusyTime(poolKey string, d float64)
}

// Waiter is resumed when the pool grants it a slot. The grant is delivered
// as a scheduled event at the current virtual instant, so same-instant
// grants preserve the scheduler's ordering guarantee.
type Waiter interface {
	Granted(s *Scheduler, slot *Slot)
}

// Pool is a capacity-limited shared resource with an unbounded FCFS wait
// queue. All mutation happens on the scheduler loop on behalf of whichever
// process currently holds control, so no locking is needed.
type Pool struct {
	name     string
	capacity int
	inUse    int
	waiters  []Waiter // FIFO queue of pending acquisitions
	recorder BusyRecorder
}

// NewPool creates a pool with the given fixed capacity. A non-positive
// capacity is a configuration error and fails fast.
func NewPool(name string, capacity int, recorder BusyRecorder) (*Pool, error) {
	if capacity <= 0 {
		return nil, &ConfigError{Field: name + " capacity", Reason: "must be a positive integer"}
	}
	return &Pool{
		name:     name,
		capacity: capacity,
		recorder: recorder,
	}, nil
}

// Acquire requests a slot for w. If a slot is free and nobody is already
// waiting, the grant fires at the current instant; otherwise w is appended
// to the tail of the wait queue and granted strictly in arrival order as
// slots are released.
func (p *Pool) Acquire(s *Scheduler, w Waiter) {
	if p.inUse < p.capacity && len(p.waiters) == 0 {
		p.grant(s, w)
		return
	}
	p.waiters = append(p.waiters, w)
	logrus.Debugf("[t=%10.6f] pool %s: waiter queued (in_use=%d/%d, queue=%d)",
		s.Now(), p.name, p.inUse, p.capacity, len(p.waiters))
}

// grant takes the slot immediately (the capacity invariant must hold at the
// grant instant, not at event delivery) and schedules the waiter's
// resumption at the current virtual time.
func (p *Pool) grant(s *Scheduler, w Waiter) {
	p.inUse++
	if p.inUse > p.capacity {
		panic("pool " + p.name + ": in_use exceeds capacity")
	}
	slot := &Slot{pool: p, acquiredAt: s.Now()}
	s.Schedule(&grantEvent{time: s.Now(), waiter: w, slot: slot})
}

// Name returns the pool's metrics key.
func (p *Pool) Name() string { return p.name }

// Capacity returns the fixed slot count.
func (p *Pool) Capacity() int { return p.capacity }

// InUse returns the number of currently held slots.
func (p *Pool) InUse() int { return p.inUse }

// QueueLen returns the number of waiters parked in the FIFO.
func (p *Pool) QueueLen() int { return len(p.waiters) }

// Slot is one granted unit of pool capacity. The busy span runs from the
// grant instant to Release; a slot still held when the run ends never
// reaches Release and its partial span is not reconciled into the busy
// accumulator (accepted boundary artifact, see Scheduler.Run).
type Slot struct {
	pool       *Pool
	acquiredAt float64
	released   bool
}

// AcquiredAt returns the virtual time the slot was granted.
func (sl *Slot) AcquiredAt() float64 { return sl.acquiredAt }

// Release relinquishes the slot, reports the holder's busy span, and hands
// the freed slot to the head waiter at the same virtual instant.
func (sl *Slot) Release(s *Scheduler) {
	if sl.released {
		panic("pool " + sl.pool.name + ": slot released twice")
	}
	sl.released = true

	p := sl.pool
	p.inUse--
	if p.recorder != nil {
		p.recorder.AddBusyTime(p.name, s.Now()-sl.acquiredAt)
	}
	if len(p.waiters) > 0 {
		head := p.waiters[0]
		p.waiters = p.waiters[1:]
		p.grant(s, head)
	}
}

// grantEvent resumes a waiter with its freshly granted slot.
type grantEvent struct {
	time   float64
	waiter Waiter
	slot   *Slot
}

func (e *grantEvent) Time() float64 { return e.time }

func (e *grantEvent) Execute(s *Scheduler) {
	e.waiter.Granted(s, e.slot)
}
