package sim

import "container/heap"

// Event defines the interface for all simulation events.
// Each event carries the virtual time it fires at (in seconds) and an
// Execute method that advances simulation state when invoked.
type Event interface {
	Time() float64
	Execute(s *Scheduler)
}

// scheduledEvent pairs an Event with the monotone sequence number it was
// assigned when scheduled. The sequence number breaks timestamp ties so that
// events at the same virtual instant fire in scheduling order, which is what
// makes replay with a fixed seed deterministic.
type scheduledEvent struct {
	ev  Event
	seq uint64
}

// eventQueue implements heap.Interface ordered by (time, seq).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventQueue []scheduledEvent

func (eq eventQueue) Len() int { return len(eq) }

func (eq eventQueue) Less(i, j int) bool {
	if eq[i].ev.Time() != eq[j].ev.Time() {
		return eq[i].ev.Time() < eq[j].ev.Time()
	}
	return eq[i].seq < eq[j].seq
}

func (eq eventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventQueue) Push(x any) {
	*eq = append(*eq, x.(scheduledEvent))
}

func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

var _ heap.Interface = (*eventQueue)(nil)
