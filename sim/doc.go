// Package sim provides the core discrete-event simulation engine for the
// TTFT disaggregation study.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - scheduler.go: the virtual clock and the event loop
//   - event.go: the Event interface and the heap-ordered pending-event queue
//   - pool.go: the capacity-limited FCFS resource pool with busy-time accounting
//   - lifecycle_mono.go / lifecycle_disagg.go: the two request state machines
//   - simulator.go: RunSimulation, the single entry point wiring it all together
//
// # Architecture
//
// The engine is single-threaded cooperative concurrency over virtual time:
// one scheduler loop pops events in (time, scheduling-order) order and runs
// exactly one Execute at a time. Request lifecycles suspend at two kinds of
// points only: timed delays (a future event on the scheduler heap) and
// resource-acquisition waits (a waiter parked in a Pool's FIFO). Because
// same-instant events replay in scheduling order, a run is bit-for-bit
// reproducible for a fixed seed.
//
// Stochastic inputs (Poisson arrival gaps, lognormal token counts) come from
// the sim/workload sub-package through small sampler interfaces; the RNG is
// an explicit instance threaded through the generator, never a process-wide
// singleton, so multiple runs can execute concurrently.
//
// The core performs no I/O. Configuration loading, CLI surfaces, and result
// export live in cmd/ and talk to this package only through RunSimulation
// and the returned Metrics/SummaryStats pair.
package sim
