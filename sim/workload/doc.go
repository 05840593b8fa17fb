// Package workload provides the stateless stochastic samplers behind the
// simulation's request stream: exponential interarrival gaps for the Poisson
// arrival process and lognormal token counts with a hard floor.
//
// Samplers take an explicit *rand.Rand so the caller controls seeding and
// draw order; the package keeps no global state.
package workload
