// Defines the Request struct that models an individual serving request in
// the simulation. Tracks arrival time, sampled token counts, and lifecycle
// state for the monolithic and disaggregated state machines.

package sim

import "fmt"

// RequestState represents the lifecycle state of a request.
type RequestState string

const (
	StateArrived             RequestState = "arrived"
	StateAwaitingPool        RequestState = "awaiting_pool"         // monolithic: waiting on the shared pool
	StateAwaitingPrefillPool RequestState = "awaiting_prefill_pool" // disaggregated only
	StateAwaitingDecodePool  RequestState = "awaiting_decode_pool"  // disaggregated only
	StatePrefilling          RequestState = "prefilling"
	StateDecodingFirst       RequestState = "decoding_first"
	StateDecodingRest        RequestState = "decoding_rest"
	StateDone                RequestState = "done"
)

// Request models a single request's lifecycle in the simulation.
// It is created by the workload generator at its arrival instant and owned
// exclusively by its lifecycle process afterwards; no other component
// mutates it.
type Request struct {
	ID int // Monotonically increasing identifier, unique per run

	ArrivalTime  float64 // Virtual time of arrival in seconds, immutable once set
	PromptTokens int     // Sampled prompt length, >= the configured floor
	OutputTokens int     // Sampled output length, >= the configured floor

	State RequestState
}

// String returns a human-readable representation of a Request for logging.
func (r *Request) String() string {
	return fmt.Sprintf("Request(ID: %d, State: %s, ArrivalTime: %.6f, PromptTokens: %d, OutputTokens: %d)",
		r.ID, r.State, r.ArrivalTime, r.PromptTokens, r.OutputTokens)
}
