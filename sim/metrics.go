// Tracks run-wide measurements: the append-only TTFT sample sequence,
// per-pool busy-time accumulators, and completion counters. Summarize turns
// the raw timestamps into the reported latency/utilization statistics.

package sim

// TTFTSample is one time-to-first-token observation.
type TTFTSample struct {
	EventTime float64 // virtual time the first decode token completed
	Value     float64 // seconds from arrival to that instant
}

// poolInfo records a pool's fixed capacity alongside its busy accumulator
// so Summarize can turn busy time into utilization.
type poolInfo struct {
	capacity int
	busyTime float64
}

// Metrics aggregates statistics about one simulation run. All mutation
// happens on the scheduler loop, so no locking is needed.
type Metrics struct {
	samples []TTFTSample

	completedCount int
	droppedCount   int // reserved for future admission control, always 0 today

	pools     map[string]*poolInfo
	poolOrder []string // registration order, for stable reporting

	runStartTime float64
	runEndTime   float64
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{
		samples: make([]TTFTSample, 0),
		pools:   make(map[string]*poolInfo),
	}
}

// RegisterPool declares a pool's fixed capacity under its metrics key.
// Called once per pool at run start, before any busy time is reported.
func (m *Metrics) RegisterPool(key string, capacity int) {
	if _, ok := m.pools[key]; ok {
		panic("metrics: pool " + key + " registered twice")
	}
	m.pools[key] = &poolInfo{capacity: capacity}
	m.poolOrder = append(m.poolOrder, key)
}

// RecordTTFT appends one sample. Append-only: samples are never overwritten
// or discarded, only excluded from summaries by warmup filtering.
func (m *Metrics) RecordTTFT(value, atTime float64) {
	m.samples = append(m.samples, TTFTSample{EventTime: atTime, Value: value})
}

// AddBusyTime accumulates one holder's grant-to-release span for a pool.
func (m *Metrics) AddBusyTime(poolKey string, d float64) {
	info, ok := m.pools[poolKey]
	if !ok {
		panic("metrics: busy time for unregistered pool " + poolKey)
	}
	info.busyTime += d
}

// MarkCompleted increments the completion counter.
func (m *Metrics) MarkCompleted() {
	m.completedCount++
}

// StartRun records the virtual time the measurement window opened.
func (m *Metrics) StartRun(t float64) {
	m.runStartTime = t
}

// Finalize records the virtual time the measurement window closed.
func (m *Metrics) Finalize(t float64) {
	m.runEndTime = t
}

// Samples returns the raw TTFT sequence for external dumping. The returned
// slice is the collector's internal storage; callers MUST NOT mutate it.
func (m *Metrics) Samples() []TTFTSample {
	return m.samples
}

// CompletedCount returns the number of requests that finished decode.
func (m *Metrics) CompletedCount() int { return m.completedCount }

// DroppedCount returns the number of dropped requests; always zero under
// the current no-admission-control policy.
func (m *Metrics) DroppedCount() int { return m.droppedCount }

// BusyTime returns the cumulative busy seconds accounted to a pool.
func (m *Metrics) BusyTime(poolKey string) float64 {
	if info, ok := m.pools[poolKey]; ok {
		return info.busyTime
	}
	return 0
}

// ElapsedSeconds returns the measurement window span.
func (m *Metrics) ElapsedSeconds() float64 {
	return m.runEndTime - m.runStartTime
}

// SummaryStats is the flat result bundle handed to CLI/sweep collaborators.
// Utilization fields are populated per mode: Utilization/NumGPUs for mono,
// the prefill/decode pair for disagg.
type SummaryStats struct {
	Mode       string
	NumSamples int

	MeanTTFT float64 // seconds
	P50TTFT  float64
	P90TTFT  float64
	P99TTFT  float64

	ThroughputRPS  float64 // completed / elapsed
	ElapsedSeconds float64

	// Monolithic mode
	Utilization float64
	NumGPUs     int

	// Disaggregated mode
	UtilizationPrefill float64
	UtilizationDecode  float64
	PrefillGPUs        int
	DecodeGPUs         int
}

// Summarize filters samples to those with EventTime >= warmupSeconds and
// computes the summary statistics over the filtered values. The raw sample
// set is untouched, so calling Summarize twice with the same threshold
// returns identical results. An empty filtered set fails with
// ErrInsufficientData rather than fabricating statistics.
func (m *Metrics) Summarize(warmupSeconds float64) (SummaryStats, error) {
	filtered := make([]float64, 0, len(m.samples))
	for _, s := range m.samples {
		if s.EventTime >= warmupSeconds {
			filtered = append(filtered, s.Value)
		}
	}
	if len(filtered) == 0 {
		return SummaryStats{}, ErrInsufficientData
	}

	elapsed := m.ElapsedSeconds()
	stats := SummaryStats{
		NumSamples:     len(filtered),
		MeanTTFT:       CalculateMean(filtered),
		P50TTFT:        CalculatePercentile(filtered, 50),
		P90TTFT:        CalculatePercentile(filtered, 90),
		P99TTFT:        CalculatePercentile(filtered, 99),
		ElapsedSeconds: elapsed,
	}
	if elapsed > 0 {
		stats.ThroughputRPS = float64(m.completedCount) / elapsed
	}

	for _, key := range m.poolOrder {
		info := m.pools[key]
		var util float64
		if elapsed > 0 {
			util = info.busyTime / (float64(info.capacity) * elapsed)
		}
		switch key {
		case PoolKeyGPU:
			stats.Utilization = util
			stats.NumGPUs = info.capacity
		case PoolKeyPrefill:
			stats.UtilizationPrefill = util
			stats.PrefillGPUs = info.capacity
		case PoolKeyDecode:
			stats.UtilizationDecode = util
			stats.DecodeGPUs = info.capacity
		}
	}
	return stats, nil
}
