// sim/simulator.go
//
// The run orchestrator: validates the configuration, wires the scheduler,
// pools, metrics, and workload generator for one finite-duration run, and
// turns the raw event timestamps into the final summary.

package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/ttft-sim/ttft-sim/sim/workload"
)

// RunSimulation executes one finite-duration simulation and returns the
// metrics collector together with its warmup-filtered summary.
//
// Configuration errors surface as *ConfigError before any simulation state
// is built. If warmup filtering leaves no samples (for example when
// WarmupSeconds exceeds SimSeconds), the metrics are still returned
// alongside ErrInsufficientData so callers can inspect the raw samples.
//
// For a fixed Seed and fixed parameters, two calls produce bit-for-bit
// identical TTFT sample sequences.
func RunSimulation(cfg Config) (*Metrics, SummaryStats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, SummaryStats{}, err
	}

	// One explicit RNG instance per run; never a process-wide singleton.
	rng := rand.New(rand.NewSource(cfg.Seed))

	arrivals, err := workload.NewPoissonSampler(cfg.ArrivalRatePerS)
	if err != nil {
		return nil, SummaryStats{}, &ConfigError{Field: "arrival_rate_per_s", Reason: err.Error()}
	}
	prompt, err := workload.NewLognormalSampler(cfg.PromptTokens.Mu, cfg.PromptTokens.Sigma, cfg.PromptTokens.MinValue)
	if err != nil {
		return nil, SummaryStats{}, &ConfigError{Field: "prompt_tokens", Reason: err.Error()}
	}
	output, err := workload.NewLognormalSampler(cfg.OutputTokens.Mu, cfg.OutputTokens.Sigma, cfg.OutputTokens.MinValue)
	if err != nil {
		return nil, SummaryStats{}, &ConfigError{Field: "output_tokens", Reason: err.Error()}
	}

	scheduler := NewScheduler(cfg.SimSeconds)
	metrics := NewMetrics()

	var system LifecycleStarter
	switch cfg.Mode {
	case ModeMono:
		system, err = NewMonoSystem(*cfg.Mono, metrics)
	case ModeDisagg:
		system, err = NewDisaggSystem(*cfg.Disagg, metrics)
	}
	if err != nil {
		return nil, SummaryStats{}, err
	}

	generator := NewGenerator(arrivals, prompt, output, rng, system)

	metrics.StartRun(scheduler.Now())
	generator.Start(scheduler)
	scheduler.Run()
	metrics.Finalize(scheduler.Now())

	logrus.Debugf("run ended: %d generated, %d completed, %d events abandoned in flight",
		generator.Generated(), metrics.CompletedCount(), scheduler.Pending())

	stats, err := metrics.Summarize(cfg.WarmupSeconds)
	if err != nil {
		return metrics, SummaryStats{}, err
	}
	stats.Mode = string(cfg.Mode)
	return metrics, stats, nil
}
