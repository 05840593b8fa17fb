package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/ttft-sim/ttft-sim/sim"
)

var (
	// CLI flags for the run subcommand. Explicit flags override the
	// scenario file; unset flags keep the file (or default) values.
	configPath    string  // Optional YAML scenario file
	mode          string  // "mono" or "disagg"
	simSeconds    float64 // Total simulated duration
	warmupSeconds float64 // Samples before this virtual time are excluded
	randomSeed    int64   // Seed for the run's RNG instance
	arrivalRate   float64 // Poisson arrival rate (requests/s)
	promptMean    float64 // Prompt lognormal log-space mean
	promptSigma   float64 // Prompt lognormal log-space sigma
	promptMin     int     // Prompt token floor
	outputMean    float64 // Output lognormal log-space mean
	outputSigma   float64 // Output lognormal log-space sigma
	outputMin     int     // Output token floor
	numGPUs       int     // Mono: shared pool capacity
	prefillGPUs   int     // Disagg: prefill pool capacity
	decodeGPUs    int     // Disagg: decode pool capacity
	prefillRate   float64 // Prompt tokens per second per request
	decodeRate    float64 // Output tokens per second per request
	ttftOutPath   string  // Optional CSV dump of raw (event_time_s, ttft_s) samples
)

// runCmd executes one simulation from the scenario file and/or flags.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one TTFT simulation and print the summary",
	Run: func(cmd *cobra.Command, args []string) {
		fc := DefaultFileConfig()
		if configPath != "" {
			loaded, err := LoadFileConfig(configPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			fc = loaded
		}
		applyRunFlagOverrides(cmd, &fc)

		metrics, stats, err := sim.RunSimulation(fc.ToSimConfig())
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}

		printSummary(cmd.OutOrStdout(), stats)

		if ttftOutPath != "" {
			writeSamplesCSV(ttftOutPath, metrics.Samples())
			logrus.Infof("wrote %d raw TTFT samples to %s", len(metrics.Samples()), ttftOutPath)
		}
	},
}

// applyRunFlagOverrides copies every flag the user actually set onto the
// scenario, so flag > file > default precedence holds.
func applyRunFlagOverrides(cmd *cobra.Command, fc *FileConfig) {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		fc.Mode = mode
	}
	if flags.Changed("sim-seconds") {
		fc.SimSeconds = simSeconds
	}
	if flags.Changed("warmup-seconds") {
		fc.WarmupSeconds = warmupSeconds
	}
	if flags.Changed("seed") {
		fc.RandomSeed = randomSeed
	}
	if flags.Changed("rate") {
		fc.Arrival.RatePerS = arrivalRate
	}
	if flags.Changed("prompt-mean") {
		fc.PromptTokens.Mean = promptMean
	}
	if flags.Changed("prompt-sigma") {
		fc.PromptTokens.Sigma = promptSigma
	}
	if flags.Changed("prompt-min") {
		fc.PromptTokens.MinValue = promptMin
	}
	if flags.Changed("output-mean") {
		fc.OutputTokens.Mean = outputMean
	}
	if flags.Changed("output-sigma") {
		fc.OutputTokens.Sigma = outputSigma
	}
	if flags.Changed("output-min") {
		fc.OutputTokens.MinValue = outputMin
	}
	if flags.Changed("num-gpus") {
		fc.ClusterMono.NumGPUs = numGPUs
	}
	if flags.Changed("prefill-gpus") {
		fc.ClusterDisagg.PrefillGPUs = prefillGPUs
	}
	if flags.Changed("decode-gpus") {
		fc.ClusterDisagg.DecodeGPUs = decodeGPUs
	}
	if flags.Changed("prefill-rate") {
		fc.ClusterMono.PrefillTokensPerS = prefillRate
		fc.ClusterDisagg.PrefillTokensPerS = prefillRate
	}
	if flags.Changed("decode-rate") {
		fc.ClusterMono.DecodeTokensPerS = decodeRate
		fc.ClusterDisagg.DecodeTokensPerS = decodeRate
	}
}

func init() {
	flags := runCmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML scenario file (flags override it)")
	flags.StringVar(&mode, "mode", "disagg", `Architecture: "mono" or "disagg"`)
	flags.Float64Var(&simSeconds, "sim-seconds", 600.0, "Simulated duration in seconds")
	flags.Float64Var(&warmupSeconds, "warmup-seconds", 60.0, "Warmup span excluded from summaries")
	flags.Int64Var(&randomSeed, "seed", 42, "Random seed")
	flags.Float64Var(&arrivalRate, "rate", 2.0, "Poisson arrival rate (requests/s)")
	flags.Float64Var(&promptMean, "prompt-mean", 6.0, "Prompt lognormal log-space mean")
	flags.Float64Var(&promptSigma, "prompt-sigma", 1.0, "Prompt lognormal log-space sigma")
	flags.IntVar(&promptMin, "prompt-min", 1, "Prompt token floor")
	flags.Float64Var(&outputMean, "output-mean", 6.0, "Output lognormal log-space mean")
	flags.Float64Var(&outputSigma, "output-sigma", 1.0, "Output lognormal log-space sigma")
	flags.IntVar(&outputMin, "output-min", 1, "Output token floor")
	flags.IntVar(&numGPUs, "num-gpus", 4, "Mono: shared pool capacity")
	flags.IntVar(&prefillGPUs, "prefill-gpus", 2, "Disagg: prefill pool capacity")
	flags.IntVar(&decodeGPUs, "decode-gpus", 2, "Disagg: decode pool capacity")
	flags.Float64Var(&prefillRate, "prefill-rate", 8000.0, "Prefill rate (prompt tokens/s)")
	flags.Float64Var(&decodeRate, "decode-rate", 2000.0, "Decode rate (output tokens/s)")
	flags.StringVar(&ttftOutPath, "ttft-out", "", "Write raw (event_time_s, ttft_s) samples to this CSV")

	rootCmd.AddCommand(runCmd)
}
