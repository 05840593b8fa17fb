package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/ttft-sim/ttft-sim/sim"
)

var (
	cmpTotalGPUs     int     // Mono pool size; disagg splits the same total
	cmpPrefillGPUs   int     // Disagg prefill share of the total
	cmpRate          float64 // Poisson arrival rate for both runs
	cmpSimSeconds    float64
	cmpWarmupSeconds float64
	cmpSeed          int64
)

// compareCmd runs mono and disagg back-to-back at identical load with an
// equal total accelerator count and prints the results side by side.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare mono vs disagg TTFT at identical load and total GPU count",
	Run: func(cmd *cobra.Command, args []string) {
		if cmpPrefillGPUs <= 0 || cmpPrefillGPUs >= cmpTotalGPUs {
			logrus.Fatalf("prefill share must leave at least one decode GPU: got %d of %d total",
				cmpPrefillGPUs, cmpTotalGPUs)
		}

		base := DefaultFileConfig()
		base.SimSeconds = cmpSimSeconds
		base.WarmupSeconds = cmpWarmupSeconds
		base.RandomSeed = cmpSeed
		base.Arrival.RatePerS = cmpRate

		monoFC := base
		monoFC.Mode = string(sim.ModeMono)
		monoFC.ClusterMono.NumGPUs = cmpTotalGPUs
		_, monoStats, err := sim.RunSimulation(monoFC.ToSimConfig())
		if err != nil {
			logrus.Fatalf("mono run failed: %v", err)
		}

		disaggFC := base
		disaggFC.Mode = string(sim.ModeDisagg)
		disaggFC.ClusterDisagg.PrefillGPUs = cmpPrefillGPUs
		disaggFC.ClusterDisagg.DecodeGPUs = cmpTotalGPUs - cmpPrefillGPUs
		_, disaggStats, err := sim.RunSimulation(disaggFC.ToSimConfig())
		if err != nil {
			logrus.Fatalf("disagg run failed: %v", err)
		}

		printComparison(cmd.OutOrStdout(), monoStats, disaggStats)
	},
}

func printComparison(w io.Writer, mono, disagg sim.SummaryStats) {
	fmt.Fprintln(w, "=== Mono vs Disagg ===")
	fmt.Fprintf(w, "%-20s %12s %12s\n", "metric", "mono", "disagg")
	row := func(name string, m, d float64) {
		fmt.Fprintf(w, "%-20s %12.4f %12.4f\n", name, m, d)
	}
	fmt.Fprintf(w, "%-20s %12d %12d\n", "num_samples", mono.NumSamples, disagg.NumSamples)
	row("mean_ttft_s", mono.MeanTTFT, disagg.MeanTTFT)
	row("p50_ttft_s", mono.P50TTFT, disagg.P50TTFT)
	row("p90_ttft_s", mono.P90TTFT, disagg.P90TTFT)
	row("p99_ttft_s", mono.P99TTFT, disagg.P99TTFT)
	row("throughput_rps", mono.ThroughputRPS, disagg.ThroughputRPS)
	fmt.Fprintf(w, "%-20s %12.4f %12s\n", "utilization", mono.Utilization, "-")
	fmt.Fprintf(w, "%-20s %12s %12.4f\n", "utilization_prefill", "-", disagg.UtilizationPrefill)
	fmt.Fprintf(w, "%-20s %12s %12.4f\n", "utilization_decode", "-", disagg.UtilizationDecode)
}

func init() {
	flags := compareCmd.Flags()
	flags.IntVar(&cmpTotalGPUs, "total-gpus", 4, "Total accelerator count for both architectures")
	flags.IntVar(&cmpPrefillGPUs, "prefill-gpus", 2, "Disagg prefill share of the total")
	flags.Float64Var(&cmpRate, "rate", 2.0, "Poisson arrival rate (requests/s)")
	flags.Float64Var(&cmpSimSeconds, "sim-seconds", 600.0, "Simulated duration in seconds")
	flags.Float64Var(&cmpWarmupSeconds, "warmup-seconds", 60.0, "Warmup span excluded from summaries")
	flags.Int64Var(&cmpSeed, "seed", 42, "Random seed shared by both runs")

	rootCmd.AddCommand(compareCmd)
}
