package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/ttft-sim/ttft-sim/sim"
)

var (
	sweepConfigPath string // Optional YAML scenario for everything but the rate
	sweepMode       string
	sweepRates      string // Comma-separated arrival rates
	sweepSeed       int64
	sweepCSVPath    string // Optional CSV output, one row per rate
)

// sweepCmd runs one simulation per arrival rate with a fixed seed and
// prints a table of TTFT statistics versus load.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep arrival rates and tabulate TTFT statistics",
	Run: func(cmd *cobra.Command, args []string) {
		rates, err := parseRates(sweepRates)
		if err != nil {
			logrus.Fatalf("invalid --rates: %v", err)
		}

		fc := DefaultFileConfig()
		if sweepConfigPath != "" {
			loaded, err := LoadFileConfig(sweepConfigPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			fc = loaded
		}
		if cmd.Flags().Changed("mode") {
			fc.Mode = sweepMode
		}
		if cmd.Flags().Changed("seed") {
			fc.RandomSeed = sweepSeed
		}

		results := make([]sim.SummaryStats, 0, len(rates))
		for _, rate := range rates {
			fc.Arrival.RatePerS = rate
			_, stats, err := sim.RunSimulation(fc.ToSimConfig())
			if err != nil {
				logrus.Fatalf("sweep at rate %g failed: %v", rate, err)
			}
			results = append(results, stats)
		}

		printSweepTable(cmd.OutOrStdout(), rates, results)
		if sweepCSVPath != "" {
			writeSweepCSV(sweepCSVPath, rates, results)
			logrus.Infof("wrote sweep results to %s", sweepCSVPath)
		}
	},
}

// parseRates parses a comma-separated list of positive arrival rates.
func parseRates(spec string) ([]float64, error) {
	parts := strings.Split(spec, ",")
	rates := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rate, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", part, err)
		}
		if rate <= 0 {
			return nil, fmt.Errorf("rate %g must be positive", rate)
		}
		rates = append(rates, rate)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no rates given")
	}
	return rates, nil
}

func printSweepTable(w io.Writer, rates []float64, results []sim.SummaryStats) {
	fmt.Fprintln(w, "=== Arrival Rate Sweep ===")
	fmt.Fprintf(w, "%10s %8s %12s %12s %12s %12s %12s\n",
		"rate_rps", "samples", "mean_ttft_s", "p50_ttft_s", "p90_ttft_s", "p99_ttft_s", "tput_rps")
	for i, stats := range results {
		fmt.Fprintf(w, "%10.3f %8d %12.4f %12.4f %12.4f %12.4f %12.3f\n",
			rates[i], stats.NumSamples, stats.MeanTTFT, stats.P50TTFT, stats.P90TTFT, stats.P99TTFT, stats.ThroughputRPS)
	}
}

func writeSweepCSV(fileName string, rates []float64, results []sim.SummaryStats) {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		logrus.Fatalf("Error creating file %s: %v", fileName, err)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Fatalf("Error closing file %s: %v", fileName, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	defer func() {
		if flushErr := writer.Flush(); flushErr != nil {
			logrus.Fatalf("Error flushing writer for file %s: %v", fileName, flushErr)
		}
	}()

	fmt.Fprintln(writer, "rate_rps,mode,num_samples,mean_ttft_s,p50_ttft_s,p90_ttft_s,p99_ttft_s,throughput_rps")
	for i, stats := range results {
		fmt.Fprintf(writer, "%g,%s,%d,%.9f,%.9f,%.9f,%.9f,%.9f\n",
			rates[i], stats.Mode, stats.NumSamples, stats.MeanTTFT, stats.P50TTFT, stats.P90TTFT, stats.P99TTFT, stats.ThroughputRPS)
	}
}

func init() {
	flags := sweepCmd.Flags()
	flags.StringVar(&sweepConfigPath, "config", "", "YAML scenario file for everything but the rate")
	flags.StringVar(&sweepMode, "mode", "disagg", `Architecture: "mono" or "disagg"`)
	flags.StringVar(&sweepRates, "rates", "0.5,1.0,2.0,4.0", "Comma-separated arrival rates to sweep")
	flags.Int64Var(&sweepSeed, "seed", 42, "Random seed shared across sweep points")
	flags.StringVar(&sweepCSVPath, "csv-out", "", "Write one CSV row per rate to this file")

	rootCmd.AddCommand(sweepCmd)
}
