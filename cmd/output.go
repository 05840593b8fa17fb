// Human-readable and CSV result output. The core performs no I/O; all
// dumping of the raw sample sequence happens here.

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	sim "github.com/ttft-sim/ttft-sim/sim"
)

// printSummary displays one run's summary statistics.
func printSummary(w io.Writer, stats sim.SummaryStats) {
	fmt.Fprintln(w, "=== Simulation Summary ===")
	fmt.Fprintf(w, "Mode              : %s\n", stats.Mode)
	fmt.Fprintf(w, "Samples (post-warmup): %d\n", stats.NumSamples)
	fmt.Fprintf(w, "Mean TTFT         : %.4f s\n", stats.MeanTTFT)
	fmt.Fprintf(w, "p50 TTFT          : %.4f s\n", stats.P50TTFT)
	fmt.Fprintf(w, "p90 TTFT          : %.4f s\n", stats.P90TTFT)
	fmt.Fprintf(w, "p99 TTFT          : %.4f s\n", stats.P99TTFT)
	fmt.Fprintf(w, "Throughput        : %.3f req/s\n", stats.ThroughputRPS)
	fmt.Fprintf(w, "Elapsed           : %.1f s\n", stats.ElapsedSeconds)
	switch sim.Mode(stats.Mode) {
	case sim.ModeMono:
		fmt.Fprintf(w, "GPU utilization   : %.3f (%d GPUs)\n", stats.Utilization, stats.NumGPUs)
	case sim.ModeDisagg:
		fmt.Fprintf(w, "Prefill utilization: %.3f (%d GPUs)\n", stats.UtilizationPrefill, stats.PrefillGPUs)
		fmt.Fprintf(w, "Decode utilization : %.3f (%d GPUs)\n", stats.UtilizationDecode, stats.DecodeGPUs)
	}
}

// writeSamplesCSV dumps the raw TTFT sample sequence for offline analysis.
func writeSamplesCSV(fileName string, samples []sim.TTFTSample) {
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

	if _, err := fmt.Fprintln(writer, "event_time_s,ttft_s"); err != nil {
		logrus.Fatalf("Error writing header to %s: %v", fileName, err)
		return
	}
	for _, s := range samples {
		if _, err := fmt.Fprintf(writer, "%.9f,%.9f\n", s.EventTime, s.Value); err != nil {
			logrus.Fatalf("Error writing sample to %s: %v", fileName, err)
			return
		}
	}
}
