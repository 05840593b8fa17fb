package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/ttft-sim/ttft-sim/sim"
)

func TestPrintSummary_MonoShowsSingleUtilization(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, sim.SummaryStats{
		Mode: "mono", NumSamples: 540, MeanTTFT: 0.0812,
		P50TTFT: 0.071, P90TTFT: 0.12, P99TTFT: 0.31,
		ThroughputRPS: 1.98, ElapsedSeconds: 300,
		Utilization: 0.223, NumGPUs: 4,
	})

	out := buf.String()
	assert.Contains(t, out, "Mode              : mono")
	assert.Contains(t, out, "GPU utilization   : 0.223 (4 GPUs)")
	assert.NotContains(t, out, "Prefill utilization")
}

func TestPrintSummary_DisaggShowsPerPoolUtilization(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, sim.SummaryStats{
		Mode: "disagg", NumSamples: 540,
		UtilizationPrefill: 0.075, UtilizationDecode: 0.37,
		PrefillGPUs: 2, DecodeGPUs: 2,
	})

	out := buf.String()
	assert.Contains(t, out, "Prefill utilization: 0.075 (2 GPUs)")
	assert.Contains(t, out, "Decode utilization : 0.370 (2 GPUs)")
	assert.NotContains(t, out, "GPU utilization   :")
}

func TestWriteSamplesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ttft.csv")
	writeSamplesCSV(path, []sim.TTFTSample{
		{EventTime: 1.5, Value: 0.25},
		{EventTime: 2.5, Value: 0.5},
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "event_time_s,ttft_s", lines[0])
	assert.Equal(t, "1.500000000,0.250000000", lines[1])
	assert.Equal(t, "2.500000000,0.500000000", lines[2])
}
