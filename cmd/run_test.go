package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCLI runs the root command with args and returns captured stdout.
func executeCLI(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestRunCommand_SameSeedPrintsIdenticalSummaries(t *testing.T) {
	args := []string{"run", "--mode", "mono", "--sim-seconds", "60", "--warmup-seconds", "10", "--seed", "7"}

	first := executeCLI(t, args...)
	second := executeCLI(t, args...)

	assert.Contains(t, first, "=== Simulation Summary ===")
	assert.Contains(t, first, "Mode              : mono")
	assert.Equal(t, first, second)
}

func TestRunCommand_DisaggSummaryShowsBothPools(t *testing.T) {
	out := executeCLI(t, "run", "--mode", "disagg", "--sim-seconds", "60", "--warmup-seconds", "10")

	assert.Contains(t, out, "Mode              : disagg")
	assert.Contains(t, out, "Prefill utilization")
	assert.Contains(t, out, "Decode utilization")
}

func TestCompareCommand_PrintsSideBySideTable(t *testing.T) {
	out := executeCLI(t, "compare", "--total-gpus", "4", "--prefill-gpus", "2",
		"--rate", "2.0", "--sim-seconds", "60", "--warmup-seconds", "10")

	assert.Contains(t, out, "=== Mono vs Disagg ===")
	assert.Contains(t, out, "mean_ttft_s")
	assert.Contains(t, out, "utilization_prefill")
}

func TestSweepCommand_PrintsOneRowPerRate(t *testing.T) {
	out := executeCLI(t, "sweep", "--rates", "0.5,1.0", "--mode", "mono")

	assert.Contains(t, out, "=== Arrival Rate Sweep ===")
	assert.Contains(t, out, "0.500")
	assert.Contains(t, out, "1.000")
}
