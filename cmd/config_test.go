package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/ttft-sim/ttft-sim/sim"
)

func TestDefaultFileConfig_MatchesBaselineScenario(t *testing.T) {
	fc := DefaultFileConfig()

	assert.Equal(t, "disagg", fc.Mode)
	assert.Equal(t, 600.0, fc.SimSeconds)
	assert.Equal(t, 60.0, fc.WarmupSeconds)
	assert.Equal(t, int64(42), fc.RandomSeed)
	assert.Equal(t, 2.0, fc.Arrival.RatePerS)
	assert.Equal(t, LognormalFileSpec{Mean: 6.0, Sigma: 1.0, MinValue: 1}, fc.PromptTokens)
	assert.Equal(t, 4, fc.ClusterMono.NumGPUs)
	assert.Equal(t, 2, fc.ClusterDisagg.PrefillGPUs)
	assert.Equal(t, 2, fc.ClusterDisagg.DecodeGPUs)
	assert.Equal(t, 8000.0, fc.ClusterDisagg.PrefillTokensPerS)
	assert.Equal(t, 2000.0, fc.ClusterDisagg.DecodeTokensPerS)

	// the defaults must pass core validation in both modes
	require.NoError(t, fc.ToSimConfig().Validate())
	fc.Mode = "mono"
	require.NoError(t, fc.ToSimConfig().Validate())
}

func TestLoadFileConfig_PartialFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	content := []byte(`
mode: mono
sim_seconds: 120
arrival:
  rate_per_s: 3.5
prompt_tokens:
  mean: 5.5
  min_value: 8
cluster_mono:
  num_gpus: 8
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	fc, err := LoadFileConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mono", fc.Mode)
	assert.Equal(t, 120.0, fc.SimSeconds)
	assert.Equal(t, 3.5, fc.Arrival.RatePerS)
	assert.Equal(t, 5.5, fc.PromptTokens.Mean)
	assert.Equal(t, 8, fc.PromptTokens.MinValue)
	assert.Equal(t, 8, fc.ClusterMono.NumGPUs)

	// untouched fields keep their defaults
	assert.Equal(t, 60.0, fc.WarmupSeconds)
	assert.Equal(t, 1.0, fc.PromptTokens.Sigma)
	assert.Equal(t, 2000.0, fc.ClusterMono.DecodeTokensPerS)
}

func TestLoadFileConfig_Errors(t *testing.T) {
	_, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: [not, a, scalar"), 0644))
	_, err = LoadFileConfig(path)
	assert.Error(t, err)
}

func TestToSimConfig_SelectsClusterSectionByMode(t *testing.T) {
	fc := DefaultFileConfig()

	fc.Mode = "mono"
	cfg := fc.ToSimConfig()
	assert.Equal(t, sim.ModeMono, cfg.Mode)
	require.NotNil(t, cfg.Mono)
	assert.Nil(t, cfg.Disagg)
	assert.Equal(t, 4, cfg.Mono.NumGPUs)

	fc.Mode = "disagg"
	cfg = fc.ToSimConfig()
	require.NotNil(t, cfg.Disagg)
	assert.Nil(t, cfg.Mono)
	assert.Equal(t, 2, cfg.Disagg.DecodeGPUs)

	// an unknown mode carries neither section and fails core validation
	fc.Mode = "hybrid"
	cfg = fc.ToSimConfig()
	assert.Nil(t, cfg.Mono)
	assert.Nil(t, cfg.Disagg)
	assert.Error(t, cfg.Validate())
}
