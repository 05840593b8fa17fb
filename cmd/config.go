// YAML scenario files. The schema mirrors the flat sections a study sweep
// wants to version-control: run window, arrival stream, token distributions,
// and both cluster shapes (only the one matching mode is used).

package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/ttft-sim/ttft-sim/sim"
)

// FileConfig is the on-disk scenario schema.
type FileConfig struct {
	Mode          string  `yaml:"mode"` // "mono" or "disagg"
	SimSeconds    float64 `yaml:"sim_seconds"`
	WarmupSeconds float64 `yaml:"warmup_seconds"`
	RandomSeed    int64   `yaml:"random_seed"`

	Arrival struct {
		RatePerS float64 `yaml:"rate_per_s"` // Poisson rate
	} `yaml:"arrival"`

	PromptTokens LognormalFileSpec `yaml:"prompt_tokens"`
	OutputTokens LognormalFileSpec `yaml:"output_tokens"`

	ClusterMono struct {
		NumGPUs           int     `yaml:"num_gpus"`
		PrefillTokensPerS float64 `yaml:"prefill_tokens_per_s"`
		DecodeTokensPerS  float64 `yaml:"decode_tokens_per_s"`
	} `yaml:"cluster_mono"`

	ClusterDisagg struct {
		PrefillGPUs       int     `yaml:"prefill_gpus"`
		DecodeGPUs        int     `yaml:"decode_gpus"`
		PrefillTokensPerS float64 `yaml:"prefill_tokens_per_s"`
		DecodeTokensPerS  float64 `yaml:"decode_tokens_per_s"`
	} `yaml:"cluster_disagg"`
}

// LognormalFileSpec holds log-space lognormal parameters as written in a
// scenario file.
type LognormalFileSpec struct {
	Mean     float64 `yaml:"mean"`  // log-space mean
	Sigma    float64 `yaml:"sigma"` // log-space sigma
	MinValue int     `yaml:"min_value"`
}

// DefaultFileConfig returns the baseline scenario.
func DefaultFileConfig() FileConfig {
	var fc FileConfig
	fc.Mode = "disagg"
	fc.SimSeconds = 600.0
	fc.WarmupSeconds = 60.0
	fc.RandomSeed = 42
	fc.Arrival.RatePerS = 2.0
	fc.PromptTokens = LognormalFileSpec{Mean: 6.0, Sigma: 1.0, MinValue: 1}
	fc.OutputTokens = LognormalFileSpec{Mean: 6.0, Sigma: 1.0, MinValue: 1}
	fc.ClusterMono.NumGPUs = 4
	fc.ClusterMono.PrefillTokensPerS = 8000.0
	fc.ClusterMono.DecodeTokensPerS = 2000.0
	fc.ClusterDisagg.PrefillGPUs = 2
	fc.ClusterDisagg.DecodeGPUs = 2
	fc.ClusterDisagg.PrefillTokensPerS = 8000.0
	fc.ClusterDisagg.DecodeTokensPerS = 2000.0
	return fc
}

// LoadFileConfig reads a YAML scenario on top of the defaults, so partial
// files only override what they mention.
func LoadFileConfig(path string) (FileConfig, error) {
	fc := DefaultFileConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return fc, nil
}

// ToSimConfig converts the file schema into the core's immutable parameter
// bundle, selecting the cluster section that matches mode. Validation of
// the values themselves is the core's job.
func (fc FileConfig) ToSimConfig() sim.Config {
	cfg := sim.Config{
		Mode:            sim.Mode(fc.Mode),
		SimSeconds:      fc.SimSeconds,
		WarmupSeconds:   fc.WarmupSeconds,
		Seed:            fc.RandomSeed,
		ArrivalRatePerS: fc.Arrival.RatePerS,
		PromptTokens: sim.LognormalSpec{
			Mu:       fc.PromptTokens.Mean,
			Sigma:    fc.PromptTokens.Sigma,
			MinValue: fc.PromptTokens.MinValue,
		},
		OutputTokens: sim.LognormalSpec{
			Mu:       fc.OutputTokens.Mean,
			Sigma:    fc.OutputTokens.Sigma,
			MinValue: fc.OutputTokens.MinValue,
		},
	}
	switch sim.Mode(fc.Mode) {
	case sim.ModeMono:
		cfg.Mono = &sim.MonoParams{
			NumGPUs:           fc.ClusterMono.NumGPUs,
			PrefillTokensPerS: fc.ClusterMono.PrefillTokensPerS,
			DecodeTokensPerS:  fc.ClusterMono.DecodeTokensPerS,
		}
	case sim.ModeDisagg:
		cfg.Disagg = &sim.DisaggParams{
			PrefillGPUs:       fc.ClusterDisagg.PrefillGPUs,
			DecodeGPUs:        fc.ClusterDisagg.DecodeGPUs,
			PrefillTokensPerS: fc.ClusterDisagg.PrefillTokensPerS,
			DecodeTokensPerS:  fc.ClusterDisagg.DecodeTokensPerS,
		}
	}
	return cfg
}
