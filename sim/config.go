package sim

// Mode selects which resource architecture a run simulates.
type Mode string

const (
	// ModeMono holds a single accelerator pool for a request's entire lifetime.
	ModeMono Mode = "mono"
	// ModeDisagg draws prefill and decode from two independent pools.
	ModeDisagg Mode = "disagg"
)

// Pool keys used for busy-time accounting and utilization reporting.
const (
	PoolKeyGPU     = "gpu"     // the single monolithic pool
	PoolKeyPrefill = "prefill" // disaggregated prefill pool
	PoolKeyDecode  = "decode"  // disaggregated decode pool
)

// LognormalSpec holds the log-space parameters of a token-count
// distribution. Callers converting from human-friendly mean/std or
// percentile specifications do so before constructing a Config.
type LognormalSpec struct {
	Mu       float64 // mean of ln(X)
	Sigma    float64 // std dev of ln(X), must be > 0
	MinValue int     // hard floor, sampled values never fall below it
}

// MonoParams groups the monolithic cluster parameters.
type MonoParams struct {
	NumGPUs           int     // capacity of the single shared pool
	PrefillTokensPerS float64 // prompt-token processing rate
	DecodeTokensPerS  float64 // output-token generation rate
}

// DisaggParams groups the disaggregated cluster parameters.
type DisaggParams struct {
	PrefillGPUs       int // capacity of the prefill pool
	DecodeGPUs        int // capacity of the decode pool
	PrefillTokensPerS float64
	DecodeTokensPerS  float64
}

// Config is the immutable parameter bundle for one simulation run. Exactly
// one of Mono/Disagg must be set, matching Mode.
type Config struct {
	Mode            Mode
	SimSeconds      float64 // total simulated duration
	WarmupSeconds   float64 // samples before this virtual time are excluded from summaries
	Seed            int64   // seeds the run's explicit RNG instance
	ArrivalRatePerS float64 // Poisson arrival rate

	PromptTokens LognormalSpec
	OutputTokens LognormalSpec

	Mono   *MonoParams
	Disagg *DisaggParams
}

// Validate checks every field the simulation depends on and returns a
// *ConfigError for the first violation found. It runs before any state is
// built, so a failed run has no side effects.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeMono, ModeDisagg:
	default:
		return &ConfigError{Field: "mode", Reason: `must be "mono" or "disagg", got "` + string(c.Mode) + `"`}
	}
	if c.SimSeconds <= 0 {
		return &ConfigError{Field: "sim_seconds", Reason: "must be positive"}
	}
	if c.WarmupSeconds < 0 {
		return &ConfigError{Field: "warmup_seconds", Reason: "must be non-negative"}
	}
	if c.ArrivalRatePerS <= 0 {
		return &ConfigError{Field: "arrival_rate_per_s", Reason: "must be positive"}
	}
	if err := validateLognormal("prompt_tokens", c.PromptTokens); err != nil {
		return err
	}
	if err := validateLognormal("output_tokens", c.OutputTokens); err != nil {
		return err
	}

	switch c.Mode {
	case ModeMono:
		if c.Mono == nil {
			return &ConfigError{Field: "mono_params", Reason: "required for mono mode"}
		}
		if c.Disagg != nil {
			return &ConfigError{Field: "disagg_params", Reason: "must not be set in mono mode"}
		}
		if c.Mono.NumGPUs <= 0 {
			return &ConfigError{Field: "mono_params.num_gpus", Reason: "must be positive"}
		}
		if c.Mono.PrefillTokensPerS <= 0 {
			return &ConfigError{Field: "mono_params.prefill_tokens_per_s", Reason: "must be positive"}
		}
		if c.Mono.DecodeTokensPerS <= 0 {
			return &ConfigError{Field: "mono_params.decode_tokens_per_s", Reason: "must be positive"}
		}
	case ModeDisagg:
		if c.Disagg == nil {
			return &ConfigError{Field: "disagg_params", Reason: "required for disagg mode"}
		}
		if c.Mono != nil {
			return &ConfigError{Field: "mono_params", Reason: "must not be set in disagg mode"}
		}
		if c.Disagg.PrefillGPUs <= 0 {
			return &ConfigError{Field: "disagg_params.prefill_gpus", Reason: "must be positive"}
		}
		if c.Disagg.DecodeGPUs <= 0 {
			return &ConfigError{Field: "disagg_params.decode_gpus", Reason: "must be positive"}
		}
		if c.Disagg.PrefillTokensPerS <= 0 {
			return &ConfigError{Field: "disagg_params.prefill_tokens_per_s", Reason: "must be positive"}
		}
		if c.Disagg.DecodeTokensPerS <= 0 {
			return &ConfigError{Field: "disagg_params.decode_tokens_per_s", Reason: "must be positive"}
		}
	}
	return nil
}

func validateLognormal(field string, spec LognormalSpec) error {
	if spec.Sigma <= 0 {
		return &ConfigError{Field: field + ".sigma", Reason: "must be positive"}
	}
	if spec.MinValue < 1 {
		return &ConfigError{Field: field + ".min_value", Reason: "must be at least 1"}
	}
	return nil
}
