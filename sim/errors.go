package sim

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned by Metrics.Summarize when warmup filtering
// leaves zero qualifying TTFT samples. Callers can distinguish "no traffic
// completed inside the measurement window" from a valid zero-value statistic
// with errors.Is.
var ErrInsufficientData = errors.New("insufficient data: no TTFT samples at or after warmup")

// ConfigError reports an invalid or mismatched simulation parameter. It is
// raised synchronously before the simulation starts and is never recovered:
// the core is a closed deterministic simulation, so any configuration error
// is fatal to the run.
type ConfigError struct {
	Field  string // parameter that failed validation
	Reason string // human-readable constraint that was violated
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}
