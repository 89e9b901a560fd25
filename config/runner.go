package config

import "time"

// RunnerConfig contains job runner pacing configuration. The throttles keep
// bulk sends under the delivery provider's rate limits; the pause poll sets
// how quickly a paused runner notices the resume flag.
type RunnerConfig struct {
	// PausePollInterval is how often a paused runner re-checks the pause flag.
	PausePollInterval time.Duration `env:"RUNNER_PAUSE_POLL_INTERVAL" envDefault:"300ms"`

	// RowThrottle is the delay inserted between consecutive row sends.
	RowThrottle time.Duration `env:"RUNNER_ROW_THROTTLE" envDefault:"150ms"`

	// RetryThrottle is the delay inserted between rows during retry-all.
	RetryThrottle time.Duration `env:"RUNNER_RETRY_THROTTLE" envDefault:"400ms"`

	// EventBuffer is the per-job event channel capacity.
	EventBuffer int `env:"RUNNER_EVENT_BUFFER" envDefault:"64"`
}

// Sanitize applies guardrails to runner configuration values.
func (r *RunnerConfig) Sanitize() {
	if r.PausePollInterval <= 0 {
		r.PausePollInterval = 300 * time.Millisecond
	}
	if r.RowThrottle < 0 {
		r.RowThrottle = 150 * time.Millisecond
	}
	if r.RetryThrottle < 0 {
		r.RetryThrottle = 400 * time.Millisecond
	}
	if r.EventBuffer <= 0 {
		r.EventBuffer = 64
	}
}
