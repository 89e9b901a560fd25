package config

import "time"

// ResolverConfig contains attachment resolver configuration.
type ResolverConfig struct {
	// Timeout bounds a single attachment download.
	Timeout time.Duration `env:"RESOLVER_TIMEOUT" envDefault:"45s"`

	// MaxBytes caps the size of a downloaded attachment.
	MaxBytes int64 `env:"RESOLVER_MAX_BYTES" envDefault:"20971520"`
}

// Sanitize applies guardrails to resolver configuration values.
func (r *ResolverConfig) Sanitize() {
	if r.Timeout <= 0 {
		r.Timeout = 45 * time.Second
	}
	if r.MaxBytes <= 0 {
		r.MaxBytes = 20 << 20
	}
}
