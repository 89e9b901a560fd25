package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"*"}, cfg.HTTP.Origins())
	assert.Equal(t, int64(25<<20), cfg.HTTP.MaxUploadBytes)

	assert.Equal(t, 300*time.Millisecond, cfg.Runner.PausePollInterval)
	assert.Equal(t, 150*time.Millisecond, cfg.Runner.RowThrottle)
	assert.Equal(t, 400*time.Millisecond, cfg.Runner.RetryThrottle)
	assert.Equal(t, 64, cfg.Runner.EventBuffer)

	assert.Equal(t, "https://api.brevo.com/v3", cfg.Mailer.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Mailer.Timeout)

	assert.Equal(t, 45*time.Second, cfg.Resolver.Timeout)
	assert.Equal(t, int64(20<<20), cfg.Resolver.MaxBytes)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("RUNNER_ROW_THROTTLE", "10ms")
	t.Setenv("BREVO_API_KEY", "xkeysib-test")
	t.Setenv("MAIL_SENDER_EMAIL", "noreply@example.com")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.Origins())
	assert.Equal(t, 10*time.Millisecond, cfg.Runner.RowThrottle)
	assert.Equal(t, "xkeysib-test", cfg.Mailer.APIKey)
	assert.Equal(t, "noreply@example.com", cfg.Mailer.SenderEmail)
}

func TestSanitizeClampsInvalidValues(t *testing.T) {
	cfg := AppConfig{
		HTTP:     HTTPConfig{MaxUploadBytes: -1, AllowedOrigins: "  "},
		Runner:   RunnerConfig{PausePollInterval: -time.Second, RowThrottle: -1, RetryThrottle: -1, EventBuffer: 0},
		Resolver: ResolverConfig{Timeout: 0, MaxBytes: 0},
	}
	cfg.Sanitize()

	assert.Equal(t, int64(25<<20), cfg.HTTP.MaxUploadBytes)
	assert.Equal(t, []string{"*"}, cfg.HTTP.Origins())
	assert.Equal(t, 300*time.Millisecond, cfg.Runner.PausePollInterval)
	assert.Equal(t, 150*time.Millisecond, cfg.Runner.RowThrottle)
	assert.Equal(t, 400*time.Millisecond, cfg.Runner.RetryThrottle)
	assert.Equal(t, 64, cfg.Runner.EventBuffer)
	assert.Equal(t, 45*time.Second, cfg.Resolver.Timeout)
	assert.Equal(t, int64(20<<20), cfg.Resolver.MaxBytes)
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
