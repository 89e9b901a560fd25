package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postroom/postroom/config"
)

func validConfig() *config.AppConfig {
	cfg := &config.AppConfig{
		Mailer: config.MailerConfig{
			APIKey:      "xkeysib-test",
			SenderEmail: "noreply@example.com",
		},
	}
	cfg.Sanitize()
	return cfg
}

func TestNewServicesBuildsFullGraph(t *testing.T) {
	services, err := NewServices(&ServiceDeps{Config: validConfig()})
	require.NoError(t, err)

	assert.NotNil(t, services.Store)
	assert.NotNil(t, services.Broker)
	assert.NotNil(t, services.Opener)
	assert.NotNil(t, services.Runner)
}

func TestNewServicesRequiresMailerCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Mailer.APIKey = ""

	_, err := NewServices(&ServiceDeps{Config: cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivery provider")
}
