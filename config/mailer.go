package config

import "time"

// MailerConfig contains delivery provider configuration.
type MailerConfig struct {
	// APIKey authenticates against the Brevo transactional email API.
	APIKey string `env:"BREVO_API_KEY"`

	// BaseURL is the provider API root. Override for testing.
	BaseURL string `env:"BREVO_BASE_URL" envDefault:"https://api.brevo.com/v3"`

	// SenderName is the display name on outgoing mail.
	SenderName string `env:"MAIL_SENDER_NAME" envDefault:"Postroom"`

	// SenderEmail is the from-address on outgoing mail.
	SenderEmail string `env:"MAIL_SENDER_EMAIL"`

	// Timeout bounds a single provider API call.
	Timeout time.Duration `env:"BREVO_TIMEOUT" envDefault:"30s"`
}
