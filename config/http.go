package config

import (
	"strings"
	"time"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// AllowedOrigins is a comma-delimited list of origins allowed by the CORS
	// middleware. "*" allows any origin.
	AllowedOrigins string `env:"HTTP_ALLOWED_ORIGINS" envDefault:"*"`

	// ReadHeaderTimeout bounds how long the server waits for request headers.
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"10s"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// MaxUploadBytes caps the multipart upload size accepted by the send
	// endpoint.
	MaxUploadBytes int64 `env:"HTTP_MAX_UPLOAD_BYTES" envDefault:"26214400"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.ReadHeaderTimeout <= 0 {
		h.ReadHeaderTimeout = 10 * time.Second
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
	if h.MaxUploadBytes <= 0 {
		h.MaxUploadBytes = 25 << 20
	}
	if strings.TrimSpace(h.AllowedOrigins) == "" {
		h.AllowedOrigins = "*"
	}
}

// Origins returns the parsed allowed origin list.
func (h *HTTPConfig) Origins() []string {
	parts := strings.Split(h.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
