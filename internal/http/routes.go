package httpx

import (
	"log/slog"
	"net/http"

	"github.com/postroom/postroom/internal/core"
	"github.com/postroom/postroom/internal/data"
	"github.com/postroom/postroom/internal/service"
	"github.com/postroom/postroom/internal/stream"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Runner         *service.Runner
	Store          *data.JobStore
	Broker         *stream.Broker
	Opener         core.DatasetOpener
	MaxUploadBytes int64
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	mailHandlers := &MailHandlers{
		Runner:         services.Runner,
		Store:          services.Store,
		Broker:         services.Broker,
		Opener:         services.Opener,
		MaxUploadBytes: services.MaxUploadBytes,
		Logger:         logger,
	}
	registerMailRoutes(mux, mailHandlers)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = mux
	handler = CORS(services.AllowedOrigins)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerMailRoutes(mux *http.ServeMux, h *MailHandlers) {
	mux.HandleFunc("POST /api/mail/send", h.Send)
	mux.HandleFunc("POST /api/mail/preview", h.Preview)
	mux.HandleFunc("GET /api/mail/{id}/stream", h.Stream)
	mux.HandleFunc("GET /api/mail/{id}/status", h.Status)
	mux.HandleFunc("POST /api/mail/{id}/pause", h.Pause)
	mux.HandleFunc("POST /api/mail/{id}/resume", h.Resume)
	mux.HandleFunc("POST /api/mail/{id}/rows/{row}/retry", h.RetryRow)
	mux.HandleFunc("POST /api/mail/{id}/retry-all", h.RetryAll)
	mux.HandleFunc("GET /api/mail/{id}/report", h.Report)
}
