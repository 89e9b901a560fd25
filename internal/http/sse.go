package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/postroom/postroom/internal/domain/model"
)

// sseWriter frames job events as server-sent events on a flushed response.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// newSSEWriter prepares the response for event streaming. Returns an error if
// the underlying writer cannot flush (streaming would silently buffer).
func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &sseWriter{w: w, flusher: flusher}, nil
}

// Send writes one event frame and flushes it to the client.
func (s *sseWriter) Send(event model.Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Name, err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event.Name, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
