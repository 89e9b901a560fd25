package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	apperrors "github.com/postroom/postroom/internal/errors"
)

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups parameters for WriteError to adhere to the ≤3 params guideline.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}

// WriteAppError maps an application error onto the matching HTTP response.
func WriteAppError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case apperrors.IsNotFound(err):
		code = http.StatusNotFound
	case apperrors.IsValidation(err):
		code = http.StatusBadRequest
	case apperrors.IsUnavailable(err):
		code = http.StatusServiceUnavailable
	}
	WriteError(w, ErrorParams{Code: code, ErrCode: string(apperrors.GetCode(err)), Err: err})
}
