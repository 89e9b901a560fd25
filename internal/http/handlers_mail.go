// Package httpx provides the HTTP surface of the postroom bulk-mail API.
package httpx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/postroom/postroom/internal/core"
	"github.com/postroom/postroom/internal/data"
	"github.com/postroom/postroom/internal/domain/model"
	"github.com/postroom/postroom/internal/service"
	"github.com/postroom/postroom/internal/stream"
)

// previewRows caps how many leading data rows the preview endpoint returns.
const previewRows = 10

// MailHandlers provides HTTP handlers for bulk-mail job operations.
type MailHandlers struct {
	Runner         *service.Runner
	Store          *data.JobStore
	Broker         *stream.Broker
	Opener         core.DatasetOpener
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// Send accepts a recipient sheet upload, registers a job, and starts its
// runner. The response returns immediately with the new job id; progress is
// observed via the stream or status endpoints.
func (h *MailHandlers) Send(w http.ResponseWriter, r *http.Request) {
	src, template, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	jobID := uuid.NewString()
	h.Store.CreateJob(jobID)
	h.Runner.Submit(r.Context(), service.SubmitParams{
		JobID:    jobID,
		Source:   src,
		Template: template,
	})

	WriteJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

// Preview parses an upload without starting a job and returns its first rows,
// so the operator can sanity-check the sheet before sending.
func (h *MailHandlers) Preview(w http.ResponseWriter, r *http.Request) {
	src, _, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	dataset, err := h.Opener.Open(r.Context(), src)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_dataset", Err: err})
		return
	}

	type previewRow struct {
		Row            int    `json:"row"`
		Email          string `json:"email"`
		Name           string `json:"name"`
		AttachmentLink string `json:"attachment_link,omitempty"`
	}

	rows := make([]previewRow, 0, previewRows)
	for _, row := range dataset.Rows {
		if row.Empty {
			continue
		}
		rows = append(rows, previewRow{
			Row:            row.Index,
			Email:          row.Email,
			Name:           row.Name,
			AttachmentLink: model.NormalizeShareLink(row.AttachmentLink),
		})
		if len(rows) == previewRows {
			break
		}
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"rows":       rows,
		"total_rows": dataset.TotalDataRows(),
	})
}

// readUpload extracts the sheet and optional template name from a multipart
// form. The file is buffered in full: the job runner reads it after this
// request's body is gone.
func (h *MailHandlers) readUpload(w http.ResponseWriter, r *http.Request) (io.Reader, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_upload", Err: err})
		return nil, "", false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_file",
			Err:     errors.New("multipart field \"file\" is required"),
		})
		return nil, "", false
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_upload", Err: err})
		return nil, "", false
	}

	return &buf, r.FormValue("template"), true
}

// Stream attaches the caller to the job's live event feed as server-sent
// events. A new subscriber displaces any previous one for the same job.
func (h *MailHandlers) Stream(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if !h.Store.Exists(jobID) {
		h.writeNotFound(w, jobID)
		return
	}

	sse, err := newSSEWriter(w)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "streaming_unsupported", Err: err})
		return
	}

	ch := h.Broker.Open(jobID)
	defer h.Broker.Detach(jobID, ch)
	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := sse.Send(ev); err != nil {
				h.Logger.Debug("stream send failed, dropping subscriber",
					"job_id", jobID,
					"error", err,
				)
				return
			}
		}
	}
}

// Status returns a point-in-time snapshot: progress, pause flag, and the full
// row list newest first.
func (h *MailHandlers) Status(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	snap, ok := h.Store.Snapshot(jobID)
	if !ok {
		h.writeNotFound(w, jobID)
		return
	}
	WriteJSON(w, http.StatusOK, snap)
}

// Pause sets the job's pause flag. Idempotent; the runner suspends at its
// next loop check.
func (h *MailHandlers) Pause(w http.ResponseWriter, r *http.Request) {
	h.setPaused(w, r, true, model.ControlPaused)
}

// Resume clears the job's pause flag. Idempotent.
func (h *MailHandlers) Resume(w http.ResponseWriter, r *http.Request) {
	h.setPaused(w, r, false, model.ControlResumed)
}

func (h *MailHandlers) setPaused(w http.ResponseWriter, r *http.Request, paused bool, control string) {
	jobID := r.PathValue("id")
	if !h.Store.Exists(jobID) {
		h.writeNotFound(w, jobID)
		return
	}

	h.Store.SetPaused(jobID, paused)
	h.Broker.Publish(jobID, model.Event{Name: model.EventControl, Data: control})
	WriteJSON(w, http.StatusOK, map[string]any{"job_id": jobID, "paused": paused})
}

// RetryRow re-sends one failed row. The retry itself runs in the background;
// the response only confirms the row exists.
func (h *MailHandlers) RetryRow(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	row, err := strconv.Atoi(r.PathValue("row"))
	if err != nil || row < 1 {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_row",
			Err:     errors.New("row must be a positive integer"),
		})
		return
	}

	if _, ok := h.Store.GetRow(jobID, row); !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("row " + r.PathValue("row") + " not found in job " + jobID),
		})
		return
	}

	ctx := context.WithoutCancel(r.Context())
	go func() {
		if err := h.Runner.RetryRow(ctx, jobID, row); err != nil {
			h.Logger.Error("retry row failed", "job_id", jobID, "row", row, "error", err)
		}
	}()

	WriteJSON(w, http.StatusAccepted, map[string]any{"job_id": jobID, "row": row})
}

// RetryAll re-sends every currently failed row, in the background.
func (h *MailHandlers) RetryAll(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if !h.Store.Exists(jobID) {
		h.writeNotFound(w, jobID)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	go func() {
		if err := h.Runner.RetryAllFailed(ctx, jobID); err != nil {
			h.Logger.Error("retry all failed", "job_id", jobID, "error", err)
		}
	}()

	WriteJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

// Report downloads the job's outcome ledger as CSV.
func (h *MailHandlers) Report(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	report, err := h.Runner.BuildReport(jobID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="report-`+jobID+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report)
}

func (h *MailHandlers) writeNotFound(w http.ResponseWriter, jobID string) {
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: "not_found",
		Err:     errors.New("job " + jobID + " not found"),
	})
}
