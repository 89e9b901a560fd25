package service

import (
	"context"

	"github.com/postroom/postroom/internal/domain/model"
	apperrors "github.com/postroom/postroom/internal/errors"
)

// RetryRow re-runs the send primitive for one row. Only rows whose current
// status is a terminal failure are eligible; anything else (including SENT and
// the transient ATTACHMENT_FAILED) makes this a silent no-op, so a retry can
// never resend a delivered message. Retries are only meaningful once the main
// pass has finished with the row; the status check enforces that.
func (r *Runner) RetryRow(ctx context.Context, jobID string, row int) error {
	if !r.store.Exists(jobID) {
		return apperrors.NotFoundf("job %s not found", jobID)
	}
	rec, ok := r.store.GetRow(jobID, row)
	if !ok {
		return apperrors.NotFoundf("row %d not found in job %s", row, jobID)
	}
	if !rec.Status.IsFailed() {
		return nil
	}

	r.setStatus(jobID, rec, model.RowStatusRetrying)

	if err := r.deliver(ctx, jobID, rec, r.template(jobID)); err != nil {
		r.setStatus(jobID, rec, model.RowStatusFailed(err.Error()))
	} else {
		r.setStatus(jobID, rec, model.RowStatusSent)
	}
	return nil
}

// RetryAllFailed sweeps the ledger once and retries every row that was failed
// at the start of the sweep, newest row first, throttled between rows. Rows
// failing after the snapshot was taken wait for the next sweep.
func (r *Runner) RetryAllFailed(ctx context.Context, jobID string) error {
	rows, ok := r.store.RowsNewestFirst(jobID)
	if !ok {
		return apperrors.NotFoundf("job %s not found", jobID)
	}

	first := true
	for _, rec := range rows {
		if !rec.Status.IsFailed() {
			continue
		}
		if !first {
			r.sleep(ctx, r.config.RetryThrottle)
		}
		first = false
		if err := r.RetryRow(ctx, jobID, rec.Row); err != nil {
			return err
		}
	}
	return nil
}
