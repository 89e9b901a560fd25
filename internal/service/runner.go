// Package service contains the job engine: the runner that drives a bulk-mail
// job row by row, the retry coordinator, and the report builder.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/postroom/postroom/config"
	"github.com/postroom/postroom/internal/core"
	"github.com/postroom/postroom/internal/data"
	"github.com/postroom/postroom/internal/domain/model"
	"github.com/postroom/postroom/internal/stream"
)

// RunnerOptions groups dependencies for Runner.
type RunnerOptions struct {
	Store    *data.JobStore          // Required: job registry and row ledger
	Broker   *stream.Broker          // Required: event fan-out
	Opener   core.DatasetOpener      // Required: uploaded sheet parser
	Resolver core.AttachmentResolver // Required: attachment fetcher
	Provider core.DeliveryProvider   // Required: delivery transport
	Composer core.Composer           // Required: subject/body composition
	Config   config.RunnerConfig     // Required: pacing configuration
	Logger   *slog.Logger            // Optional: structured logger
}

// Runner executes bulk-mail jobs. Each submitted job runs on its own
// goroutine to completion, independent of the submitting request's lifetime.
// Control callers influence a running job only through the store's shared
// flags; the runner polls, it is never interrupted.
type Runner struct {
	store    *data.JobStore
	broker   *stream.Broker
	opener   core.DatasetOpener
	resolver core.AttachmentResolver
	provider core.DeliveryProvider
	composer core.Composer
	config   config.RunnerConfig
	logger   *slog.Logger

	mu        sync.RWMutex
	templates map[string]string

	wg sync.WaitGroup
}

// NewRunner constructs a new Runner.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	switch {
	case opts.Store == nil:
		return nil, errors.New("JobStore is required")
	case opts.Broker == nil:
		return nil, errors.New("Broker is required")
	case opts.Opener == nil:
		return nil, errors.New("DatasetOpener is required")
	case opts.Resolver == nil:
		return nil, errors.New("AttachmentResolver is required")
	case opts.Provider == nil:
		return nil, errors.New("DeliveryProvider is required")
	case opts.Composer == nil:
		return nil, errors.New("Composer is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		store:     opts.Store,
		broker:    opts.Broker,
		opener:    opts.Opener,
		resolver:  opts.Resolver,
		provider:  opts.Provider,
		composer:  opts.Composer,
		config:    opts.Config,
		logger:    logger.With("component", "job_runner"),
		templates: make(map[string]string),
	}, nil
}

// SubmitParams carries a new job's inputs.
type SubmitParams struct {
	JobID    string
	Source   io.Reader
	Template string
}

// Submit starts the job's worker goroutine and returns immediately. The job
// must already be registered in the store. The worker outlives the submitting
// request; only process shutdown cancels it.
func (r *Runner) Submit(ctx context.Context, params SubmitParams) {
	r.mu.Lock()
	r.templates[params.JobID] = params.Template
	r.mu.Unlock()

	jobCtx := context.WithoutCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(jobCtx, params.JobID, params.Source, params.Template)
	}()
}

// Wait blocks until all in-flight job goroutines have finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) template(jobID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.templates[jobID]
}

// run is the worker loop: one pass over the dataset in ascending row order.
func (r *Runner) run(ctx context.Context, jobID string, src io.Reader, template string) {
	dataset, err := r.opener.Open(ctx, src)
	if err != nil {
		r.fail(ctx, jobID, fmt.Errorf("open dataset: %w", err))
		return
	}

	total := dataset.TotalDataRows()
	if total == 0 {
		r.complete(ctx, jobID, "no rows to process")
		return
	}

	r.logger.InfoContext(ctx, "job started", "job_id", jobID, "total_rows", total)

	processed := 0
	for _, row := range dataset.Rows {
		if row.Empty {
			continue
		}

		r.waitWhilePaused(ctx, jobID)

		rec := model.RowRecord{
			Row:            row.Index,
			Email:          row.Email,
			Name:           row.Name,
			AttachmentLink: model.NormalizeShareLink(row.AttachmentLink),
			Status:         model.RowStatusProcessing,
		}
		r.store.UpsertRow(jobID, rec)
		r.publishRow(jobID, rec)

		if err := r.deliver(ctx, jobID, rec, template); err != nil {
			r.setStatus(jobID, rec, model.RowStatusFailed(err.Error()))
		} else {
			r.setStatus(jobID, rec, model.RowStatusSent)
		}

		processed++
		progress := processed * 100 / total
		r.store.SetProgress(jobID, progress)
		r.broker.Publish(jobID, model.Event{Name: model.EventProgress, Data: progress})

		r.sleep(ctx, r.config.RowThrottle)
	}

	r.complete(ctx, jobID, "all rows processed")
}

// deliver is the single-row send primitive shared by the main pass and the
// retry coordinator. Attachment resolution failure does not abort the row: a
// transient ATTACHMENT_FAILED status is recorded and the send proceeds without
// the attachment. Only compose and send errors fail the row.
func (r *Runner) deliver(ctx context.Context, jobID string, rec model.RowRecord, template string) error {
	var attachment *model.Attachment
	if rec.AttachmentLink != "" {
		resolved, err := r.resolver.Resolve(ctx, rec.AttachmentLink)
		if err != nil {
			r.logger.WarnContext(ctx, "attachment resolution failed, sending without it",
				"job_id", jobID,
				"row", rec.Row,
				"error", err,
			)
			r.setStatus(jobID, rec, model.RowStatusAttachmentFailed)
		} else {
			attachment = resolved
		}
	}

	msg, err := r.composer.Compose(template, map[string]string{
		"name":  rec.Name,
		"email": rec.Email,
	})
	if err != nil {
		return fmt.Errorf("compose message: %w", err)
	}

	return r.provider.Send(ctx, core.SendRequest{
		To:         rec.Email,
		Message:    msg,
		Attachment: attachment,
	})
}

// waitWhilePaused polls the pause flag, emitting a control event on each check
// so a subscriber attached mid-pause still learns the job is suspended.
func (r *Runner) waitWhilePaused(ctx context.Context, jobID string) {
	for r.store.IsPaused(jobID) {
		r.broker.Publish(jobID, model.Event{Name: model.EventControl, Data: model.ControlPaused})
		r.sleep(ctx, r.config.PausePollInterval)
		if ctx.Err() != nil {
			return
		}
	}
}

func (r *Runner) complete(ctx context.Context, jobID, message string) {
	r.store.SetProgress(jobID, 100)
	r.broker.Publish(jobID, model.Event{Name: model.EventProgress, Data: 100})
	r.broker.Publish(jobID, model.Event{Name: model.EventComplete, Data: model.MessageEvent{Message: message}})
	r.broker.Close(jobID)
	r.logger.InfoContext(ctx, "job completed", "job_id", jobID, "message", message)
}

// fail terminates a job that died before its first row (dataset unreadable).
// This is the only path that leaves progress below 100.
func (r *Runner) fail(ctx context.Context, jobID string, err error) {
	r.store.SetProgress(jobID, model.ProgressErrored)
	r.broker.Publish(jobID, model.Event{Name: model.EventError, Data: model.MessageEvent{Message: err.Error()}})
	r.broker.Close(jobID)
	r.logger.ErrorContext(ctx, "job failed", "job_id", jobID, "error", err)
}

func (r *Runner) setStatus(jobID string, rec model.RowRecord, status model.RowStatus) {
	r.store.SetRowStatus(jobID, rec.Row, status)
	rec.Status = status
	r.publishRow(jobID, rec)
}

func (r *Runner) publishRow(jobID string, rec model.RowRecord) {
	r.broker.Publish(jobID, model.Event{Name: model.EventRow, Data: rec})
}

func (r *Runner) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
