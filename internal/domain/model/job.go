// Package model contains the domain types for postroom bulk-mail jobs.
package model

import "strings"

// ProgressErrored is the progress sentinel recorded when a job dies before
// completion (dataset could not be opened or parsed). Progress otherwise only
// moves forward from 0 to 100.
const ProgressErrored = -1

// RowStatus is the outcome state of a single row. Failed statuses carry their
// reason inline ("FAILED: <reason>") so the full set is open-ended; use the
// predicates below instead of comparing against constants.
type RowStatus string

const (
	// RowStatusPending is the implicit state of a row the runner has not
	// observed yet. Pending rows are never stored in the ledger.
	RowStatusPending RowStatus = "PENDING"
	// RowStatusProcessing marks a row the runner is currently sending.
	RowStatusProcessing RowStatus = "PROCESSING"
	// RowStatusRetrying marks a failed row a retry is re-sending.
	RowStatusRetrying RowStatus = "RETRYING"
	// RowStatusSent marks a successfully delivered row.
	RowStatusSent RowStatus = "SENT"
	// RowStatusAttachmentFailed is a transient sub-status recorded when the
	// attachment could not be resolved; the row still attempts delivery and
	// the final send outcome overwrites it.
	RowStatusAttachmentFailed RowStatus = "ATTACHMENT_FAILED"

	failedPrefix = "FAILED"
)

// RowStatusFailed builds the terminal failed status for a row.
func RowStatusFailed(reason string) RowStatus {
	if reason == "" {
		return RowStatus(failedPrefix)
	}
	return RowStatus(failedPrefix + ": " + reason)
}

// IsFailed reports whether the status is a terminal failure. Only failed rows
// are eligible for retry; the transient ATTACHMENT_FAILED sub-status does not
// match.
func (s RowStatus) IsFailed() bool {
	return strings.HasPrefix(string(s), failedPrefix)
}

// FailReason returns the reason carried by a failed status, or "" for
// non-failed statuses.
func (s RowStatus) FailReason() string {
	if !s.IsFailed() {
		return ""
	}
	return strings.TrimPrefix(strings.TrimPrefix(string(s), failedPrefix), ": ")
}

// RowRecord is the per-recipient unit of work and its current outcome state.
// Row is the 1-based data-row index in the uploaded sheet; it and the
// descriptive fields are fixed when the record is first created, only Status
// changes afterwards.
type RowRecord struct {
	Row            int       `json:"row"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	AttachmentLink string    `json:"attachment_link,omitempty"`
	Status         RowStatus `json:"status"`
}

// JobSnapshot is a point-in-time copy of a job's state for status queries.
// Rows are ordered newest row index first.
type JobSnapshot struct {
	ID       string      `json:"job_id"`
	Progress int         `json:"progress"`
	Paused   bool        `json:"paused"`
	Rows     []RowRecord `json:"rows"`
}
