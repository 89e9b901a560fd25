// Package data holds the in-memory stores backing the job engine. Job state
// is deliberately process-local and non-durable; a restart forgets all jobs.
package data

import (
	"sort"
	"sync"

	"github.com/postroom/postroom/internal/domain/model"
)

// JobStore is the job registry and per-job row ledger. It is safe for
// concurrent use by the single runner goroutine of each job (writer) and any
// number of control/status/report callers (readers and flag writers).
// Conflicting writes to the same field resolve last-write-wins.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*jobEntry
}

// jobEntry carries one job's mutable state. Rows are keyed by 1-based data
// row index; a row's index and descriptive fields never change after the
// first upsert, only its status does.
type jobEntry struct {
	mu       sync.RWMutex
	progress int
	paused   bool
	rows     map[int]*model.RowRecord
}

// NewJobStore constructs an empty job store.
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*jobEntry)}
}

// CreateJob registers a job with progress 0, unpaused, and an empty ledger.
// An existing entry under the same id is replaced; ids are freshly minted
// UUIDs per submission, so replacement only happens when a caller reuses an
// id deliberately.
func (s *JobStore) CreateJob(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id] = &jobEntry{rows: make(map[int]*model.RowRecord)}
}

// Exists reports whether the job is registered.
func (s *JobStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.jobs[id]
	return ok
}

func (s *JobStore) get(id string) *jobEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs[id]
}

// SetProgress records the job's progress. No-op for unknown jobs.
func (s *JobStore) SetProgress(id string, progress int) {
	j := s.get(id)
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.progress = progress
}

// SetPaused flips the job's cooperative pause flag. No-op for unknown jobs.
func (s *JobStore) SetPaused(id string, paused bool) {
	j := s.get(id)
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.paused = paused
}

// IsPaused reports the pause flag; unknown jobs read as not paused (callers
// resolve unknown ids at the boundary via Exists).
func (s *JobStore) IsPaused(id string) bool {
	j := s.get(id)
	if j == nil {
		return false
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.paused
}

// UpsertRow creates the row if absent; if it already exists only the status
// is overwritten, the descriptive fields stay as first written. No-op for
// unknown jobs.
func (s *JobStore) UpsertRow(id string, rec model.RowRecord) {
	j := s.get(id)
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if existing, ok := j.rows[rec.Row]; ok {
		existing.Status = rec.Status
		return
	}
	j.rows[rec.Row] = &rec
}

// SetRowStatus transitions an existing row's status in place. No-op if the
// job or the row is absent.
func (s *JobStore) SetRowStatus(id string, row int, status model.RowStatus) {
	j := s.get(id)
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if rec, ok := j.rows[row]; ok {
		rec.Status = status
	}
}

// GetRow returns a copy of the row record, or false if the job or row is
// absent.
func (s *JobStore) GetRow(id string, row int) (model.RowRecord, bool) {
	j := s.get(id)
	if j == nil {
		return model.RowRecord{}, false
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	rec, ok := j.rows[row]
	if !ok {
		return model.RowRecord{}, false
	}
	return *rec, true
}

// RowsNewestFirst returns copies of all row records sorted by descending row
// index, the canonical shape for status display. The second return is false
// for unknown jobs.
func (s *JobStore) RowsNewestFirst(id string) ([]model.RowRecord, bool) {
	j := s.get(id)
	if j == nil {
		return nil, false
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	rows := make([]model.RowRecord, 0, len(j.rows))
	for _, rec := range j.rows {
		rows = append(rows, *rec)
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].Row > rows[b].Row })
	return rows, true
}

// Snapshot returns a point-in-time copy of the job for status queries, or
// false for unknown jobs.
func (s *JobStore) Snapshot(id string) (model.JobSnapshot, bool) {
	j := s.get(id)
	if j == nil {
		return model.JobSnapshot{}, false
	}
	j.mu.RLock()
	progress := j.progress
	paused := j.paused
	j.mu.RUnlock()

	rows, _ := s.RowsNewestFirst(id)
	return model.JobSnapshot{ID: id, Progress: progress, Paused: paused, Rows: rows}, true
}
