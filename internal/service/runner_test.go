package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postroom/postroom/config"
	"github.com/postroom/postroom/internal/core"
	"github.com/postroom/postroom/internal/data"
	"github.com/postroom/postroom/internal/domain/model"
	"github.com/postroom/postroom/internal/stream"
)

type stubOpener struct {
	dataset model.Dataset
	err     error
}

func (s *stubOpener) Open(_ context.Context, _ io.Reader) (model.Dataset, error) {
	return s.dataset, s.err
}

type stubResolver struct {
	err error
}

func (s *stubResolver) Resolve(_ context.Context, link string) (*model.Attachment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Attachment{Name: "file.pdf", Content: []byte(link)}, nil
}

type stubComposer struct {
	err error
}

func (s *stubComposer) Compose(_ string, data map[string]string) (model.Message, error) {
	if s.err != nil {
		return model.Message{}, s.err
	}
	return model.Message{Subject: "hello " + data["name"], Body: "body"}, nil
}

// stubProvider records sends and fails for recipients listed in failFor.
type stubProvider struct {
	mu      sync.Mutex
	sent    []core.SendRequest
	failFor map[string]error
}

func (s *stubProvider) Send(_ context.Context, req core.SendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failFor[req.To]; ok {
		return err
	}
	s.sent = append(s.sent, req)
	return nil
}

func (s *stubProvider) sentTo() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	to := make([]string, 0, len(s.sent))
	for _, req := range s.sent {
		to = append(to, req.To)
	}
	return to
}

type runnerFixture struct {
	runner   *Runner
	store    *data.JobStore
	broker   *stream.Broker
	opener   *stubOpener
	resolver *stubResolver
	provider *stubProvider
	composer *stubComposer
}

func newRunnerFixture(t *testing.T) *runnerFixture {
	t.Helper()
	f := &runnerFixture{
		store:    data.NewJobStore(),
		broker:   stream.NewBroker(stream.Options{Buffer: 256}),
		opener:   &stubOpener{},
		resolver: &stubResolver{},
		provider: &stubProvider{},
		composer: &stubComposer{},
	}
	cfg := config.RunnerConfig{PausePollInterval: 5 * time.Millisecond}
	runner, err := NewRunner(RunnerOptions{
		Store:    f.store,
		Broker:   f.broker,
		Opener:   f.opener,
		Resolver: f.resolver,
		Provider: f.provider,
		Composer: f.composer,
		Config:   cfg,
	})
	require.NoError(t, err)
	f.runner = runner
	return f
}

// runJob submits the job and collects every event until the channel closes.
func (f *runnerFixture) runJob(t *testing.T, jobID string) []model.Event {
	t.Helper()
	f.store.CreateJob(jobID)
	ch := f.broker.Open(jobID)
	f.runner.Submit(context.Background(), SubmitParams{
		JobID:    jobID,
		Source:   strings.NewReader("unused"),
		Template: "default",
	})

	var events []model.Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatalf("job %s did not finish, events so far: %v", jobID, events)
		}
	}
}

func eventNames(events []model.Event) []model.EventName {
	names := make([]model.EventName, 0, len(events))
	for _, ev := range events {
		names = append(names, ev.Name)
	}
	return names
}

func TestNewRunnerRequiresDependencies(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})
	require.Error(t, err)
}

func TestRunThreeRowsWithOneFailure(t *testing.T) {
	f := newRunnerFixture(t)
	f.opener.dataset = model.Dataset{Rows: []model.DatasetRow{
		{Index: 1, Email: "a@x.com", Name: "A"},
		{Index: 2, Email: "b@x.com", Name: "B"},
		{Index: 3, Email: "c@x.com", Name: "C"},
	}}
	f.provider.failFor = map[string]error{"b@x.com": errors.New("mailbox full")}

	events := f.runJob(t, "job-1")

	assert.Equal(t, []model.EventName{
		model.EventRow, model.EventRow, model.EventProgress,
		model.EventRow, model.EventRow, model.EventProgress,
		model.EventRow, model.EventRow, model.EventProgress,
		model.EventProgress, model.EventComplete,
	}, eventNames(events))

	// Progress is floor(processed*100/total) per row, then a final 100.
	assert.Equal(t, 33, events[2].Data)
	assert.Equal(t, 66, events[5].Data)
	assert.Equal(t, 100, events[8].Data)
	assert.Equal(t, 100, events[9].Data)

	snap, ok := f.store.Snapshot("job-1")
	require.True(t, ok)
	assert.Equal(t, 100, snap.Progress)
	require.Len(t, snap.Rows, 3)
	assert.Equal(t, model.RowStatusSent, snap.Rows[0].Status) // row 3, newest first
	assert.Equal(t, model.RowStatusFailed("mailbox full"), snap.Rows[1].Status)
	assert.Equal(t, model.RowStatusSent, snap.Rows[2].Status)

	assert.Equal(t, []string{"a@x.com", "c@x.com"}, f.provider.sentTo())
}

func TestRunSkipsEmptyRows(t *testing.T) {
	f := newRunnerFixture(t)
	f.opener.dataset = model.Dataset{Rows: []model.DatasetRow{
		{Index: 1, Email: "a@x.com", Name: "A"},
		{Index: 2, Empty: true},
		{Index: 3, Email: "c@x.com", Name: "C"},
	}}

	events := f.runJob(t, "job-1")

	// Two non-empty rows, so progress is 50 then 100; the empty row consumes
	// no progress slot and is never upserted.
	var progress []any
	for _, ev := range events {
		if ev.Name == model.EventProgress {
			progress = append(progress, ev.Data)
		}
	}
	assert.Equal(t, []any{50, 100, 100}, progress)

	_, ok := f.store.GetRow("job-1", 2)
	assert.False(t, ok)
}

func TestRunZeroRowsShortCircuits(t *testing.T) {
	f := newRunnerFixture(t)
	f.opener.dataset = model.Dataset{Rows: []model.DatasetRow{{Index: 1, Empty: true}}}

	events := f.runJob(t, "job-1")

	require.Len(t, events, 2)
	assert.Equal(t, model.EventProgress, events[0].Name)
	assert.Equal(t, 100, events[0].Data)
	assert.Equal(t, model.EventComplete, events[1].Name)
	assert.Equal(t, model.MessageEvent{Message: "no rows to process"}, events[1].Data)

	snap, _ := f.store.Snapshot("job-1")
	assert.Equal(t, 100, snap.Progress)
	assert.Empty(t, f.provider.sentTo())
}

func TestRunDatasetErrorIsJobFatal(t *testing.T) {
	f := newRunnerFixture(t)
	f.opener.err = errors.New("not a spreadsheet")

	events := f.runJob(t, "job-1")

	require.Len(t, events, 1)
	assert.Equal(t, model.EventError, events[0].Name)
	assert.Equal(t, model.MessageEvent{Message: "open dataset: not a spreadsheet"}, events[0].Data)

	snap, _ := f.store.Snapshot("job-1")
	assert.Equal(t, model.ProgressErrored, snap.Progress)
}

func TestRunAttachmentFailureDoesNotFailRow(t *testing.T) {
	f := newRunnerFixture(t)
	f.opener.dataset = model.Dataset{Rows: []model.DatasetRow{
		{Index: 1, Email: "a@x.com", Name: "A", AttachmentLink: "https://drive.google.com/file/d/abc/view"},
	}}
	f.resolver.err = errors.New("download timed out")

	events := f.runJob(t, "job-1")

	// PROCESSING, ATTACHMENT_FAILED, then the send outcome overwrites it.
	var statuses []model.RowStatus
	for _, ev := range events {
		if ev.Name == model.EventRow {
			statuses = append(statuses, ev.Data.(model.RowRecord).Status)
		}
	}
	assert.Equal(t, []model.RowStatus{
		model.RowStatusProcessing,
		model.RowStatusAttachmentFailed,
		model.RowStatusSent,
	}, statuses)

	rec, _ := f.store.GetRow("job-1", 1)
	assert.Equal(t, model.RowStatusSent, rec.Status)

	// The message still went out, just without the attachment.
	f.provider.mu.Lock()
	defer f.provider.mu.Unlock()
	require.Len(t, f.provider.sent, 1)
	assert.Nil(t, f.provider.sent[0].Attachment)
}

func TestRunResolvesAttachmentFromNormalizedLink(t *testing.T) {
	f := newRunnerFixture(t)
	f.opener.dataset = model.Dataset{Rows: []model.DatasetRow{
		{Index: 1, Email: "a@x.com", Name: "A", AttachmentLink: "https://drive.google.com/file/d/abc/edit?usp=drivesdk"},
	}}

	f.runJob(t, "job-1")

	rec, _ := f.store.GetRow("job-1", 1)
	assert.Equal(t, "https://drive.google.com/file/d/abc/view?usp=sharing", rec.AttachmentLink)

	f.provider.mu.Lock()
	defer f.provider.mu.Unlock()
	require.Len(t, f.provider.sent, 1)
	require.NotNil(t, f.provider.sent[0].Attachment)
}

func TestRunComposeErrorFailsRow(t *testing.T) {
	f := newRunnerFixture(t)
	f.opener.dataset = model.Dataset{Rows: []model.DatasetRow{
		{Index: 1, Email: "a@x.com", Name: "A"},
	}}
	f.composer.err = errors.New("no such template")

	events := f.runJob(t, "job-1")

	rec, _ := f.store.GetRow("job-1", 1)
	assert.True(t, rec.Status.IsFailed())
	assert.Equal(t, "compose message: no such template", rec.Status.FailReason())
	assert.Equal(t, model.EventComplete, events[len(events)-1].Name)
}

func TestPauseSuspendsAndResumeContinues(t *testing.T) {
	f := newRunnerFixture(t)
	rows := make([]model.DatasetRow, 0, 3)
	for i := 1; i <= 3; i++ {
		rows = append(rows, model.DatasetRow{Index: i, Email: fmt.Sprintf("r%d@x.com", i)})
	}
	f.opener.dataset = model.Dataset{Rows: rows}

	f.store.CreateJob("job-1")
	f.store.SetPaused("job-1", true)
	ch := f.broker.Open("job-1")
	f.runner.Submit(context.Background(), SubmitParams{JobID: "job-1", Source: strings.NewReader(""), Template: "default"})

	// While paused the runner only emits control events; no row is touched.
	ev := <-ch
	assert.Equal(t, model.EventControl, ev.Name)
	assert.Equal(t, model.ControlPaused, ev.Data)
	assert.Empty(t, f.provider.sentTo())

	f.store.SetPaused("job-1", false)

	// Drain until the broker closes the channel; control events may still
	// arrive from polls issued before the resume landed.
	timeout := time.After(5 * time.Second)
	for open := true; open; {
		select {
		case _, ok := <-ch:
			open = ok
		case <-timeout:
			t.Fatal("job did not resume")
		}
	}

	assert.Equal(t, []string{"r1@x.com", "r2@x.com", "r3@x.com"}, f.provider.sentTo())
	snap, _ := f.store.Snapshot("job-1")
	assert.Equal(t, 100, snap.Progress)
}
