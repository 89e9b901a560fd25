// Package stream implements the in-process event channel fan-out between job
// runners and SSE subscribers.
package stream

import (
	"log/slog"
	"sync"

	"github.com/postroom/postroom/internal/domain/model"
)

// DefaultBuffer is the event channel capacity used when Options.Buffer is not
// set. It absorbs the burst of a few row/progress pairs while the subscriber
// flushes.
const DefaultBuffer = 64

// Options configure the broker.
type Options struct {
	Logger *slog.Logger
	Buffer int
}

// Broker maps job ids to at most one live event channel each. Publishing is
// best-effort: events to a job with no open channel, or with a full one, are
// dropped. A job's channel is closed by the runner when the job reaches its
// terminal state, or replaced when a new subscriber opens the same job.
type Broker struct {
	logger *slog.Logger
	buffer int

	mu       sync.Mutex
	channels map[string]chan model.Event
}

// NewBroker constructs an empty broker.
func NewBroker(opts Options) *Broker {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "stream_broker")
	}

	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	return &Broker{
		logger:   logger,
		buffer:   buffer,
		channels: make(map[string]chan model.Event),
	}
}

// Open registers a fresh event channel for the job and returns it for
// receiving. An existing channel for the same job is drained and closed first,
// so a reconnecting subscriber displaces the previous one.
func (b *Broker) Open(jobID string) <-chan model.Event {
	ch := make(chan model.Event, b.buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if old, ok := b.channels[jobID]; ok {
		drainAndClose(old)
	}
	b.channels[jobID] = ch
	return ch
}

// Publish pushes an event to the job's channel if one is open and has space.
// It never blocks; drops are logged at debug level only since streaming is a
// best-effort view over the authoritative ledger. The send happens under the
// broker lock so it cannot race a concurrent Open or Close on the same
// channel.
func (b *Broker) Publish(jobID string, event model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.channels[jobID]
	if !ok {
		return
	}

	select {
	case ch <- event:
	default:
		b.logger.Debug("event dropped, subscriber channel full",
			"job_id", jobID,
			"event", event.Name,
		)
	}
}

// Detach removes the job's channel, but only if it is still the one the
// departing subscriber received from Open. A newer subscriber's channel is
// left untouched, so a disconnect racing a reconnect cannot tear down the
// live stream. After a detach, publishes for the job are no-ops until the
// next Open.
func (b *Broker) Detach(jobID string, ch <-chan model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	current, ok := b.channels[jobID]
	if !ok || (<-chan model.Event)(current) != ch {
		return
	}
	delete(b.channels, jobID)
	drainAndClose(current)
}

// Close drains and closes the job's channel, signalling end-of-stream to the
// subscriber. No-op when the job has no open channel.
func (b *Broker) Close(jobID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.channels[jobID]
	if !ok {
		return
	}
	delete(b.channels, jobID)
	drainAndClose(ch)
}

// CloseAll closes every open channel, used on shutdown.
func (b *Broker) CloseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for jobID, ch := range b.channels {
		drainAndClose(ch)
		delete(b.channels, jobID)
	}
}

// drainAndClose removes any buffered events before closing the channel so
// receivers observe a closed channel immediately.
func drainAndClose(ch chan model.Event) {
	for {
		select {
		case <-ch:
		default:
			close(ch)
			return
		}
	}
}
