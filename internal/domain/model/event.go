package model

// EventName identifies the kind of a job event pushed to stream subscribers.
type EventName string

const (
	// EventRow carries a full RowRecord after a status transition.
	EventRow EventName = "row"
	// EventProgress carries the job's integer progress (0-100).
	EventProgress EventName = "progress"
	// EventControl carries "PAUSED" or "RESUMED".
	EventControl EventName = "control"
	// EventComplete carries a completion message; it is the last event of a
	// successful job.
	EventComplete EventName = "complete"
	// EventError carries the failure description of a job-fatal error; it is
	// the last event of a failed job.
	EventError EventName = "error"
)

// Control event payloads.
const (
	ControlPaused  = "PAUSED"
	ControlResumed = "RESUMED"
)

// Event is a named message pushed to a job's stream subscriber. Events are
// not persisted; delivery is best-effort, at most once per subscriber.
type Event struct {
	Name EventName `json:"event"`
	Data any       `json:"data"`
}

// MessageEvent is the payload shape of complete and error events.
type MessageEvent struct {
	Message string `json:"message"`
}
