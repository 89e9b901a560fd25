// Package core defines the collaborator ports the job engine depends on.
// Services depend on these interfaces only; concrete implementations live in
// internal/adapters and internal/composer.
package core

import (
	"context"
	"io"

	"github.com/postroom/postroom/internal/domain/model"
)

// DatasetOpener parses an uploaded tabular file into an ordered dataset.
// Implementations must preserve row order, assign 1-based data-row indexes,
// and flag structurally empty rows rather than dropping them.
type DatasetOpener interface {
	Open(ctx context.Context, r io.Reader) (model.Dataset, error)
}

// AttachmentResolver turns a normalized share link into attachment bytes.
// Implementations must bound their fetch with timeouts; they never block
// indefinitely.
type AttachmentResolver interface {
	Resolve(ctx context.Context, link string) (*model.Attachment, error)
}

// SendRequest carries everything the delivery provider needs for one message.
// Attachment is nil when the row has no (resolvable) attachment.
type SendRequest struct {
	To         string
	Message    model.Message
	Attachment *model.Attachment
}

// DeliveryProvider sends a single message through the external transport.
// A nil error means the provider accepted the message; any non-success
// response surfaces as a descriptive error.
type DeliveryProvider interface {
	Send(ctx context.Context, req SendRequest) error
}

// Composer renders the named template pair into a subject/body message using
// the given substitutions.
type Composer interface {
	Compose(name string, data map[string]string) (model.Message, error)
}
