package usecase

import (
	"context"

	"github.com/norrisng/FcomServer/internal/domain/entity"
)

// SubmitInput carries one inbound message as received over the API.
// Timestamp arrives as text so the use case can report a malformed value as
// a validation failure rather than a decoding error.
type SubmitInput struct {
	Token     string
	Timestamp string
	Sender    string
	Receiver  string
	Message   string
}

// ValidationError reports a malformed submission field. The reason is
// surfaced verbatim to the API caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// RelayUsecase owns message admission and the dequeue/aggregation step.
type RelayUsecase interface {
	// Submit validates one inbound message and, when the token resolves to
	// a binding, appends it to the queue. Returns *ValidationError for a
	// malformed field and repository.ErrBindingNotFound for an unknown
	// token. Admission is the only gate: once queued, a message is
	// delivered even if the binding is later removed.
	Submit(ctx context.Context, input SubmitInput) error

	// Drain atomically empties the queue and returns the messages
	// aggregated by (token, sender), bodies newline-joined in insertion
	// order, groups ordered by token then first insertion ID. An empty
	// queue yields an empty slice.
	Drain(ctx context.Context) ([]*entity.AggregatedMessage, error)
}
