package repository

import (
	"context"

	"github.com/norrisng/FcomServer/internal/domain/entity"
)

// MessageRepository defines the operations for the message queue store.
//
// ListOrdered and DeleteThrough are intended to be composed inside a single
// transaction (see TransactionManager) so that a drain's read-set and
// delete-set are consistent: no row visible to the read escapes the delete,
// and no row inserted after the snapshot is erroneously deleted.
type MessageRepository interface {
	// Insert appends a message to the queue. The store assigns the
	// insertion ID and insert time.
	Insert(ctx context.Context, msg *entity.QueuedMessage) error

	// ListOrdered returns every queued message, ascending by insertion ID.
	ListOrdered(ctx context.Context) ([]*entity.QueuedMessage, error)

	// DeleteThrough removes every message with insertion ID <= watermark.
	DeleteThrough(ctx context.Context, watermark int64) error
}
