package repository

import (
	"context"
	"database/sql"
)

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error

	// ExecuteIsolated behaves like Execute but runs the transaction at the
	// given isolation level. The queue drain requires at least snapshot
	// isolation so its read-set and delete-set stay consistent under
	// concurrent inserts.
	ExecuteIsolated(ctx context.Context, level sql.IsolationLevel, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
// This ensures all repository operations within a transaction use the same database connection.
type RepositoryFactory interface {
	// NewBindingRepository returns a BindingRepository instance bound to the current transaction.
	NewBindingRepository() BindingRepository

	// NewMessageRepository returns a MessageRepository instance bound to the current transaction.
	NewMessageRepository() MessageRepository
}
