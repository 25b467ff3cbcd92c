package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command execution,
// keeping transactions isolated between concurrent requests.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Command handlers begin a
// transaction, mutate aggregates through the transaction-bound repositories,
// and commit; row locks taken via GetForUpdate live until Commit or Rollback.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// successful commit; it degrades to a no-op then.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// AlertRepository returns an AlertRepository bound to the current transaction.
	AlertRepository() AlertRepository

	// PhotoRepository returns a PhotoRepository bound to the current transaction.
	PhotoRepository() PhotoRepository
}
