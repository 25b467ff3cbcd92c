// Package ports defines the contracts between the application core and
// infrastructure adapters. Repositories cover the write side; read-side
// queries go straight to the database and do not pass through here.
package ports

import (
	"context"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its stops.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The stop list is
	// replaced wholesale.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its number.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// GetForUpdate retrieves an order and takes a row lock on it for the
	// duration of the surrounding transaction. Concurrent callers block
	// until the lock holder commits; a lock wait exceeding the configured
	// timeout surfaces as errs.TransientStoreError.
	//
	// Must be called inside a UnitOfWork transaction.
	GetForUpdate(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// NextNumber allocates the next order number from the store's sequence.
	// Allocated numbers are strictly increasing and never reused, including
	// across rolled-back transactions.
	NextNumber(ctx context.Context) (kernel.OrderNumber, error)

	// GetDueForSearch retrieves scheduled orders without a driver whose
	// pickup time falls before the given deadline. Used by the promotion
	// job to move reservations into the searching status.
	GetDueForSearch(ctx context.Context, deadline time.Time) ([]*order.Order, error)
}
