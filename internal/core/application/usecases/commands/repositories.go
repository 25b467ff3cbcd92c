// Package commands contains the write-side operations of the order engine.
// Every command is a validated value object paired with a handler that opens
// a unit of work, mutates aggregates through their behavior methods, commits,
// and only then emits notification events.
package commands

import (
	"context"
	"errors"

	"valet/internal/core/ports"
)

// ErrPermissionDenied is returned when the acting user is not allowed to
// perform the operation on the target order.
var ErrPermissionDenied = errors.New("permission denied")

// Unit of Work interfaces scoped to what each handler actually touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AlertRepoFactory provides the alert repository within a transaction.
	AlertRepoFactory interface {
		AlertRepository() ports.AlertRepository
	}

	// PhotoRepoFactory provides the photo repository within a transaction.
	PhotoRepoFactory interface {
		PhotoRepository() ports.PhotoRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AlertUoW manages transactions for alert operations. Alerts reference
	// orders, so the order repository rides along for existence checks.
	AlertUoW interface {
		TxManager
		AlertRepoFactory
		OrderRepoFactory
	}

	// AlertUoWFactory creates alert unit of work instances.
	AlertUoWFactory interface {
		Create() AlertUoW
	}

	// PhotoUoW manages transactions for handover photo operations.
	PhotoUoW interface {
		TxManager
		PhotoRepoFactory
		OrderRepoFactory
	}

	// PhotoUoWFactory creates photo unit of work instances.
	PhotoUoWFactory interface {
		Create() PhotoUoW
	}
)
