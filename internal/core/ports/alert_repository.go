package ports

import (
	"context"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
)

// AlertRepository is the persistence contract for emergency alerts.
type AlertRepository interface {
	// Add persists a new alert.
	Add(ctx context.Context, alert *order.EmergencyAlert) error

	// Update persists the resolved flag of an existing alert.
	Update(ctx context.Context, alert *order.EmergencyAlert) error

	// Get retrieves an alert by its identifier.
	// Returns errs.ObjectNotFoundError when no such alert exists.
	Get(ctx context.Context, id kernel.UUID) (*order.EmergencyAlert, error)
}

// PhotoRepository is the persistence contract for handover photos.
type PhotoRepository interface {
	// Replace stores the photo, superseding any earlier photo recorded for
	// the same order and vehicle side.
	Replace(ctx context.Context, photo *order.HandoverPhoto) error

	// GetByOrder retrieves the current photo set of an order, at most one
	// per side.
	GetByOrder(ctx context.Context, number kernel.OrderNumber) ([]*order.HandoverPhoto, error)
}
