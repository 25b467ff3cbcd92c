package ports

import (
	"context"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
)

// EventKind names the lifecycle events fanned out to notification channels.
type EventKind string

const (
	EventOrderCreated   EventKind = "order_created"
	EventJobClaimed     EventKind = "job_claimed"
	EventStatusChanged  EventKind = "status_changed"
	EventOrderCancelled EventKind = "order_cancelled"
	EventDriverAssigned EventKind = "driver_assigned"
	EventAlertRaised    EventKind = "alert_raised"
)

// Event is a lifecycle notification emitted after a command commits.
// Status carries the resulting status for status-bearing kinds and is the
// zero value otherwise.
type Event struct {
	Kind        EventKind
	OrderNumber kernel.OrderNumber
	ActorID     kernel.UUID
	Status      order.Status
	OccurredAt  time.Time
}

// Notifier accepts lifecycle events for asynchronous delivery. Publishing is
// fire-and-forget from the command handler's point of view: delivery failures
// are logged downstream and never fail the command.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}
