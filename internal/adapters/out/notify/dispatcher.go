// Package notify fans lifecycle events out to the notification channels:
// in-app inbox rows, Expo push messages and email copies. Delivery is best
// effort; failures are logged and never propagate back to the command that
// emitted the event.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/ports"
)

// InboxWriter persists one in-app notification row.
type InboxWriter interface {
	AddInboxRow(ctx context.Context, userID kernel.UUID, title, body string, number *kernel.OrderNumber) error
}

// PushSender delivers push messages to device tokens.
type PushSender interface {
	Send(ctx context.Context, tokens []string, title, body string) error
}

// EmailSender delivers an email copy of a notification.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// PartySource resolves the customer and driver of an order.
type PartySource interface {
	Parties(ctx context.Context, number kernel.OrderNumber) (customerID kernel.UUID, driverID *kernel.UUID, err error)
}

// Dispatcher turns one event into concrete deliveries for its recipients.
type Dispatcher struct {
	directory ports.UserDirectory
	parties   PartySource
	inbox     InboxWriter
	push      PushSender
	email     EmailSender
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(
	directory ports.UserDirectory,
	parties PartySource,
	inbox InboxWriter,
	push PushSender,
	email EmailSender,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		directory: directory,
		parties:   parties,
		inbox:     inbox,
		push:      push,
		email:     email,
		logger:    logger.With("component", "notify_dispatcher"),
	}
}

// Dispatch delivers the event to every recipient over every channel.
// Each delivery failure is logged and skipped; the remaining deliveries
// still run.
func (d *Dispatcher) Dispatch(ctx context.Context, event ports.Event) {
	recipients, err := d.recipients(ctx, event)
	if err != nil {
		d.logger.ErrorContext(ctx, "resolving recipients failed",
			"kind", event.Kind, "order", event.OrderNumber.String(), "error", err)
		return
	}

	title, body := messageFor(event)
	number := event.OrderNumber
	for _, recipient := range recipients {
		if err = d.inbox.AddInboxRow(ctx, recipient.ID, title, body, &number); err != nil {
			d.logger.ErrorContext(ctx, "inbox write failed",
				"user", recipient.ID.String(), "error", err)
		}
		if len(recipient.PushTokens) > 0 {
			if err = d.push.Send(ctx, recipient.PushTokens, title, body); err != nil {
				d.logger.ErrorContext(ctx, "push delivery failed",
					"user", recipient.ID.String(), "error", err)
			}
		}
		if recipient.Email != "" {
			if err = d.email.Send(ctx, recipient.Email, title, body); err != nil {
				d.logger.ErrorContext(ctx, "email delivery failed",
					"user", recipient.ID.String(), "error", err)
			}
		}
	}
}

// recipients picks who hears about the event. Alerts go to every admin;
// everything else goes to the parties on the order except the actor who
// caused the event.
func (d *Dispatcher) recipients(ctx context.Context, event ports.Event) ([]ports.Profile, error) {
	if event.Kind == ports.EventAlertRaised || event.Kind == ports.EventOrderCreated {
		return d.adminsAndParties(ctx, event)
	}

	customerID, driverID, err := d.parties.Parties(ctx, event.OrderNumber)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, 2)
	if !customerID.IsEqual(event.ActorID) {
		ids = append(ids, customerID)
	}
	if driverID != nil && !driverID.IsEqual(event.ActorID) {
		ids = append(ids, *driverID)
	}

	return d.load(ctx, ids)
}

func (d *Dispatcher) adminsAndParties(ctx context.Context, event ports.Event) ([]ports.Profile, error) {
	admins, err := d.directory.GetAdmins(ctx)
	if err != nil {
		return nil, err
	}

	customerID, driverID, err := d.parties.Parties(ctx, event.OrderNumber)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, 2)
	if !customerID.IsEqual(event.ActorID) {
		ids = append(ids, customerID)
	}
	if driverID != nil && !driverID.IsEqual(event.ActorID) {
		ids = append(ids, *driverID)
	}

	parties, err := d.load(ctx, ids)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(admins))
	out := make([]ports.Profile, 0, len(admins)+len(parties))
	for _, p := range append(admins, parties...) {
		key := p.ID.String()
		if seen[key] || p.ID.IsEqual(event.ActorID) {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out, nil
}

func (d *Dispatcher) load(ctx context.Context, ids []kernel.UUID) ([]ports.Profile, error) {
	profiles := make([]ports.Profile, 0, len(ids))
	for _, id := range ids {
		profile, err := d.directory.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// messageFor renders the user-facing copy of an event.
func messageFor(event ports.Event) (title, body string) {
	number := event.OrderNumber.String()
	switch event.Kind {
	case ports.EventOrderCreated:
		return "New valet request", fmt.Sprintf("Order %s has been created.", number)
	case ports.EventJobClaimed:
		return "Driver found", fmt.Sprintf("A driver accepted order %s.", number)
	case ports.EventStatusChanged:
		return "Order update", fmt.Sprintf("Order %s: %s.", number, event.Status.Label())
	case ports.EventOrderCancelled:
		return "Order cancelled", fmt.Sprintf("Order %s has been cancelled.", number)
	case ports.EventDriverAssigned:
		return "New job assigned", fmt.Sprintf("You have been assigned to order %s.", number)
	case ports.EventAlertRaised:
		return "Emergency alert", fmt.Sprintf("An emergency was reported on order %s.", number)
	default:
		return "Order update", fmt.Sprintf("Order %s was updated.", number)
	}
}
