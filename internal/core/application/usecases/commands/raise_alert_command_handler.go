package commands

import (
	"context"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/ports"
)

// RaiseAlertCommandHandler records emergency alerts. Raising must always
// succeed for a party on the order, so the only checks are that the order
// exists and the raiser is attached to it.
type RaiseAlertCommandHandler struct {
	uowFactory AlertUoWFactory
	notifier   ports.Notifier
}

// NewRaiseAlertCommandHandler creates a handler for emergency alerts.
func NewRaiseAlertCommandHandler(uowFactory AlertUoWFactory, notifier ports.Notifier) RaiseAlertCommandHandler {
	return RaiseAlertCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle records the alert and returns its id. The alert-raised event fans
// out to every admin after the commit.
func (h RaiseAlertCommandHandler) Handle(ctx context.Context, cmd RaiseAlertCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderNumber())
	if err != nil {
		return kernel.UUID{}, err
	}
	if !aggregate.IsOwnedBy(cmd.Actor().ID()) && !aggregate.IsDriver(cmd.Actor().ID()) {
		return kernel.UUID{}, ErrPermissionDenied
	}

	alert, err := order.NewEmergencyAlert(kernel.NewUUID(), cmd.OrderNumber(), cmd.Actor().ID(), cmd.Point())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.AlertRepository().Add(ctx, alert); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	_ = h.notifier.Publish(ctx, ports.Event{
		Kind:        ports.EventAlertRaised,
		OrderNumber: cmd.OrderNumber(),
		ActorID:     cmd.Actor().ID(),
		OccurredAt:  time.Now().UTC(),
	})

	return alert.ID(), nil
}
