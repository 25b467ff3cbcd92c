package commands

import (
	"context"
	"time"

	"valet/internal/core/ports"
)

// AdvanceStatusCommandHandler moves an order along the driver-controlled
// part of the lifecycle under a row lock.
type AdvanceStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewAdvanceStatusCommandHandler creates a handler for status advances.
func NewAdvanceStatusCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) AdvanceStatusCommandHandler {
	return AdvanceStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle applies the transition. Only the assigned driver may advance, and
// only along the adjacency of the state machine.
func (h AdvanceStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	if err = aggregate.AdvanceTo(cmd.Actor().ID(), cmd.Target()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.Publish(ctx, ports.Event{
		Kind:        ports.EventStatusChanged,
		OrderNumber: cmd.OrderNumber(),
		ActorID:     cmd.Actor().ID(),
		Status:      aggregate.Status(),
		OccurredAt:  time.Now().UTC(),
	})

	return nil
}
