package commands

import (
	"context"
	"time"

	"valet/internal/core/ports"
)

// AcceptJobCommandHandler arbitrates the driver claim race. It loads the
// order under a row lock, so when several drivers tap "accept" at once their
// transactions serialize: the first commits the claim and every later one
// sees the recorded driver and fails with order.ErrAlreadyTaken.
type AcceptJobCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewAcceptJobCommandHandler creates a handler for driver claims.
func NewAcceptJobCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) AcceptJobCommandHandler {
	return AcceptJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the claim. A repeat accept by the driver who already
// holds the order succeeds without a second event.
func (h AcceptJobCommandHandler) Handle(ctx context.Context, cmd AcceptJobCommand) error {
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

	before := aggregate.Status()
	if err = aggregate.Claim(cmd.Actor().ID()); err != nil {
		return err
	}
	if aggregate.Status() == before {
		// idempotent re-accept, nothing to persist
		return uow.Commit(ctx)
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.Publish(ctx, ports.Event{
		Kind:        ports.EventJobClaimed,
		OrderNumber: cmd.OrderNumber(),
		ActorID:     cmd.Actor().ID(),
		Status:      aggregate.Status(),
		OccurredAt:  time.Now().UTC(),
	})

	return nil
}
