package commands

import (
	"context"
	"time"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order under a row lock, so a cancel
// racing against a driver claim resolves in a serial order: whoever commits
// first wins and the loser sees the updated state.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle cancels the order. Only the owning customer or an admin may cancel;
// orders with a started drive or in a terminal state are rejected by the
// aggregate with order.ErrNotCancellable.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if !cmd.Actor().Is(actor.RoleAdmin) && !aggregate.IsOwnedBy(cmd.Actor().ID()) {
		return ErrPermissionDenied
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.Publish(ctx, ports.Event{
		Kind:        ports.EventOrderCancelled,
		OrderNumber: cmd.OrderNumber(),
		ActorID:     cmd.Actor().ID(),
		Status:      aggregate.Status(),
		OccurredAt:  time.Now().UTC(),
	})

	return nil
}
