package commands

import (
	"context"

	"valet/internal/core/domain/model/actor"
)

// UpdateOrderCommandHandler replaces an order's content while it is still
// editable. Once a driver is involved the aggregate rejects the edit.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderCommandHandler creates a handler for content updates.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle replaces the route, pickup time and fare. Only the owning customer
// or an admin may edit.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
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

	if err = aggregate.UpdateContent(cmd.Route(), cmd.PickupTime(), cmd.Fare()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
