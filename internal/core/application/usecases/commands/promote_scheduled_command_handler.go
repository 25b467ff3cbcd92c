package commands

import (
	"context"
)

// PromoteScheduledCommandHandler promotes due reservations into the
// searching status in one transaction. Orders admin-assigned between the
// fetch and the promotion are skipped rather than failing the batch.
type PromoteScheduledCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPromoteScheduledCommandHandler creates a handler for the promotion job.
func NewPromoteScheduledCommandHandler(uowFactory OrderUoWFactory) PromoteScheduledCommandHandler {
	return PromoteScheduledCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle promotes every due order and returns how many were moved.
func (h PromoteScheduledCommandHandler) Handle(ctx context.Context, cmd PromoteScheduledCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	due, err := orderRepo.GetDueForSearch(ctx, cmd.Deadline())
	if err != nil {
		return 0, err
	}

	promoted := 0
	for _, aggregate := range due {
		if err = aggregate.StartSearch(); err != nil {
			continue
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
		promoted++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return promoted, nil
}
