package commands

import (
	"context"
)

// ResolveAlertCommandHandler flips the resolved flag of an alert. Setting
// the flag to its current value is a no-op, so repeated resolve calls are
// safe.
type ResolveAlertCommandHandler struct {
	uowFactory AlertUoWFactory
}

// NewResolveAlertCommandHandler creates a handler for alert resolution.
func NewResolveAlertCommandHandler(uowFactory AlertUoWFactory) ResolveAlertCommandHandler {
	return ResolveAlertCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the requested flag value.
func (h ResolveAlertCommandHandler) Handle(ctx context.Context, cmd ResolveAlertCommand) error {
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

	alertRepo := uow.AlertRepository()
	alert, err := alertRepo.Get(ctx, cmd.AlertID())
	if err != nil {
		return err
	}

	if cmd.Resolved() {
		alert.Resolve()
	} else {
		alert.Unresolve()
	}

	if err = alertRepo.Update(ctx, alert); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
