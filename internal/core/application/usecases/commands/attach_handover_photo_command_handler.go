package commands

import (
	"context"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
)

// AttachHandoverPhotoCommandHandler stores handover photos, superseding any
// earlier photo of the same side.
type AttachHandoverPhotoCommandHandler struct {
	uowFactory PhotoUoWFactory
}

// NewAttachHandoverPhotoCommandHandler creates a handler for handover photos.
func NewAttachHandoverPhotoCommandHandler(uowFactory PhotoUoWFactory) AttachHandoverPhotoCommandHandler {
	return AttachHandoverPhotoCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the photo. Only the assigned driver may attach photos.
func (h AttachHandoverPhotoCommandHandler) Handle(ctx context.Context, cmd AttachHandoverPhotoCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}
	if !aggregate.IsDriver(cmd.Actor().ID()) {
		return ErrPermissionDenied
	}

	photo, err := order.NewHandoverPhoto(kernel.NewUUID(), cmd.OrderNumber(), cmd.Side(), cmd.URL())
	if err != nil {
		return err
	}

	if err = uow.PhotoRepository().Replace(ctx, photo); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
