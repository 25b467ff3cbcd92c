package commands

import (
	"errors"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"
	"valet/internal/pkg/guard"
)

var ErrAttachHandoverPhotoCommandIsNotConstructed = errors.New(
	"AttachHandoverPhotoCommand must be created via NewAttachHandoverPhotoCommand constructor",
)

// AttachHandoverPhotoCommand records a vehicle condition photo taken by the
// driver at handover. One photo per side; resubmitting a side replaces it.
type AttachHandoverPhotoCommand struct { //nolint:recvcheck //using for validation
	act         actor.Actor
	orderNumber kernel.OrderNumber
	side        order.PhotoSide
	url         string

	guard guard.ConstructorGuard
}

// NewAttachHandoverPhotoCommand creates the command. The acting user must be
// a driver; whether they hold the order is checked by the handler.
func NewAttachHandoverPhotoCommand(
	act actor.Actor,
	orderNumber kernel.OrderNumber,
	side order.PhotoSide,
	url string,
) (AttachHandoverPhotoCommand, error) {
	cmd := AttachHandoverPhotoCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		act.Validate(),
		orderNumber.Validate(),
		side.Validate(),
	); err != nil {
		return AttachHandoverPhotoCommand{}, err
	}
	if url == "" {
		return AttachHandoverPhotoCommand{}, errs.NewValueIsRequiredError("photo url")
	}
	if !act.Is(actor.RoleDriver) {
		return AttachHandoverPhotoCommand{}, ErrActorIsNotDriver
	}

	cmd.act = act
	cmd.orderNumber = orderNumber
	cmd.side = side
	cmd.url = url
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachHandoverPhotoCommand) Validate() error {
	return c.guard.Validate(ErrAttachHandoverPhotoCommandIsNotConstructed)
}

// Actor returns the acting driver.
func (c AttachHandoverPhotoCommand) Actor() actor.Actor {
	return c.act
}

// OrderNumber returns the target order.
func (c AttachHandoverPhotoCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// Side returns the vehicle side the photo shows.
func (c AttachHandoverPhotoCommand) Side() order.PhotoSide {
	return c.side
}

// URL returns where the uploaded photo is stored.
func (c AttachHandoverPhotoCommand) URL() string {
	return c.url
}
