package commands

import (
	"errors"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/guard"
)

var ErrAdvanceStatusCommandIsNotConstructed = errors.New(
	"AdvanceStatusCommand must be created via NewAdvanceStatusCommand constructor",
)

// AdvanceStatusCommand is a driver's request to move their order one step
// forward: on the way, drive started, or completed.
type AdvanceStatusCommand struct { //nolint:recvcheck //using for validation
	act         actor.Actor
	orderNumber kernel.OrderNumber
	target      order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceStatusCommand creates the command. The acting user must be a
// driver; whether they hold this particular order is checked by the handler
// against the stored aggregate.
func NewAdvanceStatusCommand(
	act actor.Actor,
	orderNumber kernel.OrderNumber,
	target order.Status,
) (AdvanceStatusCommand, error) {
	cmd := AdvanceStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		act.Validate(),
		orderNumber.Validate(),
		target.Validate(),
	); err != nil {
		return AdvanceStatusCommand{}, err
	}
	if !act.Is(actor.RoleDriver) {
		return AdvanceStatusCommand{}, ErrActorIsNotDriver
	}

	cmd.act = act
	cmd.orderNumber = orderNumber
	cmd.target = target
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStatusCommandIsNotConstructed)
}

// Actor returns the acting driver.
func (c AdvanceStatusCommand) Actor() actor.Actor {
	return c.act
}

// OrderNumber returns the target order.
func (c AdvanceStatusCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// Target returns the requested status.
func (c AdvanceStatusCommand) Target() order.Status {
	return c.target
}
