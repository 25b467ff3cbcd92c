package commands

import (
	"errors"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is a request to cancel an order. The owning customer
// and admins may cancel; the handler enforces ownership.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	act         actor.Actor
	orderNumber kernel.OrderNumber

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates the command.
func NewCancelOrderCommand(act actor.Actor, orderNumber kernel.OrderNumber) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		act.Validate(),
		orderNumber.Validate(),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	cmd.act = act
	cmd.orderNumber = orderNumber
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// Actor returns the acting user.
func (c CancelOrderCommand) Actor() actor.Actor {
	return c.act
}

// OrderNumber returns the target order.
func (c CancelOrderCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}
