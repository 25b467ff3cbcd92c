package commands

import (
	"errors"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/guard"
)

var (
	ErrAcceptJobCommandIsNotConstructed = errors.New(
		"AcceptJobCommand must be created via NewAcceptJobCommand constructor",
	)
	ErrActorIsNotDriver = errors.New("acting user is not a driver")
)

// AcceptJobCommand is a driver's request to take an order from the pool, or
// to confirm an admin assignment addressed to them.
type AcceptJobCommand struct { //nolint:recvcheck //using for validation
	act         actor.Actor
	orderNumber kernel.OrderNumber

	guard guard.ConstructorGuard
}

// NewAcceptJobCommand creates the command. The acting user must be a driver.
func NewAcceptJobCommand(act actor.Actor, orderNumber kernel.OrderNumber) (AcceptJobCommand, error) {
	cmd := AcceptJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		act.Validate(),
		orderNumber.Validate(),
	); err != nil {
		return AcceptJobCommand{}, err
	}
	if !act.Is(actor.RoleDriver) {
		return AcceptJobCommand{}, ErrActorIsNotDriver
	}

	cmd.act = act
	cmd.orderNumber = orderNumber
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptJobCommand) Validate() error {
	return c.guard.Validate(ErrAcceptJobCommandIsNotConstructed)
}

// Actor returns the claiming driver.
func (c AcceptJobCommand) Actor() actor.Actor {
	return c.act
}

// OrderNumber returns the target order.
func (c AcceptJobCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}
