package commands

import (
	"errors"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/guard"
)

var ErrRaiseAlertCommandIsNotConstructed = errors.New(
	"RaiseAlertCommand must be created via NewRaiseAlertCommand constructor",
)

// RaiseAlertCommand records an emergency alert on an order at the raiser's
// current position.
type RaiseAlertCommand struct { //nolint:recvcheck //using for validation
	act         actor.Actor
	orderNumber kernel.OrderNumber
	point       kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewRaiseAlertCommand creates the command.
func NewRaiseAlertCommand(
	act actor.Actor,
	orderNumber kernel.OrderNumber,
	point kernel.GeoPoint,
) (RaiseAlertCommand, error) {
	cmd := RaiseAlertCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		act.Validate(),
		orderNumber.Validate(),
		point.Validate(),
	); err != nil {
		return RaiseAlertCommand{}, err
	}

	cmd.act = act
	cmd.orderNumber = orderNumber
	cmd.point = point
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RaiseAlertCommand) Validate() error {
	return c.guard.Validate(ErrRaiseAlertCommandIsNotConstructed)
}

// Actor returns the raising user.
func (c RaiseAlertCommand) Actor() actor.Actor {
	return c.act
}

// OrderNumber returns the order the alert belongs to.
func (c RaiseAlertCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// Point returns the raiser's position.
func (c RaiseAlertCommand) Point() kernel.GeoPoint {
	return c.point
}
