package commands

import (
	"errors"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/guard"
)

var (
	ErrAssignDriverCommandIsNotConstructed = errors.New(
		"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
	)
	ErrActorIsNotAdmin = errors.New("acting user is not an admin")
)

// AssignDriverCommand is the admin override: put a specific driver (and
// optionally a vehicle) on an order, bypassing the pool.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	act         actor.Actor
	orderNumber kernel.OrderNumber
	driverID    kernel.UUID
	vehicleID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates the command. Only admins may assign;
// vehicleID is optional.
func NewAssignDriverCommand(
	act actor.Actor,
	orderNumber kernel.OrderNumber,
	driverID kernel.UUID,
	vehicleID *kernel.UUID,
) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		act.Validate(),
		orderNumber.Validate(),
		driverID.Validate(),
	); err != nil {
		return AssignDriverCommand{}, err
	}
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return AssignDriverCommand{}, err
		}
	}
	if !act.Is(actor.RoleAdmin) {
		return AssignDriverCommand{}, ErrActorIsNotAdmin
	}

	cmd.act = act
	cmd.orderNumber = orderNumber
	cmd.driverID = driverID
	cmd.vehicleID = vehicleID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// Actor returns the acting admin.
func (c AssignDriverCommand) Actor() actor.Actor {
	return c.act
}

// OrderNumber returns the target order.
func (c AssignDriverCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// DriverID returns the driver being assigned.
func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// VehicleID returns the vehicle being assigned, nil when none.
func (c AssignDriverCommand) VehicleID() *kernel.UUID {
	return c.vehicleID
}
