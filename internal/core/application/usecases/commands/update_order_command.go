package commands

import (
	"errors"
	"time"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"
	"valet/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand is a full replacement of an order's customer-owned
// content: route, pickup time and fare. Partial edits are expressed by
// resubmitting the unchanged parts.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	act         actor.Actor
	orderNumber kernel.OrderNumber
	route       order.Route
	pickupTime  time.Time
	fare        order.Fare

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates the command with pre-validated content.
func NewUpdateOrderCommand(
	act actor.Actor,
	orderNumber kernel.OrderNumber,
	route order.Route,
	pickupTime time.Time,
	fare order.Fare,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		act.Validate(),
		orderNumber.Validate(),
		route.Validate(),
		fare.Validate(),
	); err != nil {
		return UpdateOrderCommand{}, err
	}
	if pickupTime.IsZero() {
		return UpdateOrderCommand{}, errs.NewValueIsRequiredError("pickup time")
	}

	cmd.act = act
	cmd.orderNumber = orderNumber
	cmd.route = route
	cmd.pickupTime = pickupTime
	cmd.fare = fare
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// Actor returns the acting user.
func (c UpdateOrderCommand) Actor() actor.Actor {
	return c.act
}

// OrderNumber returns the target order.
func (c UpdateOrderCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// Route returns the replacement route.
func (c UpdateOrderCommand) Route() order.Route {
	return c.route
}

// PickupTime returns the replacement pickup time.
func (c UpdateOrderCommand) PickupTime() time.Time {
	return c.pickupTime
}

// Fare returns the replacement fare figures.
func (c UpdateOrderCommand) Fare() order.Fare {
	return c.fare
}
