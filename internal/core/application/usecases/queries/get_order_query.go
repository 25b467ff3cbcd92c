package queries

import (
	"errors"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order as a full view including stops. Only the
// owner, the assigned driver and admins may see an order.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	act         actor.Actor
	orderNumber kernel.OrderNumber

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates the query.
func NewGetOrderQuery(act actor.Actor, orderNumber kernel.OrderNumber) (GetOrderQuery, error) {
	q := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		act.Validate(),
		orderNumber.Validate(),
	); err != nil {
		return GetOrderQuery{}, err
	}

	q.act = act
	q.orderNumber = orderNumber
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Actor returns the requesting user.
func (q GetOrderQuery) Actor() actor.Actor {
	return q.act
}

// OrderNumber returns the requested order.
func (q GetOrderQuery) OrderNumber() kernel.OrderNumber {
	return q.orderNumber
}
