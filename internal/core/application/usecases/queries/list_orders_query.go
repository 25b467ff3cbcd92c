package queries

import (
	"errors"

	"valet/internal/core/domain/model/actor"
	"valet/internal/pkg/errs"
	"valet/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderGroup splits listings into running and finished orders.
type OrderGroup string

const (
	// GroupActive covers every non-terminal status.
	GroupActive OrderGroup = "active"
	// GroupHistory covers completed and cancelled orders.
	GroupHistory OrderGroup = "history"
)

// Validate checks the group is one of the known values.
func (g OrderGroup) Validate() error {
	switch g {
	case GroupActive, GroupHistory:
		return nil
	default:
		return errs.NewValueIsInvalidError("order group")
	}
}

// ListOrdersQuery lists the requesting user's orders in one group.
// Customers and drivers see orders they are a party on; admins see all.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	act   actor.Actor
	group OrderGroup

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates the query.
func NewListOrdersQuery(act actor.Actor, group OrderGroup) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		act.Validate(),
		group.Validate(),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	q.act = act
	q.group = group
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns the requesting user.
func (q ListOrdersQuery) Actor() actor.Actor {
	return q.act
}

// Group returns the requested group.
func (q ListOrdersQuery) Group() OrderGroup {
	return q.group
}
