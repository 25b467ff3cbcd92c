package queries

import (
	"errors"

	"valet/internal/core/domain/model/actor"
	"valet/internal/pkg/guard"
)

var (
	ErrListAlertsQueryIsNotConstructed = errors.New(
		"ListAlertsQuery must be created via NewListAlertsQuery constructor",
	)
	ErrActorIsNotAdmin = errors.New("acting user is not an admin")
)

// ListAlertsQuery lists emergency alerts for the admin dashboard, optionally
// filtered to unresolved ones.
type ListAlertsQuery struct { //nolint:recvcheck //using for validation
	act            actor.Actor
	unresolvedOnly bool

	guard guard.ConstructorGuard
}

// NewListAlertsQuery creates the query. Admin only.
func NewListAlertsQuery(act actor.Actor, unresolvedOnly bool) (ListAlertsQuery, error) {
	if err := act.Validate(); err != nil {
		return ListAlertsQuery{}, err
	}
	if !act.Is(actor.RoleAdmin) {
		return ListAlertsQuery{}, ErrActorIsNotAdmin
	}

	return ListAlertsQuery{
		act:            act,
		unresolvedOnly: unresolvedOnly,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListAlertsQuery) Validate() error {
	return q.guard.Validate(ErrListAlertsQueryIsNotConstructed)
}

// Actor returns the requesting admin.
func (q ListAlertsQuery) Actor() actor.Actor {
	return q.act
}

// UnresolvedOnly reports whether resolved alerts are filtered out.
func (q ListAlertsQuery) UnresolvedOnly() bool {
	return q.unresolvedOnly
}
