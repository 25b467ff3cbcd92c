package queries

import (
	"errors"

	"valet/internal/core/domain/model/actor"
	"valet/internal/pkg/guard"
)

var (
	ErrJobPoolQueryIsNotConstructed = errors.New(
		"JobPoolQuery must be created via NewJobPoolQuery constructor",
	)
	ErrActorIsNotDriver = errors.New("acting user is not a driver")
)

// JobPoolQuery lists claimable orders for drivers: searching orders without
// a driver, oldest request first.
type JobPoolQuery struct { //nolint:recvcheck //using for validation
	act actor.Actor

	guard guard.ConstructorGuard
}

// NewJobPoolQuery creates the query. Drivers only.
func NewJobPoolQuery(act actor.Actor) (JobPoolQuery, error) {
	if err := act.Validate(); err != nil {
		return JobPoolQuery{}, err
	}
	if !act.Is(actor.RoleDriver) {
		return JobPoolQuery{}, ErrActorIsNotDriver
	}

	return JobPoolQuery{
		act:   act,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q JobPoolQuery) Validate() error {
	return q.guard.Validate(ErrJobPoolQueryIsNotConstructed)
}

// Actor returns the requesting driver.
func (q JobPoolQuery) Actor() actor.Actor {
	return q.act
}
