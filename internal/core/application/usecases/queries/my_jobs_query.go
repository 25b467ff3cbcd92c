package queries

import (
	"errors"

	"valet/internal/core/domain/model/actor"
	"valet/internal/pkg/guard"
)

var ErrMyJobsQueryIsNotConstructed = errors.New(
	"MyJobsQuery must be created via NewMyJobsQuery constructor",
)

// MyJobsQuery lists a driver's running jobs: orders they hold that have not
// reached a terminal status.
type MyJobsQuery struct { //nolint:recvcheck //using for validation
	act actor.Actor

	guard guard.ConstructorGuard
}

// NewMyJobsQuery creates the query. Drivers only.
func NewMyJobsQuery(act actor.Actor) (MyJobsQuery, error) {
	if err := act.Validate(); err != nil {
		return MyJobsQuery{}, err
	}
	if !act.Is(actor.RoleDriver) {
		return MyJobsQuery{}, ErrActorIsNotDriver
	}

	return MyJobsQuery{
		act:   act,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q MyJobsQuery) Validate() error {
	return q.guard.Validate(ErrMyJobsQueryIsNotConstructed)
}

// Actor returns the requesting driver.
func (q MyJobsQuery) Actor() actor.Actor {
	return q.act
}
