// Package actor models the authenticated caller of every engine operation.
// The identity provider resolves a request to an Actor; command handlers
// perform a uniform role check at their entry instead of scattering
// per-endpoint conditionals.
package actor

import (
	"fmt"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/errs"
)

// Role is the coarse authorization level of an actor.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer may create, view, update and cancel their own orders
	// and raise emergency alerts.
	RoleCustomer

	// RoleDriver may browse the job pool, claim orders and advance the
	// status of orders assigned to them.
	RoleDriver

	// RoleAdmin may override assignment and resolve emergency alerts.
	RoleAdmin
)

func roleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleDriver:   "driver",
		RoleAdmin:    "admin",
	}
}

// ParseRole converts the wire form ("customer", "driver", "admin") to a Role.
func ParseRole(s string) (Role, error) {
	for r, str := range roleStrings() {
		if r != RoleUnknown && str == s {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a known role", s))
}

// String returns the wire form of the role.
func (r Role) String() string {
	if s, ok := roleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleDriver && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor creates an Actor after validating both identity and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the actor's identity.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor holds the given role.
func (a Actor) Is(role Role) bool {
	return a.role == role
}

// Validate checks the actor carries a constructed identity and a valid role.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}
