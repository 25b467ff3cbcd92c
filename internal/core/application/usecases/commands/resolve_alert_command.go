package commands

import (
	"errors"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/guard"
)

var ErrResolveAlertCommandIsNotConstructed = errors.New(
	"ResolveAlertCommand must be created via NewResolveAlertCommand constructor",
)

// ResolveAlertCommand sets or clears the resolved flag of an emergency
// alert. Admin only.
type ResolveAlertCommand struct { //nolint:recvcheck //using for validation
	act      actor.Actor
	alertID  kernel.UUID
	resolved bool

	guard guard.ConstructorGuard
}

// NewResolveAlertCommand creates the command.
func NewResolveAlertCommand(act actor.Actor, alertID kernel.UUID, resolved bool) (ResolveAlertCommand, error) {
	cmd := ResolveAlertCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		act.Validate(),
		alertID.Validate(),
	); err != nil {
		return ResolveAlertCommand{}, err
	}
	if !act.Is(actor.RoleAdmin) {
		return ResolveAlertCommand{}, ErrActorIsNotAdmin
	}

	cmd.act = act
	cmd.alertID = alertID
	cmd.resolved = resolved
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveAlertCommand) Validate() error {
	return c.guard.Validate(ErrResolveAlertCommandIsNotConstructed)
}

// Actor returns the acting admin.
func (c ResolveAlertCommand) Actor() actor.Actor {
	return c.act
}

// AlertID returns the target alert.
func (c ResolveAlertCommand) AlertID() kernel.UUID {
	return c.alertID
}

// Resolved returns the desired flag value.
func (c ResolveAlertCommand) Resolved() bool {
	return c.resolved
}
