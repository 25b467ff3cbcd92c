package commands

import (
	"errors"
	"time"

	"valet/internal/pkg/errs"
	"valet/internal/pkg/guard"
)

var ErrPromoteScheduledCommandIsNotConstructed = errors.New(
	"PromoteScheduledCommand must be created via NewPromoteScheduledCommand constructor",
)

// PromoteScheduledCommand moves scheduled reservations whose pickup window
// has opened into the searching status, making them visible in the driver
// pool. Issued periodically by the promotion job.
type PromoteScheduledCommand struct { //nolint:recvcheck //using for validation
	deadline time.Time

	guard guard.ConstructorGuard
}

// NewPromoteScheduledCommand creates the command. Orders with a pickup time
// before the deadline are promoted.
func NewPromoteScheduledCommand(deadline time.Time) (PromoteScheduledCommand, error) {
	if deadline.IsZero() {
		return PromoteScheduledCommand{}, errs.NewValueIsRequiredError("deadline")
	}
	return PromoteScheduledCommand{
		deadline: deadline,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PromoteScheduledCommand) Validate() error {
	return c.guard.Validate(ErrPromoteScheduledCommandIsNotConstructed)
}

// Deadline returns the pickup-time cutoff.
func (c PromoteScheduledCommand) Deadline() time.Time {
	return c.deadline
}
