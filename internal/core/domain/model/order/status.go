package order

import (
	"errors"
	"fmt"

	"valet/internal/pkg/errs"
)

// Conflict sentinels surfaced to callers as 400 responses with a reason code.
// They classify state-machine violations; callers may re-fetch and retry, the
// engine never retries on their behalf.
var (
	// ErrIllegalTransition is returned when the requested status is not the
	// legal next step from the current status.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrAlreadyTaken is returned when a driver tries to claim an order that is
	// already held by a different driver.
	ErrAlreadyTaken = errors.New("order already taken by another driver")

	// ErrNotCancellable is returned when cancellation is requested in a
	// terminal or in-progress state.
	ErrNotCancellable = errors.New("order can no longer be cancelled")

	// ErrNotAssignedDriver is returned when a status advance is attempted by
	// anyone other than the order's assigned driver.
	ErrNotAssignedDriver = errors.New("actor is not the assigned driver")
)

// Status represents the lifecycle state of an order. It implements a state
// machine with a fixed adjacency table; every transition goes through
// TransitionTo so no caller can skip steps.
//
// State transitions:
//
//	scheduled ──> searching ──┬──> assigned ──> accepted ──> on_way ──> in_progress ──> completed
//	     │             │      │        ^            │           │             │
//	     └─────────────┴──────┘        └────────────┘           └── completed ┘
//
// cancelled is reachable from every non-terminal state except in_progress.
// The two-step acceptance flow is used: a claim lands in accepted and a
// separate on-way step follows (see DESIGN.md for the flow decision).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Scheduled is the initial status of a customer reservation.
	Scheduled

	// Searching marks a reservation whose pickup window is near; the order is
	// shown with priority in the driver job pool.
	Searching

	// Assigned indicates an admin attached a driver to the order. The driver
	// still has to accept before progressing.
	Assigned

	// Accepted indicates the driver claimed or confirmed the job.
	Accepted

	// OnWay indicates the driver is heading to the pickup point.
	OnWay

	// InProgress indicates the drive has started.
	InProgress

	// Completed is a terminal state: the job finished successfully.
	Completed

	// Cancelled is a terminal state: the customer withdrew the order.
	Cancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Scheduled:  "scheduled",
		Searching:  "searching",
		Assigned:   "assigned",
		Accepted:   "accepted",
		OnWay:      "on_way",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

func statusLabels() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Scheduled:  "Scheduled",
		Searching:  "Searching for driver",
		Assigned:   "Driver assigned",
		Accepted:   "Accepted",
		OnWay:      "Driver on the way",
		InProgress: "In progress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// adjacency is the fixed transition table. A target absent from the current
// status' row is an illegal transition, no exceptions.
func adjacency() map[Status][]Status {
	return map[Status][]Status{
		Scheduled:  {Searching, Assigned, Accepted, Cancelled},
		Searching:  {Assigned, Accepted, Cancelled},
		Assigned:   {Assigned, Accepted, Cancelled},
		Accepted:   {Assigned, OnWay, Completed, Cancelled},
		OnWay:      {InProgress, Completed, Cancelled},
		InProgress: {Completed},
		Completed:  {},
		Cancelled:  {},
	}
}

// StatusFromString converts the persisted wire form back to a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// String returns the snake_case wire form used in persistence and JSON.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Label returns the human-readable form used by read-model projections.
func (s Status) Label() string {
	if l, ok := statusLabels()[s]; ok {
		return l
	}
	return "Unknown"
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := adjacency()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsActive reports whether the order is in a non-terminal state, used as the
// derived "active" view field and by the active/history listing split.
func (s Status) IsActive() bool {
	return !s.IsTerminal() && s != Unknown
}

// CanTransitionTo reports whether target is a legal next step.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range adjacency()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the move is in the adjacency
// table, or ErrIllegalTransition describing the rejected pair otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s, target)
	}
	return target, nil
}
