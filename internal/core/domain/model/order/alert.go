package order

import (
	"errors"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/guard"
)

// ErrEmergencyAlertIsNotConstructed indicates a zero-value EmergencyAlert.
var ErrEmergencyAlertIsNotConstructed = errors.New(
	"EmergencyAlert must be created via NewEmergencyAlert or RestoreEmergencyAlert")

// EmergencyAlert is raised by the affected party during an active order and
// independently resolved by an admin. An order has an active emergency when
// at least one of its alerts is unresolved. Alerts are never deleted.
type EmergencyAlert struct {
	id          kernel.UUID
	orderNumber kernel.OrderNumber
	userID      kernel.UUID
	point       kernel.GeoPoint
	resolved    bool
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewEmergencyAlert creates an unresolved alert at the raiser's position.
func NewEmergencyAlert(
	id kernel.UUID,
	orderNumber kernel.OrderNumber,
	userID kernel.UUID,
	point kernel.GeoPoint,
) (*EmergencyAlert, error) {
	if err := errors.Join(
		id.Validate(),
		orderNumber.Validate(),
		userID.Validate(),
		point.Validate(),
	); err != nil {
		return nil, err
	}

	return &EmergencyAlert{
		id:          id,
		orderNumber: orderNumber,
		userID:      userID,
		point:       point,
		createdAt:   time.Now().UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreEmergencyAlert reconstructs an alert from persistence.
func RestoreEmergencyAlert(
	id kernel.UUID,
	orderNumber kernel.OrderNumber,
	userID kernel.UUID,
	point kernel.GeoPoint,
	resolved bool,
	createdAt time.Time,
) (*EmergencyAlert, error) {
	alert, err := NewEmergencyAlert(id, orderNumber, userID, point)
	if err != nil {
		return nil, err
	}

	alert.resolved = resolved
	alert.createdAt = createdAt
	return alert, nil
}

// Validate ensures the alert was created through a constructor.
func (a *EmergencyAlert) Validate() error {
	if a == nil {
		return ErrEmergencyAlertIsNotConstructed
	}
	return a.guard.Validate(ErrEmergencyAlertIsNotConstructed)
}

// ID returns the alert's identifier.
func (a *EmergencyAlert) ID() kernel.UUID {
	return a.id
}

// OrderNumber returns the parent order reference.
func (a *EmergencyAlert) OrderNumber() kernel.OrderNumber {
	return a.orderNumber
}

// UserID returns the user who raised the alert.
func (a *EmergencyAlert) UserID() kernel.UUID {
	return a.userID
}

// Point returns the position the alert was raised from.
func (a *EmergencyAlert) Point() kernel.GeoPoint {
	return a.point
}

// IsResolved reports whether an admin marked the alert handled.
func (a *EmergencyAlert) IsResolved() bool {
	return a.resolved
}

// CreatedAt returns the raise timestamp.
func (a *EmergencyAlert) CreatedAt() time.Time {
	return a.createdAt
}

// Resolve marks the alert handled. Re-resolving is harmless.
func (a *EmergencyAlert) Resolve() {
	a.resolved = true
}

// Unresolve reopens the alert.
func (a *EmergencyAlert) Unresolve() {
	a.resolved = false
}
