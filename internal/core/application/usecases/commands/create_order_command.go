package commands

import (
	"errors"
	"time"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"
	"valet/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand is a request to create a new order. The acting user
// becomes the owner; a driver creating an order is self-assigned to it.
// The service is referenced either by catalog id or by slug.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	act         actor.Actor
	serviceID   kernel.UUID
	serviceSlug string
	route       order.Route
	pickupTime  time.Time
	fare        order.Fare
	invoiceID   *kernel.UUID
	emergency   *order.Contact

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command referencing the service by id.
func NewCreateOrderCommand(
	act actor.Actor,
	serviceID kernel.UUID,
	route order.Route,
	pickupTime time.Time,
	fare order.Fare,
) (CreateOrderCommand, error) {
	if err := serviceID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd, err := newCreateOrderCommand(act, route, pickupTime, fare)
	if err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.serviceID = serviceID
	return cmd, nil
}

// NewCreateOrderCommandBySlug creates a command referencing the service by
// its catalog slug.
func NewCreateOrderCommandBySlug(
	act actor.Actor,
	serviceSlug string,
	route order.Route,
	pickupTime time.Time,
	fare order.Fare,
) (CreateOrderCommand, error) {
	if serviceSlug == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("service slug")
	}

	cmd, err := newCreateOrderCommand(act, route, pickupTime, fare)
	if err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.serviceSlug = serviceSlug
	return cmd, nil
}

func newCreateOrderCommand(
	act actor.Actor,
	route order.Route,
	pickupTime time.Time,
	fare order.Fare,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		act.Validate(),
		route.Validate(),
		fare.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	if pickupTime.IsZero() {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("pickup time")
	}

	cmd.act = act
	cmd.route = route
	cmd.pickupTime = pickupTime
	cmd.fare = fare
	return cmd, nil
}

// WithInvoice returns a copy of the command carrying an up-front invoice
// reference for the order.
func (c CreateOrderCommand) WithInvoice(invoiceID kernel.UUID) (CreateOrderCommand, error) {
	if err := invoiceID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	c.invoiceID = &invoiceID
	return c, nil
}

// WithEmergencyContact returns a copy of the command carrying an emergency
// contact to record on the order.
func (c CreateOrderCommand) WithEmergencyContact(contact order.Contact) CreateOrderCommand {
	c.emergency = &contact
	return c
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Actor returns the acting user.
func (c CreateOrderCommand) Actor() actor.Actor {
	return c.act
}

// ServiceID returns the service catalog reference. Zero when the command
// references the service by slug.
func (c CreateOrderCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

// ServiceSlug returns the service slug, or "" when the command references
// the service by id.
func (c CreateOrderCommand) ServiceSlug() string {
	return c.serviceSlug
}

// Route returns the requested route.
func (c CreateOrderCommand) Route() order.Route {
	return c.route
}

// PickupTime returns the requested pickup time.
func (c CreateOrderCommand) PickupTime() time.Time {
	return c.pickupTime
}

// Fare returns the order fare figures.
func (c CreateOrderCommand) Fare() order.Fare {
	return c.fare
}

// InvoiceID returns the optional invoice reference.
func (c CreateOrderCommand) InvoiceID() *kernel.UUID {
	return c.invoiceID
}

// EmergencyContact returns the optional emergency contact.
func (c CreateOrderCommand) EmergencyContact() *order.Contact {
	return c.emergency
}
