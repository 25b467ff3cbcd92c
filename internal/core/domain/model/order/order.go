package order

import (
	"errors"
	"fmt"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/errs"
	"valet/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the valet order lifecycle. It owns the
// status state machine and the driver-assignment arbitration rules; every
// mutation goes through a behavior method that enforces them.
//
// Invariants:
//   - The order number, owning customer and service reference are immutable
//   - At most one driver is recorded at any time; claims by a second driver
//     fail with ErrAlreadyTaken
//   - Status changes follow the adjacency table in status.go
//   - licensePlate mirrors the assigned vehicle's plate whenever a vehicle is
//     set; a manually entered plate survives the vehicle being cleared
//
// Orders are mutated under an order-scoped store lock (see the repository's
// GetForUpdate); the aggregate itself is not safe for concurrent use.
type Order struct {
	number     kernel.OrderNumber
	customerID kernel.UUID
	serviceID  kernel.UUID
	driverID   *kernel.UUID
	vehicleID  *kernel.UUID

	status     Status
	route      Route
	pickupTime time.Time
	fare       Fare

	licensePlate string
	manualPlate  string
	invoiceID    *kernel.UUID
	emergency    *Contact

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a customer reservation in the scheduled status.
// The number must come from the store's sequence allocator; route, pickup
// time and fare are the caller-supplied order content.
func NewOrder(
	number kernel.OrderNumber,
	customerID kernel.UUID,
	serviceID kernel.UUID,
	route Route,
	pickupTime time.Time,
	fare Fare,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:    Scheduled,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setNumber(number),
		o.setCustomerID(customerID),
		o.setServiceID(serviceID),
		o.setRoute(route),
		o.setPickupTime(pickupTime),
		o.setFare(fare),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the flat field set used to reconstruct an order from
// persistence and to write it back. It carries no behavior.
type Snapshot struct {
	Number       kernel.OrderNumber
	CustomerID   kernel.UUID
	ServiceID    kernel.UUID
	DriverID     *kernel.UUID
	VehicleID    *kernel.UUID
	Status       Status
	Route        Route
	PickupTime   time.Time
	Fare         Fare
	LicensePlate string
	ManualPlate  string
	InvoiceID    *kernel.UUID
	Emergency    *Contact
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RestoreOrder reconstructs an order from a persistence snapshot, revalidating
// the identity fields and the status/driver consistency rule: an order in
// assigned or later non-cancelled states must carry a driver.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setNumber(s.Number),
		o.setCustomerID(s.CustomerID),
		o.setServiceID(s.ServiceID),
		o.setRoute(s.Route),
		o.setPickupTime(s.PickupTime),
		o.setFare(s.Fare),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = s.Status
	o.driverID = s.DriverID
	o.vehicleID = s.VehicleID
	o.licensePlate = s.LicensePlate
	o.manualPlate = s.ManualPlate
	o.invoiceID = s.InvoiceID
	o.emergency = s.Emergency
	o.createdAt = s.CreatedAt
	o.updatedAt = s.UpdatedAt

	return o, nil
}

// ToSnapshot exports the order's state for persistence.
func (o *Order) ToSnapshot() Snapshot {
	return Snapshot{
		Number:       o.number,
		CustomerID:   o.customerID,
		ServiceID:    o.serviceID,
		DriverID:     o.driverID,
		VehicleID:    o.vehicleID,
		Status:       o.status,
		Route:        o.route,
		PickupTime:   o.pickupTime,
		Fare:         o.fare,
		LicensePlate: o.licensePlate,
		ManualPlate:  o.manualPlate,
		InvoiceID:    o.invoiceID,
		Emergency:    o.emergency,
		CreatedAt:    o.createdAt,
		UpdatedAt:    o.updatedAt,
	}
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// Number returns the order's business identifier.
func (o *Order) Number() kernel.OrderNumber {
	return o.number
}

// CustomerID returns the owning customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// ServiceID returns the service catalog reference.
func (o *Order) ServiceID() kernel.UUID {
	return o.serviceID
}

// DriverID returns the assigned driver, nil when unassigned.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

// VehicleID returns the assigned vehicle, nil when none is set.
func (o *Order) VehicleID() *kernel.UUID {
	return o.vehicleID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Route returns the pickup/dropoff pair and stops.
func (o *Order) Route() Route {
	return o.route
}

// PickupTime returns the scheduled pickup time.
func (o *Order) PickupTime() time.Time {
	return o.pickupTime
}

// Fare returns the recorded price, distance and duration.
func (o *Order) Fare() Fare {
	return o.fare
}

// LicensePlate returns the denormalized plate, empty when unknown.
func (o *Order) LicensePlate() string {
	return o.licensePlate
}

// InvoiceID returns the linked invoice reference, nil when none.
func (o *Order) InvoiceID() *kernel.UUID {
	return o.invoiceID
}

// EmergencyContact returns the optional emergency contact, nil when none.
func (o *Order) EmergencyContact() *Contact {
	return o.emergency
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsOwnedBy reports whether the given user created the order.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.customerID.IsEqual(userID)
}

// IsDriver reports whether the given user is the assigned driver.
func (o *Order) IsDriver(userID kernel.UUID) bool {
	return o.driverID != nil && o.driverID.IsEqual(userID)
}

// SelfAssign puts a driver-created order directly into the assigned state
// with the creator recorded as its driver. Only valid on a fresh order.
func (o *Order) SelfAssign() error {
	if o.status != Scheduled || o.driverID != nil {
		return errs.NewValueIsInvalidError("order is not freshly created")
	}
	driverID := o.customerID
	o.driverID = &driverID
	o.status = Assigned
	o.touch()
	return nil
}

// Claim records a driver taking the order from the pool, or confirming an
// admin assignment addressed to them. The caller must already hold the
// order-scoped store lock.
//
// Arbitration rules:
//   - a different driver already recorded: ErrAlreadyTaken, no state change
//   - same driver, already accepted: idempotent no-op
//   - same driver, assigned: confirm, advance to accepted
//   - no driver: record the caller and advance to accepted
func (o *Order) Claim(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if o.driverID != nil && !o.driverID.IsEqual(driverID) {
		return ErrAlreadyTaken
	}

	if o.driverID != nil && o.status == Accepted {
		return nil
	}

	newStatus, err := o.status.TransitionTo(Accepted)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	o.touch()
	return nil
}

// driverAdvanceTargets are the forward transitions a driver may request.
func driverAdvanceTargets() map[Status]bool {
	return map[Status]bool{
		OnWay:      true,
		InProgress: true,
		Completed:  true,
	}
}

// AdvanceTo moves the order one step forward on behalf of its assigned
// driver. Any other caller gets ErrNotAssignedDriver; a target outside the
// adjacency table gets ErrIllegalTransition and leaves the status unchanged.
func (o *Order) AdvanceTo(driverID kernel.UUID, target Status) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if !o.IsDriver(driverID) {
		return ErrNotAssignedDriver
	}
	if !driverAdvanceTargets()[target] {
		return fmt.Errorf("%w: %s is not a driver-controlled step", ErrIllegalTransition, target)
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Cancel moves the order to the cancelled terminal state. Cancellation is
// rejected once the drive has started or the order already terminated.
func (o *Order) Cancel() error {
	if o.status == Completed || o.status == Cancelled || o.status == InProgress {
		return ErrNotCancellable
	}

	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// StartSearch promotes a scheduled reservation into the searching status.
// Used by the pickup-window promotion job.
func (o *Order) StartSearch() error {
	newStatus, err := o.status.TransitionTo(Searching)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// AssignDriver is the admin override path: it records (or replaces) the
// driver and puts the order into the assigned status.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	o.touch()
	return nil
}

// AssignVehicle records the vehicle and mirrors its plate onto the order.
func (o *Order) AssignVehicle(vehicleID kernel.UUID, plate string) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	if plate == "" {
		return errs.NewValueIsRequiredError("vehicle plate")
	}

	o.vehicleID = &vehicleID
	o.licensePlate = plate
	o.touch()
	return nil
}

// ClearVehicle removes the vehicle. The plate falls back to the last manually
// entered value, or empty when none was ever provided.
func (o *Order) ClearVehicle() {
	o.vehicleID = nil
	o.licensePlate = o.manualPlate
	o.touch()
}

// SetLicensePlate records a manually entered plate. Rejected while a vehicle
// is set, because the mirrored plate owns the field then.
func (o *Order) SetLicensePlate(plate string) error {
	if o.vehicleID != nil {
		return errs.NewValueIsInvalidError("plate is mirrored from the assigned vehicle")
	}
	o.manualPlate = plate
	o.licensePlate = plate
	o.touch()
	return nil
}

// SetInvoice links an invoice reference to the order.
func (o *Order) SetInvoice(invoiceID kernel.UUID) error {
	if err := invoiceID.Validate(); err != nil {
		return err
	}
	o.invoiceID = &invoiceID
	o.touch()
	return nil
}

// SetEmergencyContact records the optional emergency contact.
func (o *Order) SetEmergencyContact(c Contact) {
	o.emergency = &c
	o.touch()
}

// editableStatuses are the states in which the owning customer may still
// rewrite the order content (route, schedule, fare).
func editableStatuses() map[Status]bool {
	return map[Status]bool{
		Scheduled: true,
		Searching: true,
	}
}

// UpdateContent replaces the customer-owned content fields. Once a driver is
// involved the content is frozen and the update is rejected.
func (o *Order) UpdateContent(route Route, pickupTime time.Time, fare Fare) error {
	if !editableStatuses()[o.status] {
		return fmt.Errorf("%w: content is frozen in %s", ErrIllegalTransition, o.status)
	}

	if err := errors.Join(
		o.setRoute(route),
		o.setPickupTime(pickupTime),
		o.setFare(fare),
	); err != nil {
		return err
	}

	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return err
	}
	o.serviceID = serviceID
	return nil
}

func (o *Order) setRoute(route Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	o.route = route
	return nil
}

func (o *Order) setPickupTime(pickupTime time.Time) error {
	if pickupTime.IsZero() {
		return errs.NewValueIsRequiredError("pickup time")
	}
	o.pickupTime = pickupTime.UTC()
	return nil
}

func (o *Order) setFare(fare Fare) error {
	if err := fare.Validate(); err != nil {
		return err
	}
	o.fare = fare
	return nil
}
