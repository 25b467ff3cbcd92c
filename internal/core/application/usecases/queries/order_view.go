// Package queries contains the read-side operations of the order engine.
// Handlers run raw SQL against the database and project rows into view
// structs shaped for the clients; they never load aggregates.
package queries

import (
	"fmt"
	"strings"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
)

// placeholderEmailMarker mirrors the synthetic addresses minted for
// phone-only signups; those are never shown as a display name.
const placeholderEmailMarker = "@noemail."

// StopView is one waypoint in an order view.
type StopView struct {
	Seq     int     `json:"seq"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// OrderView is the client-facing projection of one order row.
type OrderView struct {
	Number         string     `json:"number"`
	Status         string     `json:"status"`
	StatusLabel    string     `json:"statusLabel"`
	Active         bool       `json:"active"`
	HasActiveAlert bool       `json:"hasActiveAlert"`
	CustomerName   string     `json:"customerName"`
	DriverName     string     `json:"driverName,omitempty"`
	PickupAddress  string     `json:"pickupAddress"`
	DropoffAddress string     `json:"dropoffAddress"`
	Stops          []StopView `json:"stops,omitempty"`
	PickupTime     time.Time  `json:"pickupTime"`
	DateLabel      string     `json:"dateLabel"`
	TimeLabel      string     `json:"timeLabel"`
	Price          float64    `json:"price"`
	DistanceKm     float64    `json:"distanceKm"`
	DurationMin    int        `json:"durationMin"`
	PaymentMethod  string     `json:"paymentMethod,omitempty"`
	VehicleText    string     `json:"vehicleText,omitempty"`
	LicensePlate   string     `json:"licensePlate,omitempty"`
}

// orderViewColumns is the shared select list of every order view query.
// Joins: cu = customer account, dr = driver account, v = assigned vehicle.
const orderViewColumns = `
	o.number,
	o.status,
	o.pickup_address,
	o.dropoff_address,
	o.pickup_time,
	o.price,
	o.distance_km,
	o.duration_min,
	o.payment_method,
	o.license_plate,
	cu.first_name, cu.last_name, cu.email, cu.phone,
	dr.first_name, dr.last_name, dr.email, dr.phone,
	v.make, v.model, v.plate,
	EXISTS(
		SELECT 1 FROM emergency_alerts ea
		WHERE ea.order_number = o.number AND NOT ea.resolved
	) AS has_active_alert
`

// orderViewJoins attaches the account and vehicle rows the projection needs.
const orderViewJoins = `
	LEFT JOIN users cu ON cu.id = o.customer_id
	LEFT JOIN users dr ON dr.id = o.driver_id
	LEFT JOIN vehicles v ON v.id = o.vehicle_id
`

// nameParts is a scan target for one joined account row. All columns are
// nullable because the join itself is.
type nameParts struct {
	first, last, email, phone *string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// displayName resolves a human-readable name: full name, then a real email,
// then the phone number. Placeholder emails are skipped.
func (n nameParts) displayName() string {
	name := strings.TrimSpace(deref(n.first) + " " + deref(n.last))
	if name != "" {
		return name
	}
	if email := deref(n.email); email != "" && !strings.Contains(email, placeholderEmailMarker) {
		return email
	}
	return deref(n.phone)
}

// vehicleText renders the vehicle block: make and model with the plate when
// a vehicle row is joined, the bare plate otherwise, empty when neither.
func vehicleText(make, model, vehiclePlate *string, orderPlate string) string {
	name := strings.TrimSpace(deref(make) + " " + deref(model))
	plate := deref(vehiclePlate)
	if plate == "" {
		plate = orderPlate
	}
	switch {
	case name != "" && plate != "":
		return name + " · " + plate
	case name != "":
		return name
	default:
		return plate
	}
}

// dateLabel renders the pickup date relative to now: Today, Tomorrow, or the
// explicit date.
func dateLabel(now, pickup time.Time) string {
	ny, nm, nd := now.Date()
	py, pm, pd := pickup.Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, now.Location())
	day := time.Date(py, pm, pd, 0, 0, 0, 0, pickup.Location())

	switch int(day.Sub(today).Hours() / 24) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return pickup.Format("02 Jan 2006")
	}
}

// buildOrderView assembles one projection row from scanned columns.
func buildOrderView(
	now time.Time,
	seq int64,
	status string,
	pickupAddress, dropoffAddress string,
	pickupTime time.Time,
	price, distanceKm float64,
	durationMin int,
	paymentMethod *string,
	licensePlate string,
	customer, driver nameParts,
	vehicleMake, vehicleModel, vehiclePlate *string,
	hasActiveAlert bool,
) (OrderView, error) {
	number, err := kernel.NewOrderNumber(seq)
	if err != nil {
		return OrderView{}, err
	}
	parsed, err := order.StatusFromString(status)
	if err != nil {
		return OrderView{}, err
	}

	local := pickupTime.In(now.Location())
	return OrderView{
		Number:         number.String(),
		Status:         parsed.String(),
		StatusLabel:    parsed.Label(),
		Active:         parsed.IsActive(),
		HasActiveAlert: hasActiveAlert,
		CustomerName:   customer.displayName(),
		DriverName:     driver.displayName(),
		PickupAddress:  pickupAddress,
		DropoffAddress: dropoffAddress,
		PickupTime:     pickupTime,
		DateLabel:      dateLabel(now, local),
		TimeLabel:      local.Format("15:04"),
		Price:          price,
		DistanceKm:     distanceKm,
		DurationMin:    durationMin,
		PaymentMethod:  deref(paymentMethod),
		VehicleText:    vehicleText(vehicleMake, vehicleModel, vehiclePlate, licensePlate),
		LicensePlate:   licensePlate,
	}, nil
}

// scanOrderView reads one row produced with orderViewColumns.
func scanOrderView(scan func(dest ...any) error, now time.Time) (OrderView, error) {
	var (
		seq                           int64
		status                        string
		pickupAddress, dropoffAddress string
		pickupTime                    time.Time
		price, distanceKm             float64
		durationMin                   int
		paymentMethod                 *string
		licensePlate                  string
		customer, driver              nameParts
		vMake, vModel, vPlate         *string
		hasActiveAlert                bool
	)

	if err := scan(
		&seq,
		&status,
		&pickupAddress,
		&dropoffAddress,
		&pickupTime,
		&price,
		&distanceKm,
		&durationMin,
		&paymentMethod,
		&licensePlate,
		&customer.first, &customer.last, &customer.email, &customer.phone,
		&driver.first, &driver.last, &driver.email, &driver.phone,
		&vMake, &vModel, &vPlate,
		&hasActiveAlert,
	); err != nil {
		return OrderView{}, fmt.Errorf("scan order view: %w", err)
	}

	return buildOrderView(
		now,
		seq, status,
		pickupAddress, dropoffAddress,
		pickupTime,
		price, distanceKm, durationMin, paymentMethod,
		licensePlate,
		customer, driver,
		vMake, vModel, vPlate,
		hasActiveAlert,
	)
}
