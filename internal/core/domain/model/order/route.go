package order

import (
	"errors"
	"fmt"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/errs"
	"valet/internal/pkg/guard"
)

// ErrRouteIsNotConstructed indicates a zero-value Route.
var ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")

// Stop is an ordered waypoint on an order's route. Stops only exist as part
// of a Route; their sequence index is assigned by the route from input order
// and is contiguous starting at zero.
type Stop struct {
	address string
	point   kernel.GeoPoint
	seq     int
}

// NewStop creates a waypoint from an address and coordinates. The sequence
// index is assigned when the stop becomes part of a route.
func NewStop(address string, point kernel.GeoPoint) (Stop, error) {
	if address == "" {
		return Stop{}, errs.NewValueIsRequiredError("stop address")
	}
	if err := point.Validate(); err != nil {
		return Stop{}, err
	}
	return Stop{address: address, point: point}, nil
}

// Address returns the stop's address text.
func (s Stop) Address() string {
	return s.address
}

// Point returns the stop's coordinates.
func (s Stop) Point() kernel.GeoPoint {
	return s.point
}

// Seq returns the zero-based position of the stop within its route.
func (s Stop) Seq() int {
	return s.seq
}

// Route is the validated pickup/dropoff pair plus intermediate stops of an
// order. It is an immutable value object; updating an order's stops replaces
// the whole route.
type Route struct { //nolint:recvcheck //using for validation
	pickupAddress  string
	pickup         kernel.GeoPoint
	dropoffAddress string
	dropoff        kernel.GeoPoint
	stops          []Stop

	guard guard.ConstructorGuard
}

// NewRoute creates a Route. Both addresses must be non-empty and both points
// valid. Stops are re-sequenced 0..n-1 in the order given.
func NewRoute(
	pickupAddress string,
	pickup kernel.GeoPoint,
	dropoffAddress string,
	dropoff kernel.GeoPoint,
	stops []Stop,
) (Route, error) {
	r := Route{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setPickup(pickupAddress, pickup),
		r.setDropoff(dropoffAddress, dropoff),
		r.setStops(stops),
	); err != nil {
		return Route{}, err
	}

	return r, nil
}

// Validate checks the Route was created through its constructor.
func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// PickupAddress returns the pickup address text.
func (r Route) PickupAddress() string {
	return r.pickupAddress
}

// Pickup returns the pickup coordinates.
func (r Route) Pickup() kernel.GeoPoint {
	return r.pickup
}

// DropoffAddress returns the dropoff address text.
func (r Route) DropoffAddress() string {
	return r.dropoffAddress
}

// Dropoff returns the dropoff coordinates.
func (r Route) Dropoff() kernel.GeoPoint {
	return r.dropoff
}

// Stops returns the intermediate waypoints ordered by sequence index.
// The returned slice is a copy; mutating it does not affect the route.
func (r Route) Stops() []Stop {
	out := make([]Stop, len(r.stops))
	copy(out, r.stops)
	return out
}

func (r *Route) setPickup(address string, point kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("pickup address")
	}
	if err := point.Validate(); err != nil {
		return fmt.Errorf("pickup: %w", err)
	}
	r.pickupAddress = address
	r.pickup = point
	return nil
}

func (r *Route) setDropoff(address string, point kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("dropoff address")
	}
	if err := point.Validate(); err != nil {
		return fmt.Errorf("dropoff: %w", err)
	}
	r.dropoffAddress = address
	r.dropoff = point
	return nil
}

func (r *Route) setStops(stops []Stop) error {
	sequenced := make([]Stop, len(stops))
	for i, s := range stops {
		if s.address == "" {
			return errs.NewValueIsRequiredError("stop address")
		}
		if err := s.point.Validate(); err != nil {
			return fmt.Errorf("stop %d: %w", i, err)
		}
		s.seq = i
		sequenced[i] = s
	}
	r.stops = sequenced
	return nil
}
