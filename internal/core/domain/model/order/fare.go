package order

import (
	"errors"
	"fmt"

	"valet/internal/pkg/errs"
	"valet/internal/pkg/guard"
)

// ErrFareIsNotConstructed indicates a zero-value Fare.
var ErrFareIsNotConstructed = errors.New("Fare must be created via NewFare constructor")

// Fare carries the caller-supplied price, distance and duration of an order.
// Fare computation itself lives in the service catalog; the engine only
// validates and records the figures.
type Fare struct { //nolint:recvcheck //using for validation
	price         float64
	distanceKm    float64
	durationMin   int
	paymentMethod string

	guard guard.ConstructorGuard
}

// NewFare creates a Fare. Price and distance must be non-negative, duration
// must not be negative. The payment method label is optional.
func NewFare(price float64, distanceKm float64, durationMin int, paymentMethod string) (Fare, error) {
	f := Fare{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		f.setPrice(price),
		f.setDistanceKm(distanceKm),
		f.setDurationMin(durationMin),
	); err != nil {
		return Fare{}, err
	}

	f.paymentMethod = paymentMethod
	return f, nil
}

// Validate checks the Fare was created through its constructor.
func (f Fare) Validate() error {
	return f.guard.Validate(ErrFareIsNotConstructed)
}

// Price returns the computed price supplied at creation time.
func (f Fare) Price() float64 {
	return f.price
}

// DistanceKm returns the route distance in kilometers.
func (f Fare) DistanceKm() float64 {
	return f.distanceKm
}

// DurationMin returns the estimated duration in minutes.
func (f Fare) DurationMin() int {
	return f.durationMin
}

// PaymentMethod returns the payment method label, empty when not supplied.
func (f Fare) PaymentMethod() string {
	return f.paymentMethod
}

func (f *Fare) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%f is negative", price))
	}
	f.price = price
	return nil
}

func (f *Fare) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distance",
			fmt.Errorf("%f is negative", distanceKm))
	}
	f.distanceKm = distanceKm
	return nil
}

func (f *Fare) setDurationMin(durationMin int) error {
	if durationMin < 0 {
		return errs.NewValueIsInvalidErrorWithCause("duration",
			fmt.Errorf("%d is negative", durationMin))
	}
	f.durationMin = durationMin
	return nil
}
