// Package orderrepo persists order aggregates. Orders map to one row plus
// their stop rows; the aggregate is flattened through its snapshot on the
// way in and rebuilt through RestoreOrder on the way out.
package orderrepo

import (
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row of one order. The business number doubles as
// the primary key; it is allocated from the order number sequence before
// insert.
type OrderDTO struct {
	Number     int64      `gorm:"primaryKey;autoIncrement:false"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index"`
	ServiceID  uuid.UUID  `gorm:"type:uuid"`
	DriverID   *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID  *uuid.UUID `gorm:"type:uuid"`

	Status     string `gorm:"type:varchar(32);index"`
	PickupTime time.Time

	PickupAddress  string
	PickupLat      float64
	PickupLng      float64
	DropoffAddress string
	DropoffLat     float64
	DropoffLng     float64

	Price         float64
	DistanceKm    float64
	DurationMin   int
	PaymentMethod string

	LicensePlate string
	ManualPlate  string
	InvoiceID    *uuid.UUID `gorm:"type:uuid"`

	EmergencyName  *string
	EmergencyPhone *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// StopDTO is one waypoint row. Rows are replaced wholesale on every order
// update, so seq is always contiguous from zero.
type StopDTO struct {
	OrderNumber int64 `gorm:"primaryKey;autoIncrement:false"`
	Seq         int   `gorm:"primaryKey;autoIncrement:false"`
	Address     string
	Lat         float64
	Lng         float64
}

// TableName overrides GORM's default naming to use "order_stops".
func (StopDTO) TableName() string {
	return "order_stops"
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// fromDomain flattens an aggregate into its order row and stop rows.
func fromDomain(aggregate *order.Order) (OrderDTO, []StopDTO) {
	s := aggregate.ToSnapshot()

	dto := OrderDTO{
		Number:         s.Number.Seq(),
		CustomerID:     s.CustomerID.Bytes(),
		ServiceID:      s.ServiceID.Bytes(),
		DriverID:       uuidPtr(s.DriverID),
		VehicleID:      uuidPtr(s.VehicleID),
		Status:         s.Status.String(),
		PickupTime:     s.PickupTime,
		PickupAddress:  s.Route.PickupAddress(),
		PickupLat:      s.Route.Pickup().Lat(),
		PickupLng:      s.Route.Pickup().Lng(),
		DropoffAddress: s.Route.DropoffAddress(),
		DropoffLat:     s.Route.Dropoff().Lat(),
		DropoffLng:     s.Route.Dropoff().Lng(),
		Price:          s.Fare.Price(),
		DistanceKm:     s.Fare.DistanceKm(),
		DurationMin:    s.Fare.DurationMin(),
		PaymentMethod:  s.Fare.PaymentMethod(),
		LicensePlate:   s.LicensePlate,
		ManualPlate:    s.ManualPlate,
		InvoiceID:      uuidPtr(s.InvoiceID),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.Emergency != nil {
		name, phone := s.Emergency.Name(), s.Emergency.Phone()
		dto.EmergencyName = &name
		dto.EmergencyPhone = &phone
	}

	stops := make([]StopDTO, 0, len(s.Route.Stops()))
	for _, stop := range s.Route.Stops() {
		stops = append(stops, StopDTO{
			OrderNumber: dto.Number,
			Seq:         stop.Seq(),
			Address:     stop.Address(),
			Lat:         stop.Point().Lat(),
			Lng:         stop.Point().Lng(),
		})
	}

	return dto, stops
}

// toDomain rebuilds the aggregate from its rows, revalidating every value
// object on the way.
func toDomain(dto OrderDTO, stopRows []StopDTO) (*order.Order, error) {
	number, err := kernel.NewOrderNumber(dto.Number)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernelPtr(dto.DriverID)
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernelPtr(dto.VehicleID)
	if err != nil {
		return nil, err
	}
	invoiceID, err := kernelPtr(dto.InvoiceID)
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}
	dropoff, err := kernel.NewGeoPoint(dto.DropoffLat, dto.DropoffLng)
	if err != nil {
		return nil, err
	}

	stops := make([]order.Stop, 0, len(stopRows))
	for _, row := range stopRows {
		point, pointErr := kernel.NewGeoPoint(row.Lat, row.Lng)
		if pointErr != nil {
			return nil, pointErr
		}
		stop, stopErr := order.NewStop(row.Address, point)
		if stopErr != nil {
			return nil, stopErr
		}
		stops = append(stops, stop)
	}

	route, err := order.NewRoute(dto.PickupAddress, pickup, dto.DropoffAddress, dropoff, stops)
	if err != nil {
		return nil, err
	}
	fare, err := order.NewFare(dto.Price, dto.DistanceKm, dto.DurationMin, dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var emergency *order.Contact
	if dto.EmergencyName != nil && dto.EmergencyPhone != nil {
		contact, contactErr := order.NewContact(*dto.EmergencyName, *dto.EmergencyPhone)
		if contactErr != nil {
			return nil, contactErr
		}
		emergency = &contact
	}

	return order.RestoreOrder(order.Snapshot{
		Number:       number,
		CustomerID:   customerID,
		ServiceID:    serviceID,
		DriverID:     driverID,
		VehicleID:    vehicleID,
		Status:       status,
		Route:        route,
		PickupTime:   dto.PickupTime,
		Fare:         fare,
		LicensePlate: dto.LicensePlate,
		ManualPlate:  dto.ManualPlate,
		InvoiceID:    invoiceID,
		Emergency:    emergency,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	})
}
