package notify

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/errs"
)

// GormPartySource resolves order parties straight from the orders table.
type GormPartySource struct {
	db *gorm.DB
}

// NewGormPartySource creates a party source over the given connection.
func NewGormPartySource(db *gorm.DB) (*GormPartySource, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}
	return &GormPartySource{db: db}, nil
}

// Parties returns the customer and, when assigned, the driver of an order.
func (s *GormPartySource) Parties(ctx context.Context, number kernel.OrderNumber) (kernel.UUID, *kernel.UUID, error) {
	var row struct {
		CustomerID uuid.UUID
		DriverID   *uuid.UUID
	}

	err := s.db.WithContext(ctx).
		Raw("SELECT customer_id, driver_id FROM orders WHERE number = ?", number.Seq()).
		Scan(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.UUID{}, nil, errs.NewObjectNotFoundError("order", number.String())
		}
		return kernel.UUID{}, nil, err
	}
	if row.CustomerID == uuid.Nil {
		return kernel.UUID{}, nil, errs.NewObjectNotFoundError("order", number.String())
	}

	customerID, err := kernel.UUIDFromBytes(row.CustomerID[:])
	if err != nil {
		return kernel.UUID{}, nil, err
	}

	var driverID *kernel.UUID
	if row.DriverID != nil {
		id, err := kernel.UUIDFromBytes(row.DriverID[:])
		if err != nil {
			return kernel.UUID{}, nil, err
		}
		driverID = &id
	}

	return customerID, driverID, nil
}
