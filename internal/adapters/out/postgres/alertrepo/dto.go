// Package alertrepo persists emergency alerts.
package alertrepo

import (
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// AlertDTO is the database row of one emergency alert.
type AlertDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber int64     `gorm:"index"`
	UserID      uuid.UUID `gorm:"type:uuid"`
	Lat         float64
	Lng         float64
	Resolved    bool `gorm:"index"`
	CreatedAt   time.Time
}

// TableName overrides GORM's default naming to use "emergency_alerts".
func (AlertDTO) TableName() string {
	return "emergency_alerts"
}

func fromDomain(alert *order.EmergencyAlert) AlertDTO {
	return AlertDTO{
		ID:          alert.ID().Bytes(),
		OrderNumber: alert.OrderNumber().Seq(),
		UserID:      alert.UserID().Bytes(),
		Lat:         alert.Point().Lat(),
		Lng:         alert.Point().Lng(),
		Resolved:    alert.IsResolved(),
		CreatedAt:   alert.CreatedAt(),
	}
}

func toDomain(dto AlertDTO) (*order.EmergencyAlert, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	number, err := kernel.NewOrderNumber(dto.OrderNumber)
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	return order.RestoreEmergencyAlert(id, number, userID, point, dto.Resolved, dto.CreatedAt)
}
