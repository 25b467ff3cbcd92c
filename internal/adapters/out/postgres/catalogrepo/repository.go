// Package catalogrepo reads the service catalog and vehicle directory.
// Both are reference data maintained outside the order engine; this adapter
// only ever reads them.
package catalogrepo

import (
	"context"
	"errors"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/ports"
	"valet/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceDTO is the database row of one service offering.
type ServiceDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Slug       string    `gorm:"uniqueIndex"`
	Name       string
	BasePrice  float64
	PricePerKm float64
	Active     bool
}

// TableName overrides GORM's default naming to use "services".
func (ServiceDTO) TableName() string {
	return "services"
}

// VehicleDTO is the database row of one vehicle.
type VehicleDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;index"`
	Plate   string
	Make    string
	Model   string
}

// TableName overrides GORM's default naming to use "vehicles".
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// GormCatalog implements ports.Catalog using GORM.
type GormCatalog struct {
	db *gorm.DB
}

// NewGormCatalog creates a new GORM catalog adapter.
func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// GetService retrieves a service offering by id.
func (c *GormCatalog) GetService(ctx context.Context, id kernel.UUID) (ports.ServiceOffering, error) {
	if err := id.Validate(); err != nil {
		return ports.ServiceOffering{}, err
	}

	var dto ServiceDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ServiceOffering{}, errs.NewObjectNotFoundError("service", id.String())
		}
		return ports.ServiceOffering{}, err
	}

	return serviceToPort(dto)
}

// GetServiceBySlug retrieves a service offering by slug.
func (c *GormCatalog) GetServiceBySlug(ctx context.Context, slug string) (ports.ServiceOffering, error) {
	if slug == "" {
		return ports.ServiceOffering{}, errs.NewValueIsRequiredError("service slug")
	}

	var dto ServiceDTO
	if err := c.db.WithContext(ctx).First(&dto, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ServiceOffering{}, errs.NewObjectNotFoundError("service", slug)
		}
		return ports.ServiceOffering{}, err
	}

	return serviceToPort(dto)
}

// GetVehicle retrieves a vehicle record by id.
func (c *GormCatalog) GetVehicle(ctx context.Context, id kernel.UUID) (ports.VehicleRecord, error) {
	if err := id.Validate(); err != nil {
		return ports.VehicleRecord{}, err
	}

	var dto VehicleDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.VehicleRecord{}, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return ports.VehicleRecord{}, err
	}

	vehicleID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.VehicleRecord{}, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return ports.VehicleRecord{}, err
	}

	return ports.VehicleRecord{
		ID:      vehicleID,
		OwnerID: ownerID,
		Plate:   dto.Plate,
		Make:    dto.Make,
		Model:   dto.Model,
	}, nil
}

func serviceToPort(dto ServiceDTO) (ports.ServiceOffering, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ServiceOffering{}, err
	}

	return ports.ServiceOffering{
		ID:         id,
		Slug:       dto.Slug,
		Name:       dto.Name,
		BasePrice:  dto.BasePrice,
		PricePerKm: dto.PricePerKm,
		Active:     dto.Active,
	}, nil
}
