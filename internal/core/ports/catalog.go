package ports

import (
	"context"

	"valet/internal/core/domain/model/kernel"
)

// ServiceOffering is a read model of one entry in the service catalog.
type ServiceOffering struct {
	ID         kernel.UUID
	Slug       string
	Name       string
	BasePrice  float64
	PricePerKm float64
	Active     bool
}

// VehicleRecord is a read model of one vehicle in the directory.
type VehicleRecord struct {
	ID      kernel.UUID
	OwnerID kernel.UUID
	Plate   string
	Make    string
	Model   string
}

// Catalog resolves service and vehicle references at command time. Orders
// refuse to reference inactive services or missing vehicles.
type Catalog interface {
	// GetService retrieves a service offering by id.
	// Returns errs.ObjectNotFoundError when no such service exists.
	GetService(ctx context.Context, id kernel.UUID) (ServiceOffering, error)

	// GetServiceBySlug retrieves a service offering by its stable slug.
	GetServiceBySlug(ctx context.Context, slug string) (ServiceOffering, error)

	// GetVehicle retrieves a vehicle record by id.
	GetVehicle(ctx context.Context, id kernel.UUID) (VehicleRecord, error)
}
