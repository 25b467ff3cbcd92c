package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"valet/internal/adapters/out/postgres/alertrepo"
	"valet/internal/adapters/out/postgres/catalogrepo"
	"valet/internal/adapters/out/postgres/orderrepo"
	"valet/internal/adapters/out/postgres/photorepo"
	"valet/internal/adapters/out/postgres/userdir"
)

// Migrate creates the schema and the order number sequence. Both statements
// are idempotent, so running at every startup is safe.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&userdir.UserDTO{},
		&userdir.PushTokenDTO{},
		&userdir.InboxDTO{},
		&catalogrepo.ServiceDTO{},
		&catalogrepo.VehicleDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.StopDTO{},
		&alertrepo.AlertDTO{},
		&photorepo.PhotoDTO{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	err = db.Exec(fmt.Sprintf(
		"CREATE SEQUENCE IF NOT EXISTS %s START 1000", orderrepo.NumberSequence,
	)).Error
	if err != nil {
		return fmt.Errorf("create order number sequence: %w", err)
	}

	return nil
}
