package alertrepo

import (
	"context"
	"errors"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAlertRepository implements ports.AlertRepository using GORM.
type GormAlertRepository struct {
	db *gorm.DB
}

// NewGormAlertRepository creates a new GORM alert repository.
func NewGormAlertRepository(db *gorm.DB) *GormAlertRepository {
	return &GormAlertRepository{db: db}
}

// Add saves a new alert.
func (r *GormAlertRepository) Add(ctx context.Context, alert *order.EmergencyAlert) error {
	if err := alert.Validate(); err != nil {
		return err
	}

	dto := fromDomain(alert)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves the resolved flag of an existing alert.
func (r *GormAlertRepository) Update(ctx context.Context, alert *order.EmergencyAlert) error {
	if err := alert.Validate(); err != nil {
		return err
	}

	dto := fromDomain(alert)
	result := r.db.WithContext(ctx).
		Model(&AlertDTO{}).
		Where("id = ?", dto.ID).
		Update("resolved", dto.Resolved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("alert", alert.ID().String())
	}
	return nil
}

// Get retrieves an alert by id.
func (r *GormAlertRepository) Get(ctx context.Context, id kernel.UUID) (*order.EmergencyAlert, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AlertDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("alert", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
