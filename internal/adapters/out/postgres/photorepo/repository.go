// Package photorepo persists handover photos, one row per order and vehicle
// side.
package photorepo

import (
	"context"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PhotoDTO is the database row of one handover photo. The (order, side)
// pair is unique; replacing a side upserts the row.
type PhotoDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber int64     `gorm:"uniqueIndex:idx_photo_order_side"`
	Side        string    `gorm:"type:varchar(8);uniqueIndex:idx_photo_order_side"`
	URL         string
	CreatedAt   time.Time
}

// TableName overrides GORM's default naming to use "handover_photos".
func (PhotoDTO) TableName() string {
	return "handover_photos"
}

func fromDomain(photo *order.HandoverPhoto) PhotoDTO {
	return PhotoDTO{
		ID:          photo.ID().Bytes(),
		OrderNumber: photo.OrderNumber().Seq(),
		Side:        photo.Side().String(),
		URL:         photo.URL(),
		CreatedAt:   photo.CreatedAt(),
	}
}

func toDomain(dto PhotoDTO) (*order.HandoverPhoto, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	number, err := kernel.NewOrderNumber(dto.OrderNumber)
	if err != nil {
		return nil, err
	}
	side, err := order.ParsePhotoSide(dto.Side)
	if err != nil {
		return nil, err
	}

	return order.RestoreHandoverPhoto(id, number, side, dto.URL, dto.CreatedAt)
}

// GormPhotoRepository implements ports.PhotoRepository using GORM.
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GORM photo repository.
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// Replace stores the photo, superseding any earlier photo of the same side.
func (r *GormPhotoRepository) Replace(ctx context.Context, photo *order.HandoverPhoto) error {
	if err := photo.Validate(); err != nil {
		return err
	}

	dto := fromDomain(photo)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_number"}, {Name: "side"}},
			DoUpdates: clause.AssignmentColumns([]string{"id", "url", "created_at"}),
		}).
		Create(&dto).Error
}

// GetByOrder retrieves the photo set of an order in side order.
func (r *GormPhotoRepository) GetByOrder(ctx context.Context, number kernel.OrderNumber) ([]*order.HandoverPhoto, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var dtos []PhotoDTO
	if err := r.db.WithContext(ctx).
		Where("order_number = ?", number.Seq()).
		Order("side ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	photos := make([]*order.HandoverPhoto, 0, len(dtos))
	for _, dto := range dtos {
		photo, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, nil
}
