package orderrepo

import (
	"context"
	"errors"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NumberSequence is the Postgres sequence order numbers are allocated from.
// Created at startup; starts at 1000 so numbers are always four digits.
const NumberSequence = "valet_order_numbers"

// pgLockNotAvailable is the Postgres error code raised when a lock wait
// exceeds lock_timeout.
const pgLockNotAvailable = "55P03"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its stops.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, stops := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if len(stops) > 0 {
		if err := r.db.WithContext(ctx).Create(&stops).Error; err != nil {
			return err
		}
	}
	return nil
}

// Update saves an existing order. Stop rows are replaced wholesale so their
// sequence always matches the aggregate.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, stops := fromDomain(aggregate)
	// Select("*") writes every column, including pointer columns that went
	// back to NULL. A plain struct update would skip those.
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("number = ?", dto.Number).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.Number().String())
	}

	if err := r.db.WithContext(ctx).
		Where("order_number = ?", dto.Number).
		Delete(&StopDTO{}).Error; err != nil {
		return err
	}
	if len(stops) > 0 {
		if err := r.db.WithContext(ctx).Create(&stops).Error; err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves an order by number.
func (r *GormOrderRepository) Get(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	return r.get(ctx, number, false)
}

// GetForUpdate retrieves an order holding a FOR UPDATE row lock until the
// surrounding transaction ends. A lock wait beyond the session's lock_timeout
// maps to errs.TransientStoreError so callers can retry.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	return r.get(ctx, number, true)
}

func (r *GormOrderRepository) get(ctx context.Context, number kernel.OrderNumber, locked bool) (*order.Order, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if locked {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := tx.First(&dto, "number = ?", number.Seq()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number.String())
		}
		return nil, mapLockTimeout("get order for update", err)
	}

	stops, err := r.loadStops(ctx, dto.Number)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, stops)
}

// NextNumber allocates the next order number from the sequence. Sequence
// values survive rollbacks, so numbers stay strictly increasing even when a
// creation fails.
func (r *GormOrderRepository) NextNumber(ctx context.Context) (kernel.OrderNumber, error) {
	var seq int64
	if err := r.db.WithContext(ctx).
		Raw("SELECT nextval(?)", NumberSequence).
		Scan(&seq).Error; err != nil {
		return kernel.OrderNumber{}, err
	}
	return kernel.NewOrderNumber(seq)
}

// GetDueForSearch retrieves unassigned scheduled orders whose pickup time
// falls before the deadline, oldest pickup first.
func (r *GormOrderRepository) GetDueForSearch(ctx context.Context, deadline time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND driver_id IS NULL AND pickup_time <= ?", order.Scheduled.String(), deadline).
		Order("pickup_time ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		stops, err := r.loadStops(ctx, dto.Number)
		if err != nil {
			return nil, err
		}
		aggregate, err := toDomain(dto, stops)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

func (r *GormOrderRepository) loadStops(ctx context.Context, number int64) ([]StopDTO, error) {
	var stops []StopDTO
	err := r.db.WithContext(ctx).
		Where("order_number = ?", number).
		Order("seq ASC").
		Find(&stops).Error
	return stops, err
}

// mapLockTimeout converts Postgres lock_timeout failures into the retryable
// transient store error.
func mapLockTimeout(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
		return errs.NewTransientStoreError(op, err)
	}
	return err
}
