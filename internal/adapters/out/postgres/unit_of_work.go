// Package postgres provides the GORM-based unit of work. Each unit of work
// wraps one database transaction; the repositories it hands out run inside
// that transaction, so row locks taken via GetForUpdate are held until
// Commit or Rollback.
package postgres

import (
	"context"
	"fmt"
	"time"

	"valet/internal/adapters/out/postgres/alertrepo"
	"valet/internal/adapters/out/postgres/orderrepo"
	"valet/internal/adapters/out/postgres/photorepo"
	"valet/internal/core/ports"

	"gorm.io/gorm"
)

// DefaultLockTimeout bounds how long a transaction waits for a contended
// order row before the wait surfaces as a transient store error.
const DefaultLockTimeout = 3 * time.Second

// GormUnitOfWorkFactory creates UnitOfWork instances on a shared GORM
// connection. Each business operation gets a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormUnitOfWorkFactory creates a factory. A non-positive lockTimeout
// falls back to DefaultLockTimeout.
func NewGormUnitOfWorkFactory(db *gorm.DB, lockTimeout time.Duration) *GormUnitOfWorkFactory {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &GormUnitOfWorkFactory{
		db:          db,
		lockTimeout: lockTimeout,
	}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:          f.db,
		lockTimeout: f.lockTimeout,
	}
}

// GormUnitOfWork coordinates one database transaction. Not safe for
// concurrent use; concurrent operations each create their own instance.
type GormUnitOfWork struct {
	db          *gorm.DB
	lockTimeout time.Duration
	tx          *gorm.DB
}

// Begin starts the transaction and applies the lock timeout to it.
// Calling Begin on an already-open unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	// SET LOCAL scopes the timeout to this transaction only.
	timeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", uow.lockTimeout.Milliseconds())
	if err := tx.Exec(timeout).Error; err != nil {
		_ = tx.Rollback().Error
		return err
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction and releases its row locks.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. After a successful Commit it degrades
// to a no-op, so handlers can defer it unconditionally.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the bare connection when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// AlertRepository returns an alert repository bound to the current
// transaction.
func (uow *GormUnitOfWork) AlertRepository() ports.AlertRepository {
	return alertrepo.NewGormAlertRepository(uow.conn())
}

// PhotoRepository returns a photo repository bound to the current
// transaction.
func (uow *GormUnitOfWork) PhotoRepository() ports.PhotoRepository {
	return photorepo.NewGormPhotoRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
