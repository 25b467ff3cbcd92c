package queries

import (
	"context"
	"time"

	"valet/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// JobPoolQueryHandler lists the claimable pool. Only searching orders with
// no driver recorded are claimable; admin-assigned orders never appear here.
type JobPoolQueryHandler struct {
	db *gorm.DB
}

// NewJobPoolQueryHandler creates a handler for the driver pool.
func NewJobPoolQueryHandler(db *gorm.DB) JobPoolQueryHandler {
	return JobPoolQueryHandler{db: db}
}

// Handle lists pool entries, oldest request first so long-waiting orders
// surface at the top.
func (h JobPoolQueryHandler) Handle(ctx context.Context, query JobPoolQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderViewColumns+`
		FROM orders o
		`+orderViewJoins+`
		WHERE o.status = ?
		  AND o.driver_id IS NULL
		ORDER BY o.created_at ASC
	`, order.Searching.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	views := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrderView(rows.Scan, now)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}

	return views, rows.Err()
}
