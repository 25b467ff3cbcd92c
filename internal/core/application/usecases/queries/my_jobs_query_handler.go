package queries

import (
	"context"
	"time"

	"valet/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// MyJobsQueryHandler lists the running jobs of one driver, newest first.
type MyJobsQueryHandler struct {
	db *gorm.DB
}

// NewMyJobsQueryHandler creates a handler for driver job listings.
func NewMyJobsQueryHandler(db *gorm.DB) MyJobsQueryHandler {
	return MyJobsQueryHandler{db: db}
}

// Handle lists the driver's non-terminal orders.
func (h MyJobsQueryHandler) Handle(ctx context.Context, query MyJobsQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderViewColumns+`
		FROM orders o
		`+orderViewJoins+`
		WHERE o.driver_id = ?
		  AND o.status NOT IN ?
		ORDER BY o.created_at DESC
	`, query.Actor().ID().Bytes(),
		[]string{order.Completed.String(), order.Cancelled.String()}).Rows()
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
