package queries

import (
	"context"
	"time"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler lists orders for one user grouped into active and
// history. Active orders sort by upcoming pickup, history by most recently
// touched.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	terminalStatuses := []string{order.Completed.String(), order.Cancelled.String()}

	statusCond := "o.status NOT IN ?"
	orderBy := "o.pickup_time ASC"
	if query.Group() == GroupHistory {
		statusCond = "o.status IN ?"
		orderBy = "o.updated_at DESC"
	}

	sql := `
		SELECT ` + orderViewColumns + `
		FROM orders o
		` + orderViewJoins + `
		WHERE ` + statusCond

	args := []any{terminalStatuses}
	switch {
	case query.Actor().Is(actor.RoleAdmin):
		// admins see everything
	case query.Actor().Is(actor.RoleDriver):
		sql += " AND (o.customer_id = ? OR o.driver_id = ?)"
		actorID := query.Actor().ID().Bytes()
		args = append(args, actorID, actorID)
	default:
		sql += " AND o.customer_id = ?"
		args = append(args, query.Actor().ID().Bytes())
	}
	sql += " ORDER BY " + orderBy

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
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
