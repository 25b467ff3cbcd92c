package queries

import (
	"context"
	"time"

	"valet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlertView is the admin-facing projection of one emergency alert.
type AlertView struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	RaisedBy    string    `json:"raisedBy"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Resolved    bool      `json:"resolved"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListAlertsQueryHandler lists emergency alerts, newest first.
type ListAlertsQueryHandler struct {
	db *gorm.DB
}

// NewListAlertsQueryHandler creates a handler for alert listings.
func NewListAlertsQueryHandler(db *gorm.DB) ListAlertsQueryHandler {
	return ListAlertsQueryHandler{db: db}
}

// Handle lists the alerts with the raiser's display name attached.
func (h ListAlertsQueryHandler) Handle(ctx context.Context, query ListAlertsQuery) ([]AlertView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT a.id, a.order_number, a.lat, a.lng, a.resolved, a.created_at,
		       u.first_name, u.last_name, u.email, u.phone
		FROM emergency_alerts a
		LEFT JOIN users u ON u.id = a.user_id
	`
	if query.UnresolvedOnly() {
		sql += " WHERE a.resolved = false"
	}
	sql += " ORDER BY a.created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]AlertView, 0)
	for rows.Next() {
		var (
			id     uuid.UUID
			seq    int64
			view   AlertView
			raiser nameParts
		)
		if err = rows.Scan(
			&id, &seq, &view.Lat, &view.Lng, &view.Resolved, &view.CreatedAt,
			&raiser.first, &raiser.last, &raiser.email, &raiser.phone,
		); err != nil {
			return nil, err
		}

		number, numErr := kernel.NewOrderNumber(seq)
		if numErr != nil {
			return nil, numErr
		}
		view.ID = id.String()
		view.OrderNumber = number.String()
		view.RaisedBy = raiser.displayName()
		views = append(views, view)
	}

	return views, rows.Err()
}
