package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotAllowedToView is returned when the requesting user is neither a
// party on the order nor an admin.
var ErrNotAllowedToView = errors.New("not allowed to view this order")

// GetOrderQueryHandler retrieves one order with its stop list.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle fetches the order view. Returns errs.ObjectNotFoundError for an
// unknown number and ErrNotAllowedToView for a foreign order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	seq := query.OrderNumber().Seq()
	row := h.db.WithContext(ctx).Raw(`
		SELECT `+orderViewColumns+`, o.customer_id, o.driver_id
		FROM orders o
		`+orderViewJoins+`
		WHERE o.number = ?
	`, seq).Row()

	now := time.Now()
	var customerID uuid.UUID
	var driverID *uuid.UUID
	view, err := scanOrderView(func(dest ...any) error {
		return row.Scan(append(dest, &customerID, &driverID)...)
	}, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
			return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderNumber())
		}
		return OrderView{}, err
	}

	if !h.mayView(query, view, customerID, driverID) {
		return OrderView{}, ErrNotAllowedToView
	}

	stops, err := h.loadStops(ctx, seq)
	if err != nil {
		return OrderView{}, err
	}
	view.Stops = stops

	return view, nil
}

func (h GetOrderQueryHandler) mayView(query GetOrderQuery, view OrderView, customerID uuid.UUID, driverID *uuid.UUID) bool {
	if query.Actor().Is(actor.RoleAdmin) {
		return true
	}
	actorID := query.Actor().ID().Bytes()
	if actorID == customerID {
		return true
	}
	if driverID != nil {
		return actorID == *driverID
	}
	// Drivers may inspect unassigned orders from the pool before claiming.
	return query.Actor().Is(actor.RoleDriver) && view.Status == order.Searching.String()
}

func (h GetOrderQueryHandler) loadStops(ctx context.Context, seq int64) ([]StopView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT seq, address, lat, lng
		FROM order_stops
		WHERE order_number = ?
		ORDER BY seq
	`, seq).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := make([]StopView, 0)
	for rows.Next() {
		var stop StopView
		if err = rows.Scan(&stop.Seq, &stop.Address, &stop.Lat, &stop.Lng); err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return stops, rows.Err()
}
