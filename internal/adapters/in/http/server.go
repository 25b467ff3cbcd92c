// Package http exposes the order engine over a JSON API. Handlers parse and
// validate input, build commands or queries, and translate the result onto
// HTTP statuses; all business rules live behind the use case layer.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"valet/internal/core/application/usecases/commands"
	"valet/internal/core/application/usecases/queries"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
)

// OrderViewQuery answers single-order lookups. Write handlers that respond
// with the order view depend on this instead of the concrete query handler.
type OrderViewQuery interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
}

// Server wires the HTTP routes to the command and query handlers.
type Server struct {
	createOrder   commands.CreateOrderCommandHandler
	updateOrder   commands.UpdateOrderCommandHandler
	acceptJob     commands.AcceptJobCommandHandler
	advanceStatus commands.AdvanceStatusCommandHandler
	cancelOrder   commands.CancelOrderCommandHandler
	assignDriver  commands.AssignDriverCommandHandler
	raiseAlert    commands.RaiseAlertCommandHandler
	resolveAlert  commands.ResolveAlertCommandHandler
	attachPhoto   commands.AttachHandoverPhotoCommandHandler

	getOrder   OrderViewQuery
	listOrders queries.ListOrdersQueryHandler
	jobPool    queries.JobPoolQueryHandler
	myJobs     queries.MyJobsQueryHandler
	listAlerts queries.ListAlertsQueryHandler
}

// NewServer creates the HTTP server over the given handlers.
func NewServer(
	createOrder commands.CreateOrderCommandHandler,
	updateOrder commands.UpdateOrderCommandHandler,
	acceptJob commands.AcceptJobCommandHandler,
	advanceStatus commands.AdvanceStatusCommandHandler,
	cancelOrder commands.CancelOrderCommandHandler,
	assignDriver commands.AssignDriverCommandHandler,
	raiseAlert commands.RaiseAlertCommandHandler,
	resolveAlert commands.ResolveAlertCommandHandler,
	attachPhoto commands.AttachHandoverPhotoCommandHandler,
	getOrder OrderViewQuery,
	listOrders queries.ListOrdersQueryHandler,
	jobPool queries.JobPoolQueryHandler,
	myJobs queries.MyJobsQueryHandler,
	listAlerts queries.ListAlertsQueryHandler,
) *Server {
	return &Server{
		createOrder:   createOrder,
		updateOrder:   updateOrder,
		acceptJob:     acceptJob,
		advanceStatus: advanceStatus,
		cancelOrder:   cancelOrder,
		assignDriver:  assignDriver,
		raiseAlert:    raiseAlert,
		resolveAlert:  resolveAlert,
		attachPhoto:   attachPhoto,
		getOrder:      getOrder,
		listOrders:    listOrders,
		jobPool:       jobPool,
		myJobs:        myJobs,
		listAlerts:    listAlerts,
	}
}

// RegisterRoutes mounts the API under /api/v1. Everything except /health
// sits behind the bearer-token middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) {
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1", AuthMiddleware(jwtSecret))

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:number", s.GetOrder)
	api.PATCH("/orders/:number", s.UpdateOrder)
	api.DELETE("/orders/:number", s.DeleteOrder)

	api.POST("/orders/:number/accept", s.AcceptJob)
	api.POST("/orders/:number/on-way", s.advanceTo(order.OnWay))
	api.POST("/orders/:number/start", s.advanceTo(order.InProgress))
	api.POST("/orders/:number/complete", s.advanceTo(order.Completed))
	api.POST("/orders/:number/cancel", s.CancelOrder)
	api.POST("/orders/:number/assign-driver", s.AssignDriver)
	api.POST("/orders/:number/handover-photos", s.AttachHandoverPhoto)

	api.GET("/driver/pool", s.JobPool)
	api.GET("/driver/my-jobs", s.MyJobs)

	api.GET("/emergency-alerts", s.ListAlerts)
	api.POST("/emergency-alerts", s.RaiseAlert)
	api.POST("/emergency-alerts/:id/resolve", s.resolveAlertTo(true))
	api.POST("/emergency-alerts/:id/unresolve", s.resolveAlertTo(false))
}

// StopRequest is one intermediate waypoint in an order request.
type StopRequest struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// ContactRequest is an emergency contact in an order request.
type ContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// OrderRequest carries the full editable content of an order. Used as-is
// for creation and as the replacement content for updates. The service is
// referenced by slug or by id; slug wins when both are present.
type OrderRequest struct {
	ServiceID      string          `json:"serviceId,omitempty"`
	ServiceSlug    string          `json:"serviceSlug,omitempty"`
	PickupAddress  string          `json:"pickupAddress"`
	PickupLat      float64         `json:"pickupLat"`
	PickupLng      float64         `json:"pickupLng"`
	DropoffAddress string          `json:"dropoffAddress"`
	DropoffLat     float64         `json:"dropoffLat"`
	DropoffLng     float64         `json:"dropoffLng"`
	Stops          []StopRequest   `json:"stops"`
	PickupTime     time.Time       `json:"pickupTime"`
	Price          float64         `json:"price"`
	DistanceKm     float64         `json:"distanceKm"`
	DurationMin    int             `json:"durationMin"`
	PaymentMethod  string          `json:"paymentMethod"`
	InvoiceID      string          `json:"invoiceId,omitempty"`
	Emergency      *ContactRequest `json:"emergencyContact,omitempty"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	act, err := requestActor(c)
	if err != nil {
		return err
	}

	var req OrderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	route, fare, err := orderContent(req)
	if err != nil {
		return respondError(c, err)
	}

	var cmd commands.CreateOrderCommand
	if req.ServiceSlug != "" {
		cmd, err = commands.NewCreateOrderCommandBySlug(act, req.ServiceSlug, route, req.PickupTime, fare)
	} else {
		serviceID, idErr := kernel.UUIDFromString(req.ServiceID)
		if idErr != nil {
			return badRequest(c, "service slug or id is required")
		}
		cmd, err = commands.NewCreateOrderCommand(act, serviceID, route, req.PickupTime, fare)
	}
	if err != nil {
		return respondError(c, err)
	}

	if req.InvoiceID != "" {
		invoiceID, idErr := kernel.UUIDFromString(req.InvoiceID)
		if idErr != nil {
			return badRequest(c, "invalid invoice id")
		}
		if cmd, err = cmd.WithInvoice(invoiceID); err != nil {
			return respondError(c, err)
		}
	}
	if req.Emergency != nil {
		contact, contactErr := order.NewContact(req.Emergency.Name, req.Emergency.Phone)
		if contactErr != nil {
			return respondError(c, contactErr)
		}
		cmd = cmd.WithEmergencyContact(contact)
	}

	number, err := s.createOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetOrderQuery(act, number)
	if err != nil {
		return respondError(c, err)
	}
	view, err := s.getOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, view)
}

// GetOrder handles GET /api/v1/orders/:number.
func (s *Server) GetOrder(c echo.Context) error {
	act, err := requestActor(c)
	if err != nil {
		return err
	}
	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return badRequest(c, "invalid order number")
	}

	query, err := queries.NewGetOrderQuery(act, number)
	if err != nil {
		return respondError(c, err)
	}
	view, err := s.getOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

// ListOrders handles GET /api/v1/orders?group=active|history.
func (s *Server) ListOrders(c echo.Context) error {
	act, err := requestActor(c)
	if err != nil {
		return err
	}

	group := queries.OrderGroup(c.QueryParam("group"))
	if group == "" {
		group = queries.GroupActive
	}

	query, err := queries.NewListOrdersQuery(act, group)
	if err != nil {
		return respondError(c, err)
	}
	views, err := s.listOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, views)
}

// UpdateOrder handles PATCH /api/v1/orders/:number. The body replaces the
// order content wholesale; partial edits are a client concern.
func (s *Server) UpdateOrder(c echo.Context) error {
	act, err := requestActor(c)
	if err != nil {
		return err
	}
	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return badRequest(c, "invalid order number")
	}

	var req OrderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	route, fare, err := orderContent(req)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(act, number, route, req.PickupTime, fare)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.updateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:number. Orders are never
// deleted; the route exists so old clients get a clear answer.
func (s *Server) DeleteOrder(c echo.Context) error {
	return c.JSON(http.StatusForbidden, ErrorBody{
		Code:    http.StatusForbidden,
		Reason:  "not_deletable",
		Message: "orders cannot be deleted, cancel instead",
	})
}

// AcceptJob handles POST /api/v1/orders/:number/accept.
func (s *Server) AcceptJob(c echo.Context) error {
	act, err := requestActor(c)
	if err != nil {
		return err
	}
	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return badRequest(c, "invalid order number")
	}

	cmd, err := commands.NewAcceptJobCommand(act, number)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.acceptJob.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	// The winning driver immediately needs the full order, so answer with
	// the view instead of a bare status.
	query, err := queries.NewGetOrderQuery(act, number)
	if err != nil {
		return respondError(c, err)
	}
	view, err := s.getOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

// advanceTo builds the handler for one of the driver progress routes.
func (s *Server) advanceTo(target order.Status) echo.HandlerFunc {
	return func(c echo.Context) error {
		act, err := requestActor(c)
		if err != nil {
			return err
		}
		number, err := kernel.ParseOrderNumber(c.Param("number"))
		if err != nil {
			return badRequest(c, "invalid order number")
		}

		cmd, err := commands.NewAdvanceStatusCommand(act, number, target)
		if err != nil {
			return respondError(c, err)
		}
		if err = s.advanceStatus.Handle(c.Request().Context(), cmd); err != nil {
			return respondError(c, err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// CancelOrder handles POST /api/v1/orders/:number/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	act, err := requestActor(c)
	if err != nil {
		return err
	}
	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return badRequest(c, "invalid order number")
	}

	cmd, err := commands.NewCancelOrderCommand(act, number)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.cancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AssignDriverRequest is the body of the admin assignment route.
type AssignDriverRequest struct {
	DriverID  string `json:"driverId"`
	VehicleID string `json:"vehicleId,omitempty"`
}

// AssignDriver handles POST /api/v1/orders/:number/assign-driver.
func (s *Server) AssignDriver(c echo.Context) error {
	act, err := requestActor(c)
	if err != nil {
		return err
	}
	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return badRequest(c, "invalid order number")
	}

	var req AssignDriverRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(c, "invalid driver id")
	}
	var vehicleID *kernel.UUID
	if req.VehicleID != "" {
		id, idErr := kernel.UUIDFromString(req.VehicleID)
		if idErr != nil {
			return badRequest(c, "invalid vehicle id")
		}
		vehicleID = &id
	}

	cmd, err := commands.NewAssignDriverCommand(act, number, driverID, vehicleID)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.assignDriver.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// HandoverPhotoRequest is the body of the photo attachment route.
type HandoverPhotoRequest struct {
	Side string `json:"side"`
	URL  string `json:"url"`
}

// AttachHandoverPhoto handles POST /api/v1/orders/:number/handover-photos.
func (s *Server) AttachHandoverPhoto(c echo.Context) error {
	act, err := requestActor(c)
	if err != nil {
		return err
	}
	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return badRequest(c, "invalid order number")
	}

	var req HandoverPhotoRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	side, err := order.ParsePhotoSide(req.Side)
	if err != nil {
		return badRequest(c, "invalid photo side")
	}

	cmd, err := commands.NewAttachHandoverPhotoCommand(act, number, side, req.URL)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.attachPhoto.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusCreated)
}

// JobPool handles GET /api/v1/driver/pool.
func (s *Server) JobPool(c echo.Context) error {
	act, err := requestActor(c)
	if err != nil {
		return err
	}

	query, err := queries.NewJobPoolQuery(act)
	if err != nil {
		return respondError(c, err)
	}
	views, err := s.jobPool.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, views)
}

// MyJobs handles GET /api/v1/driver/my-jobs.
func (s *Server) MyJobs(c echo.Context) error {
	act, err := requestActor(c)
	if err != nil {
		return err
	}

	query, err := queries.NewMyJobsQuery(act)
	if err != nil {
		return respondError(c, err)
	}
	views, err := s.myJobs.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, views)
}

// RaiseAlertRequest is the body of the alert route.
type RaiseAlertRequest struct {
	OrderNumber string  `json:"orderNumber"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// RaiseAlert handles POST /api/v1/emergency-alerts.
func (s *Server) RaiseAlert(c echo.Context) error {
	act, err := requestActor(c)
	if err != nil {
		return err
	}

	var req RaiseAlertRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	number, err := kernel.ParseOrderNumber(req.OrderNumber)
	if err != nil {
		return badRequest(c, "invalid order number")
	}
	point, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return badRequest(c, "invalid coordinates")
	}

	cmd, err := commands.NewRaiseAlertCommand(act, number, point)
	if err != nil {
		return respondError(c, err)
	}
	alertID, err := s.raiseAlert.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": alertID.String()})
}

// ListAlerts handles GET /api/v1/emergency-alerts?unresolved=true.
func (s *Server) ListAlerts(c echo.Context) error {
	act, err := requestActor(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListAlertsQuery(act, c.QueryParam("unresolved") == "true")
	if err != nil {
		return respondError(c, err)
	}
	views, err := s.listAlerts.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, views)
}

// resolveAlertTo builds the handler for the resolve and unresolve routes.
func (s *Server) resolveAlertTo(resolved bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		act, err := requestActor(c)
		if err != nil {
			return err
		}
		alertID, err := kernel.UUIDFromString(c.Param("id"))
		if err != nil {
			return badRequest(c, "invalid alert id")
		}

		cmd, err := commands.NewResolveAlertCommand(act, alertID, resolved)
		if err != nil {
			return respondError(c, err)
		}
		if err = s.resolveAlert.Handle(c.Request().Context(), cmd); err != nil {
			return respondError(c, err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// orderContent converts the request body to domain value objects.
func orderContent(req OrderRequest) (order.Route, order.Fare, error) {
	pickup, err := kernel.NewGeoPoint(req.PickupLat, req.PickupLng)
	if err != nil {
		return order.Route{}, order.Fare{}, err
	}
	dropoff, err := kernel.NewGeoPoint(req.DropoffLat, req.DropoffLng)
	if err != nil {
		return order.Route{}, order.Fare{}, err
	}

	stops := make([]order.Stop, 0, len(req.Stops))
	for _, s := range req.Stops {
		point, pointErr := kernel.NewGeoPoint(s.Lat, s.Lng)
		if pointErr != nil {
			return order.Route{}, order.Fare{}, pointErr
		}
		stop, stopErr := order.NewStop(s.Address, point)
		if stopErr != nil {
			return order.Route{}, order.Fare{}, stopErr
		}
		stops = append(stops, stop)
	}

	route, err := order.NewRoute(req.PickupAddress, pickup, req.DropoffAddress, dropoff, stops)
	if err != nil {
		return order.Route{}, order.Fare{}, err
	}
	fare, err := order.NewFare(req.Price, req.DistanceKm, req.DurationMin, req.PaymentMethod)
	if err != nil {
		return order.Route{}, order.Fare{}, err
	}
	return route, fare, nil
}
