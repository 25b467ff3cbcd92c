package commands

import (
	"context"
	"errors"
	"time"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/ports"
)

// ErrServiceIsNotActive is returned when the referenced catalog service is
// disabled and must not accept new orders.
var ErrServiceIsNotActive = errors.New("service is not active")

// CreateOrderCommandHandler creates orders. Numbers come from the store's
// sequence, so creation always runs inside a transaction; the order-created
// event is published only after the commit succeeds.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.Catalog
	notifier   ports.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.Catalog,
	notifier ports.Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		notifier:   notifier,
	}
}

// Handle creates the order and returns its allocated number.
// A driver creating an order for themselves starts it in the assigned
// status; customer orders start scheduled.
func (h CreateOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderCommand,
) (kernel.OrderNumber, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.OrderNumber{}, err
	}

	service, err := h.resolveService(ctx, cmd)
	if err != nil {
		return kernel.OrderNumber{}, err
	}
	if !service.Active {
		return kernel.OrderNumber{}, ErrServiceIsNotActive
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.OrderNumber{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	number, err := orderRepo.NextNumber(ctx)
	if err != nil {
		return kernel.OrderNumber{}, err
	}

	aggregate, err := order.NewOrder(
		number,
		cmd.Actor().ID(),
		service.ID,
		cmd.Route(),
		cmd.PickupTime(),
		cmd.Fare(),
	)
	if err != nil {
		return kernel.OrderNumber{}, err
	}

	if cmd.Actor().Is(actor.RoleDriver) {
		if err = aggregate.SelfAssign(); err != nil {
			return kernel.OrderNumber{}, err
		}
	}

	if invoiceID := cmd.InvoiceID(); invoiceID != nil {
		if err = aggregate.SetInvoice(*invoiceID); err != nil {
			return kernel.OrderNumber{}, err
		}
	}
	if contact := cmd.EmergencyContact(); contact != nil {
		aggregate.SetEmergencyContact(*contact)
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return kernel.OrderNumber{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.OrderNumber{}, err
	}

	_ = h.notifier.Publish(ctx, ports.Event{
		Kind:        ports.EventOrderCreated,
		OrderNumber: number,
		ActorID:     cmd.Actor().ID(),
		Status:      aggregate.Status(),
		OccurredAt:  time.Now().UTC(),
	})

	return number, nil
}

// resolveService looks the service up by slug when the command carries one,
// by id otherwise.
func (h CreateOrderCommandHandler) resolveService(
	ctx context.Context,
	cmd CreateOrderCommand,
) (ports.ServiceOffering, error) {
	if slug := cmd.ServiceSlug(); slug != "" {
		return h.catalog.GetServiceBySlug(ctx, slug)
	}
	return h.catalog.GetService(ctx, cmd.ServiceID())
}
