package commands

import (
	"context"
	"errors"
	"time"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/ports"
)

// ErrAssigneeIsNotDriver is returned when the target account of an admin
// assignment does not have the driver role.
var ErrAssigneeIsNotDriver = errors.New("assignee is not a driver")

// AssignDriverCommandHandler performs admin-directed driver assignment.
// The assigned driver still confirms via accept; the order sits in the
// assigned status until then.
type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.Catalog
	directory  ports.UserDirectory
	notifier   ports.Notifier
}

// NewAssignDriverCommandHandler creates a handler for admin assignments.
func NewAssignDriverCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.Catalog,
	directory ports.UserDirectory,
	notifier ports.Notifier,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		directory:  directory,
		notifier:   notifier,
	}
}

// Handle assigns the driver and, when requested, the vehicle. The vehicle's
// plate is mirrored onto the order.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	assignee, err := h.directory.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}
	if assignee.Role != actor.RoleDriver {
		return ErrAssigneeIsNotDriver
	}

	var vehicle ports.VehicleRecord
	if cmd.VehicleID() != nil {
		if vehicle, err = h.catalog.GetVehicle(ctx, *cmd.VehicleID()); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	if err = aggregate.AssignDriver(cmd.DriverID()); err != nil {
		return err
	}
	if cmd.VehicleID() != nil {
		if err = aggregate.AssignVehicle(vehicle.ID, vehicle.Plate); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.Publish(ctx, ports.Event{
		Kind:        ports.EventDriverAssigned,
		OrderNumber: cmd.OrderNumber(),
		ActorID:     cmd.DriverID(),
		Status:      aggregate.Status(),
		OccurredAt:  time.Now().UTC(),
	})

	return nil
}
