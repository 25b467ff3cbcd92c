package commands_test

import (
	"testing"

	"valet/internal/core/application/usecases/commands"
	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignDriverCommand(t *testing.T) {
	t.Run("should reject a non-admin actor", func(t *testing.T) {
		number, _ := kernel.NewOrderNumber(1000)
		_, err := commands.NewAssignDriverCommand(driverActor(t), number, kernel.NewUUID(), nil)
		require.ErrorIs(t, err, commands.ErrActorIsNotAdmin)
	})
}

func TestAssignDriverCommandHandler_Handle_WithVehicle(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	driverID := kernel.NewUUID()
	vehicleID := kernel.NewUUID()
	cmd, err := commands.NewAssignDriverCommand(adminActor(t), o.Number(), driverID, &vehicleID)
	require.NoError(t, err)

	directory := new(MockUserDirectory)
	directory.On("Get", mock.Anything, driverID).
		Return(ports.Profile{ID: driverID, Role: actor.RoleDriver}, nil).Once()

	catalog := new(MockCatalog)
	catalog.On("GetVehicle", mock.Anything, vehicleID).
		Return(ports.VehicleRecord{ID: vehicleID, Plate: "34ABC123"}, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, o.Number()).Return(o, nil).Once(),
		repo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	notifier := new(MockNotifier)
	notifier.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.Kind == ports.EventDriverAssigned && e.ActorID.IsEqual(driverID)
	})).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignDriverCommandHandler(factory, catalog, directory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Assigned, o.Status())
	assert.True(t, o.DriverID().IsEqual(driverID))
	assert.Equal(t, "34ABC123", o.LicensePlate())
}

func TestAssignDriverCommandHandler_Handle_AssigneeIsNotDriver(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	assignee := kernel.NewUUID()
	cmd, err := commands.NewAssignDriverCommand(adminActor(t), o.Number(), assignee, nil)
	require.NoError(t, err)

	directory := new(MockUserDirectory)
	directory.On("Get", mock.Anything, assignee).
		Return(ports.Profile{ID: assignee, Role: actor.RoleCustomer}, nil).Once()

	factory := new(MockOrderUoWFactory)
	h := commands.NewAssignDriverCommandHandler(factory, new(MockCatalog), directory, new(MockNotifier))
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrAssigneeIsNotDriver)
	factory.AssertNotCalled(t, "Create")
}
