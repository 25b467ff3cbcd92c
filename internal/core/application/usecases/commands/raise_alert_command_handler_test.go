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

func alertPoint(t *testing.T) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(41.0151, 28.9795)
	require.NoError(t, err)
	return point
}

func alertSetup(t *testing.T, ctx any, o *order.Order, commit bool) (*MockAlertUoWFactory, *MockAlertRepository) {
	t.Helper()
	orderRepo := new(MockOrderRepository)
	alertRepo := new(MockAlertRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", mock.Anything, o.Number()).Return(o, nil).Once()
	if commit {
		uow.On("AlertRepository").Return(alertRepo).Once()
		alertRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.EmergencyAlert")).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockAlertUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, alertRepo
}

func TestRaiseAlertCommandHandler_Handle_CustomerRaises(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	owner, err := actor.NewActor(o.CustomerID(), actor.RoleCustomer)
	require.NoError(t, err)
	cmd, err := commands.NewRaiseAlertCommand(owner, o.Number(), alertPoint(t))
	require.NoError(t, err)

	factory, alertRepo := alertSetup(t, ctx, o, true)
	notifier := new(MockNotifier)
	notifier.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.Kind == ports.EventAlertRaised && e.OrderNumber.IsEqual(o.Number())
	})).Return(nil).Once()

	h := commands.NewRaiseAlertCommandHandler(factory, notifier)
	alertID, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.NoError(t, alertID.Validate())
	alertRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRaiseAlertCommandHandler_Handle_StrangerDenied(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	cmd, err := commands.NewRaiseAlertCommand(customerActor(t), o.Number(), alertPoint(t))
	require.NoError(t, err)

	factory, alertRepo := alertSetup(t, ctx, o, false)
	notifier := new(MockNotifier)

	h := commands.NewRaiseAlertCommandHandler(factory, notifier)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrPermissionDenied)
	alertRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestResolveAlertCommandHandler_Handle_Resolves(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	alert, err := order.NewEmergencyAlert(
		kernel.NewUUID(), o.Number(), o.CustomerID(), alertPoint(t))
	require.NoError(t, err)

	alertRepo := new(MockAlertRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AlertRepository").Return(alertRepo).Once()
	alertRepo.On("Get", mock.Anything, alert.ID()).Return(alert, nil).Once()
	alertRepo.On("Update", mock.Anything, alert).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockAlertUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewResolveAlertCommand(adminActor(t), alert.ID(), true)
	require.NoError(t, err)

	h := commands.NewResolveAlertCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, alert.IsResolved())
}

func TestResolveAlertCommand_NonAdminRejected(t *testing.T) {
	_, err := commands.NewResolveAlertCommand(customerActor(t), kernel.NewUUID(), true)

	require.ErrorIs(t, err, commands.ErrActorIsNotAdmin)
}
