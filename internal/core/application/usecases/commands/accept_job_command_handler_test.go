package commands_test

import (
	"errors"
	"testing"
	"time"

	"valet/internal/core/application/usecases/commands"
	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func driverActor(t *testing.T) actor.Actor {
	t.Helper()
	act, err := actor.NewActor(kernel.NewUUID(), actor.RoleDriver)
	require.NoError(t, err)
	return act
}

func searchingOrder(t *testing.T) *order.Order {
	t.Helper()
	o := testOrder(t)
	require.NoError(t, o.StartSearch())
	return o
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	pickup, err := kernel.NewGeoPoint(41.0082, 28.9784)
	require.NoError(t, err)
	dropoff, err := kernel.NewGeoPoint(40.9923, 29.0275)
	require.NoError(t, err)
	route, err := order.NewRoute("Taksim Square", pickup, "Kadikoy Pier", dropoff, nil)
	require.NoError(t, err)
	fare, err := order.NewFare(150, 5, 25, "card")
	require.NoError(t, err)
	number, err := kernel.NewOrderNumber(1000)
	require.NoError(t, err)

	o, err := order.NewOrder(number, kernel.NewUUID(), kernel.NewUUID(), route,
		time.Now().Add(time.Hour), fare)
	require.NoError(t, err)
	return o
}

func TestAcceptJobCommand(t *testing.T) {
	t.Run("should create for a driver", func(t *testing.T) {
		number, _ := kernel.NewOrderNumber(1000)
		cmd, err := commands.NewAcceptJobCommand(driverActor(t), number)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
	})

	t.Run("should reject a customer", func(t *testing.T) {
		act, err := actor.NewActor(kernel.NewUUID(), actor.RoleCustomer)
		require.NoError(t, err)
		number, _ := kernel.NewOrderNumber(1000)

		_, err = commands.NewAcceptJobCommand(act, number)
		require.ErrorIs(t, err, commands.ErrActorIsNotDriver)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.AcceptJobCommand
		require.Error(t, cmd.Validate())
	})
}

func TestAcceptJobCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	act := driverActor(t)
	o := searchingOrder(t)
	cmd, err := commands.NewAcceptJobCommand(act, o.Number())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, o.Number()).Return(o, nil).Once(),
		repo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("Publish", mock.Anything, mock.AnythingOfType("ports.Event")).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptJobCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Accepted, o.Status())
	assert.True(t, o.DriverID().IsEqual(act.ID()))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestAcceptJobCommandHandler_Handle_AlreadyTaken(t *testing.T) {
	ctx := t.Context()
	o := searchingOrder(t)
	require.NoError(t, o.Claim(kernel.NewUUID()))

	loser := driverActor(t)
	cmd, err := commands.NewAcceptJobCommand(loser, o.Number())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, o.Number()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	h := commands.NewAcceptJobCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrAlreadyTaken)
	// the loser must not be able to overwrite the winner
	assert.False(t, o.DriverID().IsEqual(loser.ID()))
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAcceptJobCommandHandler_Handle_IdempotentReaccept(t *testing.T) {
	ctx := t.Context()
	act := driverActor(t)
	o := searchingOrder(t)
	require.NoError(t, o.Claim(act.ID()))

	cmd, err := commands.NewAcceptJobCommand(act, o.Number())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, o.Number()).Return(o, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	h := commands.NewAcceptJobCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	// no write and no duplicate event for a repeat accept
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAcceptJobCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	number, _ := kernel.NewOrderNumber(9999)
	cmd, err := commands.NewAcceptJobCommand(driverActor(t), number)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, number).
			Return(nil, errs.NewObjectNotFoundError("order", number)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptJobCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAcceptJobCommandHandler_Handle_TransientLockTimeout(t *testing.T) {
	ctx := t.Context()
	number, _ := kernel.NewOrderNumber(1000)
	cmd, err := commands.NewAcceptJobCommand(driverActor(t), number)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, number).
			Return(nil, errs.NewTransientStoreError("get order for update", errors.New("lock timeout"))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptJobCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrTransientStore)
}
