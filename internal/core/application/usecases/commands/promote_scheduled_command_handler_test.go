package commands_test

import (
	"testing"
	"time"

	"valet/internal/core/application/usecases/commands"
	"valet/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPromoteScheduledCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	deadline := time.Now().Add(30 * time.Minute)
	cmd, err := commands.NewPromoteScheduledCommand(deadline)
	require.NoError(t, err)

	first := testOrder(t)
	second := testOrder(t)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetDueForSearch", mock.Anything, deadline).
		Return([]*order.Order{first, second}, nil).Once()
	repo.On("Update", mock.Anything, first).Return(nil).Once()
	repo.On("Update", mock.Anything, second).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPromoteScheduledCommandHandler(factory)
	promoted, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, promoted)
	assert.Equal(t, order.Searching, first.Status())
	assert.Equal(t, order.Searching, second.Status())
}

func TestPromoteScheduledCommandHandler_Handle_SkipsAlreadyMoved(t *testing.T) {
	ctx := t.Context()
	deadline := time.Now().Add(30 * time.Minute)
	cmd, err := commands.NewPromoteScheduledCommand(deadline)
	require.NoError(t, err)

	promotable := testOrder(t)
	claimed := testOrder(t)
	require.NoError(t, claimed.Claim(driverActor(t).ID()))

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetDueForSearch", mock.Anything, deadline).
		Return([]*order.Order{promotable, claimed}, nil).Once()
	repo.On("Update", mock.Anything, promotable).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPromoteScheduledCommandHandler(factory)
	promoted, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, promoted)
	assert.Equal(t, order.Accepted, claimed.Status())
}
