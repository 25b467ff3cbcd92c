package commands_test

import (
	"context"
	"time"

	"valet/internal/core/application/usecases/commands"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) NextNumber(ctx context.Context) (kernel.OrderNumber, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.OrderNumber), args.Error(1)
}

func (m *MockOrderRepository) GetDueForSearch(ctx context.Context, deadline time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockAlertRepository struct{ mock.Mock }

func (m *MockAlertRepository) Add(ctx context.Context, a *order.EmergencyAlert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAlertRepository) Update(ctx context.Context, a *order.EmergencyAlert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAlertRepository) Get(ctx context.Context, id kernel.UUID) (*order.EmergencyAlert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.EmergencyAlert), args.Error(1)
}

type MockPhotoRepository struct{ mock.Mock }

func (m *MockPhotoRepository) Replace(ctx context.Context, p *order.HandoverPhoto) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPhotoRepository) GetByOrder(ctx context.Context, number kernel.OrderNumber) ([]*order.HandoverPhoto, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.HandoverPhoto), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AlertRepository() ports.AlertRepository {
	args := m.Called()
	return args.Get(0).(ports.AlertRepository)
}

func (m *MockUoW) PhotoRepository() ports.PhotoRepository {
	args := m.Called()
	return args.Get(0).(ports.PhotoRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAlertUoWFactory struct{ mock.Mock }

func (m *MockAlertUoWFactory) Create() commands.AlertUoW {
	args := m.Called()
	return args.Get(0).(commands.AlertUoW)
}

type MockPhotoUoWFactory struct{ mock.Mock }

func (m *MockPhotoUoWFactory) Create() commands.PhotoUoW {
	args := m.Called()
	return args.Get(0).(commands.PhotoUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Publish(ctx context.Context, event ports.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) GetService(ctx context.Context, id kernel.UUID) (ports.ServiceOffering, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.ServiceOffering), args.Error(1)
}

func (m *MockCatalog) GetServiceBySlug(ctx context.Context, slug string) (ports.ServiceOffering, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(ports.ServiceOffering), args.Error(1)
}

func (m *MockCatalog) GetVehicle(ctx context.Context, id kernel.UUID) (ports.VehicleRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.VehicleRecord), args.Error(1)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) Get(ctx context.Context, id kernel.UUID) (ports.Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Profile), args.Error(1)
}

func (m *MockUserDirectory) GetAdmins(ctx context.Context) ([]ports.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Profile), args.Error(1)
}
