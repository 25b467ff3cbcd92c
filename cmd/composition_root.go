// Package cmd wires configuration, adapters and use cases together.
package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	httpin "valet/internal/adapters/in/http"
	"valet/internal/adapters/out/postgres"
	"valet/internal/adapters/out/postgres/catalogrepo"
	"valet/internal/adapters/out/postgres/userdir"
	"valet/internal/core/application/usecases/commands"
	"valet/internal/core/application/usecases/queries"
	"valet/internal/core/ports"
	"valet/internal/jobs"
)

// CompositionRoot builds every handler from the shared adapters. Handlers
// are cheap value types; a fresh one per call site is fine.
type CompositionRoot struct {
	config Config

	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	catalog    *catalogrepo.GormCatalog
	directory  *userdir.GormUserDirectory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCompositionRoot creates the root over an open database connection and
// a ready event bus.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	notifier ports.Notifier,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, config.LockTimeout),
		catalog:    catalogrepo.NewGormCatalog(gormDB),
		directory:  userdir.NewGormUserDirectory(gormDB),
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) alertUoWFactory() commands.AlertUoWFactory {
	return FuncAlertUoWFactory(func() commands.AlertUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) photoUoWFactory() commands.PhotoUoWFactory {
	return FuncPhotoUoWFactory(func() commands.PhotoUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) NewCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.catalog, c.notifier)
}

func (c *CompositionRoot) NewUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) NewAcceptJobCommandHandler() commands.AcceptJobCommandHandler {
	return commands.NewAcceptJobCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) NewAdvanceStatusCommandHandler() commands.AdvanceStatusCommandHandler {
	return commands.NewAdvanceStatusCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) NewCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) NewAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(
		c.orderUoWFactory(), c.catalog, c.directory, c.notifier)
}

func (c *CompositionRoot) NewRaiseAlertCommandHandler() commands.RaiseAlertCommandHandler {
	return commands.NewRaiseAlertCommandHandler(c.alertUoWFactory(), c.notifier)
}

func (c *CompositionRoot) NewResolveAlertCommandHandler() commands.ResolveAlertCommandHandler {
	return commands.NewResolveAlertCommandHandler(c.alertUoWFactory())
}

func (c *CompositionRoot) NewAttachHandoverPhotoCommandHandler() commands.AttachHandoverPhotoCommandHandler {
	return commands.NewAttachHandoverPhotoCommandHandler(c.photoUoWFactory())
}

func (c *CompositionRoot) NewPromoteScheduledCommandHandler() commands.PromoteScheduledCommandHandler {
	return commands.NewPromoteScheduledCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) NewGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) NewListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) NewJobPoolQueryHandler() queries.JobPoolQueryHandler {
	return queries.NewJobPoolQueryHandler(c.gormDB)
}

func (c *CompositionRoot) NewMyJobsQueryHandler() queries.MyJobsQueryHandler {
	return queries.NewMyJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) NewListAlertsQueryHandler() queries.ListAlertsQueryHandler {
	return queries.NewListAlertsQueryHandler(c.gormDB)
}

// NewJobManager creates the background job manager.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.NewPromoteScheduledCommandHandler(), c.config.SearchLeadTime, c.logger)
}

// NewHTTPServer creates the HTTP server over all handlers.
func (c *CompositionRoot) NewHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.NewCreateOrderCommandHandler(),
		c.NewUpdateOrderCommandHandler(),
		c.NewAcceptJobCommandHandler(),
		c.NewAdvanceStatusCommandHandler(),
		c.NewCancelOrderCommandHandler(),
		c.NewAssignDriverCommandHandler(),
		c.NewRaiseAlertCommandHandler(),
		c.NewResolveAlertCommandHandler(),
		c.NewAttachHandoverPhotoCommandHandler(),
		c.NewGetOrderQueryHandler(),
		c.NewListOrdersQueryHandler(),
		c.NewJobPoolQueryHandler(),
		c.NewMyJobsQueryHandler(),
		c.NewListAlertsQueryHandler(),
	)
}

// FuncOrderUoWFactory adapts a closure to the OrderUoWFactory interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncAlertUoWFactory adapts a closure to the AlertUoWFactory interface.
type FuncAlertUoWFactory func() commands.AlertUoW

func (f FuncAlertUoWFactory) Create() commands.AlertUoW {
	return f()
}

// FuncPhotoUoWFactory adapts a closure to the PhotoUoWFactory interface.
type FuncPhotoUoWFactory func() commands.PhotoUoW

func (f FuncPhotoUoWFactory) Create() commands.PhotoUoW {
	return f()
}
