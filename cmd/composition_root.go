package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"courierops/api"
	httpadapter "courierops/internal/adapters/in/http"
	"courierops/internal/adapters/out/eventlog"
	"courierops/internal/adapters/out/kafka"
	"courierops/internal/adapters/out/postgres"
	"courierops/internal/adapters/out/postgres/memberrepo"
	"courierops/internal/adapters/out/rabbitmq"
	"courierops/internal/adapters/out/redislock"
	"courierops/internal/core/application/usecases/commands"
	"courierops/internal/core/application/usecases/queries"
	"courierops/internal/core/domain/services"
	"courierops/internal/core/ports"
	"courierops/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenDatabase connects to postgres.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	branches   ports.BranchDirectory
	aggregator services.AlertAggregator
	monitor    *commands.RunSLAMonitorCommandHandler
	closers    []func() error
}

// NewCompositionRoot connects the event broker and, when REDIS_ADDR is set,
// the monitor run-lock. Close releases both.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		branches:   memberrepo.NewGormBranchDirectory(gormDB),
		aggregator: services.NewAlertAggregator(cfg.CODBacklogThreshold),
	}

	publisher, err := c.createEventPublisher()
	if err != nil {
		return nil, err
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)

	evaluator, err := services.NewSLAEvaluator(cfg.SLAWarningWindow, cfg.SLAPauseOnHold)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}
	var f commands.MonitorUoWFactory = FuncMonitorUoWFactory(func() commands.MonitorUoW {
		return c.uowFactory.Create()
	})
	c.monitor = commands.NewRunSLAMonitorCommandHandler(f, evaluator, c.createRunLock(), cfg.SLAMonitorLockTTL, logger)

	return c, nil
}

func (c *CompositionRoot) createEventPublisher() (ports.EventPublisher, error) {
	switch c.cfg.EventBroker {
	case BrokerRabbitMQ:
		p, err := rabbitmq.Dial(c.cfg.RabbitMQURL, c.cfg.RabbitMQExchange, c.logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, p.Close)
		return p, nil
	case BrokerKafka:
		p := kafka.NewPublisher(c.cfg.KafkaHost, c.cfg.KafkaShipmentEventsTopic, c.logger)
		c.closers = append(c.closers, p.Close)
		return p, nil
	default:
		return eventlog.NewPublisher(c.logger), nil
	}
}

func (c *CompositionRoot) createRunLock() ports.RunLock {
	if c.cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.RedisAddr,
		Password: c.cfg.RedisPassword,
		DB:       c.cfg.RedisDB,
	})
	c.closers = append(c.closers, client.Close)
	return redislock.New(client)
}

// Migrate creates or updates the schema.
func (c *CompositionRoot) Migrate(ctx context.Context) error {
	return postgres.Migrate(ctx, c.gormDB)
}

// Close releases broker and redis connections in reverse order.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

func (c *CompositionRoot) CreateBookShipmentCommandHandler() commands.BookShipmentCommandHandler {
	return commands.NewBookShipmentCommandHandler(c.shipmentUoWFactory(), c.branches)
}

func (c *CompositionRoot) CreateScanShipmentCommandHandler() commands.ScanShipmentCommandHandler {
	return commands.NewScanShipmentCommandHandler(c.transitionUoWFactory(), c.branches)
}

func (c *CompositionRoot) CreateAssignShipmentCommandHandler() commands.AssignShipmentCommandHandler {
	var f commands.AssignUoWFactory = FuncAssignUoWFactory(func() commands.AssignUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignShipmentCommandHandler(f, c.branches)
}

func (c *CompositionRoot) CreateHoldShipmentCommandHandler() commands.HoldShipmentCommandHandler {
	return commands.NewHoldShipmentCommandHandler(c.shipmentUoWFactory(), c.branches)
}

func (c *CompositionRoot) CreateReleaseHoldCommandHandler() commands.ReleaseHoldCommandHandler {
	return commands.NewReleaseHoldCommandHandler(c.shipmentUoWFactory(), c.branches)
}

func (c *CompositionRoot) CreateRerouteShipmentCommandHandler() commands.RerouteShipmentCommandHandler {
	return commands.NewRerouteShipmentCommandHandler(c.shipmentUoWFactory(), c.branches)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	return commands.NewCancelShipmentCommandHandler(c.transitionUoWFactory(), c.branches)
}

func (c *CompositionRoot) CreateReportExceptionCommandHandler() commands.ReportExceptionCommandHandler {
	return commands.NewReportExceptionCommandHandler(c.transitionUoWFactory(), c.branches)
}

func (c *CompositionRoot) CreateRequestHandoffCommandHandler() commands.RequestHandoffCommandHandler {
	return commands.NewRequestHandoffCommandHandler(c.handoffUoWFactory(), c.branches)
}

func (c *CompositionRoot) CreateApproveHandoffCommandHandler() commands.ApproveHandoffCommandHandler {
	return commands.NewApproveHandoffCommandHandler(c.handoffUoWFactory(), c.branches)
}

func (c *CompositionRoot) CreateRejectHandoffCommandHandler() commands.RejectHandoffCommandHandler {
	return commands.NewRejectHandoffCommandHandler(c.handoffUoWFactory(), c.branches)
}

func (c *CompositionRoot) CreateCompleteHandoffCommandHandler() commands.CompleteHandoffCommandHandler {
	return commands.NewCompleteHandoffCommandHandler(c.handoffUoWFactory(), c.branches)
}

func (c *CompositionRoot) CreateRaiseAlertCommandHandler() commands.RaiseAlertCommandHandler {
	return commands.NewRaiseAlertCommandHandler(c.alertUoWFactory(), c.branches)
}

func (c *CompositionRoot) CreateRaiseMaintenanceCommandHandler() commands.RaiseMaintenanceCommandHandler {
	return commands.NewRaiseMaintenanceCommandHandler(c.alertUoWFactory(), c.branches)
}

func (c *CompositionRoot) CreateResolveAlertCommandHandler() commands.ResolveAlertCommandHandler {
	return commands.NewResolveAlertCommandHandler(c.alertUoWFactory(), c.branches)
}

// RunSLAMonitorCommandHandler is shared by the cron job and the HTTP
// trigger so that its in-process guard covers both.
func (c *CompositionRoot) RunSLAMonitorCommandHandler() *commands.RunSLAMonitorCommandHandler {
	return c.monitor
}

func (c *CompositionRoot) CreateListBranchHandoffsQueryHandler() queries.ListBranchHandoffsQueryHandler {
	return queries.NewListBranchHandoffsQueryHandler(c.gormDB, c.branches)
}

func (c *CompositionRoot) CreateListBranchAlertsQueryHandler() queries.ListBranchAlertsQueryHandler {
	return queries.NewListBranchAlertsQueryHandler(c.gormDB, c.branches)
}

func (c *CompositionRoot) CreateGetOperationalAlertsQueryHandler() queries.GetOperationalAlertsQueryHandler {
	return queries.NewGetOperationalAlertsQueryHandler(c.gormDB, c.branches, c.aggregator)
}

func (c *CompositionRoot) CreateGetShipmentHistoryQueryHandler() queries.GetShipmentHistoryQueryHandler {
	return queries.NewGetShipmentHistoryQueryHandler(c.gormDB, c.branches)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.monitor, c.cfg.SLAMonitorSchedule, c.logger)
}

// CreateHTTPServer wires every use case into the echo router.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		BookShipment:     c.CreateBookShipmentCommandHandler(),
		ScanShipment:     c.CreateScanShipmentCommandHandler(),
		AssignShipment:   c.CreateAssignShipmentCommandHandler(),
		HoldShipment:     c.CreateHoldShipmentCommandHandler(),
		ReleaseHold:      c.CreateReleaseHoldCommandHandler(),
		RerouteShipment:  c.CreateRerouteShipmentCommandHandler(),
		CancelShipment:   c.CreateCancelShipmentCommandHandler(),
		ReportException:  c.CreateReportExceptionCommandHandler(),
		RaiseAlert:       c.CreateRaiseAlertCommandHandler(),
		RaiseMaintenance: c.CreateRaiseMaintenanceCommandHandler(),
		ResolveAlert:     c.CreateResolveAlertCommandHandler(),
		RequestHandoff:   c.CreateRequestHandoffCommandHandler(),
		ApproveHandoff:   c.CreateApproveHandoffCommandHandler(),
		RejectHandoff:    c.CreateRejectHandoffCommandHandler(),
		CompleteHandoff:  c.CreateCompleteHandoffCommandHandler(),
		RunSLAMonitor:    c.monitor,

		ListBranchHandoffs:   c.CreateListBranchHandoffsQueryHandler(),
		ListBranchAlerts:     c.CreateListBranchAlertsQueryHandler(),
		GetOperationalAlerts: c.CreateGetOperationalAlertsQueryHandler(),
		GetShipmentHistory:   c.CreateGetShipmentHistoryQueryHandler(),
	}, c.logger, nil)

	return httpadapter.NewRouter(server, doc, c.logger)
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) transitionUoWFactory() commands.TransitionUoWFactory {
	return FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) handoffUoWFactory() commands.HandoffUoWFactory {
	return FuncHandoffUoWFactory(func() commands.HandoffUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) alertUoWFactory() commands.AlertUoWFactory {
	return FuncAlertUoWFactory(func() commands.AlertUoW {
		return c.uowFactory.Create()
	})
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncTransitionUoWFactory func() commands.TransitionUoW

func (f FuncTransitionUoWFactory) Create() commands.TransitionUoW {
	return f()
}

type FuncAssignUoWFactory func() commands.AssignUoW

func (f FuncAssignUoWFactory) Create() commands.AssignUoW {
	return f()
}

type FuncHandoffUoWFactory func() commands.HandoffUoW

func (f FuncHandoffUoWFactory) Create() commands.HandoffUoW {
	return f()
}

type FuncAlertUoWFactory func() commands.AlertUoW

func (f FuncAlertUoWFactory) Create() commands.AlertUoW {
	return f()
}

type FuncMonitorUoWFactory func() commands.MonitorUoW

func (f FuncMonitorUoWFactory) Create() commands.MonitorUoW {
	return f()
}
