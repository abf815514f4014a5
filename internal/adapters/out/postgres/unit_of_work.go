// Package postgres implements the unit of work over GORM and owns the schema.
//
// A unit of work opens one transaction, hands out repositories bound to it
// and remembers every aggregate they wrote. After a successful Commit the
// domain events buffered by those aggregates are passed to the configured
// EventPublisher. Publishing happens after the data is durable, so a failed
// publish is logged and never undoes the commit.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.ShipmentRepository().Update(ctx, s); err != nil {
//	    return err
//	}
//	if err := uow.JournalRepository().AppendTransition(ctx, tr); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork is single-use per transaction and must not be shared
// between goroutines.
package postgres

import (
	"context"
	"log/slog"

	"courierops/internal/adapters/out/postgres/alertrepo"
	"courierops/internal/adapters/out/postgres/handoffrepo"
	"courierops/internal/adapters/out/postgres/journalrepo"
	"courierops/internal/adapters/out/postgres/shipmentrepo"
	"courierops/internal/adapters/out/postgres/workerrepo"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool, publisher and logger.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates the factory. publisher may be nil, in
// which case events are dropped after commit.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}

	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one transaction and the aggregates written in
// it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate

	// shipments lives as long as the transaction so that an update sees
	// the raw status its read observed.
	shipments *shipmentrepo.GormShipmentRepository
}

// Begin opens the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	uow.shipments = nil
	return nil
}

// Commit makes the changes durable and then publishes the events of every
// tracked aggregate.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.shipments = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishEvents(ctx)
	return nil
}

// Rollback discards the transaction and the events buffered with it. It
// returns gorm.ErrInvalidTransaction when nothing is open, which callers
// deferring it after Commit ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.shipments = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	if uow.tx == nil {
		return shipmentrepo.NewGormShipmentRepository(uow.db, uow)
	}
	if uow.shipments == nil {
		uow.shipments = shipmentrepo.NewGormShipmentRepository(uow.tx, uow)
	}
	return uow.shipments
}

func (uow *GormUnitOfWork) JournalRepository() ports.JournalRepository {
	return journalrepo.NewGormJournalRepository(uow.conn())
}

func (uow *GormUnitOfWork) HandoffRepository() ports.HandoffRepository {
	return handoffrepo.NewGormHandoffRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AlertRepository() ports.AlertRepository {
	return alertrepo.NewGormAlertRepository(uow.conn())
}

func (uow *GormUnitOfWork) WorkforceDirectory() ports.WorkforceDirectory {
	return workerrepo.NewGormWorkforceDirectory(uow.conn())
}

// TrackAggregate is called by repositories for every aggregate they write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	var events []kernel.DomainEvent
	for _, t := range tracked {
		if source, ok := t.Aggregate.(kernel.EventSource); ok {
			events = append(events, source.PullEvents()...)
		}
	}
	if len(events) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(context.WithoutCancel(ctx), events...); err != nil {
		uow.logger.ErrorContext(ctx, "Failed to publish domain events after commit",
			"events", len(events),
			"error", err,
		)
	}
}
