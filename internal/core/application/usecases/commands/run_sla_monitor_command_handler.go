package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/domain/services"
	"courierops/internal/core/ports"
)

// MonitorLockKey is the run-lock key shared by every process running the
// monitor.
const MonitorLockKey = "courierops:sla-monitor"

// MonitorReport summarises one sweep.
type MonitorReport struct {
	// Skipped is set when another sweep held the lock; nothing was read.
	Skipped bool

	ShipmentsChecked int
	HandoffsChecked  int
	AlertsRaised     int
	AlertsExisting   int
	Failures         int
}

// RunSLAMonitorCommandHandler sweeps open shipments and approved handoffs and
// raises SLA alerts.
//
// Sweeps never overlap: within a process a second call while one is running
// returns a skipped report, and an optional RunLock extends that across
// processes. Each alert is raised in its own unit of work after checking for
// an open one with the same subject, so running the sweep twice raises
// nothing new. A failure on one shipment or handoff is logged and counted and
// does not stop the sweep. Writes use a context that is not cancelled with
// the caller's.
type RunSLAMonitorCommandHandler struct {
	uowFactory MonitorUoWFactory
	evaluator  services.SLAEvaluator
	lock       ports.RunLock
	lockTTL    time.Duration
	logger     *slog.Logger

	running sync.Mutex
}

// NewRunSLAMonitorCommandHandler creates the handler. lock may be nil when a
// single process runs the monitor.
func NewRunSLAMonitorCommandHandler(
	uowFactory MonitorUoWFactory,
	evaluator services.SLAEvaluator,
	lock ports.RunLock,
	lockTTL time.Duration,
	logger *slog.Logger,
) *RunSLAMonitorCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &RunSLAMonitorCommandHandler{
		uowFactory: uowFactory,
		evaluator:  evaluator,
		lock:       lock,
		lockTTL:    lockTTL,
		logger:     logger.With("component", "sla_monitor"),
	}
}

func (h *RunSLAMonitorCommandHandler) Handle(ctx context.Context, cmd RunSLAMonitorCommand) (MonitorReport, error) {
	if err := cmd.Validate(); err != nil {
		return MonitorReport{}, err
	}

	if !h.running.TryLock() {
		h.logger.InfoContext(ctx, "SLA monitor already running in this process, skipping")
		return MonitorReport{Skipped: true}, nil
	}
	defer h.running.Unlock()

	ctx = context.WithoutCancel(ctx)

	if h.lock != nil {
		lease, acquired, err := h.lock.TryAcquire(ctx, MonitorLockKey, h.lockTTL)
		if err != nil {
			return MonitorReport{}, fmt.Errorf("acquire monitor run lock: %w", err)
		}
		if !acquired {
			h.logger.InfoContext(ctx, "SLA monitor running elsewhere, skipping")
			return MonitorReport{Skipped: true}, nil
		}
		defer func() {
			if err := lease.Release(ctx); err != nil {
				h.logger.WarnContext(ctx, "Failed to release monitor run lock", "error", err)
			}
		}()
	}

	batch, err := h.load(ctx, cmd.Now())
	if err != nil {
		return MonitorReport{}, err
	}

	var report MonitorReport
	for _, err := range batch.unreadable {
		report.Failures++
		h.logger.ErrorContext(ctx, "Skipping unreadable record", "error", err)
	}

	for _, s := range batch.shipments {
		report.ShipmentsChecked++
		breach, err := h.evaluator.EvaluateShipment(s, cmd.Now())
		if err != nil {
			report.Failures++
			h.logger.ErrorContext(ctx, "Failed to evaluate shipment", "shipment_id", s.ID().String(), "error", err)
			continue
		}
		h.raise(ctx, breach, cmd.Now(), &report)
	}

	for _, ho := range batch.handoffs {
		report.HandoffsChecked++
		breach, err := h.evaluator.EvaluateHandoff(ho, cmd.Now())
		if err != nil {
			report.Failures++
			h.logger.ErrorContext(ctx, "Failed to evaluate handoff", "handoff_id", ho.ID().String(), "error", err)
			continue
		}
		h.raise(ctx, breach, cmd.Now(), &report)
	}

	h.logger.InfoContext(ctx, "SLA monitor sweep finished",
		"shipments", report.ShipmentsChecked,
		"handoffs", report.HandoffsChecked,
		"raised", report.AlertsRaised,
		"existing", report.AlertsExisting,
		"failures", report.Failures,
	)
	return report, nil
}

// sweepBatch is what one sweep reads. unreadable holds the rows that could
// not be restored.
type sweepBatch struct {
	shipments  []*shipment.Shipment
	handoffs   []*handoff.Handoff
	unreadable []error
}

func (h *RunSLAMonitorCommandHandler) load(ctx context.Context, now time.Time) (sweepBatch, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return sweepBatch{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipments, badShipments, err := uow.ShipmentRepository().ListOpenWithDeadline(ctx)
	if err != nil {
		return sweepBatch{}, fmt.Errorf("list open shipments: %w", err)
	}
	handoffs, badHandoffs, err := uow.HandoffRepository().ListOverdueApproved(ctx, now)
	if err != nil {
		return sweepBatch{}, fmt.Errorf("list overdue handoffs: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return sweepBatch{}, err
	}

	return sweepBatch{
		shipments:  shipments,
		handoffs:   handoffs,
		unreadable: append(badShipments, badHandoffs...),
	}, nil
}

func (h *RunSLAMonitorCommandHandler) raise(
	ctx context.Context,
	breach *alert.SLABreach,
	now time.Time,
	report *MonitorReport,
) {
	if breach == nil {
		return
	}

	alerts, err := breach.Alerts(now)
	if err != nil {
		report.Failures++
		h.logger.ErrorContext(ctx, "Failed to build alerts", "type", string(breach.Type), "error", err)
		return
	}

	for _, a := range alerts {
		res, err := h.raiseOne(ctx, a)
		switch {
		case err != nil:
			report.Failures++
			h.logger.ErrorContext(ctx, "Failed to raise alert",
				"type", string(a.Type()),
				"branch_id", a.BranchID().String(),
				"dedupe_key", a.DedupeKey(),
				"error", err,
			)
		case res.Created:
			report.AlertsRaised++
		default:
			report.AlertsExisting++
		}
	}
}

func (h *RunSLAMonitorCommandHandler) raiseOne(ctx context.Context, a *alert.Alert) (RaiseResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RaiseResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	res, err := raiseOnce(ctx, uow.AlertRepository(), a)
	if err != nil {
		return RaiseResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RaiseResult{}, err
	}

	return res, nil
}
