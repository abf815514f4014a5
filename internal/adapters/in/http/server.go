package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"courierops/internal/core/application/usecases/commands"
	"courierops/internal/core/application/usecases/queries"
	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/domain/services"
	"courierops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CommandHandler is a use case that returns nothing but an error.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler is a use case that returns a result.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Handlers are the use cases the server delegates to.
type Handlers struct {
	BookShipment     CommandHandler[commands.BookShipmentCommand]
	ScanShipment     ResultHandler[commands.ScanShipmentCommand, shipment.Status]
	AssignShipment   ResultHandler[commands.AssignShipmentCommand, commands.AssignResult]
	HoldShipment     CommandHandler[commands.HoldShipmentCommand]
	ReleaseHold      CommandHandler[commands.ReleaseHoldCommand]
	RerouteShipment  CommandHandler[commands.RerouteShipmentCommand]
	CancelShipment   ResultHandler[commands.CancelShipmentCommand, shipment.Status]
	ReportException  ResultHandler[commands.ReportExceptionCommand, shipment.Status]
	RaiseAlert       ResultHandler[commands.RaiseAlertCommand, commands.RaiseResult]
	RaiseMaintenance ResultHandler[commands.RaiseMaintenanceCommand, commands.RaiseResult]
	ResolveAlert     ResultHandler[commands.ResolveAlertCommand, bool]
	RequestHandoff   ResultHandler[commands.RequestHandoffCommand, kernel.UUID]
	ApproveHandoff   ResultHandler[commands.ApproveHandoffCommand, handoff.Status]
	RejectHandoff    ResultHandler[commands.RejectHandoffCommand, handoff.Status]
	CompleteHandoff  ResultHandler[commands.CompleteHandoffCommand, handoff.Status]
	RunSLAMonitor    ResultHandler[commands.RunSLAMonitorCommand, commands.MonitorReport]

	ListBranchHandoffs   ResultHandler[queries.ListBranchHandoffsQuery, []queries.HandoffManifestLine]
	ListBranchAlerts     ResultHandler[queries.ListBranchAlertsQuery, []queries.BranchAlertView]
	GetOperationalAlerts ResultHandler[queries.GetOperationalAlertsQuery, []services.OperationalAlert]
	GetShipmentHistory   ResultHandler[queries.GetShipmentHistoryQuery, *queries.ShipmentHistory]
}

// Server implements ServerInterface. It turns requests into commands and
// queries and maps their results and errors back to HTTP.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
	now      func() time.Time
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates the server. now defaults to the wall clock in UTC.
func NewServer(handlers Handlers, logger *slog.Logger, now func() time.Time) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
		now:      now,
	}
}

// BookShipment handles POST /api/v1/shipments.
func (s *Server) BookShipment(ctx echo.Context, params ActorParams) error {
	var body BookShipmentRequest
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx, err)
	}

	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, err)
	}
	destBranchID, err := fromAPI(body.DestBranchID)
	if err != nil {
		return s.fail(ctx, err)
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewBookShipmentCommand(actor, shipmentID, body.TrackingNumber, destBranchID,
		body.ExpectedDeliveryDate, body.CODAmount, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.BookShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ShipmentCreated{ID: shipmentID.Bytes()})
}

// ScanShipment handles POST /api/v1/scans.
func (s *Server) ScanShipment(ctx echo.Context, params ActorParams) error {
	var body ScanRequest
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx, err)
	}

	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, err)
	}
	mode, err := shipment.ParseScanMode(body.Mode)
	if err != nil {
		return s.fail(ctx, err)
	}
	geo, err := geoFrom(body.Latitude, body.Longitude)
	if err != nil {
		return s.fail(ctx, err)
	}

	scannedAt := s.now()
	if body.ScannedAt != nil {
		scannedAt = *body.ScannedAt
	}

	cmd, err := commands.NewScanShipmentCommand(actor, body.TrackingNumber, mode, scannedAt, geo, body.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := s.handlers.ScanShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StatusResult{Status: status.String()})
}

// AssignShipment handles POST /api/v1/shipments/{shipmentId}/assignment.
// Without a worker_id the least loaded available worker is chosen.
func (s *Server) AssignShipment(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error {
	var body AssignRequest
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx, err)
	}

	actor, id, err := actorAndID(params, shipmentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var workerID *kernel.UUID
	if body.WorkerID != nil {
		wid, convErr := fromAPI(*body.WorkerID)
		if convErr != nil {
			return s.fail(ctx, convErr)
		}
		workerID = &wid
	}

	cmd, err := commands.NewAssignShipmentCommand(actor, id, workerID, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.handlers.AssignShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AssignResult{
		WorkerID: result.WorkerID.Bytes(),
		Status:   result.Status.String(),
	})
}

// HoldShipment handles POST /api/v1/shipments/{shipmentId}/hold.
func (s *Server) HoldShipment(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error {
	var body ReasonRequest
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx, err)
	}

	actor, id, err := actorAndID(params, shipmentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewHoldShipmentCommand(actor, id, body.Reason, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.HoldShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseHold handles DELETE /api/v1/shipments/{shipmentId}/hold.
func (s *Server) ReleaseHold(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error {
	actor, id, err := actorAndID(params, shipmentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewReleaseHoldCommand(actor, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.ReleaseHold.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RerouteShipment handles POST /api/v1/shipments/{shipmentId}/reroute.
func (s *Server) RerouteShipment(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error {
	var body RerouteRequest
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx, err)
	}

	actor, id, err := actorAndID(params, shipmentID)
	if err != nil {
		return s.fail(ctx, err)
	}
	destBranchID, err := fromAPI(body.DestBranchID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRerouteShipmentCommand(actor, id, destBranchID, body.Reason, body.ExpectedDeliveryDate)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.RerouteShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelShipment handles POST /api/v1/shipments/{shipmentId}/cancel.
func (s *Server) CancelShipment(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error {
	actor, id, err := actorAndID(params, shipmentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCancelShipmentCommand(actor, id, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := s.handlers.CancelShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StatusResult{Status: status.String()})
}

// ReportException handles POST /api/v1/shipments/{shipmentId}/exception.
func (s *Server) ReportException(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error {
	actor, id, err := actorAndID(params, shipmentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewReportExceptionCommand(actor, id, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := s.handlers.ReportException.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StatusResult{Status: status.String()})
}

// RaiseAlert handles POST /api/v1/shipments/{shipmentId}/alerts. An open
// alert for the same shipment is returned with 200 instead of a new one.
func (s *Server) RaiseAlert(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error {
	var body RaiseAlertRequest
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx, err)
	}

	actor, id, err := actorAndID(params, shipmentID)
	if err != nil {
		return s.fail(ctx, err)
	}
	severity, err := alert.ParseSeverity(body.Severity)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRaiseAlertCommand(actor, id, severity, body.Message, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.handlers.RaiseAlert.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return raised(ctx, result)
}

// GetShipmentHistory handles GET /api/v1/shipments/{shipmentId}/history.
func (s *Server) GetShipmentHistory(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error {
	actor, id, err := actorAndID(params, shipmentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetShipmentHistoryQuery(actor, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	history, err := s.handlers.GetShipmentHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := ShipmentHistory{
		ShipmentID:     history.ShipmentID.Bytes(),
		TrackingNumber: history.TrackingNumber,
		OriginBranchID: history.OriginBranchID.Bytes(),
		DestBranchID:   history.DestBranchID.Bytes(),
		Status:         history.Status.String(),
		Scans:          make([]ScanRecord, len(history.Scans)),
		Transitions:    make([]TransitionRecord, len(history.Transitions)),
	}
	for i, scan := range history.Scans {
		response.Scans[i] = ScanRecord{
			ID:        scan.ID.Bytes(),
			Mode:      scan.Mode.String(),
			BranchID:  scan.BranchID.Bytes(),
			ActorID:   scan.ActorID.Bytes(),
			ScannedAt: scan.ScannedAt,
			Latitude:  scan.Latitude,
			Longitude: scan.Longitude,
			Notes:     scan.Notes,
		}
	}
	for i, tr := range history.Transitions {
		response.Transitions[i] = TransitionRecord{
			ID:         tr.ID.Bytes(),
			From:       tr.From.String(),
			To:         tr.To.String(),
			ActorID:    tr.ActorID.Bytes(),
			Trigger:    string(tr.Trigger),
			OccurredAt: tr.OccurredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RequestHandoff handles POST /api/v1/handoffs.
func (s *Server) RequestHandoff(ctx echo.Context, params ActorParams) error {
	var body HandoffRequest
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx, err)
	}

	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, err)
	}
	shipmentID, err := fromAPI(body.ShipmentID)
	if err != nil {
		return s.fail(ctx, err)
	}
	destBranchID, err := fromAPI(body.DestBranchID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRequestHandoffCommand(actor, shipmentID, destBranchID, body.ExpectedHandOffAt, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	handoffID, err := s.handlers.RequestHandoff.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, HandoffCreated{ID: handoffID.Bytes()})
}

// ApproveHandoff handles POST /api/v1/handoffs/{handoffId}/approve.
func (s *Server) ApproveHandoff(ctx echo.Context, handoffID openapi_types.UUID, params ActorParams) error {
	actor, id, err := actorAndID(params, handoffID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewApproveHandoffCommand(actor, id, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := s.handlers.ApproveHandoff.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StatusResult{Status: status.String()})
}

// RejectHandoff handles POST /api/v1/handoffs/{handoffId}/reject.
func (s *Server) RejectHandoff(ctx echo.Context, handoffID openapi_types.UUID, params ActorParams) error {
	var body ReasonRequest
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx, err)
	}

	actor, id, err := actorAndID(params, handoffID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRejectHandoffCommand(actor, id, body.Reason, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := s.handlers.RejectHandoff.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StatusResult{Status: status.String()})
}

// CompleteHandoff handles POST /api/v1/handoffs/{handoffId}/complete.
func (s *Server) CompleteHandoff(ctx echo.Context, handoffID openapi_types.UUID, params ActorParams) error {
	actor, id, err := actorAndID(params, handoffID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCompleteHandoffCommand(actor, id, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := s.handlers.CompleteHandoff.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StatusResult{Status: status.String()})
}

// ResolveAlert handles POST /api/v1/alerts/{alertId}/resolve.
func (s *Server) ResolveAlert(ctx echo.Context, alertID openapi_types.UUID, params ActorParams) error {
	actor, id, err := actorAndID(params, alertID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewResolveAlertCommand(actor, id, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	resolved, err := s.handlers.ResolveAlert.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AlertResolved{Resolved: resolved})
}

// ListBranchHandoffs handles GET /api/v1/branches/{branchId}/handoffs.
func (s *Server) ListBranchHandoffs(ctx echo.Context, branchID openapi_types.UUID, params ListBranchHandoffsParams) error {
	actor, id, err := actorAndID(params.ActorParams, branchID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListBranchHandoffsQuery(actor, id, deref(params.Status), deref(params.Direction))
	if err != nil {
		return s.fail(ctx, err)
	}
	lines, err := s.handlers.ListBranchHandoffs.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]HandoffLine, len(lines))
	for i, line := range lines {
		response[i] = HandoffLine{
			ID:                line.ID.Bytes(),
			ShipmentID:        line.ShipmentID.Bytes(),
			TrackingNumber:    line.TrackingNumber,
			Direction:         string(line.Direction),
			OriginBranchID:    line.OriginBranchID.Bytes(),
			DestBranchID:      line.DestBranchID.Bytes(),
			Status:            line.Status.String(),
			RequestedBy:       line.RequestedBy.Bytes(),
			ApprovedBy:        toAPI(line.ApprovedBy),
			ExpectedHandOffAt: line.ExpectedHandOffAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListBranchAlerts handles GET /api/v1/branches/{branchId}/alerts.
func (s *Server) ListBranchAlerts(ctx echo.Context, branchID openapi_types.UUID, params ListBranchAlertsParams) error {
	actor, id, err := actorAndID(params.ActorParams, branchID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListBranchAlertsQuery(actor, id, deref(params.Status), deref(params.Type))
	if err != nil {
		return s.fail(ctx, err)
	}
	alerts, err := s.handlers.ListBranchAlerts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]BranchAlert, len(alerts))
	for i, a := range alerts {
		response[i] = BranchAlert{
			ID:          a.ID.Bytes(),
			Type:        string(a.Type),
			Severity:    string(a.Severity),
			Status:      string(a.Status),
			Message:     a.Message,
			Context:     a.Context,
			TriggeredAt: a.TriggeredAt,
			ResolvedAt:  a.ResolvedAt,
			ResolvedBy:  toAPI(a.ResolvedBy),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOperationalAlerts handles GET /api/v1/branches/{branchId}/operational-alerts.
func (s *Server) GetOperationalAlerts(ctx echo.Context, branchID openapi_types.UUID, params ActorParams) error {
	actor, id, err := actorAndID(params, branchID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOperationalAlertsQuery(actor, id, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	alerts, err := s.handlers.GetOperationalAlerts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]OperationalAlert, len(alerts))
	for i, a := range alerts {
		response[i] = OperationalAlert{
			Key:         a.Key,
			Priority:    a.Priority.String(),
			Title:       a.Title,
			Message:     a.Message,
			ActionLabel: a.ActionLabel,
			ActionRoute: a.ActionRoute,
			Count:       a.Count,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RaiseMaintenance handles POST /api/v1/branches/{branchId}/maintenance.
// Only the branch itself can declare its maintenance windows.
func (s *Server) RaiseMaintenance(ctx echo.Context, branchID openapi_types.UUID, params ActorParams) error {
	var body MaintenanceRequest
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx, err)
	}

	actor, id, err := actorAndID(params, branchID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = actor.RequireBranch(id); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRaiseMaintenanceCommand(actor, body.StartsAt, body.EndsAt, body.CapacityFactor,
		body.Message, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.handlers.RaiseMaintenance.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return raised(ctx, result)
}

// RunSLAMonitor handles POST /api/v1/monitor/runs. A sweep already in
// progress yields a report with skipped set.
func (s *Server) RunSLAMonitor(ctx echo.Context) error {
	cmd, err := commands.NewRunSLAMonitorCommand(s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	report, err := s.handlers.RunSLAMonitor.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, MonitorReport{
		Skipped:          report.Skipped,
		ShipmentsChecked: report.ShipmentsChecked,
		HandoffsChecked:  report.HandoffsChecked,
		AlertsRaised:     report.AlertsRaised,
		AlertsExisting:   report.AlertsExisting,
		Failures:         report.Failures,
	})
}

func (s *Server) fail(ctx echo.Context, err error) error {
	return respondError(ctx, s.logger, err)
}

func (s *Server) invalidBody(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body: " + err.Error(),
	})
}

func raised(ctx echo.Context, result commands.RaiseResult) error {
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	return ctx.JSON(status, AlertRaised{AlertID: result.AlertID.Bytes(), Created: result.Created})
}

func actorFrom(params ActorParams) (branch.Actor, error) {
	actorID, err := fromAPI(params.XActorID)
	if err != nil {
		return branch.Actor{}, errs.NewValueIsRequiredErrorWithCause("X-Actor-ID", err)
	}
	branchID, err := fromAPI(params.XBranchID)
	if err != nil {
		return branch.Actor{}, errs.NewValueIsRequiredErrorWithCause("X-Branch-ID", err)
	}
	return branch.NewActor(actorID, branchID)
}

func actorAndID(params ActorParams, raw openapi_types.UUID) (branch.Actor, kernel.UUID, error) {
	actor, err := actorFrom(params)
	if err != nil {
		return branch.Actor{}, kernel.UUID{}, err
	}
	id, err := fromAPI(raw)
	if err != nil {
		return branch.Actor{}, kernel.UUID{}, err
	}
	return actor, id, nil
}

func geoFrom(latitude, longitude *float64) (*kernel.GeoPoint, error) {
	switch {
	case latitude == nil && longitude == nil:
		return nil, nil
	case latitude == nil:
		return nil, errs.NewValueIsRequiredError("latitude")
	case longitude == nil:
		return nil, errs.NewValueIsRequiredError("longitude")
	}

	point, err := kernel.NewGeoPoint(*latitude, *longitude)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func fromAPI(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toAPI(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
