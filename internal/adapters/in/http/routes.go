package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of api/openapi.yaml with their bound
// parameters.
type ServerInterface interface {
	BookShipment(ctx echo.Context, params ActorParams) error
	ScanShipment(ctx echo.Context, params ActorParams) error
	AssignShipment(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error
	HoldShipment(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error
	ReleaseHold(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error
	RerouteShipment(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error
	CancelShipment(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error
	ReportException(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error
	RaiseAlert(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error
	GetShipmentHistory(ctx echo.Context, shipmentID openapi_types.UUID, params ActorParams) error

	RequestHandoff(ctx echo.Context, params ActorParams) error
	ApproveHandoff(ctx echo.Context, handoffID openapi_types.UUID, params ActorParams) error
	RejectHandoff(ctx echo.Context, handoffID openapi_types.UUID, params ActorParams) error
	CompleteHandoff(ctx echo.Context, handoffID openapi_types.UUID, params ActorParams) error

	ResolveAlert(ctx echo.Context, alertID openapi_types.UUID, params ActorParams) error
	ListBranchHandoffs(ctx echo.Context, branchID openapi_types.UUID, params ListBranchHandoffsParams) error
	ListBranchAlerts(ctx echo.Context, branchID openapi_types.UUID, params ListBranchAlertsParams) error
	GetOperationalAlerts(ctx echo.Context, branchID openapi_types.UUID, params ActorParams) error
	RaiseMaintenance(ctx echo.Context, branchID openapi_types.UUID, params ActorParams) error

	RunSLAMonitor(ctx echo.Context) error
}

// ServerInterfaceWrapper binds path, query and header parameters before
// calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/shipments", w.BookShipment)
	router.POST("/api/v1/scans", w.ScanShipment)
	router.POST("/api/v1/shipments/:shipmentId/assignment", w.withShipment(si.AssignShipment))
	router.POST("/api/v1/shipments/:shipmentId/hold", w.withShipment(si.HoldShipment))
	router.DELETE("/api/v1/shipments/:shipmentId/hold", w.withShipment(si.ReleaseHold))
	router.POST("/api/v1/shipments/:shipmentId/reroute", w.withShipment(si.RerouteShipment))
	router.POST("/api/v1/shipments/:shipmentId/cancel", w.withShipment(si.CancelShipment))
	router.POST("/api/v1/shipments/:shipmentId/exception", w.withShipment(si.ReportException))
	router.POST("/api/v1/shipments/:shipmentId/alerts", w.withShipment(si.RaiseAlert))
	router.GET("/api/v1/shipments/:shipmentId/history", w.withShipment(si.GetShipmentHistory))

	router.POST("/api/v1/handoffs", w.RequestHandoff)
	router.POST("/api/v1/handoffs/:handoffId/approve", w.withHandoff(si.ApproveHandoff))
	router.POST("/api/v1/handoffs/:handoffId/reject", w.withHandoff(si.RejectHandoff))
	router.POST("/api/v1/handoffs/:handoffId/complete", w.withHandoff(si.CompleteHandoff))

	router.POST("/api/v1/alerts/:alertId/resolve", w.ResolveAlert)
	router.GET("/api/v1/branches/:branchId/handoffs", w.ListBranchHandoffs)
	router.GET("/api/v1/branches/:branchId/alerts", w.ListBranchAlerts)
	router.GET("/api/v1/branches/:branchId/operational-alerts", w.withBranch(si.GetOperationalAlerts))
	router.POST("/api/v1/branches/:branchId/maintenance", w.withBranch(si.RaiseMaintenance))

	router.POST("/api/v1/monitor/runs", w.RunSLAMonitor)
}

type idOperation func(ctx echo.Context, id openapi_types.UUID, params ActorParams) error

func (w *ServerInterfaceWrapper) BookShipment(ctx echo.Context) error {
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.BookShipment(ctx, params)
}

func (w *ServerInterfaceWrapper) ScanShipment(ctx echo.Context) error {
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ScanShipment(ctx, params)
}

func (w *ServerInterfaceWrapper) RequestHandoff(ctx echo.Context) error {
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RequestHandoff(ctx, params)
}

func (w *ServerInterfaceWrapper) ResolveAlert(ctx echo.Context) error {
	return w.withPathID("alertId", w.Handler.ResolveAlert)(ctx)
}

func (w *ServerInterfaceWrapper) ListBranchHandoffs(ctx echo.Context) error {
	branchID, err := bindPathUUID(ctx, "branchId")
	if err != nil {
		return err
	}

	var params ListBranchHandoffsParams
	if params.ActorParams, err = bindActorParams(ctx); err != nil {
		return err
	}
	if err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return badParameter("status", err)
	}
	if err = runtime.BindQueryParameter("form", true, false, "direction", ctx.QueryParams(), &params.Direction); err != nil {
		return badParameter("direction", err)
	}

	return w.Handler.ListBranchHandoffs(ctx, branchID, params)
}

func (w *ServerInterfaceWrapper) ListBranchAlerts(ctx echo.Context) error {
	branchID, err := bindPathUUID(ctx, "branchId")
	if err != nil {
		return err
	}

	var params ListBranchAlertsParams
	if params.ActorParams, err = bindActorParams(ctx); err != nil {
		return err
	}
	if err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return badParameter("status", err)
	}
	if err = runtime.BindQueryParameter("form", true, false, "type", ctx.QueryParams(), &params.Type); err != nil {
		return badParameter("type", err)
	}

	return w.Handler.ListBranchAlerts(ctx, branchID, params)
}

func (w *ServerInterfaceWrapper) RunSLAMonitor(ctx echo.Context) error {
	return w.Handler.RunSLAMonitor(ctx)
}

func (w *ServerInterfaceWrapper) withShipment(op idOperation) echo.HandlerFunc {
	return w.withPathID("shipmentId", op)
}

func (w *ServerInterfaceWrapper) withHandoff(op idOperation) echo.HandlerFunc {
	return w.withPathID("handoffId", op)
}

func (w *ServerInterfaceWrapper) withBranch(op idOperation) echo.HandlerFunc {
	return w.withPathID("branchId", op)
}

func (w *ServerInterfaceWrapper) withPathID(name string, op idOperation) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindPathUUID(ctx, name)
		if err != nil {
			return err
		}
		params, err := bindActorParams(ctx)
		if err != nil {
			return err
		}
		return op(ctx, id, params)
	}
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, badParameter(name, err)
	}
	return id, nil
}

func bindActorParams(ctx echo.Context) (ActorParams, error) {
	var params ActorParams
	if err := bindHeaderUUID(ctx, "X-Actor-ID", &params.XActorID); err != nil {
		return params, err
	}
	if err := bindHeaderUUID(ctx, "X-Branch-ID", &params.XBranchID); err != nil {
		return params, err
	}
	return params, nil
}

func bindHeaderUUID(ctx echo.Context, name string, dest *openapi_types.UUID) error {
	values, found := ctx.Request().Header[http.CanonicalHeaderKey(name)]
	if !found {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Header parameter %s is required, but not found", name))
	}
	if n := len(values); n != 1 {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Expected one value for %s, got %d", name, n))
	}

	err := runtime.BindStyledParameterWithOptions("simple", name, values[0], dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return badParameter(name, err)
	}
	return nil
}

func badParameter(name string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
}
