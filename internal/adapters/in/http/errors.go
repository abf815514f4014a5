package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/domain/services"
	"courierops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// StatusCode maps an application error to the HTTP status returned for it.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, shipment.ErrShipmentNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, branch.ErrUnauthorizedBranchActor):
		return http.StatusForbidden
	case errors.Is(err, shipment.ErrMisroutedScan),
		errors.Is(err, shipment.ErrIllegalTransition),
		errors.Is(err, handoff.ErrDuplicateHandoffRequest),
		errors.Is(err, handoff.ErrIllegalHandoffState),
		errors.Is(err, services.ErrCapacityExhausted),
		errors.Is(err, services.ErrNoWorkerAvailable),
		errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, shipment.ErrUnknownStatus),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an Error body. Server errors are logged and
// their details are not sent to the client.
func respondError(ctx echo.Context, logger *slog.Logger, err error) error {
	code := StatusCode(err)
	message := err.Error()
	if code >= http.StatusInternalServerError {
		logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err)
		message = http.StatusText(code)
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

// HTTPErrorHandler renders errors that escape the handlers, including
// parameter binding and routing failures, in the same Error shape.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) {
			if writeErr := respondError(ctx, logger, err); writeErr != nil {
				logger.Error("write error response", "error", writeErr)
			}
			return
		}

		message := fmt.Sprint(httpErr.Message)
		if httpErr.Code >= http.StatusInternalServerError {
			logger.Error("request failed", "path", ctx.Path(), "error", err)
			message = http.StatusText(httpErr.Code)
		}
		if writeErr := ctx.JSON(httpErr.Code, Error{Code: httpErr.Code, Message: message}); writeErr != nil {
			logger.Error("write error response", "error", writeErr)
		}
	}
}
