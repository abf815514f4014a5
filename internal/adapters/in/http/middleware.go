package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// OpenAPIValidator rejects requests that do not match doc with 400 before
// they reach a handler. Requests for paths the document does not describe,
// such as /health, pass through untouched.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	// Paths carry their full prefix; server URLs would only get in the way
	// of matching.
	doc.Servers = nil

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			return validateRequest(ctx, router, next)
		}
	}, nil
}

func validateRequest(ctx echo.Context, router routers.Router, next echo.HandlerFunc) error {
	req := ctx.Request()

	route, pathParams, err := router.FindRoute(req)
	if err != nil {
		return next(ctx)
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    req,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return next(ctx)
}

// RequestLogger logs one line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			logger.InfoContext(ctx.Request().Context(), "request",
				"method", ctx.Request().Method,
				"path", ctx.Path(),
				"status", ctx.Response().Status,
				"duration", time.Since(start))
			return nil
		}
	}
}
