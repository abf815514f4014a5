package http

import (
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance: request logging, validation against
// doc, /health, the swagger UI and every API operation of si.
func NewRouter(si ServerInterface, doc *openapi3.T, logger *slog.Logger) (*echo.Echo, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http_server")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler(logger)

	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}
	e.Use(RequestLogger(logger), validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if err = RegisterSwagger(e, doc); err != nil {
		return nil, err
	}
	RegisterHandlers(e, si)

	return e, nil
}
