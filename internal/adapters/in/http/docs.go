package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// openAPIDoc exposes the embedded document to swag, which serves it as
// doc.json for the swagger UI.
type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// RegisterSwagger serves the swagger UI under /swagger/. swag keeps a
// process-wide registry, so only the first document is registered.
func RegisterSwagger(e *echo.Echo, doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{json: string(raw)})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
