package router

import (
	"github.com/labstack/echo/v4"

	"github.com/taamulcredit/formrelay/internal/handler"
	"github.com/taamulcredit/formrelay/static"
)

// registerSystemRoutes registers endpoints that are not part of the relay:
// health, the docs UI and its static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	// openapi.html and openapi.json, embedded in the binary.
	r.StaticFS("/static", static.FS)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
