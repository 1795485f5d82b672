package router

import (
	"github.com/labstack/echo/v4"

	"github.com/taamulcredit/formrelay/internal/handler"
	"github.com/taamulcredit/formrelay/internal/middleware"
)

// registerFormRoutes mounts the public form endpoints under /api.
//
// Every endpoint answers POST and the CORS preflight; the CORS grant is
// applied to the whole group so error responses carry it too.
func registerFormRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	api := r.Group("/api", mw.CORS.AllowOrigin())

	forms := map[string]echo.HandlerFunc{
		"/contact":    h.Form.Contact(),
		"/newsletter": h.Form.Newsletter(),
		"/callback":   h.Form.Callback(),
	}

	for path, submit := range forms {
		api.POST(path, submit)
		api.OPTIONS(path, mw.CORS.Preflight)
	}
}
