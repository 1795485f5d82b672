// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/taamulcredit/formrelay/internal/handler"
	"github.com/taamulcredit/formrelay/internal/middleware"
	"github.com/taamulcredit/formrelay/internal/server"
)

// NewRouter builds the Echo instance with the global middleware chain,
// the global error handler and every route.
//
// Middleware order matters:
//  1. RequestID first so every later log line carries it
//  2. New Relic transaction, then the attributes that need it
//  3. ContextEnhancer builds the request logger used by RequestLogger
//  4. Recover sits inside the logger so a panic is logged as a 500
func NewRouter(s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.Secure(),
		mw.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)
	registerFormRoutes(router, h, mw)

	return router
}
