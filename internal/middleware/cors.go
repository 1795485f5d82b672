package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/taamulcredit/formrelay/internal/config"
	"github.com/taamulcredit/formrelay/internal/server"
)

const (
	// PreflightMaxAge lets browsers cache a preflight answer for 24 hours.
	PreflightMaxAge = 86400

	preflightMethods = "POST, OPTIONS"
	preflightHeaders = "Content-Type"
)

// ComputeAllowOrigin returns the Access-Control-Allow-Origin value for a
// request.
//
//   - allowed is "*": always "*"
//   - requestOrigin equals allowed exactly: requestOrigin
//   - otherwise: "" (no grant; the browser rejects the response)
func ComputeAllowOrigin(requestOrigin, allowed string) string {
	if allowed == config.WildcardOrigin {
		return config.WildcardOrigin
	}
	if requestOrigin == allowed {
		return requestOrigin
	}
	return ""
}

// CORSMiddleware grants cross-origin access to the configured origin.
//
// What it does:
//   - Echo's CORS middleware does the grant: Access-Control-Allow-Origin
//     for a matching origin, Vary: Origin, and the preflight answer (204
//     with methods, headers and max-age).
//   - A thin wrapper writes beforehand what Echo leaves out. Echo omits the
//     Allow-Origin header when the origin does not match (or is missing),
//     and answers such preflights with a bare 204. Browsers, and the site's
//     own checks, expect the header to be present: empty for a refusal,
//     "*" for a wildcard configuration. Preflight responses always list
//     the allowed methods, headers and max-age.
//
// The server never refuses a request on CORS grounds; a mismatched origin
// simply gets an empty grant and the browser blocks the response.
type CORSMiddleware struct {
	server *server.Server
}

func NewCORSMiddleware(s *server.Server) *CORSMiddleware {
	return &CORSMiddleware{server: s}
}

// AllowOrigin returns the CORS middleware for the form endpoints.
//
// It runs before the handler so that error responses written later by the
// global error handler carry the grant too.
func (cm *CORSMiddleware) AllowOrigin() echo.MiddlewareFunc {
	allowed := cm.server.Config.Server.AllowedOrigin

	cors := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{allowed},
		// Echo joins entries with a bare ","; one entry keeps "POST, OPTIONS".
		AllowMethods: []string{preflightMethods},
		AllowHeaders: []string{preflightHeaders},
		MaxAge:       PreflightMaxAge,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		granted := cors(next)

		return func(c echo.Context) error {
			header := c.Response().Header()
			origin := c.Request().Header.Get(echo.HeaderOrigin)

			// Overwritten by Echo when it grants; kept as is when it doesn't.
			header.Set(echo.HeaderAccessControlAllowOrigin, ComputeAllowOrigin(origin, allowed))

			if c.Request().Method == http.MethodOptions {
				header.Set(echo.HeaderAccessControlAllowMethods, preflightMethods)
				header.Set(echo.HeaderAccessControlAllowHeaders, preflightHeaders)
				header.Set(echo.HeaderAccessControlMaxAge, strconv.Itoa(PreflightMaxAge))
			}

			return granted(c)
		}
	}
}

// Preflight is the OPTIONS route handler: 204, no body. The CORS
// middleware normally answers preflights itself before reaching it.
func (cm *CORSMiddleware) Preflight(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
