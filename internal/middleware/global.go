package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/taamulcredit/formrelay/internal/errs"
	"github.com/taamulcredit/formrelay/internal/server"
)

// MaxBodySize is the largest accepted request body. Every form field is
// truncated to a few hundred characters, so this is generous.
const MaxBodySize = "64K"

// GlobalMiddlewares groups global middleware and the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// RequestLogger returns Echo's request logger middleware with a custom
// LogValuesFunc.
//
// Why custom?
//   - Logs are structured zerolog events carrying the request_id.
//   - The status must be the final one. A handler that returns an error
//     has not written anything yet; the global error handler does that
//     later, so the status is derived from the error instead.
//
// The result is one "API" line per request: 5xx at error level, 4xx at
// warn, everything else at info.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error the final status is only
			// decided later by GlobalErrorHandler; derive it from the error.
			// Reference: https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = statusOf(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// BodyLimit caps request bodies; larger bodies are answered with 413.
func (global *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit(MaxBodySize)
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the single place where errors become responses.
//
//   - *errs.HTTPError: written as is (400 field errors, 500 with a
//     form-specific message).
//   - *echo.HTTPError: its status with the standard status text
//     (404 unknown route, 405 wrong method, 413 ...).
//   - anything else, including every errs.Kind: 500 with the generic
//     message. The real error is logged, never sent.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := toHTTPError(err)

	logger := GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack().Err(err)
	} else {
		// Client mistakes are not server faults.
		e = logger.Info().Interface("field_errors", httpErr.Errors)
	}

	if kind := errs.KindOf(err); kind != errs.KindUnknown {
		e = e.Str("error_kind", kind.String())
	}

	e.
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}

	_ = c.JSON(httpErr.Status, httpErr)
}

func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return errs.FromStatus(echoErr.Code)
	}

	return errs.NewInternalServerError()
}

func statusOf(err error) int {
	return toHTTPError(err).Status
}
