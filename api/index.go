// Package handler is the serverless entry point. Function platforms call
// Handler for every request; the router is built on the first call and
// reused while the instance stays warm.
//
// When the build fails (bad config, logger setup) every request gets the
// generic 500 body. That response still carries the CORS grant, otherwise
// the browser hides it and the site only sees a network error.
package handler

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/taamulcredit/formrelay/internal/app"
	"github.com/taamulcredit/formrelay/internal/config"
	"github.com/taamulcredit/formrelay/internal/errs"
	"github.com/taamulcredit/formrelay/internal/middleware"
	"github.com/taamulcredit/formrelay/internal/server"
)

var (
	once   sync.Once
	router http.Handler
)

// Handler serves one request with the same router as cmd/api.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		router = build(app.Bootstrap, config.AllowedOriginFromEnv)
	})

	router.ServeHTTP(w, r)
}

func build(bootstrap func() (*server.Server, error), allowedOrigin func() string) http.Handler {
	srv, err := bootstrap()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize function")
		return initFailure(allowedOrigin())
	}

	return srv.Handler()
}

func initFailure(allowed string) http.Handler {
	body, _ := errs.NewInternalServerError().MarshalJSON()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Add(echo.HeaderVary, echo.HeaderOrigin)
		h.Set(echo.HeaderAccessControlAllowOrigin, middleware.ComputeAllowOrigin(r.Header.Get(echo.HeaderOrigin), allowed))
		h.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(body)
	})
}
