package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"

	"github.com/taamulcredit/formrelay/internal/errs"
	"github.com/taamulcredit/formrelay/internal/middleware"
	"github.com/taamulcredit/formrelay/internal/model"
	"github.com/taamulcredit/formrelay/internal/server"
	"github.com/taamulcredit/formrelay/internal/validation"
)

// Handler is the base handler type that holds shared application dependencies.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Form is a decoded submission that can validate itself.
// In practice it is a pointer to one of the model request records.
type Form interface {
	Validate() validation.Verdict
}

// Honeypot is implemented by forms carrying a hidden trap field.
type Honeypot interface {
	IsSpam() bool
}

// SubmitFunc relays a validated form.
type SubmitFunc[Req Form] func(ctx context.Context, req Req) error

// NewFormFunc builds a request record from a decoded body.
type NewFormFunc[Req Form] func(body model.Submission) Req

// HandleForm builds the pipeline shared by every form endpoint:
//
//	decode -> honeypot -> validate -> submit -> {"success": true}
//
// What each step does:
//   - decode: the body must be exactly one JSON value; anything else is a
//     KindRequestDecode error and ends up as the generic 500.
//   - honeypot: a filled trap field answers success without relaying, so
//     bots learn nothing.
//   - validate: every rule runs; all failures are reported together (400).
//   - submit: the service relays the sanitized payload upstream.
//
// newReq builds a fresh record per request, so nothing is shared between
// concurrent requests. Errors are returned untouched; the global error
// handler decides the response.
func HandleForm[Req Form](h Handler, newReq NewFormFunc[Req], submit SubmitFunc[Req]) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleForm(c, newReq, submit)
	}
}

func handleForm[Req Form](c echo.Context, newReq NewFormFunc[Req], submit SubmitFunc[Req]) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "form").
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling submission")

	body, err := model.DecodeSubmission(c.Request().Body)
	if err != nil {
		logger.Error().Err(err).Msg("request body is not a single JSON value")
		return errs.E(errs.KindRequestDecode, errors.WithMessage(err, "failed to decode request body"))
	}

	req := newReq(body)

	if trap, ok := any(req).(Honeypot); ok && trap.IsSpam() {
		logger.Info().Msg("honeypot triggered, submission dropped")
		if txn != nil {
			txn.AddAttribute("form.honeypot", true)
		}
		return c.JSON(http.StatusOK, model.Ack{Success: true})
	}

	validationStart := time.Now()
	verdict := req.Validate()
	validationDuration := time.Since(validationStart)

	if txn != nil {
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	if !verdict.Valid {
		logger.Info().
			Interface("field_errors", verdict.Errors).
			Dur("validation_duration", validationDuration).
			Msg("submission validation failed")

		if txn != nil {
			txn.AddAttribute("validation.status", "failed")
		}
		return errs.NewValidationError(verdict.Errors)
	}

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
	}

	submitStart := time.Now()
	err = submit(c.Request().Context(), req)
	submitDuration := time.Since(submitStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("submit_duration", submitDuration).
			Dur("total_duration", time.Since(start)).
			Msg("submission relay failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("submit.duration_ms", submitDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)
	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("submit.duration_ms", submitDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	logger.Info().
		Dur("submit_duration", submitDuration).
		Dur("total_duration", totalDuration).
		Msg("submission relayed")

	return c.JSON(http.StatusOK, model.Ack{Success: true})
}
