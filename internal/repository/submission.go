package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/taamulcredit/formrelay/internal/config"
	"github.com/taamulcredit/formrelay/internal/errs"
	"github.com/taamulcredit/formrelay/internal/model"
)

// maxResultBytes caps how much of the upstream answer is read.
const maxResultBytes = 1 << 20

// SubmissionRepository forwards payloads to the upstream script endpoint.
//
// It holds no per-request state and is safe for concurrent use.
type SubmissionRepository struct {
	client        *http.Client
	scriptURL     string
	timeout       time.Duration
	slowThreshold time.Duration
	logger        *zerolog.Logger
}

// NewSubmissionRepository builds the repository. A nil client falls back to
// http.DefaultClient; redirects are followed either way.
func NewSubmissionRepository(
	upstream config.UpstreamConfig,
	obs *config.ObservabilityConfig,
	client *http.Client,
	logger *zerolog.Logger,
) *SubmissionRepository {
	if client == nil {
		client = http.DefaultClient
	}

	timeout := upstream.Timeout
	if timeout <= 0 {
		timeout = config.DefaultUpstreamTimeout
	}

	var slow time.Duration
	if obs != nil {
		slow = obs.Logging.SlowUpstreamThreshold
	}

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &SubmissionRepository{
		client:        client,
		scriptURL:     upstream.ScriptURL,
		timeout:       timeout,
		slowThreshold: slow,
		logger:        logger,
	}
}

// Save posts payload as JSON to the script endpoint and reads back
// {"success": bool}.
//
// The call is detached from the caller's cancellation: once started it
// runs until the upstream answers or the configured timeout expires.
// Failures are tagged errs.Error values:
//   - KindUpstreamTransport: request could not be sent or timed out
//   - KindUpstreamDecode: the answer was not the expected JSON
//   - KindUpstreamRejected: the script answered success=false
//
// The upstream HTTP status is not inspected; only the body decides.
func (r *SubmissionRepository) Save(ctx context.Context, submissionType model.SubmissionType, payload any) error {
	logger := r.loggerFrom(ctx).With().
		Str("operation", "upstream_save").
		Str("submission_type", string(submissionType)).
		Logger()

	body, err := json.Marshal(payload)
	if err != nil {
		return errs.E(errs.KindUpstreamTransport, errors.Wrap(err, "failed to encode submission payload"))
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.scriptURL, bytes.NewReader(body))
	if err != nil {
		return errs.E(errs.KindUpstreamTransport, errors.Wrap(err, "failed to build upstream request"))
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	res, err := r.client.Do(req)
	if err != nil {
		return errs.E(errs.KindUpstreamTransport, errors.Wrap(err, "upstream request failed"))
	}
	defer res.Body.Close()

	var result model.UpstreamResult
	if err := json.NewDecoder(io.LimitReader(res.Body, maxResultBytes)).Decode(&result); err != nil {
		return errs.E(errs.KindUpstreamDecode, errors.Wrapf(err, "failed to decode upstream response (status %d)", res.StatusCode))
	}

	latency := time.Since(start)
	event := logger.Debug()
	if r.slowThreshold > 0 && latency > r.slowThreshold {
		event = logger.Warn().Dur("threshold", r.slowThreshold)
	}
	event.
		Dur("latency", latency).
		Int("upstream_status", res.StatusCode).
		Bool("success", result.Success).
		Msg("upstream answered")

	if !result.Success {
		return errs.E(errs.KindUpstreamRejected, errors.New("upstream reported success=false"))
	}

	return nil
}

// loggerFrom prefers the request-scoped logger stored in ctx.
func (r *SubmissionRepository) loggerFrom(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return r.logger
}
