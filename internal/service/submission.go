package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/taamulcredit/formrelay/internal/errs"
	"github.com/taamulcredit/formrelay/internal/model"
	"github.com/taamulcredit/formrelay/internal/server"
)

// Messages returned when the upstream script answers success=false.
const (
	ContactRejectedMessage    = "Failed to save submission"
	NewsletterRejectedMessage = "Failed to subscribe"
	CallbackRejectedMessage   = "Failed to submit callback request"
)

// SubmissionStore persists one sanitized payload.
type SubmissionStore interface {
	Save(ctx context.Context, submissionType model.SubmissionType, payload any) error
}

type SubmissionService struct {
	server *server.Server
	store  SubmissionStore
}

func NewSubmissionService(s *server.Server, store SubmissionStore) *SubmissionService {
	return &SubmissionService{
		server: s,
		store:  store,
	}
}

// SubmitContact relays a validated contact form.
func (s *SubmissionService) SubmitContact(ctx context.Context, req *model.ContactRequest) error {
	return s.submit(ctx, model.TypeContact, req.Payload(), ContactRejectedMessage)
}

// SubmitCallback relays a validated callback request.
func (s *SubmissionService) SubmitCallback(ctx context.Context, req *model.CallbackRequest) error {
	return s.submit(ctx, model.TypeCallback, req.Payload(), CallbackRejectedMessage)
}

// SubmitNewsletter relays a validated newsletter subscription.
func (s *SubmissionService) SubmitNewsletter(ctx context.Context, req *model.NewsletterRequest) error {
	return s.submit(ctx, model.TypeNewsletter, req.Payload(), NewsletterRejectedMessage)
}

// submit forwards payload to the store and shapes the failure.
//
// How failures map to responses:
//   - KindUpstreamRejected: the script answered success=false. The caller
//     gets a 500 carrying rejectedMessage, which is specific to the form.
//   - anything else (transport, timeout, unreadable answer): returned with
//     context added and answered with the generic internal error.
//
// Every failure is also recorded as a SubmissionRelayError custom event
// when New Relic is enabled.
func (s *SubmissionService) submit(ctx context.Context, submissionType model.SubmissionType, payload any, rejectedMessage string) error {
	err := s.store.Save(ctx, submissionType, payload)
	if err == nil {
		return nil
	}

	kind := errs.KindOf(err)
	s.recordFailure(submissionType, kind)

	if kind == errs.KindUpstreamRejected {
		// Both stay in the chain: the HTTPError decides the response,
		// the kind is still logged.
		return fmt.Errorf("%w: %w", errs.NewInternalServerError().WithMessage(rejectedMessage), err)
	}

	return errors.WithMessagef(err, "failed to relay %s submission", submissionType)
}

func (s *SubmissionService) recordFailure(submissionType model.SubmissionType, kind errs.Kind) {
	nrApp := s.server.LoggerService.GetApplication()
	if nrApp == nil {
		return
	}

	nrApp.RecordCustomEvent("SubmissionRelayError", map[string]interface{}{
		"submission_type": string(submissionType),
		"error_kind":      kind.String(),
	})
}
