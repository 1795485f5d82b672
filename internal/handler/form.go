package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taamulcredit/formrelay/internal/model"
	"github.com/taamulcredit/formrelay/internal/server"
	"github.com/taamulcredit/formrelay/internal/service"
)

// FormHandler serves the public form endpoints.
type FormHandler struct {
	Handler
	submissions *service.SubmissionService
}

func NewFormHandler(s *server.Server, submissions *service.SubmissionService) *FormHandler {
	return &FormHandler{
		Handler:     NewHandler(s),
		submissions: submissions,
	}
}

// Contact handles POST /api/contact.
func (h *FormHandler) Contact() echo.HandlerFunc {
	return HandleForm(h.Handler,
		model.NewContactRequest,
		h.submissions.SubmitContact,
	)
}

// Callback handles POST /api/callback.
func (h *FormHandler) Callback() echo.HandlerFunc {
	return HandleForm(h.Handler,
		model.NewCallbackRequest,
		h.submissions.SubmitCallback,
	)
}

// Newsletter handles POST /api/newsletter.
func (h *FormHandler) Newsletter() echo.HandlerFunc {
	return HandleForm(h.Handler,
		model.NewNewsletterRequest,
		h.submissions.SubmitNewsletter,
	)
}
