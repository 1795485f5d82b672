package handler

import (
	"github.com/taamulcredit/formrelay/internal/server"
	"github.com/taamulcredit/formrelay/internal/service"
	"github.com/taamulcredit/formrelay/static"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health  *HealthHandler  // Health serves GET /status.
	OpenAPI *OpenAPIHandler // OpenAPI serves the API documentation UI.
	Form    *FormHandler    // Form serves the three submission endpoints.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s, static.FS),
		Form:    NewFormHandler(s, services.Submission),
	}
}
