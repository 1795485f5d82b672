package repository

import (
	"github.com/taamulcredit/formrelay/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Submissions *SubmissionRepository
}

// NewRepositories constructs the repository container from the shared
// server dependencies (config, logger, outbound HTTP client).
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Submissions: NewSubmissionRepository(s.Config.Upstream, s.Config.Observability, s.HTTPClient, s.Logger),
	}
}
