package service

import (
	"github.com/taamulcredit/formrelay/internal/repository"
	"github.com/taamulcredit/formrelay/internal/server"
)

type Services struct {
	Submission *SubmissionService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Submission: NewSubmissionService(s, repos.Submissions),
	}
}
