package apply

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"timepro-engine/internal/api"
	"timepro-engine/internal/domain"
)

// Validation failures are detected locally and suppress the network call
// entirely; the round trip is only spent on submissions that could succeed.
var (
	ErrMessageRequired = errors.New("message is required")
	ErrResumeRequired  = errors.New("resume is required")
	ErrResumeType      = errors.New("resume must be a .pdf, .doc or .docx file")
)

// extension allowlist, matching the original form's accept filter; content
// is never sniffed
var allowedExt = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

type Applier interface {
	Apply(ctx context.Context, jobID, message string, resume api.Resume) (domain.Application, error)
}

// Submitter collects the application form and submits it. Applicant identity
// (name/email) is read from the session by the backend via the bearer token;
// it is display-only on this side.
type Submitter struct {
	backend Applier
}

func New(backend Applier) *Submitter {
	return &Submitter{backend: backend}
}

// Submit validates locally, then posts the multipart form. On failure the
// caller keeps its form state; nothing here erases it.
func (s *Submitter) Submit(ctx context.Context, jobID, message string, resume api.Resume) (domain.Application, error) {
	if strings.TrimSpace(message) == "" {
		return domain.Application{}, ErrMessageRequired
	}
	if resume.Content == nil || strings.TrimSpace(resume.Filename) == "" {
		return domain.Application{}, ErrResumeRequired
	}
	if !allowedExt[strings.ToLower(filepath.Ext(resume.Filename))] {
		return domain.Application{}, ErrResumeType
	}

	return s.backend.Apply(ctx, jobID, message, resume)
}
