package review

import (
	"context"
	"fmt"
	"log"
	"sync"

	"timepro-engine/internal/domain"
)

// FilterAll shows every fetched application regardless of status.
const FilterAll = "all"

type Backend interface {
	JobApplications(ctx context.Context, jobID string) ([]domain.Application, error)
	AllApplications(ctx context.Context) ([]domain.Application, error)
	UpdateApplicationStatus(ctx context.Context, id, status string) error
}

// Entry is one reviewed application with the applicant identity flattened.
type Entry struct {
	ID             string `json:"_id"`
	ApplicantName  string `json:"applicantName"`
	ApplicantEmail string `json:"applicantEmail"`
	JobTitle       string `json:"jobTitle"`
	Message        string `json:"message"`
	ResumeURL      string `json:"resumeUrl,omitempty"`
	Status         string `json:"status"`
	StatusClass    string `json:"statusClass"`
}

// Reviewer is the provider/admin view over applications. With a job id it is
// provider-scoped; with none it is the admin's platform-wide list.
type Reviewer struct {
	backend Backend
	jobID   string // empty = global scope

	mu      sync.Mutex
	entries []Entry
	loaded  bool
	filter  string
	seq     uint64
}

func New(backend Backend, jobID string) *Reviewer {
	return &Reviewer{backend: backend, jobID: jobID, filter: FilterAll}
}

func (r *Reviewer) fetch(ctx context.Context) ([]domain.Application, error) {
	if r.jobID != "" {
		return r.backend.JobApplications(ctx, r.jobID)
	}
	return r.backend.AllApplications(ctx)
}

// Load fetches the scoped list. Responses overtaken by a newer Load are
// discarded; failures leave the previous list in place.
func (r *Reviewer) Load(ctx context.Context) error {
	r.mu.Lock()
	r.seq++
	token := r.seq
	r.mu.Unlock()

	apps, err := r.fetch(ctx)
	if err != nil {
		log.Printf("level=warn msg=\"review fetch failed\" job=%q err=%v", r.jobID, err)
		return err
	}

	entries := make([]Entry, 0, len(apps))
	for _, a := range apps {
		entries = append(entries, buildEntry(a))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if token != r.seq {
		return nil
	}
	r.entries = entries
	r.loaded = true
	return nil
}

func (r *Reviewer) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

// UpdateStatus issues the transition and then re-fetches the whole list:
// a status change can have server-side consequences (notification mail), so
// the server stays the source of truth rather than a local splice. Setting
// the status an application already has is sent anyway; the backend treats
// it as a no-op success.
func (r *Reviewer) UpdateStatus(ctx context.Context, id, status string) error {
	if !domain.KnownStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}
	if err := r.backend.UpdateApplicationStatus(ctx, id, status); err != nil {
		return err
	}
	return r.Load(ctx)
}

// SetStatusFilter narrows the already-fetched list; it never refetches.
func (r *Reviewer) SetStatusFilter(f string) {
	if f == "" {
		f = FilterAll
	}
	r.mu.Lock()
	r.filter = f
	r.mu.Unlock()
}

func (r *Reviewer) Visible() []Entry {
	r.mu.Lock()
	entries := r.entries
	f := r.filter
	r.mu.Unlock()

	if f == FilterAll {
		out := make([]Entry, len(entries))
		copy(out, entries)
		return out
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Status == f {
			out = append(out, e)
		}
	}
	return out
}

func buildEntry(a domain.Application) Entry {
	e := Entry{
		ID:          a.ID,
		Message:     a.Message,
		ResumeURL:   a.ResumeURL,
		Status:      a.Status,
		StatusClass: domain.StatusClass(a.Status),
	}
	if a.Applicant != nil {
		e.ApplicantName = a.Applicant.Name
		e.ApplicantEmail = a.Applicant.Email
	}
	if a.Job != nil {
		e.JobTitle = a.Job.Title
	}
	return e
}
