package track

import (
	"context"
	"log"
	"sync"

	"timepro-engine/internal/domain"
)

// FallbackTitle is rendered when an application's posting was deleted after
// the fact; a nil job reference must never take the view down.
const FallbackTitle = "Untitled Job"

type Backend interface {
	MyApplications(ctx context.Context) ([]domain.Application, error)
	DeleteApplication(ctx context.Context, id string) error
}

// Row is one tracked application with the job fields denormalized for
// display and the status already mapped to a style class.
type Row struct {
	ID          string `json:"_id"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Message     string `json:"message"`
	ResumeURL   string `json:"resumeUrl,omitempty"`
	Status      string `json:"status"`
	StatusClass string `json:"statusClass"`
}

// Tracker is the seeker's view of their own applications. The fetch is
// token-scoped server-side; no user id is ever sent from here.
type Tracker struct {
	backend Backend

	mu     sync.Mutex
	rows   []Row
	loaded bool
	seq    uint64
}

func New(backend Backend) *Tracker {
	return &Tracker{backend: backend}
}

// Refresh re-fetches the caller's applications. A response overtaken by a
// delete or a newer refresh is discarded; on failure the previous rows stay
// and the caller renders the error affordance, not a blank screen.
func (t *Tracker) Refresh(ctx context.Context) error {
	t.mu.Lock()
	t.seq++
	token := t.seq
	t.mu.Unlock()

	apps, err := t.backend.MyApplications(ctx)
	if err != nil {
		log.Printf("level=warn msg=\"applications fetch failed\" err=%v", err)
		return err
	}

	rows := make([]Row, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, buildRow(a))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if token != t.seq {
		return nil
	}
	t.rows = rows
	t.loaded = true
	return nil
}

// Delete removes one application. The list is spliced locally on success
// (no re-fetch; deleting has no server-side consequences worth
// reconfirming); on failure local state is untouched.
func (t *Tracker) Delete(ctx context.Context, id string) error {
	if err := t.backend.DeleteApplication(ctx, id); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++ // an in-flight refresh from before the delete is now stale
	for i, r := range t.rows {
		if r.ID == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			break
		}
	}
	return nil
}

func (t *Tracker) Rows() ([]Row, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out, t.loaded
}

func buildRow(a domain.Application) Row {
	r := Row{
		ID:          a.ID,
		JobTitle:    FallbackTitle,
		Message:     a.Message,
		ResumeURL:   a.ResumeURL,
		Status:      a.Status,
		StatusClass: domain.StatusClass(a.Status),
	}
	if a.Job != nil {
		if a.Job.Title != "" {
			r.JobTitle = a.Job.Title
		}
		r.Company = a.Job.DisplayCompany()
		r.Location = a.Job.Location
		r.Salary = a.Job.Salary
	}
	return r
}
