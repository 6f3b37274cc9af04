package review

import (
	"context"
	"errors"
	"testing"

	"timepro-engine/internal/domain"
)

type fakeBackend struct {
	apps    map[string][]domain.Application // keyed by job id, "" = global
	fetches int
	updates []string // "id:status"
	err     error
}

func (f *fakeBackend) JobApplications(ctx context.Context, jobID string) ([]domain.Application, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.apps[jobID], nil
}

func (f *fakeBackend) AllApplications(ctx context.Context) ([]domain.Application, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.apps[""], nil
}

func (f *fakeBackend) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, id+":"+status)
	for scope := range f.apps {
		for i := range f.apps[scope] {
			if f.apps[scope][i].ID == id {
				f.apps[scope][i].Status = status
			}
		}
	}
	return nil
}

func reviewApps() []domain.Application {
	return []domain.Application{
		{
			ID:        "a1",
			Status:    domain.StatusPending,
			Message:   "keen to join",
			Applicant: &domain.User{Name: "Dana", Email: "dana@example.com"},
			Job:       &domain.JobPosting{Title: "Backend Engineer"},
		},
		{
			ID:        "a2",
			Status:    domain.StatusAccepted,
			Applicant: &domain.User{Name: "Lee", Email: "lee@example.com"},
			Job:       &domain.JobPosting{Title: "Backend Engineer"},
		},
		{
			ID:     "a3",
			Status: domain.StatusPending,
			// applicant account deleted; identity fields stay empty
		},
	}
}

func TestLoad_FlattensApplicant(t *testing.T) {
	f := &fakeBackend{apps: map[string][]domain.Application{"job-1": reviewApps()}}
	r := New(f, "job-1")

	if err := r.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !r.Loaded() {
		t.Fatal("Loaded() should be true")
	}
	got := r.Visible()
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[0].ApplicantName != "Dana" || got[0].ApplicantEmail != "dana@example.com" {
		t.Errorf("entry 0 = %+v", got[0])
	}
	if got[0].JobTitle != "Backend Engineer" {
		t.Errorf("entry 0 job title = %q", got[0].JobTitle)
	}
	if got[2].ApplicantName != "" || got[2].ApplicantEmail != "" {
		t.Errorf("nil applicant should leave identity empty: %+v", got[2])
	}
}

func TestUpdateStatus_RefetchesList(t *testing.T) {
	f := &fakeBackend{apps: map[string][]domain.Application{"job-1": reviewApps()}}
	r := New(f, "job-1")
	_ = r.Load(context.Background())
	fetchesBefore := f.fetches

	if err := r.UpdateStatus(context.Background(), "a1", domain.StatusAccepted); err != nil {
		t.Fatal(err)
	}
	if f.fetches != fetchesBefore+1 {
		t.Errorf("update triggered %d re-fetches, want exactly 1", f.fetches-fetchesBefore)
	}

	for _, e := range r.Visible() {
		if e.ID == "a1" {
			if e.Status != domain.StatusAccepted || e.StatusClass != domain.ClassSuccess {
				t.Errorf("a1 after update = %q/%q", e.Status, e.StatusClass)
			}
		}
	}
}

func TestUpdateStatus_RepeatedTransitionStillSent(t *testing.T) {
	f := &fakeBackend{apps: map[string][]domain.Application{"job-1": reviewApps()}}
	r := New(f, "job-1")
	_ = r.Load(context.Background())

	// a2 is already accepted; the request goes out anyway
	if err := r.UpdateStatus(context.Background(), "a2", domain.StatusAccepted); err != nil {
		t.Fatal(err)
	}
	if len(f.updates) != 1 || f.updates[0] != "a2:accepted" {
		t.Errorf("updates = %v", f.updates)
	}
}

func TestUpdateStatus_UnknownStatusRejectedLocally(t *testing.T) {
	f := &fakeBackend{apps: map[string][]domain.Application{"job-1": reviewApps()}}
	r := New(f, "job-1")
	_ = r.Load(context.Background())

	if err := r.UpdateStatus(context.Background(), "a1", "shortlisted"); err == nil {
		t.Fatal("expected an error for an unknown status")
	}
	if len(f.updates) != 0 {
		t.Errorf("unknown status reached the backend: %v", f.updates)
	}
}

func TestSetStatusFilter_LocalOnly(t *testing.T) {
	f := &fakeBackend{apps: map[string][]domain.Application{"job-1": reviewApps()}}
	r := New(f, "job-1")
	_ = r.Load(context.Background())
	fetchesBefore := f.fetches

	r.SetStatusFilter(domain.StatusPending)
	got := r.Visible()
	if len(got) != 2 {
		t.Errorf("got %d pending entries, want 2", len(got))
	}
	if f.fetches != fetchesBefore {
		t.Errorf("filtering issued %d fetches, want 0", f.fetches-fetchesBefore)
	}

	r.SetStatusFilter("")
	if len(r.Visible()) != 3 {
		t.Error("empty filter should reset to all")
	}
}

func TestLoad_GlobalScopeUsesAdminList(t *testing.T) {
	f := &fakeBackend{apps: map[string][]domain.Application{"": reviewApps()}}
	r := New(f, "")
	if err := r.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(r.Visible()) != 3 {
		t.Errorf("got %d entries from the global scope, want 3", len(r.Visible()))
	}
}

func TestLoad_FailureKeepsPreviousEntries(t *testing.T) {
	f := &fakeBackend{apps: map[string][]domain.Application{"job-1": reviewApps()}}
	r := New(f, "job-1")
	_ = r.Load(context.Background())

	f.err = errors.New("backend down")
	if err := r.Load(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if len(r.Visible()) != 3 {
		t.Error("previous entries lost on failed load")
	}
}
