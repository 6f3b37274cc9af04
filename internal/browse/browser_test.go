package browse

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"timepro-engine/internal/api"
	"timepro-engine/internal/domain"
)

type fakeLister struct {
	calls int32
	pages map[int]api.JobsPage
	err   error

	// when set, a request for this page signals entered and blocks until
	// gate is closed
	blockPage int
	entered   chan struct{}
	gate      chan struct{}
}

func (f *fakeLister) ListJobs(ctx context.Context, page, limit int) (api.JobsPage, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.gate != nil && page == f.blockPage {
		f.entered <- struct{}{}
		<-f.gate
	}
	if f.err != nil {
		return api.JobsPage{}, f.err
	}
	p, ok := f.pages[page]
	if !ok {
		return api.JobsPage{}, fmt.Errorf("no page %d", page)
	}
	return p, nil
}

func (f *fakeLister) count() int { return int(atomic.LoadInt32(&f.calls)) }

func sixJobs() []domain.JobPosting {
	return []domain.JobPosting{
		{ID: "1", Title: "Backend Engineer", Company: "Acme", Location: "Berlin", Type: "full-time", Remote: false},
		{ID: "2", Title: "Frontend Engineer", Company: "Acme", Location: "Remote (EU)", Type: "full-time", Remote: true, NewThisWeek: true},
		{ID: "3", Title: "Data Analyst", Company: "Globex", Location: "London", Type: "part-time"},
		{ID: "4", Title: "SRE", Company: "Initech", Location: "Remote", Type: "contract", Remote: true},
		{ID: "5", Title: "QA Engineer", Company: "Globex", Location: "Paris", Type: "full-time", NewThisWeek: true},
		{ID: "6", Title: "Product Designer", Company: "Hooli", Location: "Berlin", Type: "full-time"},
	}
}

func TestLoadPage_ClampsToBounds(t *testing.T) {
	f := &fakeLister{pages: map[int]api.JobsPage{
		1: {Jobs: sixJobs(), TotalPages: 3},
		3: {Jobs: sixJobs()[:2], TotalPages: 3},
	}}
	b := New(f, 6)

	// page 0 clamps to 1 before any totalPages are known
	if err := b.LoadPage(context.Background(), 0); err != nil {
		t.Fatalf("LoadPage(0): %v", err)
	}
	if page, total := b.Page(); page != 1 || total != 3 {
		t.Errorf("got page=%d total=%d, want 1/3", page, total)
	}

	// page beyond totalPages clamps to totalPages
	if err := b.LoadPage(context.Background(), 99); err != nil {
		t.Fatalf("LoadPage(99): %v", err)
	}
	if page, _ := b.Page(); page != 3 {
		t.Errorf("got page=%d, want 3", page)
	}
}

func TestSetFilters_NeverFetches(t *testing.T) {
	f := &fakeLister{pages: map[int]api.JobsPage{1: {Jobs: sixJobs(), TotalPages: 1}}}
	b := New(f, 6)
	if err := b.LoadPage(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	before := f.count()

	b.SetFilters(Filters{Location: "remote"})
	got := b.Visible()

	if len(got) != 2 {
		t.Errorf("got %d visible jobs, want 2", len(got))
	}
	if f.count() != before {
		t.Errorf("filtering issued %d extra fetches, want 0", f.count()-before)
	}
}

func TestVisible_FilterMatchingIsCaseInsensitiveSubstring(t *testing.T) {
	f := &fakeLister{pages: map[int]api.JobsPage{1: {Jobs: sixJobs(), TotalPages: 1}}}
	b := New(f, 6)
	_ = b.LoadPage(context.Background(), 1)

	b.SetFilters(Filters{Keyword: "ENGINEER", JobType: "full"})
	got := b.Visible()
	if len(got) != 3 {
		t.Errorf("got %d visible, want 3 (backend, frontend, qa)", len(got))
	}

	b.SetFilters(Filters{})
	if len(b.Visible()) != 6 {
		t.Errorf("clearing filters should show all 6")
	}
}

func TestStats_LoadedPageOnly(t *testing.T) {
	f := &fakeLister{pages: map[int]api.JobsPage{1: {Jobs: sixJobs(), TotalPages: 9}}}
	b := New(f, 6)
	_ = b.LoadPage(context.Background(), 1)

	// filters must not change the aggregates either
	b.SetFilters(Filters{Keyword: "nothing-matches"})

	s := b.Stats()
	if s.TotalLoaded != 6 {
		t.Errorf("TotalLoaded = %d, want 6", s.TotalLoaded)
	}
	if s.Remote != 2 {
		t.Errorf("Remote = %d, want 2", s.Remote)
	}
	if s.Companies != 4 {
		t.Errorf("Companies = %d, want 4", s.Companies)
	}
	if s.NewThisWeek != 2 {
		t.Errorf("NewThisWeek = %d, want 2", s.NewThisWeek)
	}
}

func TestLoadPage_FailureKeepsPreviousPage(t *testing.T) {
	f := &fakeLister{pages: map[int]api.JobsPage{1: {Jobs: sixJobs(), TotalPages: 2}}}
	b := New(f, 6)
	if err := b.LoadPage(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	f.err = errors.New("backend down")
	if err := b.LoadPage(context.Background(), 2); err == nil {
		t.Fatal("expected an error")
	}

	if page, _ := b.Page(); page != 1 {
		t.Errorf("page moved to %d on a failed fetch, want 1", page)
	}
	if len(b.Visible()) != 6 {
		t.Errorf("previous page's data was lost on a failed fetch")
	}
}

func TestLoadPage_StaleResponseDiscarded(t *testing.T) {
	f := &fakeLister{
		pages: map[int]api.JobsPage{
			1: {Jobs: sixJobs(), TotalPages: 2},
			2: {Jobs: sixJobs()[:3], TotalPages: 2},
		},
	}
	b := New(f, 6)
	_ = b.LoadPage(context.Background(), 1) // establish totalPages=2

	f.blockPage = 1
	f.entered = make(chan struct{})
	f.gate = make(chan struct{})

	done := make(chan error)
	go func() { done <- b.LoadPage(context.Background(), 1) }()
	<-f.entered

	// the page-2 request overtakes the in-flight page-1 request
	if err := b.LoadPage(context.Background(), 2); err != nil {
		t.Fatal(err)
	}
	close(f.gate)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	if page, _ := b.Page(); page != 2 {
		t.Errorf("stale page-1 response overwrote page 2 (page=%d)", page)
	}
	if n := len(b.Visible()); n != 3 {
		t.Errorf("got %d jobs, want page 2's 3", n)
	}
}

func TestSnippet(t *testing.T) {
	html := "<div><h2>About</h2> <p>We &amp; you build   things.</p></div>"
	got := Snippet(html, 100)
	if got != "About We & you build things." {
		t.Errorf("Snippet = %q", got)
	}

	long := Snippet("word word word word word", 9)
	if long != "word word..." {
		t.Errorf("truncated Snippet = %q", long)
	}

	if Snippet("plain text", 100) != "plain text" {
		t.Errorf("plain text should pass through")
	}

	if got := Snippet("non\u00a0breaking\u00a0spaces", 100); got != "non breaking spaces" {
		t.Errorf("nbsp Snippet = %q", got)
	}
}
