package browse

import (
	"context"
	"log"
	"strings"
	"sync"

	"timepro-engine/internal/api"
	"timepro-engine/internal/domain"
)

// Lister is the one backend call the browser makes.
type Lister interface {
	ListJobs(ctx context.Context, page, limit int) (api.JobsPage, error)
}

type Filters struct {
	Keyword  string `json:"keyword"`
	Location string `json:"location"`
	JobType  string `json:"jobType"`
}

// Card is one rendered posting: the posting plus a plain-text excerpt of its
// description HTML.
type Card struct {
	domain.JobPosting
	Snippet string `json:"snippet"`
}

type Stats struct {
	TotalLoaded int `json:"totalLoaded"`
	Remote      int `json:"remote"`
	Companies   int `json:"companies"`
	NewThisWeek int `json:"newThisWeek"`
}

// Browser owns the listing page state: current page, server-reported total,
// the loaded postings, and the client-side filters. Filters narrow the
// loaded page only; changing them never touches the network.
type Browser struct {
	backend  Lister
	pageSize int

	mu         sync.Mutex
	page       int
	totalPages int
	jobs       []domain.JobPosting
	loaded     bool
	filters    Filters
	seq        uint64 // latest issued request token
}

func New(backend Lister, pageSize int) *Browser {
	if pageSize <= 0 {
		pageSize = 6
	}
	return &Browser{
		backend:    backend,
		pageSize:   pageSize,
		page:       1,
		totalPages: 1,
	}
}

// LoadPage fetches page p, clamped to [1, totalPages] as of the last server
// response. A response that was overtaken by a newer request is discarded.
// On failure the previously loaded page stays visible.
func (b *Browser) LoadPage(ctx context.Context, p int) error {
	b.mu.Lock()
	p = clamp(p, 1, b.totalPages)
	b.seq++
	token := b.seq
	b.mu.Unlock()

	res, err := b.backend.ListJobs(ctx, p, b.pageSize)
	if err != nil {
		log.Printf("level=warn msg=\"listing fetch failed\" page=%d err=%v", p, err)
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if token != b.seq {
		// a newer request already owns the state
		return nil
	}
	b.page = p
	b.jobs = res.Jobs
	b.loaded = true
	if res.TotalPages > 0 {
		b.totalPages = res.TotalPages
	} else {
		b.totalPages = 1
	}
	// the server may have shrunk while we were paging past the end
	if b.page > b.totalPages {
		b.page = b.totalPages
	}
	return nil
}

// SetFilters is purely local.
func (b *Browser) SetFilters(f Filters) {
	b.mu.Lock()
	b.filters = f
	b.mu.Unlock()
}

func (b *Browser) Page() (page, totalPages int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page, b.totalPages
}

// Loaded reports whether any page has been fetched yet.
func (b *Browser) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Visible returns the loaded page narrowed by the filters: case-insensitive
// substring match of keyword against title, location against location and
// jobType against type.
func (b *Browser) Visible() []Card {
	b.mu.Lock()
	jobs := b.jobs
	f := b.filters
	b.mu.Unlock()

	out := make([]Card, 0, len(jobs))
	for _, j := range jobs {
		if !matches(f.Keyword, j.Title) ||
			!matches(f.Location, j.Location) ||
			!matches(f.JobType, j.Type) {
			continue
		}
		out = append(out, Card{JobPosting: j, Snippet: Snippet(j.Description, 100)})
	}
	return out
}

// Stats aggregates over the loaded page only; it deliberately says nothing
// about the full result set.
func (b *Browser) Stats() Stats {
	b.mu.Lock()
	jobs := b.jobs
	b.mu.Unlock()

	s := Stats{TotalLoaded: len(jobs)}
	companies := map[string]bool{}
	for _, j := range jobs {
		if j.Remote {
			s.Remote++
		}
		if j.NewThisWeek {
			s.NewThisWeek++
		}
		if c := strings.ToLower(strings.TrimSpace(j.DisplayCompany())); c != "" {
			companies[c] = true
		}
	}
	s.Companies = len(companies)
	return s
}

func matches(filter, field string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(filter))
}

func clamp(p, lo, hi int) int {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}
