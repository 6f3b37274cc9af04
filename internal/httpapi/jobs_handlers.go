package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"timepro-engine/internal/api"
	"timepro-engine/internal/browse"
)

type JobsHandler struct {
	Backend *api.Client
	Browser *browse.Browser
}

type listingView struct {
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	Filters    browse.Filters `json:"filters"`
	Jobs       []browse.Card  `json:"jobs"`
	Visible    int            `json:"visible"`
	Stats      browse.Stats   `json:"stats"`
}

// List renders the browse view. Only a page change (or the very first call)
// reaches the backend; filter params narrow the already-loaded page locally.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	h.Browser.SetFilters(browse.Filters{
		Keyword:  q.Get("keyword"),
		Location: q.Get("location"),
		JobType:  q.Get("jobType"),
	})

	cur, _ := h.Browser.Page()
	want := cur
	if raw := q.Get("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil {
			want = p
		}
	}

	if !h.Browser.Loaded() || want != cur {
		if err := h.Browser.LoadPage(r.Context(), want); err != nil && !h.Browser.Loaded() {
			// nothing to fall back to on the very first load
			writeBackendError(w, r, err)
			return
		}
		// on refresh failure the previously loaded page stays visible
	}

	page, total := h.Browser.Page()
	cards := h.Browser.Visible()
	writeJSON(w, listingView{
		Page:       page,
		TotalPages: total,
		Filters: browse.Filters{
			Keyword:  q.Get("keyword"),
			Location: q.Get("location"),
			JobType:  q.Get("jobType"),
		},
		Jobs:    cards,
		Visible: len(cards),
		Stats:   h.Browser.Stats(),
	})
}

// GetByPath serves one posting for the apply form header.
func (h JobsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/jobs/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "missing job id")
		return
	}
	job, err := h.Backend.GetJob(r.Context(), id)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, job)
}
