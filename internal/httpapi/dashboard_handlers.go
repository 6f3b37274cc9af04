package httpapi

import (
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"timepro-engine/internal/browse"
	"timepro-engine/internal/domain"
	"timepro-engine/internal/track"
)

type DashboardHandler struct {
	Browser *browse.Browser
	Tracker *track.Tracker
}

type dashboardView struct {
	Listing      browse.Stats `json:"listing"`
	Applications []track.Row  `json:"applications"`
	Pending      int          `json:"pending"`
	Accepted     int          `json:"accepted"`
}

// Get fans the two independent fetches out concurrently; they carry no
// ordering guarantee relative to each other and each fails softly on its own.
func (h DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	var g errgroup.Group
	var mu sync.Mutex
	var view dashboardView

	g.Go(func() error {
		if !h.Browser.Loaded() {
			_ = h.Browser.LoadPage(r.Context(), 1) // best-effort; stats stay zero on failure
		}
		mu.Lock()
		view.Listing = h.Browser.Stats()
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		_ = h.Tracker.Refresh(r.Context())
		rows, _ := h.Tracker.Rows()
		mu.Lock()
		view.Applications = rows
		for _, row := range rows {
			switch row.Status {
			case domain.StatusPending:
				view.Pending++
			case domain.StatusAccepted:
				view.Accepted++
			}
		}
		mu.Unlock()
		return nil
	})

	_ = g.Wait()
	writeJSON(w, view)
}
