package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"timepro-engine/internal/api"
	"timepro-engine/internal/events"
	"timepro-engine/internal/review"
)

// ReviewHandler keeps one reviewer per scope (a job id, or "" for the admin's
// global list) so the status filter stays a local operation across requests.
type ReviewHandler struct {
	Backend *api.Client
	Hub     *events.Hub

	mu        sync.Mutex
	reviewers map[string]*review.Reviewer
}

func NewReviewHandler(backend *api.Client, hub *events.Hub) *ReviewHandler {
	return &ReviewHandler{
		Backend:   backend,
		Hub:       hub,
		reviewers: make(map[string]*review.Reviewer),
	}
}

func (h *ReviewHandler) scoped(jobID string) *review.Reviewer {
	h.mu.Lock()
	defer h.mu.Unlock()
	rv, ok := h.reviewers[jobID]
	if !ok {
		rv = review.New(h.Backend, jobID)
		h.reviewers[jobID] = rv
	}
	return rv
}

type reviewView struct {
	JobID        string         `json:"jobId,omitempty"`
	StatusFilter string         `json:"statusFilter"`
	Applications []review.Entry `json:"applications"`
}

// List serves the scoped applications. The status query param only moves the
// local filter; a fetch happens on first sight of a scope or with refresh=1.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobID := q.Get("job")
	rv := h.scoped(jobID)

	filter := q.Get("status")
	rv.SetStatusFilter(filter)

	if !rv.Loaded() || q.Get("refresh") == "1" {
		if err := rv.Load(r.Context()); err != nil && !rv.Loaded() {
			writeBackendError(w, r, err)
			return
		}
	}

	if filter == "" {
		filter = review.FilterAll
	}
	writeJSON(w, reviewView{JobID: jobID, StatusFilter: filter, Applications: rv.Visible()})
}

// UpdateStatus transitions one application and answers with the re-fetched
// list, so the shell renders whatever the server now says is true.
func (h *ReviewHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/review/applications/")
	id, ok := strings.CutSuffix(rest, "/status")
	if !ok || id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "expected /review/applications/{id}/status")
		return
	}

	var in struct {
		Status string `json:"status"`
		JobID  string `json:"jobId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Status == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_status", "status is required")
		return
	}

	rv := h.scoped(in.JobID)
	if err := rv.UpdateStatus(r.Context(), id, in.Status); err != nil {
		writeBackendError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.StatusUpdated, map[string]any{"id": id, "status": in.Status}))
	writeJSON(w, reviewView{JobID: in.JobID, StatusFilter: review.FilterAll, Applications: rv.Visible()})
}
