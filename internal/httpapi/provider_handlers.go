package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"timepro-engine/internal/api"
	"timepro-engine/internal/events"
)

type ProviderHandler struct {
	Backend *api.Client
	Hub     *events.Hub
}

func (h ProviderHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var in api.NewJob
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Location) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_fields", "title and location are required")
		return
	}

	job, err := h.Backend.CreateJob(r.Context(), in)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.JobPosted, map[string]any{"id": job.ID}))
	writeJSON(w, job)
}

func (h ProviderHandler) MyJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Backend.MyJobs(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, jobs)
}

func (h ProviderHandler) DeleteJobByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/provider/jobs/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid job id")
		return
	}

	if err := h.Backend.DeleteJob(r.Context(), id); err != nil {
		writeBackendError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.JobDeleted, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
