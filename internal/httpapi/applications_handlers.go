package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"timepro-engine/internal/api"
	"timepro-engine/internal/apply"
	"timepro-engine/internal/events"
	"timepro-engine/internal/track"
)

type ApplicationsHandler struct {
	Submitter *apply.Submitter
	Tracker   *track.Tracker
	Hub       *events.Hub
}

// Submit accepts the application form as multipart (job_id + message fields,
// resume file) and forwards it. Local validation failures come back as 422
// without a single byte sent to the backend.
func (h ApplicationsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_form", "expected multipart form data")
		return
	}

	jobID := r.FormValue("job_id")
	if jobID == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_job", "job_id is required")
		return
	}
	message := r.FormValue("message")

	resume := api.Resume{}
	if f, hdr, err := r.FormFile("resume"); err == nil {
		defer f.Close()
		resume.Filename = hdr.Filename
		resume.Content = f
	}

	app, err := h.Submitter.Submit(r.Context(), jobID, message, resume)
	if err != nil {
		if errors.Is(err, apply.ErrMessageRequired) ||
			errors.Is(err, apply.ErrResumeRequired) ||
			errors.Is(err, apply.ErrResumeType) {
			WriteError(w, r, http.StatusUnprocessableEntity, "validation_failed", err.Error())
			return
		}
		writeBackendError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.ApplicationSubmitted, map[string]any{"id": app.ID, "job": jobID}))

	// the shell navigates to the tracker on success
	writeJSON(w, map[string]any{"application": app, "next": "/applications"})
}

type trackerView struct {
	Applications []track.Row `json:"applications"`
	Empty        bool        `json:"empty"`
}

func (h ApplicationsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	err := h.Tracker.Refresh(r.Context())
	rows, loaded := h.Tracker.Rows()
	if err != nil && !loaded {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, trackerView{Applications: rows, Empty: len(rows) == 0})
}

func (h ApplicationsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/applications/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid application id")
		return
	}

	if err := h.Tracker.Delete(r.Context(), id); err != nil {
		writeBackendError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.ApplicationDeleted, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
