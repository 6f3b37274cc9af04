package httpapi

import (
	"encoding/json"
	"net/http"

	"timepro-engine/internal/api"
	"timepro-engine/internal/session"
)

// ProfileHandler serves the signed-in user's own profile. The id always
// comes from the session, never from the request.
type ProfileHandler struct {
	Backend *api.Client
	Session *session.Store
}

func (h ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.Session.User(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	profile, err := h.Backend.Profile(r.Context(), u.ID)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, profile)
}

func (h ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, err := h.Session.User(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	updated, err := h.Backend.UpdateProfile(r.Context(), u.ID, fields)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, updated)
}
