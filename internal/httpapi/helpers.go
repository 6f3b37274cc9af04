package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"timepro-engine/internal/api"
	"timepro-engine/internal/session"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// writeBackendError maps a failed workflow call onto the local API. Backend
// messages pass through verbatim with the backend's own status; a missing
// session is a local 401 that never reached the network; anything else is a
// generic upstream failure.
func writeBackendError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, session.ErrNotAuthenticated) {
		WriteError(w, r, http.StatusUnauthorized, "not_authenticated", "not authenticated")
		return
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		code := "backend_error"
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			code = "unauthorized"
		case http.StatusNotFound:
			code = "not_found"
		}
		WriteError(w, r, apiErr.Status, code, apiErr.Message)
		return
	}

	WriteError(w, r, http.StatusBadGateway, "backend_unreachable", err.Error())
}
