package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"timepro-engine/internal/api"
)

type AdminHandler struct {
	Backend *api.Client
}

func (h AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.Backend.ListUsers(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, users)
}

func (h AdminHandler) UserByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/users/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid user id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON body")
			return
		}
		u, err := h.Backend.UpdateUser(r.Context(), id, fields)
		if err != nil {
			writeBackendError(w, r, err)
			return
		}
		writeJSON(w, u)
	case http.MethodDelete:
		if err := h.Backend.DeleteUser(r.Context(), id); err != nil {
			writeBackendError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "id": id})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Backend.AdminDashboardStats(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, stats)
}

func (h AdminHandler) Payments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Backend.ListPayments(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, payments)
}

func (h AdminHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Plan string `json:"plan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	url, err := h.Backend.CreateCheckoutSession(r.Context(), in.Plan)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"url": url})
}

// Resume streams the generated PDF straight through to the shell.
func (h AdminHandler) Resume(w http.ResponseWriter, r *http.Request) {
	blob, err := h.Backend.GenerateResume(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	_, _ = w.Write(blob)
}
