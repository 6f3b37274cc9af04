package httpapi

import (
	"encoding/json"
	"net/http"

	"timepro-engine/internal/api"
	"timepro-engine/internal/domain"
	"timepro-engine/internal/events"
	"timepro-engine/internal/session"
)

type SessionHandler struct {
	Backend *api.Client
	Session *session.Store
	Hub     *events.Hub
}

type sessionView struct {
	Authenticated bool         `json:"authenticated"`
	Role          string       `json:"role,omitempty"`
	User          *domain.User `json:"user,omitempty"`
	Home          string       `json:"home"`
}

func (h SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	v := sessionView{Home: "/"}
	if h.Session.Authenticated() {
		v.Authenticated = true
		if role, err := h.Session.Role(r.Context()); err == nil {
			v.Role = role
			v.Home = domain.HomeRoute(role)
		}
		if u, err := h.Session.User(r.Context()); err == nil {
			v.User = &u
		}
	}
	writeJSON(w, v)
}

func (h SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	if in.Email == "" || in.Password == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_credentials", "email and password are required")
		return
	}

	res, err := h.Backend.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	h.store(w, r, res)
}

func (h SessionHandler) Google(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Credential string `json:"credential"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Credential == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_credential", "google credential is required")
		return
	}

	res, err := h.Backend.GoogleLogin(r.Context(), in.Credential)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	h.store(w, r, res)
}

// store is the shared tail of both login flows: validate the backend reply,
// replace the whole session, announce the change.
func (h SessionHandler) store(w http.ResponseWriter, r *http.Request, res api.AuthResponse) {
	if err := h.Session.Set(r.Context(), res.Token, res.User); err != nil {
		WriteError(w, r, http.StatusBadGateway, "bad_auth_response", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.SessionChanged, map[string]any{"authenticated": true}))

	writeJSON(w, sessionView{
		Authenticated: true,
		Role:          res.User.Role,
		User:          res.User,
		Home:          domain.HomeRoute(res.User.Role),
	})
}

func (h SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Clear(r.Context()); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "clear_failed", err.Error())
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.SessionChanged, map[string]any{"authenticated": false}))
	writeJSON(w, sessionView{Home: "/"})
}

func (h SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_fields", "name, email and password are required")
		return
	}
	if in.Role == "" {
		in.Role = domain.RoleUser
	}

	if err := h.Backend.Register(r.Context(), in.Name, in.Email, in.Password, in.Role); err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (h SessionHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_email", "email is required")
		return
	}
	if err := h.Backend.ForgotPassword(r.Context(), in.Email); err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (h SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Token == "" || in.Password == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_fields", "token and password are required")
		return
	}
	if err := h.Backend.ResetPassword(r.Context(), in.Token, in.Password); err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
