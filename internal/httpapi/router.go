package httpapi

import "net/http"

// NewMux wires every view the UI shell talks to.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Session
	sh := SessionHandler{Backend: d.Backend, Session: d.Session, Hub: d.Hub}
	mux.HandleFunc("/session", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Get,
	}))
	mux.HandleFunc("/session/login", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Login,
	}))
	mux.HandleFunc("/session/google", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Google,
	}))
	mux.HandleFunc("/session/logout", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Logout,
	}))
	mux.HandleFunc("/session/register", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Register,
	}))
	mux.HandleFunc("/session/forgot", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Forgot,
	}))
	mux.HandleFunc("/session/reset", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Reset,
	}))

	// Listing browser
	jh := JobsHandler{Backend: d.Backend, Browser: d.Browser}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.GetByPath, // expects /jobs/{id}
	}))

	// Submitter + tracker
	ah := ApplicationsHandler{Submitter: d.Submitter, Tracker: d.Tracker, Hub: d.Hub}
	mux.HandleFunc("/applications", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Submit,
	}))
	mux.HandleFunc("/applications/my", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Mine,
	}))
	mux.HandleFunc("/applications/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: ah.DeleteByPath, // expects /applications/{id}
	}))

	// Reviewer
	rh := NewReviewHandler(d.Backend, d.Hub)
	mux.HandleFunc("/review/applications", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.List,
	}))
	mux.HandleFunc("/review/applications/", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: rh.UpdateStatus, // expects /review/applications/{id}/status
	}))

	// Provider job management
	ph := ProviderHandler{Backend: d.Backend, Hub: d.Hub}
	mux.HandleFunc("/provider/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ph.CreateJob,
		http.MethodGet:  ph.MyJobs,
	}))
	mux.HandleFunc("/provider/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: ph.DeleteJobByPath,
	}))

	// Admin surfaces
	adm := AdminHandler{Backend: d.Backend}
	mux.HandleFunc("/admin/users", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: adm.Users,
	}))
	mux.HandleFunc("/admin/users/", adm.UserByPath)
	mux.HandleFunc("/admin/stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: adm.Stats,
	}))
	mux.HandleFunc("/admin/payments", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: adm.Payments,
	}))
	mux.HandleFunc("/payment/checkout", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: adm.Checkout,
	}))
	mux.HandleFunc("/resume/generate", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: adm.Resume,
	}))

	// Profile
	pf := ProfileHandler{Backend: d.Backend, Session: d.Session}
	mux.HandleFunc("/profile", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: pf.Get,
		http.MethodPut: pf.Update,
	}))

	// Dashboard
	dh := DashboardHandler{Browser: d.Browser, Tracker: d.Tracker}
	mux.HandleFunc("/dashboard", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Get,
	}))

	// Config
	ch := ConfigHandler{CfgVal: d.CfgVal, UserCfgPath: d.UserCfgPath, LoadCfg: d.LoadCfg}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
