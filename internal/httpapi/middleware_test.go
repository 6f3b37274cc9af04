package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCors_ShellOriginsOnly(t *testing.T) {
	h := Cors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		origin  string
		allowed bool
	}{
		{"http://localhost:1420", true},
		{"http://127.0.0.1:1420", true},
		{"tauri://localhost", true},
		{"https://evil.example.com", false},
		{"http://localhost.example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		if tc.origin != "" {
			req.Header.Set("Origin", tc.origin)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		got := rec.Header().Get("Access-Control-Allow-Origin")
		if tc.allowed && got != tc.origin {
			t.Errorf("origin %q: Allow-Origin = %q, want echoed", tc.origin, got)
		}
		if !tc.allowed && got != "" {
			t.Errorf("origin %q: Allow-Origin = %q, want none", tc.origin, got)
		}
	}
}

func TestCors_PreflightShortCircuits(t *testing.T) {
	called := false
	h := Cors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/jobs", nil)
	req.Header.Set("Origin", "http://localhost:1420")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight = %d, want 204", rec.Code)
	}
	if called {
		t.Error("preflight must not reach the handler")
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("preflight should carry the allowed methods")
	}
}
