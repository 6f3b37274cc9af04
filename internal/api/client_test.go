package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"timepro-engine/internal/domain"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token() (string, error) { return s.token, s.err }

func TestListJobs_NoAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("limit") != "6" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("listing must not send a bearer token")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"jobs":       []map[string]any{{"_id": "j1", "title": "Backend Engineer"}},
			"totalPages": 5,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{err: errors.New("no session")})
	page, err := c.ListJobs(context.Background(), 2, 6)
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalPages != 5 || len(page.Jobs) != 1 || page.Jobs[0].ID != "j1" {
		t.Errorf("page = %+v", page)
	}
}

func TestApply_MultipartRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/applications/apply/j1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatal(err)
		}
		if got := r.FormValue("message"); got != "keen to join" {
			t.Errorf("message = %q", got)
		}
		file, hdr, err := r.FormFile("resume")
		if err != nil {
			t.Fatal(err)
		}
		defer file.Close()
		if hdr.Filename != "cv.pdf" {
			t.Errorf("filename = %q", hdr.Filename)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"_id": "a1", "status": "pending", "message": "keen to join",
			"job": map[string]any{"_id": "j1", "title": "Backend Engineer"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{token: "tok-1"})
	app, err := c.Apply(context.Background(), "j1", "keen to join", Resume{
		Filename: "cv.pdf",
		Content:  strings.NewReader("%PDF-1.4"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if app.ID != "a1" || app.Status != domain.StatusPending {
		t.Errorf("app = %+v", app)
	}
	if app.Job == nil || app.Job.Title != "Backend Engineer" {
		t.Errorf("app.Job = %+v", app.Job)
	}
}

func TestDo_FailsFastWithoutSession(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	want := errors.New("not authenticated")
	c := New(srv.URL, staticTokens{err: want})

	_, err := c.MyApplications(context.Background())
	if !errors.Is(err, want) {
		t.Errorf("got %v, want the token source's error untouched", err)
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Errorf("a request left the engine without a session (%d hits)", n)
	}
}

func TestDo_BackendErrorMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "You have already applied for this job"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{token: "tok"})
	_, err := c.Apply(context.Background(), "j1", "again", Resume{
		Filename: "cv.pdf", Content: strings.NewReader("x"),
	})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "You have already applied for this job" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestDo_StatusSentinels(t *testing.T) {
	status := http.StatusUnauthorized
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"message": "jwt expired"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{token: "tok"})

	_, err := c.MyApplications(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("401: got %v, want ErrUnauthorized", err)
	}

	status = http.StatusForbidden
	_, err = c.MyApplications(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("403: got %v, want ErrUnauthorized", err)
	}

	status = http.StatusNotFound
	err = c.DeleteApplication(context.Background(), "gone")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("404: got %v, want ErrNotFound", err)
	}
}

func TestUpdateApplicationStatus_Body(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/provider/applications/a1/status" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["status"] != "accepted" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{token: "tok"})
	if err := c.UpdateApplicationStatus(context.Background(), "a1", "accepted"); err != nil {
		t.Fatal(err)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "dana@example.com" || body["password"] != "hunter2" {
			t.Errorf("body = %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user":  map[string]any{"_id": "u1", "name": "Dana", "email": "dana@example.com", "role": "user"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{})
	res, err := c.Login(context.Background(), "dana@example.com", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if res.Token != "tok-1" || res.User == nil || res.User.Role != domain.RoleUser {
		t.Errorf("res = %+v", res)
	}
}
