package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"timepro-engine/internal/domain"
)

// Resume is the opaque file attached to an application. Content is passed
// through untouched; only the filename matters client-side.
type Resume struct {
	Filename string
	Content  io.Reader
}

// Apply submits one application as multipart form data: a `resume` file part
// and a `message` text part, exactly as the backend expects.
func (c *Client) Apply(ctx context.Context, jobID, message string, resume Resume) (domain.Application, error) {
	var out domain.Application

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("resume", resume.Filename)
	if err != nil {
		return out, err
	}
	if _, err := io.Copy(fw, resume.Content); err != nil {
		return out, fmt.Errorf("read resume: %w", err)
	}
	if err := mw.WriteField("message", message); err != nil {
		return out, err
	}
	if err := mw.Close(); err != nil {
		return out, err
	}

	path := "/applications/apply/" + url.PathEscape(jobID)
	err = c.do(ctx, http.MethodPost, path, true, &buf, mw.FormDataContentType(), &out)
	return out, err
}

// MyApplications is token-scoped on the backend; the caller's user id never
// travels in the request.
func (c *Client) MyApplications(ctx context.Context) ([]domain.Application, error) {
	var out []domain.Application
	err := c.do(ctx, http.MethodGet, "/applications/my", true, nil, "", &out)
	return out, err
}

func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/applications/"+url.PathEscape(id), true, nil, "", nil)
}

// JobApplications lists applications for one of the caller's postings,
// applicant identity included.
func (c *Client) JobApplications(ctx context.Context, jobID string) ([]domain.Application, error) {
	var out []domain.Application
	path := "/provider/jobs/" + url.PathEscape(jobID) + "/applications"
	err := c.do(ctx, http.MethodGet, path, true, nil, "", &out)
	return out, err
}

// AllApplications is the admin's platform-wide list.
func (c *Client) AllApplications(ctx context.Context) ([]domain.Application, error) {
	var out []domain.Application
	err := c.do(ctx, http.MethodGet, "/admin/applications", true, nil, "", &out)
	return out, err
}

// UpdateApplicationStatus issues the transition unconditionally; re-applying
// the current status is the backend's documented no-op.
func (c *Client) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	path := "/provider/applications/" + url.PathEscape(id) + "/status"
	return c.doJSON(ctx, http.MethodPut, path, true, body, nil)
}
