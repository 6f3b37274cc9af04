package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"timepro-engine/internal/domain"
)

// JobsPage is the backend's paginated listing shape. TotalPages is always
// taken from here, never inferred locally.
type JobsPage struct {
	Jobs       []domain.JobPosting `json:"jobs"`
	TotalPages int                 `json:"totalPages"`
}

func (c *Client) ListJobs(ctx context.Context, page, limit int) (JobsPage, error) {
	var out JobsPage
	path := fmt.Sprintf("/jobs?page=%d&limit=%d", page, limit)
	err := c.do(ctx, http.MethodGet, path, false, nil, "", &out)
	return out, err
}

func (c *Client) GetJob(ctx context.Context, id string) (domain.JobPosting, error) {
	var out domain.JobPosting
	err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), false, nil, "", &out)
	return out, err
}
