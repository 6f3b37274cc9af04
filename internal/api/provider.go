package api

import (
	"context"
	"net/http"
	"net/url"

	"timepro-engine/internal/domain"
)

// NewJob carries the fields a provider fills in when posting.
type NewJob struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Salary      string   `json:"salary,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Experience  int      `json:"experience,omitempty"`
	Remote      bool     `json:"remote"`
}

func (c *Client) CreateJob(ctx context.Context, job NewJob) (domain.JobPosting, error) {
	var out domain.JobPosting
	err := c.doJSON(ctx, http.MethodPost, "/provider/jobs", true, job, &out)
	return out, err
}

func (c *Client) MyJobs(ctx context.Context) ([]domain.JobPosting, error) {
	var out []domain.JobPosting
	err := c.do(ctx, http.MethodGet, "/provider/my-jobs", true, nil, "", &out)
	return out, err
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/provider/jobs/"+url.PathEscape(id), true, nil, "", nil)
}
