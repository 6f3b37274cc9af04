package api

import (
	"context"
	"net/http"
	"net/url"

	"timepro-engine/internal/domain"
)

// DashboardStats is the admin overview the backend aggregates.
type DashboardStats struct {
	Users        int `json:"users"`
	Providers    int `json:"providers"`
	Jobs         int `json:"jobs"`
	Applications int `json:"applications"`
}

type Payment struct {
	ID        string `json:"_id"`
	UserEmail string `json:"userEmail"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := c.do(ctx, http.MethodGet, "/admin", true, nil, "", &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, fields map[string]any) (domain.User, error) {
	var out domain.User
	err := c.doJSON(ctx, http.MethodPut, "/admin/"+url.PathEscape(id), true, fields, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/"+url.PathEscape(id), true, nil, "", nil)
}

func (c *Client) AdminDashboardStats(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	err := c.do(ctx, http.MethodGet, "/admin/dashboard-stats", true, nil, "", &out)
	return out, err
}

func (c *Client) ListPayments(ctx context.Context) ([]Payment, error) {
	var out []Payment
	err := c.do(ctx, http.MethodGet, "/payment/all", true, nil, "", &out)
	return out, err
}

// CreateCheckoutSession returns the external payment collaborator's redirect
// URL; the engine never touches payment details itself.
func (c *Client) CreateCheckoutSession(ctx context.Context, plan string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	in := map[string]string{"plan": plan}
	err := c.doJSON(ctx, http.MethodPost, "/payment/create-checkout-session", true, in, &out)
	return out.URL, err
}
