package api

import (
	"context"
	"net/http"
	"net/url"

	"timepro-engine/internal/domain"
)

func (c *Client) Profile(ctx context.Context, userID string) (domain.User, error) {
	var out domain.User
	err := c.do(ctx, http.MethodGet, "/users/profile/"+url.PathEscape(userID), true, nil, "", &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, userID string, fields map[string]any) (domain.User, error) {
	var out domain.User
	err := c.doJSON(ctx, http.MethodPut, "/users/profile/"+url.PathEscape(userID), true, fields, &out)
	return out, err
}

// GenerateResume asks the resume collaborator for a rendered PDF and hands
// the bytes back untouched.
func (c *Client) GenerateResume(ctx context.Context) ([]byte, error) {
	var out []byte
	err := c.do(ctx, http.MethodPost, "/resume/generate", true, nil, "", &out)
	return out, err
}
