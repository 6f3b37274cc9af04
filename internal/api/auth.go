package api

import (
	"context"
	"net/http"
	"net/url"

	"timepro-engine/internal/domain"
)

// AuthResponse is what login-shaped endpoints return. Token and User must
// both be present for the session holder to accept it.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	in := map[string]string{"email": email, "password": password}
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", false, in, &out)
	return out, err
}

// GoogleLogin exchanges the OAuth credential for a session; the credential
// itself is issued by the external auth collaborator, not us.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (AuthResponse, error) {
	var out AuthResponse
	in := map[string]string{"token": credential}
	err := c.doJSON(ctx, http.MethodPost, "/auth/google-login", false, in, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, name, email, password, role string) error {
	in := map[string]string{"name": name, "email": email, "password": password, "role": role}
	return c.doJSON(ctx, http.MethodPost, "/auth/register", false, in, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	in := map[string]string{"email": email}
	return c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", false, in, nil)
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	in := map[string]string{"password": password}
	path := "/auth/reset-password/" + url.PathEscape(resetToken)
	return c.doJSON(ctx, http.MethodPost, path, false, in, nil)
}
