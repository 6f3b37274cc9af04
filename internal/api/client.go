package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError carries the backend's own message so the UI can show it verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// TokenSource hands out the current bearer token, or an error when there is
// no usable session. The session store implements it.
type TokenSource interface {
	Token() (string, error)
}

type Client struct {
	baseURL string
	hc      *http.Client
	limiter *HostLimiter
	tokens  TokenSource
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func WithLimiter(l *HostLimiter) Option {
	return func(c *Client) { c.limiter = l }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 20 * time.Second},
		tokens:  tokens,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// do performs one backend call. auth=true attaches the bearer token and fails
// fast, before any request is built, when the session can't supply one.
func (c *Client) do(ctx context.Context, method, path string, auth bool, body io.Reader, contentType string, out any) error {
	var bearer string
	if auth {
		tok, err := c.tokens.Token()
		if err != nil {
			return err
		}
		bearer = tok
	}

	u := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, u); err != nil {
			return err
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if res.StatusCode >= 400 {
		return decodeError(res.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode: %w body=%s", method, path, err, truncate(string(data), 240))
	}
	return nil
}

// doJSON marshals in as the request body and decodes the response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, auth bool, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, auth, body, contentType, out)
}

// decodeError surfaces the backend's {"error": ...} (or {"message": ...})
// text verbatim when present.
func decodeError(status int, data []byte) error {
	var env struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if json.Unmarshal(data, &env) == nil {
		if env.Error != "" {
			msg = env.Error
		} else if env.Message != "" {
			msg = env.Message
		}
	}
	if msg == "" {
		msg = "request failed"
	}
	return &APIError{Status: status, Message: msg}
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
