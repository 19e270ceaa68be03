// Package api is the JSON client for the road-maintenance backend.
// Every outgoing request passes through the authorizing transport,
// which attaches the bearer credential for the active auth mode.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/me/voirie/pkg/model"
)

// TokenSource yields the bearer credential for outgoing API requests.
// An empty token with a nil error means "proceed unauthenticated".
// A non-nil error aborts the request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client calls the backend REST API.
type Client struct {
	baseURL    string // origin plus path prefix, no trailing slash
	adminKey   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an API client rooted at baseURL (origin + prefix).
// When tokens is non-nil, requests without an explicit Authorization
// header get a bearer token attached transparently.
func NewClient(baseURL, adminKey string, tokens TokenSource, logger *slog.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL:  baseURL,
		adminKey: adminKey,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &authTransport{base: transport, tokens: tokens},
		},
		logger: logger.With("component", "api"),
	}
}

// authTransport attaches a bearer credential to requests that do not
// already carry one. It never mutates stored state and never triggers
// a sign-in.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// An explicit Authorization header supplied by the caller wins.
	if req.Header.Get("Authorization") != "" || t.tokens == nil {
		return t.base.RoundTrip(req)
	}

	token, err := t.tokens.Token(req.Context())
	if err != nil {
		// Token retrieval failures abort the request rather than
		// silently downgrading it to unauthenticated.
		return nil, fmt.Errorf("resolve bearer token: %w", err)
	}

	if token == "" {
		return t.base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(clone)
}

// do executes a JSON request. Non-2xx responses become *model.APIError
// with the normalized message; 2xx bodies decode into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, headers map[string]string) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("api response", "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return model.NewAPIError(resp.StatusCode, respBody)
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, nil)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out, nil)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// adminHeaders returns the privileged-endpoint header set, or an error
// when no admin key was configured at build time.
func (c *Client) adminHeaders() (map[string]string, error) {
	if c.adminKey == "" {
		return nil, ErrMissingAdminKey
	}
	return map[string]string{"X-ADMIN-KEY": c.adminKey}, nil
}

// ErrMissingAdminKey is returned before any network call when a
// privileged operation is attempted without a configured admin key.
var ErrMissingAdminKey = errors.New("VOIRIE_ADMIN_API_KEY manquant (actions manager non configurées)")

// ErrorMessage normalizes any error from this package into the single
// user-facing message string the UI layers render.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrMissingAdminKey) {
		return ErrMissingAdminKey.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Erreur inconnue"
}
