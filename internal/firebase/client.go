// Package firebase talks to the Firebase project over its REST
// surface: the Identity Toolkit for email/password accounts, the
// secure-token endpoint for silent ID-token refresh, and Firestore
// for user profile documents.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultAuthBaseURL      = "https://identitytoolkit.googleapis.com/v1"
	defaultTokenBaseURL     = "https://securetoken.googleapis.com/v1"
	defaultFirestoreBaseURL = "https://firestore.googleapis.com/v1"
)

// Client is a Firebase project client. Base URLs are overridable so
// tests can point at local fakes.
type Client struct {
	APIKey    string
	ProjectID string

	AuthBaseURL      string
	TokenBaseURL     string
	FirestoreBaseURL string

	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Firebase client for the given project.
func NewClient(apiKey, projectID string, logger *slog.Logger) *Client {
	return &Client{
		APIKey:           apiKey,
		ProjectID:        projectID,
		AuthBaseURL:      defaultAuthBaseURL,
		TokenBaseURL:     defaultTokenBaseURL,
		FirestoreBaseURL: defaultFirestoreBaseURL,
		httpClient:       &http.Client{Timeout: 30 * time.Second},
		logger:           logger.With("component", "firebase"),
	}
}

// ProviderError is a structured error from a Firebase endpoint.
// Code carries the provider's machine code (e.g. EMAIL_NOT_FOUND,
// PERMISSION_DENIED); Message the provider's human-readable text.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message != "" && e.Message != e.Code {
		return fmt.Sprintf("firebase: %s: %s", e.Code, e.Message)
	}
	return "firebase: " + e.Code
}

// Account is the identity-provider view of a signed-in account.
type Account struct {
	LocalID      string
	Email        string
	DisplayName  string
	IDToken      string
	RefreshToken string
	Expiry       time.Time
}

type tokenResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"` // seconds, as a string
}

func (r *tokenResponse) account(now time.Time) *Account {
	acc := &Account{
		LocalID:      r.LocalID,
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
	}
	if secs, err := strconv.ParseInt(r.ExpiresIn, 10, 64); err == nil && secs > 0 {
		acc.Expiry = now.Add(time.Duration(secs) * time.Second)
	}
	return acc
}

// SignInWithPassword authenticates an email/password pair.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Account, error) {
	var resp tokenResponse
	err := c.postAuth(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.account(time.Now()), nil
}

// SignUp creates a new email/password account.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Account, error) {
	var resp tokenResponse
	err := c.postAuth(ctx, "accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.account(time.Now()), nil
}

// UpdateProfile sets the display name on the account behind idToken.
func (c *Client) UpdateProfile(ctx context.Context, idToken, displayName string) error {
	return c.postAuth(ctx, "accounts:update", map[string]any{
		"idToken":           idToken,
		"displayName":       displayName,
		"returnSecureToken": false,
	}, nil)
}

// DeleteAccount removes the account behind idToken. Used as the
// compensating action when the backend mirror step fails after the
// provider account was already created.
func (c *Client) DeleteAccount(ctx context.Context, idToken string) error {
	return c.postAuth(ctx, "accounts:delete", map[string]any{
		"idToken": idToken,
	}, nil)
}

// RefreshIDToken exchanges a refresh token for a fresh ID token.
func (c *Client) RefreshIDToken(ctx context.Context, refreshToken string) (idToken string, expiry time.Time, err error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}

	endpoint := fmt.Sprintf("%s/token?key=%s", c.TokenBaseURL, url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", time.Time{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.send(req)
	if err != nil {
		return "", time.Time{}, err
	}

	var resp struct {
		IDToken   string `json:"id_token"`
		ExpiresIn string `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", time.Time{}, fmt.Errorf("parse refresh response: %w", err)
	}

	expiry = time.Time{}
	if secs, err := strconv.ParseInt(resp.ExpiresIn, 10, 64); err == nil && secs > 0 {
		expiry = time.Now().Add(time.Duration(secs) * time.Second)
	}
	return resp.IDToken, expiry, nil
}

// postAuth calls an Identity Toolkit method and decodes the response
// into out when non-nil.
func (c *Client) postAuth(ctx context.Context, method string, payload any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", method, err)
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", c.AuthBaseURL, method, url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.send(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse %s response: %w", method, err)
	}
	return nil
}

// send executes the request and maps non-2xx responses to
// ProviderError.
func (c *Client) send(req *http.Request) ([]byte, error) {
	c.logger.Debug("firebase request", "method", req.Method, "url", req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, parseProviderError(resp.StatusCode, body)
	}
	return body, nil
}

// parseProviderError extracts the provider's error envelope:
// {"error": {"code": 400, "message": "EMAIL_NOT_FOUND", "status": "..."}}.
// The Firestore variant carries the machine code in "status" instead.
func parseProviderError(httpStatus int, body []byte) *ProviderError {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		// Identity Toolkit puts the machine code in "message"
		// ("EMAIL_NOT_FOUND"); Firestore puts it in "status"
		// ("PERMISSION_DENIED") with prose in "message".
		code := envelope.Error.Message
		if envelope.Error.Status != "" && envelope.Error.Status != "INVALID_ARGUMENT" {
			code = envelope.Error.Status
		}
		if code != "" {
			return &ProviderError{Code: code, Message: envelope.Error.Message}
		}
	}
	return &ProviderError{
		Code:    fmt.Sprintf("HTTP_%d", httpStatus),
		Message: fmt.Sprintf("HTTP %d", httpStatus),
	}
}
