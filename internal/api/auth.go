package api

import (
	"context"

	"github.com/me/voirie/pkg/model"
)

// LoginWithIDToken exchanges a provider ID token for a backend
// session. The backend is the source of truth for role, numeric user
// id and block status.
func (c *Client) LoginWithIDToken(ctx context.Context, idToken, usernameOrEmail string) (*model.Session, error) {
	body := map[string]string{"idToken": idToken}
	if usernameOrEmail != "" {
		body["usernameOrEmail"] = usernameOrEmail
	}
	var sess model.Session
	if err := c.post(ctx, "/auth/login", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// LoginLocal authenticates username/password against the backend's own
// login endpoint (local mode, no provider involved).
func (c *Client) LoginLocal(ctx context.Context, usernameOrEmail, password string) (*model.Session, error) {
	var sess model.Session
	err := c.post(ctx, "/auth/login", map[string]string{
		"usernameOrEmail": usernameOrEmail,
		"password":        password,
	}, &sess)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// NotifyLoginFailure tells the backend a provider-side login attempt
// failed so it can count attempts and block the account if needed.
func (c *Client) NotifyLoginFailure(ctx context.Context, usernameOrEmail string) (*model.Session, error) {
	var sess model.Session
	err := c.post(ctx, "/auth/login", map[string]string{
		"usernameOrEmail": usernameOrEmail,
	}, &sess)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Register creates a backend account (local mode only).
func (c *Client) Register(ctx context.Context, username, email, password string) (*model.Session, error) {
	var sess model.Session
	err := c.post(ctx, "/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &sess)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Me fetches the current identity using the attached bearer token.
func (c *Client) Me(ctx context.Context) (*model.Session, error) {
	var sess model.Session
	if err := c.get(ctx, "/auth/me", &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}
