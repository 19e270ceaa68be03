package firebase

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// refreshLeeway refreshes an ID token slightly before its expiry so a
// token attached to an outgoing request cannot expire in flight.
const refreshLeeway = time.Minute

// Handle represents the currently signed-in provider account. It owns
// the ID token and refreshes it silently on demand, the way the
// provider SDK does in the browser clients.
type Handle struct {
	mu      sync.Mutex
	client  *Client
	account Account
}

// NewHandle wraps an account returned by SignInWithPassword or SignUp.
func NewHandle(client *Client, account *Account) *Handle {
	return &Handle{client: client, account: *account}
}

// Account returns a snapshot of the signed-in account.
func (h *Handle) Account() Account {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.account
}

// IDToken returns a currently valid ID token, refreshing through the
// secure-token endpoint when the cached one is at or near expiry.
func (h *Handle) IDToken(ctx context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.account.IDToken != "" &&
		(h.account.Expiry.IsZero() || time.Now().Add(refreshLeeway).Before(h.account.Expiry)) {
		return h.account.IDToken, nil
	}

	if h.account.RefreshToken == "" {
		return "", fmt.Errorf("no refresh token available")
	}

	idToken, expiry, err := h.client.RefreshIDToken(ctx, h.account.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh id token: %w", err)
	}

	h.account.IDToken = idToken
	h.account.Expiry = expiry
	return idToken, nil
}
