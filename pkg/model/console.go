package model

import (
	"strings"
	"time"
)

// ConsoleSession is a server-side cookie session of the manager web
// console. It wraps the backend Session data the console needs between
// requests, including the bearer token for API calls made on the
// manager's behalf.
type ConsoleSession struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Token     string    `json:"-"` // bearer credential, never exposed via JSON
	TokenExp  time.Time `json:"-"`
	// RefreshToken is the provider refresh token for deployments where
	// the backend issues no JWT of its own; requests made for this
	// session mint provider ID tokens from it.
	RefreshToken string `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the console session itself has expired.
func (s *ConsoleSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsTokenExpired reports whether the cached bearer token has expired.
// A zero expiry means the token does not expire client-side.
func (s *ConsoleSession) IsTokenExpired() bool {
	if s.TokenExp.IsZero() {
		return false
	}
	return time.Now().After(s.TokenExp)
}

// IsManager reports whether the session has the manager role.
func (s *ConsoleSession) IsManager() bool {
	return strings.ToUpper(s.Role) == RoleManager
}

// HasRole reports whether the session's role is in the allowed set,
// case-insensitively.
func (s *ConsoleSession) HasRole(allowed ...string) bool {
	role := strings.ToUpper(strings.TrimSpace(s.Role))
	for _, a := range allowed {
		if strings.ToUpper(a) == role {
			return true
		}
	}
	return false
}
