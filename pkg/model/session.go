package model

import (
	"strings"
	"time"
)

// AuthMode selects which credential resolver strategy is active.
// It is fixed at startup for the lifetime of a running client.
type AuthMode string

const (
	// AuthModeFirebase authenticates against Firebase and mirrors the
	// account on the backend.
	AuthModeFirebase AuthMode = "firebase"
	// AuthModeFirebaseOnly authenticates against Firebase alone, with
	// no backend round-trip; role and user id stay empty.
	AuthModeFirebaseOnly AuthMode = "firebase-only"
	// AuthModeFirebaseProfile authenticates against Firebase and reads
	// role and block status from the Firestore profile document.
	AuthModeFirebaseProfile AuthMode = "firebase-profile"
	// AuthModeLocal authenticates with username/password directly
	// against the backend login endpoint.
	AuthModeLocal AuthMode = "local"
)

// ParseAuthMode interprets a configuration string as an AuthMode.
// Unrecognized values default to firebase, matching the deployed clients.
func ParseAuthMode(s string) AuthMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(AuthModeLocal):
		return AuthModeLocal
	case string(AuthModeFirebaseOnly):
		return AuthModeFirebaseOnly
	case string(AuthModeFirebaseProfile):
		return AuthModeFirebaseProfile
	default:
		return AuthModeFirebase
	}
}

// UsesProvider reports whether the mode signs in through the identity
// provider, in which case requests are authorized with provider ID
// tokens rather than a backend JWT.
func (m AuthMode) UsesProvider() bool {
	return m != AuthModeLocal
}

// Role names known to the clients. The backend stores free-form type
// names; comparison is always case-insensitive.
const (
	RoleManager = "MANAGER"
	RoleUser    = "USER"
)

// Session is the result of an authentication attempt and, when
// successful, the identity cached by the session store. The JSON shape
// matches the backend's auth responses verbatim.
type Session struct {
	Success           bool   `json:"success"`
	Message           string `json:"message,omitempty"`
	UserID            int64  `json:"userId,omitempty"`
	Username          string `json:"username,omitempty"`
	Email             string `json:"email,omitempty"`
	TypeName          string `json:"typeName,omitempty"`
	Token             string `json:"token,omitempty"`
	TokenExp          int64  `json:"tokenExp,omitempty"` // epoch seconds
	Blocked           bool   `json:"blocked,omitempty"`
	RemainingAttempts *int   `json:"remainingAttempts,omitempty"`
	FirebaseUID       string `json:"firebaseUid,omitempty"`

	// RefreshToken is the identity provider's refresh token, kept so
	// later invocations can mint fresh ID tokens without re-entering
	// the password. Empty in local mode.
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Role returns the uppercased type name for role comparison.
func (s *Session) Role() string {
	return strings.ToUpper(strings.TrimSpace(s.TypeName))
}

// IsManager reports whether the session has the manager role.
func (s *Session) IsManager() bool {
	return s.Role() == RoleManager
}

// HasRole reports whether the session's role is in the allowed set.
// Comparison is case-insensitive.
func (s *Session) HasRole(allowed ...string) bool {
	role := s.Role()
	for _, a := range allowed {
		if strings.ToUpper(a) == role {
			return true
		}
	}
	return false
}

// IsTokenValid reports whether the session carries a usable bearer
// token at the given instant. A session without a token is never
// valid; a token without an expiry does not expire client-side.
func IsTokenValid(s *Session, now time.Time) bool {
	if s == nil || !s.Success || s.Token == "" {
		return false
	}
	if s.TokenExp == 0 {
		return true
	}
	return now.Unix() < s.TokenExp
}
