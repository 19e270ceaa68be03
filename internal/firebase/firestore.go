package firebase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
)

// Profile is a user profile document from the Firestore "users"
// collection, keyed by the sanitized email address.
type Profile struct {
	Email    string
	Username string
	Role     string
	Blocked  bool
	LocalID  int64
}

var emailIDPattern = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeEmailID converts an email address into the document ID used
// by the users collection (every disallowed rune becomes "_").
func SanitizeEmailID(email string) string {
	return emailIDPattern.ReplaceAllString(email, "_")
}

// firestoreValue is one field of a Firestore REST document.
type firestoreValue struct {
	StringValue  *string `json:"stringValue,omitempty"`
	BooleanValue *bool   `json:"booleanValue,omitempty"`
	IntegerValue *string `json:"integerValue,omitempty"` // int64 as string
}

func (v firestoreValue) str(fallback string) string {
	if v.StringValue != nil {
		return *v.StringValue
	}
	return fallback
}

func (v firestoreValue) boolean() bool {
	return v.BooleanValue != nil && *v.BooleanValue
}

func (v firestoreValue) integer() int64 {
	if v.IntegerValue == nil {
		return 0
	}
	n, _ := strconv.ParseInt(*v.IntegerValue, 10, 64)
	return n
}

// GetUserProfile fetches the profile document for an email address.
// The ID token authorizes the read under the project's security rules.
// A missing document surfaces as a NOT_FOUND ProviderError.
func (c *Client) GetUserProfile(ctx context.Context, idToken, email string) (*Profile, error) {
	endpoint := fmt.Sprintf("%s/projects/%s/databases/(default)/documents/users/%s",
		c.FirestoreBaseURL, c.ProjectID, SanitizeEmailID(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if idToken != "" {
		req.Header.Set("Authorization", "Bearer "+idToken)
	}

	body, err := c.send(req)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Fields map[string]firestoreValue `json:"fields"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse profile document: %w", err)
	}

	return &Profile{
		Email:    doc.Fields["email"].str(email),
		Username: doc.Fields["username"].str("Utilisateur"),
		Role:     doc.Fields["role"].str("USER"),
		Blocked:  doc.Fields["blocked"].boolean(),
		LocalID:  doc.Fields["localId"].integer(),
	}, nil
}
