package model

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestParseAuthMode(t *testing.T) {
	tests := []struct {
		input string
		want  AuthMode
	}{
		{"local", AuthModeLocal},
		{"LOCAL", AuthModeLocal},
		{" local ", AuthModeLocal},
		{"firebase", AuthModeFirebase},
		{"firebase-only", AuthModeFirebaseOnly},
		{"Firebase-Profile", AuthModeFirebaseProfile},
		{"", AuthModeFirebase},
		{"anything-else", AuthModeFirebase},
	}
	for _, tt := range tests {
		if got := ParseAuthMode(tt.input); got != tt.want {
			t.Errorf("ParseAuthMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAuthMode_UsesProvider(t *testing.T) {
	if AuthModeLocal.UsesProvider() {
		t.Error("local mode should not use the provider")
	}
	for _, m := range []AuthMode{AuthModeFirebase, AuthModeFirebaseOnly, AuthModeFirebaseProfile} {
		if !m.UsesProvider() {
			t.Errorf("%s should use the provider", m)
		}
	}
}

func TestSession_RoleComparison(t *testing.T) {
	sess := &Session{Success: true, TypeName: "manager"}

	if sess.Role() != "MANAGER" {
		t.Errorf("expected uppercased role, got %q", sess.Role())
	}
	if !sess.IsManager() {
		t.Error("lowercased manager type should still count as manager")
	}
	if !sess.HasRole("Manager") {
		t.Error("HasRole should compare case-insensitively")
	}
	if sess.HasRole("USER", "ADMIN") {
		t.Error("manager should not match a set without MANAGER")
	}
}

func TestIsTokenValid(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		sess *Session
		want bool
	}{
		{"nil session", nil, false},
		{"failed session", &Session{Success: false, Token: "t"}, false},
		{"no token", &Session{Success: true}, false},
		{"no expiry", &Session{Success: true, Token: "t"}, true},
		{"future expiry", &Session{Success: true, Token: "t", TokenExp: now.Add(time.Hour).Unix()}, true},
		{"past expiry", &Session{Success: true, Token: "t", TokenExp: now.Add(-time.Hour).Unix()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTokenValid(tt.sess, now); got != tt.want {
				t.Errorf("IsTokenValid = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSession_JSONRoundTrip(t *testing.T) {
	attempts := 2
	orig := &Session{
		Success:           true,
		UserID:            42,
		Username:          "alice",
		Email:             "alice@example.com",
		TypeName:          "MANAGER",
		Token:             "jwt-token",
		TokenExp:          1757000000,
		Blocked:           false,
		RemainingAttempts: &attempts,
		FirebaseUID:       "uid123",
		RefreshToken:      "provider-rt",
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Session
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(orig, &got) {
		t.Errorf("round trip mismatch:\n  orig: %+v\n  got:  %+v", orig, &got)
	}
}
