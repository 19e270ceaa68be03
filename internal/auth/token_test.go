package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/me/voirie/internal/firebase"
	"github.com/me/voirie/internal/session"
	"github.com/me/voirie/pkg/model"
)

func makeJWT(t *testing.T, exp int64) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "dan", "exp": exp})
	signed, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return signed
}

func TestTokenExpiry(t *testing.T) {
	if got := tokenExpiry(makeJWT(t, 1999999999)); got != 1999999999 {
		t.Errorf("tokenExpiry = %d, want 1999999999", got)
	}
	if got := tokenExpiry("not-a-jwt"); got != 0 {
		t.Errorf("malformed token should yield 0, got %d", got)
	}

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"})
	signed, err := noExp.SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if got := tokenExpiry(signed); got != 0 {
		t.Errorf("token without exp should yield 0, got %d", got)
	}
}

func TestStoreTokenSource(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		sess *model.Session
		want string
	}{
		{"no session", nil, ""},
		{"expired token", &model.Session{Success: true, Token: "old", TokenExp: now.Add(-time.Hour).Unix()}, ""},
		{"valid token", &model.Session{Success: true, Token: "live", TokenExp: now.Add(time.Hour).Unix()}, "live"},
		{"no expiry set", &model.Session{Success: true, Token: "eternal"}, "eternal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewMemStore()
			if tt.sess != nil {
				if err := store.Save(tt.sess); err != nil {
					t.Fatal(err)
				}
			}

			src := &StoreTokenSource{Store: store, Now: func() time.Time { return now }}
			got, err := src.Token(context.Background())
			if err != nil {
				t.Fatalf("Token failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Token = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProviderTokenSource_NoHandle(t *testing.T) {
	src := &ProviderTokenSource{State: NewState(model.AuthModeFirebase), Store: session.NewMemStore()}
	got, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty token with nobody signed in, got %q", got)
	}
}

func TestProviderTokenSource_LiveHandleWins(t *testing.T) {
	fb := firebase.NewClient("k", "p", testLogger())
	state := NewState(model.AuthModeFirebase)
	state.Set(&model.Session{Success: true, Username: "alice"},
		firebase.NewHandle(fb, &firebase.Account{IDToken: "live-id-token", Expiry: time.Now().Add(time.Hour)}))

	src := &ProviderTokenSource{State: state, Store: session.NewMemStore(), FB: fb}
	got, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if got != "live-id-token" {
		t.Errorf("Token = %q, want the signed-in handle's ID token", got)
	}
}

func TestProviderTokenSource_PrefersStoredBackendJWT(t *testing.T) {
	store := session.NewMemStore()
	sess := &model.Session{
		Success:      true,
		Token:        "backend-jwt",
		TokenExp:     time.Now().Add(time.Hour).Unix(),
		RefreshToken: "rt",
	}
	if err := store.Save(sess); err != nil {
		t.Fatal(err)
	}

	// FB nil: a provider round-trip would fail, proving the JWT path
	// never reaches the provider.
	src := &ProviderTokenSource{State: NewState(model.AuthModeFirebase), Store: store}
	got, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if got != "backend-jwt" {
		t.Errorf("Token = %q, want the cached backend JWT", got)
	}
}

// After a past login persisted only the provider refresh token (no
// backend JWT), a new invocation must still authorize by minting a
// fresh ID token through the secure-token endpoint.
func TestProviderTokenSource_MintsFromStoredRefreshToken(t *testing.T) {
	refreshed := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshed++
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.Form.Get("refresh_token"); got != "rt-stored" {
			t.Errorf("refresh_token = %q, want rt-stored", got)
		}
		w.Write([]byte(`{"id_token":"fresh-id-token","expires_in":"3600"}`))
	}))
	defer srv.Close()

	fb := firebase.NewClient("k", "p", testLogger())
	fb.TokenBaseURL = srv.URL

	store := session.NewMemStore()
	if err := store.Save(&model.Session{Success: true, Username: "alice", RefreshToken: "rt-stored"}); err != nil {
		t.Fatal(err)
	}

	src := &ProviderTokenSource{State: NewState(model.AuthModeFirebase), Store: store, FB: fb}

	got, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if got != "fresh-id-token" {
		t.Errorf("Token = %q, want fresh-id-token", got)
	}

	// The handle caches the minted token until near expiry.
	if _, err := src.Token(context.Background()); err != nil {
		t.Fatalf("second Token failed: %v", err)
	}
	if refreshed != 1 {
		t.Errorf("expected exactly one refresh call, got %d", refreshed)
	}
}
