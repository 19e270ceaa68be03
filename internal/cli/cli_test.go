package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/me/voirie/internal/auth"
	"github.com/me/voirie/internal/session"
	"github.com/me/voirie/pkg/model"
)

// startTestBackend serves a minimal fake of the signalement backend.
func startTestBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/signalements", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Signalement{
			{
				ID:          1,
				User:        model.MinimalUser{ID: 3, Username: "rak"},
				Status:      model.Status{ID: 1, Name: "NOUVEAU"},
				Latitude:    -18.8792,
				Longitude:   47.5079,
				Description: "Nid de poule avenue de l'Indépendance",
			},
			{
				ID:          2,
				User:        model.MinimalUser{ID: 4, Username: "hery"},
				Status:      model.Status{ID: 2, Name: "EN_COURS"},
				Latitude:    -18.9100,
				Longitude:   47.5255,
				Description: "Affaissement de la chaussée",
			},
		})
	})
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "secret" {
			json.NewEncoder(w).Encode(model.Session{Success: false, Message: "Email ou mot de passe incorrect"})
			return
		}
		json.NewEncoder(w).Encode(model.Session{
			Success:  true,
			UserID:   3,
			Username: "rak",
			Email:    "rak@example.mg",
			TypeName: "User",
			Token:    "backend-jwt",
		})
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func runCommand(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	root := NewRootCmd()
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(append([]string{"--server", serverURL, "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VOIRIE_AUTH_MODE", "local")
	ts := startTestBackend(t)

	out, err := runCommand(t, ts.URL, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Nid de poule") {
		t.Errorf("expected signalement in output, got:\n%s", out)
	}
	if !strings.Contains(out, "EN_COURS") {
		t.Errorf("expected status column in output, got:\n%s", out)
	}
}

func TestLogin_SavesSession(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("VOIRIE_AUTH_MODE", "local")
	ts := startTestBackend(t)

	_, err := runCommand(t, ts.URL, "login", "rak", "--password", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, ".voirie", "session.json"))
	if err != nil {
		t.Fatalf("session file not written: %v", err)
	}
	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		t.Fatalf("unmarshal session: %v", err)
	}
	if !sess.Success || sess.Username != "rak" || sess.Token != "backend-jwt" {
		t.Errorf("unexpected saved session: %+v", sess)
	}
}

func TestLogin_FailureLeavesNoSession(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("VOIRIE_AUTH_MODE", "local")
	ts := startTestBackend(t)

	_, err := runCommand(t, ts.URL, "login", "rak", "--password", "wrong")
	if err == nil {
		t.Fatal("expected login to fail")
	}

	if _, err := os.Stat(filepath.Join(home, ".voirie", "session.json")); !os.IsNotExist(err) {
		t.Error("failed login must not write a session file")
	}
}

func TestSync_MissingAdminKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VOIRIE_AUTH_MODE", "local")
	t.Setenv("VOIRIE_ADMIN_API_KEY", "")
	ts := startTestBackend(t)

	_, err := runCommand(t, ts.URL, "sync")
	if err == nil {
		t.Fatal("expected sync to fail without admin key")
	}
	if !strings.Contains(err.Error(), "VOIRIE_ADMIN_API_KEY") {
		t.Errorf("error should name the missing variable, got: %v", err)
	}
}

func TestLogout(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("VOIRIE_AUTH_MODE", "local")
	ts := startTestBackend(t)

	if _, err := runCommand(t, ts.URL, "login", "rak", "--password", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := runCommand(t, ts.URL, "logout"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(home, ".voirie", "session.json")); !os.IsNotExist(err) {
		t.Error("logout must remove the session file")
	}
}

// Local mode reads the cached backend JWT; the firebase modes resolve
// provider ID tokens from the persisted refresh token so one-shot
// invocations stay authorized after the login that wrote the session.
func TestTokenSourceFollowsAuthMode(t *testing.T) {
	sessions := session.NewMemStore()
	state := auth.NewState(model.AuthModeLocal)

	if _, ok := newTokenSource(model.AuthModeLocal, sessions, state, nil).(*auth.StoreTokenSource); !ok {
		t.Error("local mode should read the session-file JWT")
	}
	for _, mode := range []model.AuthMode{model.AuthModeFirebase, model.AuthModeFirebaseOnly, model.AuthModeFirebaseProfile} {
		if _, ok := newTokenSource(mode, sessions, state, nil).(*auth.ProviderTokenSource); !ok {
			t.Errorf("%s mode should resolve provider ID tokens", mode)
		}
	}
}
