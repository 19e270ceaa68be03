package session

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/me/voirie/pkg/model"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	st := tempStore(t)

	attempts := 3
	sess := &model.Session{
		Success:           true,
		UserID:            7,
		Username:          "bob",
		Email:             "bob@example.com",
		TypeName:          "MANAGER",
		Token:             "jwt",
		TokenExp:          1999999999,
		RemainingAttempts: &attempts,
	}

	if err := st.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := st.Load()
	if got == nil {
		t.Fatal("expected a session after Save")
	}
	if !reflect.DeepEqual(sess, got) {
		t.Errorf("round trip mismatch:\n  saved:  %+v\n  loaded: %+v", sess, got)
	}
}

func TestFileStore_FailedSessionNotPersisted(t *testing.T) {
	st := tempStore(t)

	if err := st.Save(&model.Session{Success: false, Message: "Compte bloqué"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got := st.Load(); got != nil {
		t.Errorf("failed session must not be persisted, got %+v", got)
	}

	// A failed save must also leave a previous session untouched.
	prev := &model.Session{Success: true, UserID: 1, Username: "alice", Token: "t"}
	if err := st.Save(prev); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := st.Save(&model.Session{Success: false}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got := st.Load()
	if got == nil || got.Username != "alice" {
		t.Errorf("prior session should survive a failed login, got %+v", got)
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	st := tempStore(t)
	if got := st.Load(); got != nil {
		t.Errorf("expected nil for missing file, got %+v", got)
	}
}

func TestFileStore_LoadMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	st := NewFileStore(path)
	if got := st.Load(); got != nil {
		t.Errorf("malformed content must read as no session, got %+v", got)
	}
}

func TestFileStore_Clear(t *testing.T) {
	st := tempStore(t)

	if err := st.Clear(); err != nil {
		t.Fatalf("Clear on empty store should succeed: %v", err)
	}

	if err := st.Save(&model.Session{Success: true, UserID: 1, Token: "t"}); err != nil {
		t.Fatal(err)
	}
	if err := st.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := st.Load(); got != nil {
		t.Errorf("expected nil after Clear, got %+v", got)
	}
}

func TestMemStore(t *testing.T) {
	st := NewMemStore()

	if st.Load() != nil {
		t.Error("new MemStore should be empty")
	}

	sess := &model.Session{Success: true, UserID: 2, Username: "carol", Token: "t"}
	if err := st.Save(sess); err != nil {
		t.Fatal(err)
	}

	got := st.Load()
	if got == nil || got.Username != "carol" {
		t.Fatalf("unexpected load result: %+v", got)
	}

	// Mutating the loaded copy must not affect the store.
	got.Username = "mallory"
	if st.Load().Username != "carol" {
		t.Error("Load should return a copy")
	}

	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}
	if st.Load() != nil {
		t.Error("expected nil after Clear")
	}
}
