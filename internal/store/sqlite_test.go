package store

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/me/voirie/pkg/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	sess := &model.ConsoleSession{
		ID:        "sess-1",
		UserID:    42,
		Username:  "marie",
		Role:      "MANAGER",
		Token:        "tok-abc",
		TokenExp:     now.Add(time.Hour),
		RefreshToken: "rt-xyz",
		CreatedAt:    now,
		ExpiresAt:    now.Add(24 * time.Hour),
	}
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil {
		t.Fatal("GetSession returned nil for existing session")
	}
	if got.UserID != 42 || got.Username != "marie" || got.Role != "MANAGER" || got.Token != "tok-abc" {
		t.Errorf("unexpected session: %+v", got)
	}
	if got.RefreshToken != "rt-xyz" {
		t.Errorf("RefreshToken = %q, want rt-xyz", got.RefreshToken)
	}
	if !got.TokenExp.Equal(sess.TokenExp) {
		t.Errorf("TokenExp = %v, want %v", got.TokenExp, sess.TokenExp)
	}
	if !got.ExpiresAt.Equal(sess.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, sess.ExpiresAt)
	}
}

func TestGetSessionMissing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetSession(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing session, got %+v", got)
	}
}

func TestSessionZeroTokenExp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	sess := &model.ConsoleSession{
		ID:        "sess-local",
		UserID:    7,
		Username:  "paul",
		Role:      "MANAGER",
		Token:     "tok",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSession(ctx, "sess-local")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if !got.TokenExp.IsZero() {
		t.Errorf("TokenExp = %v, want zero", got.TokenExp)
	}
	if got.IsTokenExpired() {
		t.Error("zero TokenExp should never be treated as expired")
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	sess := &model.ConsoleSession{
		ID: "gone", UserID: 1, Username: "x", Role: "USER",
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := s.DeleteSession(ctx, "gone"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	got, err := s.GetSession(ctx, "gone")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Error("session should be gone after delete")
	}

	// deleting a missing session is not an error
	if err := s.DeleteSession(ctx, "gone"); err != nil {
		t.Errorf("DeleteSession on missing id: %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	for _, sess := range []*model.ConsoleSession{
		{ID: "old-1", UserID: 1, Username: "a", Role: "USER", CreatedAt: now.Add(-48 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
		{ID: "old-2", UserID: 2, Username: "b", Role: "USER", CreatedAt: now.Add(-48 * time.Hour), ExpiresAt: now.Add(-time.Minute)},
		{ID: "live", UserID: 3, Username: "c", Role: "MANAGER", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
	} {
		if err := s.CreateSession(ctx, sess); err != nil {
			t.Fatalf("CreateSession %s: %v", sess.ID, err)
		}
	}

	n, err := s.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d sessions, want 2", n)
	}

	got, err := s.GetSession(ctx, "live")
	if err != nil || got == nil {
		t.Errorf("live session should survive, got %+v err %v", got, err)
	}
}
