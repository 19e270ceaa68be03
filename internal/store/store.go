package store

import (
	"context"

	"github.com/me/voirie/pkg/model"
)

// Store defines the persistence layer for console sessions.
type Store interface {
	CreateSession(ctx context.Context, sess *model.ConsoleSession) error
	GetSession(ctx context.Context, id string) (*model.ConsoleSession, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
