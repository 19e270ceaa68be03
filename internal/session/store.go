// Package session persists the authenticated Session under a single
// well-known key. The store is the sole source of truth the clients
// read synchronously; only successful sessions are ever written.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/me/voirie/pkg/model"
)

const sessionFileName = "session.json"

// Store is the durable cache of the current Session.
type Store interface {
	// Save persists the session, overwriting any prior value.
	// Failed sessions (Success == false) are silently ignored.
	Save(sess *model.Session) error
	// Load returns the cached session, or nil when no session is
	// stored or the stored value cannot be parsed.
	Load() *model.Session
	// Clear removes the cached session unconditionally.
	Clear() error
}

// FileStore keeps the session as a JSON file under the user's config
// directory (~/.voirie/session.json by default).
type FileStore struct {
	path string
}

// NewFileStore creates a store at an explicit path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFileStore resolves the per-user session file location.
func DefaultFileStore() (*FileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("find home directory: %w", err)
	}
	return NewFileStore(filepath.Join(home, ".voirie", sessionFileName)), nil
}

func (s *FileStore) Save(sess *model.Session) error {
	if sess == nil || !sess.Success {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *FileStore) Load() *model.Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Malformed content reads as "no session".
		return nil
	}
	return &sess
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests and short-lived processes.
type MemStore struct {
	mu   sync.Mutex
	sess *model.Session
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Save(sess *model.Session) error {
	if sess == nil || !sess.Success {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sess
	s.sess = &copied
	return nil
}

func (s *MemStore) Load() *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return nil
	}
	copied := *s.sess
	return &copied
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}
