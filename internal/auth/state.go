// Package auth implements the credential resolver: one authentication
// strategy per deployment mode, all returning a Session-shaped result
// even on failure. No strategy lets an error escape its boundary.
package auth

import (
	"sync"

	"github.com/me/voirie/internal/firebase"
	"github.com/me/voirie/pkg/model"
)

// Snapshot is the observable authentication state: the cached session
// plus the mode it was produced under.
type Snapshot struct {
	Session *model.Session
	Mode    model.AuthMode
}

// State holds the in-process authentication state and notifies
// subscribers on every change. It replaces the storage-polling the
// browser clients used to detect login/logout.
type State struct {
	mu      sync.RWMutex
	mode    model.AuthMode
	session *model.Session
	handle  *firebase.Handle
	subs    map[int]chan Snapshot
	nextSub int
}

// NewState creates an empty State for the given mode.
func NewState(mode model.AuthMode) *State {
	return &State{mode: mode, subs: make(map[int]chan Snapshot)}
}

// Snapshot returns the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Session: s.session, Mode: s.mode}
}

// Handle returns the signed-in provider handle, or nil outside
// firebase mode or when nobody is signed in.
func (s *State) Handle() *firebase.Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handle
}

// Set records a successful authentication and notifies subscribers.
func (s *State) Set(sess *model.Session, handle *firebase.Handle) {
	s.mu.Lock()
	s.session = sess
	s.handle = handle
	snap := Snapshot{Session: s.session, Mode: s.mode}
	s.mu.Unlock()
	s.notify(snap)
}

// SignOut drops the session and provider handle.
func (s *State) SignOut() {
	s.mu.Lock()
	s.session = nil
	s.handle = nil
	snap := Snapshot{Session: nil, Mode: s.mode}
	s.mu.Unlock()
	s.notify(snap)
}

// Subscribe registers for state changes. The returned cancel func must
// be called to release the subscription. Slow consumers only ever see
// the most recent snapshot.
func (s *State) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (s *State) notify(snap Snapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		// Replace a pending snapshot rather than blocking.
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
