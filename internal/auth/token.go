package auth

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/me/voirie/internal/firebase"
	"github.com/me/voirie/internal/session"
	"github.com/me/voirie/pkg/model"
)

// StoreTokenSource serves the request authorizer in local mode: it
// reads the session store and yields the cached JWT only while it is
// still valid. It never mutates the store.
type StoreTokenSource struct {
	Store session.Store
	Now   func() time.Time // defaults to time.Now
}

func (s *StoreTokenSource) Token(ctx context.Context) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	sess := s.Store.Load()
	if !model.IsTokenValid(sess, now()) {
		return "", nil
	}
	return sess.Token, nil
}

// ProviderTokenSource serves the request authorizer in firebase
// modes. A live in-process sign-in wins; otherwise it falls back to
// the session store: a still-valid backend JWT if the deployment
// issues one, else a provider handle rebuilt from the persisted
// refresh token, so one-shot invocations after a past login still
// carry a fresh ID token.
type ProviderTokenSource struct {
	State *State
	Store session.Store
	FB    *firebase.Client

	mu       sync.Mutex
	handle   *firebase.Handle
	handleRT string // refresh token the cached handle was built from
}

func (p *ProviderTokenSource) Token(ctx context.Context) (string, error) {
	if p.State != nil {
		if handle := p.State.Handle(); handle != nil {
			return handle.IDToken(ctx)
		}
	}
	if p.Store == nil {
		return "", nil
	}
	sess := p.Store.Load()
	if model.IsTokenValid(sess, time.Now()) {
		return sess.Token, nil
	}
	if sess == nil || !sess.Success || sess.RefreshToken == "" || p.FB == nil {
		return "", nil
	}

	p.mu.Lock()
	if p.handle == nil || p.handleRT != sess.RefreshToken {
		p.handle = firebase.NewHandle(p.FB, &firebase.Account{RefreshToken: sess.RefreshToken})
		p.handleRT = sess.RefreshToken
	}
	handle := p.handle
	p.mu.Unlock()

	return handle.IDToken(ctx)
}

// tokenExpiry extracts the exp claim from a backend JWT without
// verifying the signature; the client only needs the expiry instant,
// verification is the backend's job.
func tokenExpiry(token string) int64 {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	return exp.Unix()
}
