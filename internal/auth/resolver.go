package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/me/voirie/internal/api"
	"github.com/me/voirie/internal/firebase"
	"github.com/me/voirie/internal/session"
	"github.com/me/voirie/pkg/model"
)

// Authenticator produces a Session from user-supplied credentials.
// Every implementation returns a Session-shaped result even on
// failure; lower-level errors never cross this boundary.
type Authenticator interface {
	Login(ctx context.Context, usernameOrEmail, password string) *model.Session
	Register(ctx context.Context, username, email, password string) *model.Session
}

// New selects the strategy for the configured mode, once, at startup.
func New(mode model.AuthMode, backend *api.Client, fb *firebase.Client, store session.Store, state *State, logger *slog.Logger) Authenticator {
	switch mode {
	case model.AuthModeLocal:
		return &Local{Backend: backend, Store: store, State: state, Logger: logger.With("auth", "local")}
	case model.AuthModeFirebaseOnly:
		return &FirebaseOnly{FB: fb, Store: store, State: state, Logger: logger.With("auth", "firebase-only")}
	case model.AuthModeFirebaseProfile:
		return &FirebaseProfile{FB: fb, Store: store, State: state, Logger: logger.With("auth", "firebase-profile")}
	default:
		return &FirebaseMirror{Backend: backend, FB: fb, Store: store, State: state, Logger: logger.With("auth", "firebase")}
	}
}

// Logout clears the cached session and drops the provider handle.
// It always succeeds locally, regardless of network reachability.
func Logout(store session.Store, state *State) {
	_ = store.Clear()
	state.SignOut()
}

// FirebaseOnly authenticates against the identity provider alone and
// builds the Session from the provider record: no role, no backend
// round-trip. The simplest mobile variant.
type FirebaseOnly struct {
	FB     *firebase.Client
	Store  session.Store
	State  *State
	Logger *slog.Logger
}

func (a *FirebaseOnly) Login(ctx context.Context, email, password string) *model.Session {
	acc, err := a.FB.SignInWithPassword(ctx, email, password)
	if err != nil {
		a.Logger.Warn("provider login failed", "email", email, "error", err)
		return failure(err)
	}

	sess := sessionFromAccount(acc)
	_ = a.Store.Save(sess)
	a.State.Set(sess, firebase.NewHandle(a.FB, acc))
	return sess
}

func (a *FirebaseOnly) Register(ctx context.Context, username, email, password string) *model.Session {
	acc, err := a.FB.SignUp(ctx, email, password)
	if err != nil {
		return failure(err)
	}
	if err := a.FB.UpdateProfile(ctx, acc.IDToken, username); err != nil {
		a.Logger.Warn("display name update failed", "email", email, "error", err)
	} else {
		acc.DisplayName = username
	}

	sess := sessionFromAccount(acc)
	_ = a.Store.Save(sess)
	a.State.Set(sess, firebase.NewHandle(a.FB, acc))
	return sess
}

// FirebaseMirror authenticates against the provider, then exchanges
// the ID token at the backend, which owns role, numeric user id and
// block status. A backend rejection signs the provider session out so
// no authenticated-but-unregistered state survives.
type FirebaseMirror struct {
	Backend *api.Client
	FB      *firebase.Client
	Store   session.Store
	State   *State
	Logger  *slog.Logger
}

func (a *FirebaseMirror) Login(ctx context.Context, usernameOrEmail, password string) *model.Session {
	acc, err := a.FB.SignInWithPassword(ctx, usernameOrEmail, password)
	if err != nil {
		a.Logger.Warn("provider login failed", "user", usernameOrEmail, "error", err)
		// Tell the backend so it can count the attempt and block the
		// account if needed; the provider failure stays the result.
		if resp, apiErr := a.Backend.NotifyLoginFailure(ctx, usernameOrEmail); apiErr == nil {
			out := *resp
			out.Success = false
			out.Message = Message(err)
			return &out
		}
		return failure(err)
	}

	resp, err := a.Backend.LoginWithIDToken(ctx, acc.IDToken, usernameOrEmail)
	if err != nil {
		a.State.SignOut()
		return failure(err)
	}
	if !resp.Success {
		// Backend is the source of truth: sign the provider session
		// out rather than keeping an orphaned authenticated state.
		a.State.SignOut()
		return resp
	}

	// Some deployments never issue a backend JWT; the provider refresh
	// token is then the only durable credential, so it travels with
	// the session.
	resp.RefreshToken = acc.RefreshToken
	_ = a.Store.Save(resp)
	a.State.Set(resp, firebase.NewHandle(a.FB, acc))
	return resp
}

func (a *FirebaseMirror) Register(ctx context.Context, username, email, password string) *model.Session {
	acc, err := a.FB.SignUp(ctx, email, password)
	if err != nil {
		return failure(err)
	}
	if err := a.FB.UpdateProfile(ctx, acc.IDToken, username); err != nil {
		a.Logger.Warn("display name update failed", "email", email, "error", err)
	}

	resp, err := a.Backend.LoginWithIDToken(ctx, acc.IDToken, "")
	if err != nil || !resp.Success {
		// The provider account was already created; delete it again so
		// a failed mirror step does not leave an orphan behind.
		if delErr := a.FB.DeleteAccount(ctx, acc.IDToken); delErr != nil {
			a.Logger.Error("compensating account delete failed", "email", email, "error", delErr)
		}
		a.State.SignOut()
		if err != nil {
			return failure(err)
		}
		return resp
	}

	resp.RefreshToken = acc.RefreshToken
	_ = a.Store.Save(resp)
	a.State.Set(resp, firebase.NewHandle(a.FB, acc))
	return resp
}

// FirebaseProfile authenticates against the provider, then reads the
// user's Firestore profile document; the profile carries role, block
// status and the relational user id.
type FirebaseProfile struct {
	FB     *firebase.Client
	Store  session.Store
	State  *State
	Logger *slog.Logger
}

func (a *FirebaseProfile) Login(ctx context.Context, email, password string) *model.Session {
	acc, err := a.FB.SignInWithPassword(ctx, email, password)
	if err != nil {
		return failure(err)
	}

	profile, err := a.FB.GetUserProfile(ctx, acc.IDToken, acc.Email)
	if err != nil {
		a.Logger.Warn("profile fetch failed", "email", acc.Email, "error", err)
		a.State.SignOut()
		return failure(err)
	}
	if profile.Blocked {
		a.State.SignOut()
		return &model.Session{Success: false, Message: msgBlocked, Blocked: true}
	}

	sess := &model.Session{
		Success:      true,
		UserID:       profile.LocalID,
		Username:     profile.Username,
		Email:        profile.Email,
		TypeName:     profile.Role,
		FirebaseUID:  acc.LocalID,
		RefreshToken: acc.RefreshToken,
	}
	_ = a.Store.Save(sess)
	a.State.Set(sess, firebase.NewHandle(a.FB, acc))
	return sess
}

func (a *FirebaseProfile) Register(ctx context.Context, username, email, password string) *model.Session {
	acc, err := a.FB.SignUp(ctx, email, password)
	if err != nil {
		return failure(err)
	}
	if err := a.FB.UpdateProfile(ctx, acc.IDToken, username); err != nil {
		a.Logger.Warn("display name update failed", "email", email, "error", err)
	} else {
		acc.DisplayName = username
	}

	sess := sessionFromAccount(acc)
	_ = a.Store.Save(sess)
	a.State.Set(sess, firebase.NewHandle(a.FB, acc))
	return sess
}

// Local authenticates username/password directly against the backend;
// the backend's JWT and expiry are cached verbatim in the Session.
type Local struct {
	Backend *api.Client
	Store   session.Store
	State   *State
	Logger  *slog.Logger
}

func (a *Local) Login(ctx context.Context, usernameOrEmail, password string) *model.Session {
	resp, err := a.Backend.LoginLocal(ctx, usernameOrEmail, password)
	if err != nil {
		a.Logger.Warn("local login failed", "user", usernameOrEmail, "error", err)
		return failure(err)
	}
	return a.finish(resp)
}

func (a *Local) Register(ctx context.Context, username, email, password string) *model.Session {
	resp, err := a.Backend.Register(ctx, username, email, password)
	if err != nil {
		return failure(err)
	}
	return a.finish(resp)
}

// finish fills a missing token expiry from the JWT itself and persists
// successful sessions.
func (a *Local) finish(resp *model.Session) *model.Session {
	if !resp.Success {
		return resp
	}
	if resp.Token != "" && resp.TokenExp == 0 {
		resp.TokenExp = tokenExpiry(resp.Token)
	}
	_ = a.Store.Save(resp)
	a.State.Set(resp, nil)
	return resp
}

// sessionFromAccount builds a Session straight from the provider
// record, for modes with no backend round-trip.
func sessionFromAccount(acc *firebase.Account) *model.Session {
	username := acc.DisplayName
	if username == "" {
		username, _, _ = strings.Cut(acc.Email, "@")
	}
	return &model.Session{
		Success:      true,
		Username:     username,
		Email:        acc.Email,
		FirebaseUID:  acc.LocalID,
		RefreshToken: acc.RefreshToken,
	}
}
