package console

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/me/voirie/internal/api"
	"github.com/me/voirie/internal/auth"
	"github.com/me/voirie/internal/firebase"
	"github.com/me/voirie/internal/store"
)

// Console serves the manager web console.
type Console struct {
	store     store.Store
	sessions  *SessionManager
	auth      auth.Authenticator
	api       *api.Client
	tokens    *SessionTokenSource
	logger    *slog.Logger
	startTime time.Time
	secure    bool // Use secure cookies (HTTPS)
}

// Config holds console configuration.
type Config struct {
	Secure bool // Use secure cookies for HTTPS
}

// New creates a new console handler. The api client should be built
// with the same SessionTokenSource so requests carry the session's
// credential.
func New(st store.Store, authn auth.Authenticator, apiClient *api.Client, tokens *SessionTokenSource, logger *slog.Logger, cfg Config) *Console {
	return &Console{
		store:     st,
		sessions:  NewSessionManager(st),
		auth:      authn,
		api:       apiClient,
		tokens:    tokens,
		logger:    logger.With("component", "console"),
		startTime: time.Now(),
		secure:    cfg.Secure,
	}
}

// maxCachedHandles bounds the provider-handle cache. Past the bound
// the cache is dropped wholesale and rebuilt lazily, costing one
// token refresh per still-active session.
const maxCachedHandles = 1024

// SessionTokenSource authorizes backend calls made while handling a
// console request. The session's backend JWT wins when the deployment
// issues one; otherwise a provider handle is kept per console session
// and asked for a fresh ID token, refreshed silently near expiry.
type SessionTokenSource struct {
	fb *firebase.Client

	mu      sync.Mutex
	handles map[string]*firebase.Handle // keyed by console session id
}

// NewSessionTokenSource creates a token source backed by the given
// provider client. fb may be nil when the deployment runs without the
// identity provider (local mode).
func NewSessionTokenSource(fb *firebase.Client) *SessionTokenSource {
	return &SessionTokenSource{fb: fb, handles: make(map[string]*firebase.Handle)}
}

func (s *SessionTokenSource) Token(ctx context.Context) (string, error) {
	sess := SessionFromContext(ctx)
	if sess == nil {
		return "", nil
	}
	if sess.Token != "" {
		return sess.Token, nil
	}
	if sess.RefreshToken == "" || s.fb == nil {
		return "", nil
	}

	s.mu.Lock()
	handle := s.handles[sess.ID]
	if handle == nil {
		if len(s.handles) >= maxCachedHandles {
			s.handles = make(map[string]*firebase.Handle)
		}
		handle = firebase.NewHandle(s.fb, &firebase.Account{RefreshToken: sess.RefreshToken})
		s.handles[sess.ID] = handle
	}
	s.mu.Unlock()

	return handle.IDToken(ctx)
}

// Forget drops the cached provider handle for a console session,
// called when the session is deleted.
func (s *SessionTokenSource) Forget(sessionID string) {
	s.mu.Lock()
	delete(s.handles, sessionID)
	s.mu.Unlock()
}

// HandleLanding renders the public landing page.
func (c *Console) HandleLanding(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	data := map[string]any{
		"Title":   "Voirie",
		"Session": sess,
	}
	c.render(w, "landing", data)
}

// HandleLogin renders the login page.
func (c *Console) HandleLogin(w http.ResponseWriter, r *http.Request) {
	// If already logged in, go straight to the dashboard.
	if sess, _ := c.sessions.GetSessionFromRequest(r); sess != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Title": "Connexion - Voirie",
		"Error": r.URL.Query().Get("error"),
	}
	c.render(w, "login", data)
}

// HandleLoginPost processes the login form.
func (c *Console) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.redirectLoginError(w, r, "Requête invalide")
		return
	}

	identifier := strings.TrimSpace(r.FormValue("identifier"))
	password := r.FormValue("password")

	if identifier == "" || password == "" {
		c.redirectLoginError(w, r, "Identifiant et mot de passe requis")
		return
	}

	resp := c.auth.Login(r.Context(), identifier, password)
	if resp == nil || !resp.Success {
		msg := "Email ou mot de passe incorrect"
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		c.logger.Warn("login failed", "identifier", identifier, "message", msg)
		c.redirectLoginError(w, r, msg)
		return
	}

	var tokenExp time.Time
	if resp.TokenExp > 0 {
		tokenExp = time.Unix(resp.TokenExp, 0)
	}

	sess, err := c.sessions.CreateSession(r.Context(), resp.UserID, resp.Username, resp.Role(), resp.Token, resp.RefreshToken, tokenExp)
	if err != nil {
		c.logger.Error("create session failed", "error", err)
		c.redirectLoginError(w, r, "Création de session impossible")
		return
	}

	SetSessionCookie(w, sess, c.secure)

	c.logger.Info("user logged in", "username", resp.Username, "role", sess.Role, "session", sess.ID)
	if sess.IsManager() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session and redirects to login.
func (c *Console) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, _ := c.sessions.GetSessionFromRequest(r); sess != nil {
		_ = c.sessions.DeleteSession(r.Context(), sess.ID)
		if c.tokens != nil {
			c.tokens.Forget(sess.ID)
		}
		c.logger.Info("user logged out", "username", sess.Username, "session", sess.ID)
	}
	ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleDashboard renders the manager dashboard with global statistics.
func (c *Console) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	stats := c.api.GlobalStatistics(r.Context())

	data := map[string]any{
		"Title":   "Tableau de bord - Voirie",
		"Session": sess,
		"Stats":   stats,
		"Uptime":  time.Since(c.startTime).Round(time.Second).String(),
	}
	c.render(w, "dashboard", data)
}

// HandleSignalementList renders the signalement list, optionally
// filtered by progress status name.
func (c *Console) HandleSignalementList(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	signalements, err := c.api.ListSignalements(r.Context())
	if err != nil {
		c.renderError(w, "Chargement des signalements impossible", err)
		return
	}

	statusFilter := strings.ToUpper(r.URL.Query().Get("status"))
	if statusFilter != "" {
		filtered := signalements[:0]
		for _, s := range signalements {
			if strings.ToUpper(s.Status.Name) == statusFilter {
				filtered = append(filtered, s)
			}
		}
		signalements = filtered
	}

	data := map[string]any{
		"Title":        "Signalements - Voirie",
		"Session":      sess,
		"Signalements": signalements,
		"StatusFilter": statusFilter,
	}
	c.render(w, "signalements/list", data)
}

// HandleValidationQueue renders signalements awaiting a manager decision.
func (c *Console) HandleValidationQueue(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	status := r.URL.Query().Get("status")
	if status == "" {
		status = "EN_ATTENTE"
	}

	signalements, err := c.api.ListSignalementsByValidationStatus(r.Context(), status)
	if err != nil {
		c.renderError(w, "Chargement de la file de validation impossible", err)
		return
	}

	statuses, err := c.api.ListValidationStatuses(r.Context())
	if err != nil {
		c.renderError(w, "Chargement des statuts de validation impossible", err)
		return
	}

	data := map[string]any{
		"Title":        "Validation - Voirie",
		"Session":      sess,
		"Signalements": signalements,
		"Statuses":     statuses,
		"Current":      status,
		"Error":        r.URL.Query().Get("error"),
		"Info":         r.URL.Query().Get("info"),
	}
	c.render(w, "validation/queue", data)
}

// HandleValidatePost records a manager decision on a signalement.
func (c *Console) HandleValidatePost(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/validation?error="+url.QueryEscape("Requête invalide"), http.StatusSeeOther)
		return
	}

	signalementID, err := strconv.ParseInt(c.pathParam(r, "id"), 10, 64)
	if err != nil {
		c.renderNotFound(w, "Signalement introuvable")
		return
	}
	statusID, err := strconv.ParseInt(r.FormValue("status_id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/validation?error="+url.QueryEscape("Statut invalide"), http.StatusSeeOther)
		return
	}
	note := strings.TrimSpace(r.FormValue("note"))

	if err := c.api.ValidateSignalement(r.Context(), signalementID, statusID, sess.UserID, note); err != nil {
		c.logger.Error("validation failed", "signalement", signalementID, "error", err)
		http.Redirect(w, r, "/validation?error="+url.QueryEscape(api.ErrorMessage(err)), http.StatusSeeOther)
		return
	}

	c.logger.Info("signalement validated", "signalement", signalementID, "status", statusID, "by", sess.Username)
	http.Redirect(w, r, "/validation?info="+url.QueryEscape("Décision enregistrée"), http.StatusSeeOther)
}

// HandleUserList renders backend users, surfacing blocked accounts.
func (c *Console) HandleUserList(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	users, err := c.api.ListUsers(r.Context())
	if err != nil {
		c.renderError(w, "Chargement des utilisateurs impossible", err)
		return
	}

	blockedCount := 0
	for _, u := range users {
		if u.Blocked {
			blockedCount++
		}
	}

	data := map[string]any{
		"Title":        "Utilisateurs - Voirie",
		"Session":      sess,
		"Users":        users,
		"BlockedCount": blockedCount,
		"Error":        r.URL.Query().Get("error"),
		"Info":         r.URL.Query().Get("info"),
	}
	c.render(w, "users/list", data)
}

// HandleUserUnblock resets a blocked account's counter via the admin API.
func (c *Console) HandleUserUnblock(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(c.pathParam(r, "id"), 10, 64)
	if err != nil {
		c.renderNotFound(w, "Utilisateur introuvable")
		return
	}

	resp, err := c.api.AdminUnblockUser(r.Context(), userID)
	if err != nil {
		c.logger.Error("unblock failed", "user", userID, "error", err)
		http.Redirect(w, r, "/users?error="+url.QueryEscape(api.ErrorMessage(err)), http.StatusSeeOther)
		return
	}

	msg := "Compte débloqué"
	if resp != nil && resp.Message != "" {
		msg = resp.Message
	}
	c.logger.Info("user unblocked", "user", userID)
	http.Redirect(w, r, "/users?info="+url.QueryEscape(msg), http.StatusSeeOther)
}

// HandleSync renders the Firestore reconciliation page.
func (c *Console) HandleSync(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	data := map[string]any{
		"Title":   "Synchronisation - Voirie",
		"Session": sess,
	}
	c.render(w, "sync", data)
}

// HandleSyncPost triggers the Firestore/relational reconciliation and
// reports per-category counts.
func (c *Console) HandleSyncPost(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	result := c.api.SyncFirebaseSignalements(r.Context())
	if !result.Success {
		c.logger.Warn("sync failed", "message", result.Message)
	} else {
		c.logger.Info("sync completed",
			"created", result.Created,
			"updated", result.Updated,
			"skipped", result.Skipped,
			"errors", result.Errors,
		)
	}

	data := map[string]any{
		"Title":   "Synchronisation - Voirie",
		"Session": sess,
		"Result":  &result,
	}
	c.render(w, "sync", data)
}

// --- Helpers ---

func (c *Console) redirectLoginError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/login?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

func (c *Console) pathParam(r *http.Request, name string) string {
	return r.PathValue(name)
}

func (c *Console) render(w http.ResponseWriter, template string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var buf bytes.Buffer
	if err := renderTemplate(&buf, template, data); err != nil {
		c.logger.Error("template render failed", "template", template, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	buf.WriteTo(w)
}

func (c *Console) renderError(w http.ResponseWriter, message string, err error) {
	c.logger.Error(message, "error", err)
	data := map[string]any{
		"Title":   "Erreur - Voirie",
		"Message": message,
	}
	w.WriteHeader(http.StatusInternalServerError)
	c.render(w, "error", data)
}

func (c *Console) renderNotFound(w http.ResponseWriter, message string) {
	data := map[string]any{
		"Title":   "Introuvable - Voirie",
		"Message": message,
	}
	w.WriteHeader(http.StatusNotFound)
	c.render(w, "error", data)
}
