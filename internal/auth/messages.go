package auth

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/me/voirie/internal/firebase"
	"github.com/me/voirie/pkg/model"
)

// User-facing failure messages. Fixed strings keyed by provider error
// code; unmapped codes fall back to the provider's own message.
const (
	msgInvalidCredentials = "Email ou mot de passe incorrect"
	msgInvalidEmail       = "Adresse email invalide"
	msgRateLimited        = "Trop de tentatives. Réessayez plus tard"
	msgEmailInUse         = "Cet email est déjà utilisé"
	msgWeakPassword       = "Mot de passe trop faible"
	msgNetwork            = "Problème réseau. Vérifiez votre connexion"
	msgPermissionDenied   = "Accès refusé au profil utilisateur"
	msgProfileNotFound    = "Utilisateur non trouvé dans Firestore"
	msgBlocked            = "Compte bloqué"
	msgUnknown            = "Erreur inconnue"
)

var providerMessages = map[string]string{
	"EMAIL_NOT_FOUND":             msgInvalidCredentials,
	"INVALID_PASSWORD":            msgInvalidCredentials,
	"INVALID_LOGIN_CREDENTIALS":   msgInvalidCredentials,
	"INVALID_CREDENTIAL":          msgInvalidCredentials,
	"INVALID_EMAIL":               msgInvalidEmail,
	"TOO_MANY_ATTEMPTS_TRY_LATER": msgRateLimited,
	"EMAIL_EXISTS":                msgEmailInUse,
	"WEAK_PASSWORD":               msgWeakPassword,
	"PERMISSION_DENIED":           msgPermissionDenied,
	"UNAUTHENTICATED":             msgPermissionDenied,
	"UNAVAILABLE":                 msgNetwork,
	"NOT_FOUND":                   msgProfileNotFound,
}

// Message translates any lower-level error into the single localized
// string the UI renders. Nothing below the service layer leaks through.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var pe *firebase.ProviderError
	if errors.As(err, &pe) {
		// Identity Toolkit codes sometimes carry a suffix, e.g.
		// "TOO_MANY_ATTEMPTS_TRY_LATER : …"; match on the first token.
		code, _, _ := strings.Cut(pe.Code, " ")
		code = strings.TrimSuffix(code, ":")
		if msg, ok := providerMessages[code]; ok {
			return msg
		}
		if pe.Message != "" {
			return pe.Message
		}
		return msgUnknown
	}

	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return msgUnknown
	}

	if isNetworkError(err) {
		return msgNetwork
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgUnknown
}

func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// failure builds the Session-shaped failure result every strategy
// returns instead of an error.
func failure(err error) *model.Session {
	return &model.Session{Success: false, Message: Message(err)}
}
