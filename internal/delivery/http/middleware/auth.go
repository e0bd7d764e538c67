package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "firstseries/internal/delivery/http/helpers"
	"firstseries/internal/domain"
)

type contextKey string

const sessionKey contextKey = "adminSession"

// SessionChecker resolves a bearer token to a live admin session.
type SessionChecker interface {
	CheckSession(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// SetSession returns a context carrying the admin session claims.
func SetSession(ctx context.Context, claims *domain.TokenClaims) context.Context {
	return context.WithValue(ctx, sessionKey, claims)
}

// SessionFromContext returns the admin session set by RequireSession, if present.
func SessionFromContext(ctx context.Context) (*domain.TokenClaims, bool) {
	c, ok := ctx.Value(sessionKey).(*domain.TokenClaims)
	return c, ok && c != nil
}

// RequireSession rejects requests without a live admin session with 401 and
// otherwise stores the session claims in the request context.
func RequireSession(checker SessionChecker, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			claims, err := checker.CheckSession(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "session expired or signed out")
					return
				}
				logger.ErrorContext(r.Context(), "session check failed", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not verify session")
				return
			}
			next(w, r.WithContext(SetSession(r.Context(), claims)))
		}
	}
}
