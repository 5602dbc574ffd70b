package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/infrastructure/auth"
)

type userIDContextKey struct{}

func userIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDContextKey{}).(string)
	return userID
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// authMiddleware resolves the bearer session to a user ID. Every handler
// behind it can assume userIDFromContext returns a non-empty ID.
func (rt *Router) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := bearerToken(r)
		if sessionID == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer session"})
			return
		}

		userID, err := rt.sessions.Lookup(r.Context(), sessionID)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// createSession exchanges a signed identity token for a bearer session.
func (rt *Router) createSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "token is required"})
		return
	}

	claims, err := auth.ParseToken(rt.authSecret, req.Token)
	if err != nil {
		writeError(w, domain.WrapError(domain.ErrAuthentication, "create session", err))
		return
	}

	sessionID, err := rt.sessions.Create(r.Context(), claims.Sub, rt.sessionTTL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"sessionId": sessionID,
		"userId":    claims.Sub,
	})
}

func (rt *Router) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := bearerToken(r)
	if sessionID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer session"})
		return
	}
	if err := rt.sessions.Revoke(r.Context(), sessionID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
