// ABOUTME: HTTP middleware enforcing bearer-token authentication on API routes
// ABOUTME: Extracts JWT from Authorization header, re-resolves the subject, attaches principal

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/seapoint/taskboard/internal/store"
)

// SubjectParser verifies a token string and returns its subject handle.
type SubjectParser interface {
	ParseSubject(tokenString string) (string, error)
}

// UserDirectory resolves a subject handle to the current account record.
type UserDirectory interface {
	GetUserByHandle(ctx context.Context, handle string) (*store.User, error)
}

// unauthorizedBody is the fixed JSON shape returned for every rejected request.
// Missing header, bad signature, expired token, and vanished account all
// produce this same shape so none of them is distinguishable to the caller.
type unauthorizedBody struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// Middleware returns an HTTP middleware that validates the bearer token,
// re-resolves the subject against the user directory, and attaches the
// principal to the request context. Any failure rejects with 401 before the
// handler runs. Routes not requiring authentication are simply mounted
// outside this middleware.
func Middleware(codec SubjectParser, directory UserDirectory, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
			if errMsg != "" {
				writeUnauthorized(w, r, errMsg)
				return
			}

			handle, err := codec.ParseSubject(token)
			if err != nil {
				// Expiry vs signature matters for operators, never for callers.
				if errors.Is(err, ErrExpiredToken) {
					logger.Debug("rejected expired token", "path", r.URL.Path)
				} else {
					logger.Debug("rejected invalid token", "path", r.URL.Path)
				}
				writeUnauthorized(w, r, "invalid or expired token")
				return
			}

			// Re-resolve the subject so account state is checked on every
			// request rather than trusted from token contents.
			user, err := directory.GetUserByHandle(r.Context(), handle)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					logger.Error("user lookup failed", "error", err)
				}
				writeUnauthorized(w, r, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), user)))
		})
	}
}

// writeUnauthorized writes the fixed 401 response body.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(unauthorizedBody{
		Timestamp: time.Now().UTC(),
		Status:    http.StatusUnauthorized,
		Error:     "Unauthorized",
		Message:   message,
		Path:      r.URL.Path,
	})
}
