// ABOUTME: Tests for the bearer-token HTTP middleware
// ABOUTME: Every rejection path must produce the same 401 body shape

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seapoint/taskboard/internal/store"
)

// fakeDirectory is an in-memory UserDirectory.
type fakeDirectory struct {
	users map[string]*store.User
}

func (d *fakeDirectory) GetUserByHandle(_ context.Context, handle string) (*store.User, error) {
	if u, ok := d.users[handle]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func newMiddlewareHarness(t *testing.T) (*TokenCodec, *fakeDirectory, http.Handler) {
	t.Helper()
	codec := newTestCodec(t, time.Hour)
	directory := &fakeDirectory{users: map[string]*store.User{
		"alice": {ID: 1, Handle: "alice", Email: "alice@example.com"},
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := Middleware(codec, directory, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := MustPrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(user.Handle))
	}))
	return codec, directory, handler
}

// do runs a request with an optional Authorization header value.
func do(handler http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// decode401 parses the fixed unauthorized body.
func decode401(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestMiddleware_ValidToken(t *testing.T) {
	codec, _, handler := newMiddlewareHarness(t)

	token, err := codec.Issue("alice")
	require.NoError(t, err)

	rec := do(handler, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestMiddleware_MissingHeader(t *testing.T) {
	_, _, handler := newMiddlewareHarness(t)

	body := decode401(t, do(handler, ""))
	assert.Equal(t, float64(401), body["status"])
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Equal(t, "/api/me", body["path"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, body["message"])
}

func TestMiddleware_WrongScheme(t *testing.T) {
	_, _, handler := newMiddlewareHarness(t)

	body := decode401(t, do(handler, "Basic dXNlcjpwYXNz"))
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestMiddleware_GarbageToken(t *testing.T) {
	_, _, handler := newMiddlewareHarness(t)

	body := decode401(t, do(handler, "Bearer garbage"))
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestMiddleware_ExpiredTokenSameShapeAsGarbage(t *testing.T) {
	directory := &fakeDirectory{users: map[string]*store.User{
		"alice": {ID: 1, Handle: "alice"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	codec := newTestCodec(t, time.Minute).WithClock(func() time.Time { return now })

	handler := Middleware(codec, directory, logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	token, err := codec.Issue("alice")
	require.NoError(t, err)
	now = issued.Add(2 * time.Minute)

	expired := decode401(t, do(handler, "Bearer "+token))
	garbage := decode401(t, do(handler, "Bearer garbage"))

	// Identical message: a caller can't learn whether the signature or the
	// expiry failed.
	assert.Equal(t, garbage["message"], expired["message"])
	assert.Equal(t, garbage["error"], expired["error"])
	assert.Equal(t, garbage["status"], expired["status"])
}

func TestMiddleware_VanishedAccountSameShapeAsBadToken(t *testing.T) {
	codec, directory, handler := newMiddlewareHarness(t)

	token, err := codec.Issue("alice")
	require.NoError(t, err)
	delete(directory.users, "alice")

	vanished := decode401(t, do(handler, "Bearer "+token))
	garbage := decode401(t, do(handler, "Bearer garbage"))
	assert.Equal(t, garbage["message"], vanished["message"])
}

func TestMiddleware_ErrExpiredMatchesInvalid(t *testing.T) {
	// The internal distinction must stay inside errors.Is(ErrInvalidToken).
	assert.True(t, errors.Is(ErrExpiredToken, ErrInvalidToken))
}

func TestExtractBearerToken(t *testing.T) {
	token, msg := extractBearerToken("Bearer abc123")
	assert.Equal(t, "abc123", token)
	assert.Empty(t, msg)

	_, msg = extractBearerToken("")
	assert.NotEmpty(t, msg)

	_, msg = extractBearerToken("bearer abc123")
	assert.NotEmpty(t, msg)

	_, msg = extractBearerToken("Bearer ")
	assert.NotEmpty(t, msg)
}
