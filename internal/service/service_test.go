// ABOUTME: Shared test helpers for service tests
// ABOUTME: Wires real SQLite stores and a real token codec with a fixed clock

package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seapoint/taskboard/internal/auth"
	"github.com/seapoint/taskboard/internal/store"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// newTestStore creates a temporary SQLite store.
func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// newTestCodec creates a token codec with a one-hour lifetime.
func newTestCodec(t *testing.T) *auth.TokenCodec {
	t.Helper()
	codec, err := auth.NewTokenCodec([]byte(testSecret), "taskboard-test", time.Hour)
	require.NoError(t, err)
	return codec
}

// discardLogger returns a logger that drops everything.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServices wires all three services over one store.
func newTestServices(t *testing.T) (*CredentialService, *ProjectService, *TaskService, *store.SQLiteStore) {
	t.Helper()
	s := newTestStore(t)
	logger := discardLogger()
	creds := NewCredentialService(s, newTestCodec(t), logger)
	projects := NewProjectService(s, logger)
	tasks := NewTaskService(s, logger)
	return creds, projects, tasks, s
}
