// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Covers env expansion, duration parsing, defaults, and required fields

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Complete(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":9090"
database:
  path: /tmp/taskboard.db
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
  issuer: "test-issuer"
  token_lifetime: 15m
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, "/tmp/taskboard.db", cfg.Database.Path)
	assert.Equal(t, "test-issuer", cfg.Auth.Issuer)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenLifetime)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/taskboard.db
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddr, cfg.Server.HTTPAddr)
	assert.Equal(t, DefaultIssuer, cfg.Auth.Issuer)
	assert.Equal(t, DefaultTokenLifetime, cfg.Auth.TokenLifetime)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TASKBOARD_TEST_SECRET", "0123456789abcdef0123456789abcdef")

	path := writeConfig(t, `
database:
  path: /tmp/taskboard.db
auth:
  jwt_secret: "${TASKBOARD_TEST_SECRET}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.Auth.JWTSecret)
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/taskboard.db
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoad_DevSecretFallback(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/taskboard.db
auth:
  allow_dev_secret: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DevSecret, cfg.Auth.JWTSecret)
}

func TestLoad_DevSecretOverridable(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/taskboard.db
auth:
  allow_dev_secret: true
  jwt_secret: "ffffffffffffffffffffffffffffffff"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ffffffffffffffffffffffffffffffff", cfg.Auth.JWTSecret)
}

func TestLoad_ShortSecret(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/taskboard.db
auth:
  jwt_secret: "too-short"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestLoad_MissingDatabasePath(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.path")
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/taskboard.db
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
  token_lifetime: "soon"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token_lifetime")
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
