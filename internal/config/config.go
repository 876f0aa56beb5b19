// ABOUTME: Configuration loading and parsing for the taskboard server
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// DevSecret is a compiled-in signing secret for local development.
// It is only honored when auth.allow_dev_secret is set; production
// configurations must supply auth.jwt_secret explicitly.
const DevSecret = "taskboard-dev-secret-do-not-use-in-production"

// minSecretLen is the minimum accepted signing secret length in bytes (256 bits).
const minSecretLen = 32

// Config represents the complete taskboard configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig holds token issuance configuration
type AuthConfig struct {
	// JWTSecret signs issued tokens. Set via ${TASKBOARD_JWT_SECRET} in the
	// config file to keep it out of version control.
	JWTSecret string `yaml:"jwt_secret"`

	// Issuer is the "iss" claim stamped into every issued token.
	Issuer string `yaml:"issuer"`

	// AllowDevSecret permits falling back to the compiled-in development
	// secret when jwt_secret is empty. Never enable outside local testing.
	AllowDevSecret bool `yaml:"allow_dev_secret"`

	TokenLifetime time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	TokenLifetimeRaw string `yaml:"token_lifetime"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults applied by Load when fields are unset.
const (
	DefaultHTTPAddr      = ":8080"
	DefaultIssuer        = "taskboard"
	DefaultTokenLifetime = 24 * time.Hour
)

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment
// variable values. Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = DefaultHTTPAddr
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = DefaultIssuer
	}
	if c.Auth.JWTSecret == "" && c.Auth.AllowDevSecret {
		c.Auth.JWTSecret = DevSecret
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (or set auth.allow_dev_secret for local development)")
	}
	if len(c.Auth.JWTSecret) < minSecretLen {
		return fmt.Errorf("auth.jwt_secret must be at least %d bytes", minSecretLen)
	}

	if c.Auth.TokenLifetime <= 0 {
		return fmt.Errorf("auth.token_lifetime must be positive")
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	if cfg.Auth.TokenLifetimeRaw == "" {
		cfg.Auth.TokenLifetime = DefaultTokenLifetime
		return nil
	}

	d, err := time.ParseDuration(cfg.Auth.TokenLifetimeRaw)
	if err != nil {
		return fmt.Errorf("auth.token_lifetime: %w", err)
	}
	cfg.Auth.TokenLifetime = d
	return nil
}
