// Package config provides configuration loading and management for the sync service.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stacklok/commerce-sync/internal/telemetry"
)

// EnvPrefix is the prefix for environment variables read through viper.
const EnvPrefix = "COMMERCE_SYNC"

// PasswordEnvVar is the environment variable consulted when no password file is configured.
const PasswordEnvVar = "COMMERCE_SYNC_DATABASE_PASSWORD"

const (
	// SourceTypeFile reads refetched batches from a directory tree on disk
	SourceTypeFile = "file"

	// SourceTypeAPI fetches refetched batches from a storefront export API
	SourceTypeAPI = "api"
)

const (
	defaultPollInterval     = 2 * time.Minute
	defaultStaleThreshold   = 15 * time.Minute
	defaultStatementTimeout = 30 * time.Second
	defaultConnMaxLifetime  = 5 * time.Minute
	defaultAPITimeout       = 30 * time.Second
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	Database  *DatabaseConfig   `yaml:"database"`
	Sync      *SyncConfig       `yaml:"sync,omitempty"`
	Source    *SourceConfig     `yaml:"source,omitempty"`
	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// SyncConfig tunes the background recovery loop
type SyncConfig struct {
	// PollInterval is the base interval between recovery passes (e.g. "2m")
	PollInterval string `yaml:"pollInterval,omitempty"`

	// StaleThreshold is how long a sync may stay running before it is failed (e.g. "15m")
	StaleThreshold string `yaml:"staleThreshold,omitempty"`
}

// SourceConfig selects where the recovery loop refetches batches for due retries.
// When nil, due retries are left in place and only reaping and scheduling happen.
type SourceConfig struct {
	Type string      `yaml:"type"`
	File *FileConfig `yaml:"file,omitempty"`
	API  *APIConfig  `yaml:"api,omitempty"`
}

// FileConfig defines a local directory source.
// Batches are read from <dir>/<store id>/<kind>.json.
type FileConfig struct {
	Dir string `yaml:"dir"`
}

// APIConfig defines a storefront export API source
type APIConfig struct {
	// Endpoint is the base URL; batches are fetched from <endpoint>/stores/<store id>/<kind>
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds a single fetch (e.g. "30s")
	Timeout string `yaml:"timeout,omitempty"`
}

// DatabaseConfig defines database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname or IP address
	Host string `yaml:"host"`

	// Port is the database server port
	Port int `yaml:"port"`

	// User is the database username
	User string `yaml:"user"`

	// PasswordFile is the path to a file containing the database password
	// The file should contain only the password with optional trailing whitespace
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// Database is the database name
	Database string `yaml:"database"`

	// SSLMode is the SSL mode for the connection (disable, require, verify-ca, verify-full)
	SSLMode string `yaml:"sslMode,omitempty"`

	// MaxOpenConns is the maximum number of open connections to the database
	MaxOpenConns int32 `yaml:"maxOpenConns,omitempty"`

	// MaxIdleConns is the number of connections the pool keeps open when idle
	MaxIdleConns int32 `yaml:"maxIdleConns,omitempty"`

	// ConnMaxLifetime is the maximum lifetime of a connection (e.g., "1h", "30m")
	ConnMaxLifetime string `yaml:"connMaxLifetime,omitempty"`

	// StatementTimeout bounds every statement run on a pool connection (e.g., "30s")
	StatementTimeout string `yaml:"statementTimeout,omitempty"`
}

// GetPassword returns the database password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from COMMERCE_SYNC_DATABASE_PASSWORD environment variable
//
// The password from file will have leading/trailing whitespace trimmed.
func (d *DatabaseConfig) GetPassword() (string, error) {
	if d.PasswordFile != "" {
		cleanPath := filepath.Clean(d.PasswordFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read password from file %s: %w", d.PasswordFile, err)
		}

		return strings.TrimSpace(string(data)), nil
	}

	if envPassword := os.Getenv(PasswordEnvVar); envPassword != "" {
		return envPassword, nil
	}

	return "", fmt.Errorf(
		"no database password configured: set passwordFile or %s environment variable", PasswordEnvVar,
	)
}

// GetConnectionString builds a PostgreSQL connection string with proper password handling.
// The password is URL-escaped to handle special characters safely.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(password),
		d.Host,
		d.Port,
		d.Database,
		sslMode,
	)

	return connString, nil
}

// GetConnMaxLifetime returns the configured connection lifetime or the default
func (d *DatabaseConfig) GetConnMaxLifetime() time.Duration {
	return durationOrDefault(d.ConnMaxLifetime, defaultConnMaxLifetime)
}

// GetStatementTimeout returns the configured statement timeout or the default
func (d *DatabaseConfig) GetStatementTimeout() time.Duration {
	return durationOrDefault(d.StatementTimeout, defaultStatementTimeout)
}

// GetPollInterval returns the recovery loop interval, using the default when unset
func (c *Config) GetPollInterval() time.Duration {
	if c.Sync == nil {
		return defaultPollInterval
	}
	return durationOrDefault(c.Sync.PollInterval, defaultPollInterval)
}

// GetStaleThreshold returns the age after which a running sync is considered stalled
func (c *Config) GetStaleThreshold() time.Duration {
	if c.Sync == nil {
		return defaultStaleThreshold
	}
	return durationOrDefault(c.Sync.StaleThreshold, defaultStaleThreshold)
}

// GetTimeout returns the per-fetch timeout of an API source
func (a *APIConfig) GetTimeout() time.Duration {
	return durationOrDefault(a.Timeout, defaultAPITimeout)
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	var errs []error

	if c.Database == nil {
		errs = append(errs, errors.New("database configuration is required"))
	} else if err := c.Database.validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if c.Sync != nil {
		if err := validateDuration(c.Sync.PollInterval, "sync.pollInterval"); err != nil {
			errs = append(errs, err)
		}
		if err := validateDuration(c.Sync.StaleThreshold, "sync.staleThreshold"); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Source != nil {
		if err := c.Source.validate(); err != nil {
			errs = append(errs, fmt.Errorf("source: %w", err))
		}
	}

	if err := c.Telemetry.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("telemetry: %w", err))
	}

	return errors.Join(errs...)
}

func (d *DatabaseConfig) validate() error {
	switch {
	case d.Host == "":
		return fmt.Errorf("host is required")
	case d.Port == 0:
		return fmt.Errorf("port is required")
	case d.User == "":
		return fmt.Errorf("user is required")
	case d.Database == "":
		return fmt.Errorf("database name is required")
	}
	if err := validateDuration(d.ConnMaxLifetime, "connMaxLifetime"); err != nil {
		return err
	}
	return validateDuration(d.StatementTimeout, "statementTimeout")
}

func (s *SourceConfig) validate() error {
	switch s.Type {
	case SourceTypeFile:
		if s.File == nil || s.File.Dir == "" {
			return fmt.Errorf("file.dir is required for type %q", SourceTypeFile)
		}
	case SourceTypeAPI:
		if s.API == nil || s.API.Endpoint == "" {
			return fmt.Errorf("api.endpoint is required for type %q", SourceTypeAPI)
		}
		if _, err := url.ParseRequestURI(s.API.Endpoint); err != nil {
			return fmt.Errorf("api.endpoint is not a valid URL: %w", err)
		}
		return validateDuration(s.API.Timeout, "api.timeout")
	default:
		return fmt.Errorf("unsupported type %q (expected %q or %q)", s.Type, SourceTypeFile, SourceTypeAPI)
	}
	return nil
}

func validateDuration(value, field string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q: %w", field, value, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s: must be positive, got %s", field, value)
	}
	return nil
}

// durationOrDefault parses a validated duration string.
func durationOrDefault(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
