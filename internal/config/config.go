// Package config handles the configuration directory, file paths and settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "tasktrack"

	// EnvPrefix prefixes every environment override (TASKTRACK_API_URL, ...).
	EnvPrefix = "TASKTRACK"

	// TokenFile is the persisted session filename used by the file storage driver.
	TokenFile = "token.json"

	// StorageDBFile is the database filename used by the sqlite storage driver.
	StorageDBFile = "storage.db"

	// DefaultAPIURL is used when no API URL is configured.
	DefaultAPIURL = "http://localhost:3000"

	// DefaultAPITimeout bounds every API request.
	DefaultAPITimeout = 10 * time.Second
)

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the backend base URL.
	APIURL string

	// APITimeout is the per-request timeout.
	APITimeout time.Duration

	// StorageDriver selects where the session token is persisted ("file" or "sqlite").
	StorageDriver string

	// Locale selects the message catalog ("en", "pt-BR").
	Locale string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config with defaults for the given config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasktrack or $HOME/.config/tasktrack.
func New(configDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:           dir,
		APIURL:        DefaultAPIURL,
		APITimeout:    DefaultAPITimeout,
		StorageDriver: DriverFile,
		Locale:        "en",
	}
}

// Load builds a Config from defaults, an optional config.yaml in the config
// directory, and TASKTRACK_* environment variables (highest precedence).
func Load(configDir string) (*Config, error) {
	cfg := New(configDir)

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.url", cfg.APIURL)
	v.SetDefault("api.timeout", cfg.APITimeout)
	v.SetDefault("storage.driver", cfg.StorageDriver)
	v.SetDefault("locale", cfg.Locale)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(cfg.Dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.APIURL = strings.TrimRight(strings.TrimSpace(v.GetString("api.url")), "/")
	cfg.APITimeout = v.GetDuration("api.timeout")
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(v.GetString("storage.driver")))
	cfg.Locale = strings.TrimSpace(v.GetString("locale"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api url is required")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("invalid api timeout: %s", c.APITimeout)
	}
	switch c.StorageDriver {
	case DriverFile, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver: %s", c.StorageDriver)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the persisted session file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// StorageDBPath returns the path to the sqlite storage database.
func (c *Config) StorageDBPath() string {
	return filepath.Join(c.Dir, StorageDBFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
