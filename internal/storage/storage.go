// Package storage persists small string values on the local machine.
package storage

import (
	"fmt"

	"tasktrack/internal/config"
)

// TokenKey is the key under which the session token is stored.
const TokenKey = "token"

// Store is a durable key/value store.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Close releases resources.
	Close() error
}

// Open returns the store selected by cfg.StorageDriver.
// The config directory is created if needed.
func Open(cfg *config.Config) (Store, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	switch cfg.StorageDriver {
	case config.DriverFile, "":
		return NewFileStore(cfg.TokenPath()), nil
	case config.DriverSQLite:
		return OpenSQLite(cfg.StorageDBPath())
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}
