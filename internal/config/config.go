// Package config builds the single configuration value object handed to the
// Hubstaff client and the storage layer at startup.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hubsync/hubsync/internal/keyring"
)

// DefaultBaseURL is the Hubstaff API root used when HUBSTAFF_BASE_URL is unset.
const DefaultBaseURL = "https://api.hubstaff.com"

// Config carries everything the process needs: API credentials, the API
// base URL and the SQLite database path. It is constructed once in main and
// passed by value to constructors.
type Config struct {
	BaseURL  string
	AppToken string
	Email    string
	Password string
	DBPath   string
	Debug    bool
}

// Load resolves configuration from the environment, an optional .env file
// and the OS keyring, in that order of precedence. dbPath and debug come
// from the CLI and override everything else when non-zero.
func Load(dbPath string, debug bool) Config {
	// Best effort; running without a .env file is the normal case.
	_ = godotenv.Load()

	cfg := Config{
		BaseURL:  getenv("HUBSTAFF_BASE_URL", DefaultBaseURL),
		AppToken: credential("HUBSTAFF_APP_TOKEN", keyring.KeyAppToken),
		Email:    credential("HUBSTAFF_EMAIL", keyring.KeyEmail),
		Password: credential("HUBSTAFF_PASSWORD", keyring.KeyPassword),
		DBPath:   dbPath,
		Debug:    debug || os.Getenv("HUBSTAFF_DEBUG") != "",
	}

	if cfg.DBPath == "" {
		cfg.DBPath = getenv("HUBSYNC_DB", defaultDBPath())
	}

	return cfg
}

// ConfigDir returns the directory holding the database and log files.
func (c Config) ConfigDir() string {
	return filepath.Dir(c.DBPath)
}

// HasCredentials reports whether enough is known to attempt authentication.
func (c Config) HasCredentials() bool {
	return c.Email != "" && c.Password != ""
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "hubsync.db"
	}
	return filepath.Join(dir, "hubsync", "hubsync.db")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// credential prefers the environment, then the OS keyring.
func credential(envKey, keyringKey string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	v, err := keyring.Get(keyringKey)
	if err != nil {
		return ""
	}
	return v
}
