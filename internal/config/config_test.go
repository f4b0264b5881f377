package config

import (
	"path/filepath"
	"testing"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HUBSTAFF_BASE_URL", "https://api.example.com")
	t.Setenv("HUBSTAFF_APP_TOKEN", "app-token")
	t.Setenv("HUBSTAFF_EMAIL", "ada@example.com")
	t.Setenv("HUBSTAFF_PASSWORD", "hunter2")
	t.Setenv("HUBSYNC_DB", "/tmp/hubsync-test.db")

	cfg := Load("", false)

	if cfg.BaseURL != "https://api.example.com" {
		t.Errorf("unexpected base url: %q", cfg.BaseURL)
	}
	if cfg.AppToken != "app-token" || cfg.Email != "ada@example.com" || cfg.Password != "hunter2" {
		t.Errorf("unexpected credentials: %+v", cfg)
	}
	if cfg.DBPath != "/tmp/hubsync-test.db" {
		t.Errorf("unexpected db path: %q", cfg.DBPath)
	}
	if !cfg.HasCredentials() {
		t.Error("expected credentials to be present")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HUBSTAFF_BASE_URL", "")
	t.Setenv("HUBSYNC_DB", "")

	cfg := Load("", false)
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base url, got %q", cfg.BaseURL)
	}
	if cfg.DBPath == "" {
		t.Error("expected a default db path")
	}
}

func TestCLIOverridesWin(t *testing.T) {
	t.Setenv("HUBSYNC_DB", "/tmp/from-env.db")

	dbPath := filepath.Join(t.TempDir(), "cli.db")
	cfg := Load(dbPath, true)

	if cfg.DBPath != dbPath {
		t.Errorf("cli db path must win, got %q", cfg.DBPath)
	}
	if !cfg.Debug {
		t.Error("expected debug from cli flag")
	}
	if cfg.ConfigDir() != filepath.Dir(dbPath) {
		t.Errorf("unexpected config dir: %q", cfg.ConfigDir())
	}
}

func TestDebugFromEnvironment(t *testing.T) {
	t.Setenv("HUBSTAFF_DEBUG", "1")
	cfg := Load("", false)
	if !cfg.Debug {
		t.Error("expected HUBSTAFF_DEBUG to enable debug")
	}
}
