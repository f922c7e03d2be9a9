// ABOUTME: Tests for configuration layering and validation
// ABOUTME: Covers defaults, config.yaml, env overrides and invalid values

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PAWS_API_URL", "PAWS_TIMEOUT", "PAWS_STORE", "PAWS_CATALOG_TTL", "LOG_LEVEL", "LOG_FORMAT", "PAWS_CONFIG_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://uiopaws-api2.onrender.com" {
		t.Errorf("expected default API URL, got %s", cfg.APIURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.Timeout)
	}
	if cfg.Store != "file://"+filepath.Join(dir, "session") {
		t.Errorf("expected file store under config dir, got %s", cfg.Store)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %s, got %s", dir, cfg.Dir)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yaml := "api_url: api.example.com/\ntimeout: 5s\nstore: memory://\nlog_level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://api.example.com" {
		t.Errorf("expected scheme added and slash trimmed, got %s", cfg.APIURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected 5s from file, got %s", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug from file, got %s", cfg.LogLevel)
	}

	t.Setenv("PAWS_TIMEOUT", "12s")
	t.Setenv("PAWS_STORE", "sqlite:///tmp/s.db")
	cfg, err = Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timeout != 12*time.Second {
		t.Errorf("expected env to win, got %s", cfg.Timeout)
	}
	if cfg.Store != "sqlite:///tmp/s.db" {
		t.Errorf("expected env store, got %s", cfg.Store)
	}
}

func TestLoad_DirFromEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("PAWS_CONFIG_DIR", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected %s, got %s", dir, cfg.Dir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad duration", map[string]string{"PAWS_TIMEOUT": "soon"}, "parse env"},
		{"zero timeout", map[string]string{"PAWS_TIMEOUT": "0s"}, "PAWS_TIMEOUT must be positive"},
		{"negative ttl", map[string]string{"PAWS_CATALOG_TTL": "-1m"}, "PAWS_CATALOG_TTL"},
		{"bad format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(t.TempDir())
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("timeout: [oops"), 0644)

	if _, err := Load(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "nested")
	cfg := defaults(dir)
	cfg.APIURL = "https://staging.example.com"
	cfg.CatalogTTL = time.Minute

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.APIURL != cfg.APIURL || loaded.CatalogTTL != time.Minute {
		t.Errorf("expected saved values, got %+v", loaded)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultDir(); got != "/tmp/xdg/paws" {
		t.Errorf("expected /tmp/xdg/paws, got %s", got)
	}
}
