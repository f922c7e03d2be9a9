// ABOUTME: Configuration loader for the paws CLI and TUI
// ABOUTME: Layers defaults, config.yaml, .env and environment variables, then validates

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/uiopaws/pawsctl/internal/client"
)

// AppName names the config directory.
const AppName = "paws"

type Config struct {
	// API
	APIURL  string        `env:"PAWS_API_URL" yaml:"api_url"`
	Timeout time.Duration `env:"PAWS_TIMEOUT" yaml:"timeout"`

	// Session storage: file://, sqlite://, redis:// or memory:// URL
	Store string `env:"PAWS_STORE" yaml:"store"`

	// Catalog cache
	CatalogTTL time.Duration `env:"PAWS_CATALOG_TTL" yaml:"catalog_ttl"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" yaml:"log_level"`
	LogFormat string `env:"LOG_FORMAT" yaml:"log_format"`

	// Directory holding config.yaml, the session and the TUI debug log
	Dir string `env:"PAWS_CONFIG_DIR" yaml:"-"`
}

// DefaultDir returns the default config directory following XDG spec
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

func defaults(dir string) *Config {
	return &Config{
		APIURL:     client.DefaultOrigin,
		Timeout:    30 * time.Second,
		Store:      "file://" + filepath.Join(dir, "session"),
		CatalogTTL: 5 * time.Minute,
		LogLevel:   "warn",
		LogFormat:  "text",
		Dir:        dir,
	}
}

// Load reads configuration. dir overrides the config directory when non-empty;
// otherwise PAWS_CONFIG_DIR or the XDG default is used.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if dir == "" {
		dir = os.Getenv("PAWS_CONFIG_DIR")
	}
	if dir == "" {
		dir = DefaultDir()
	}

	cfg := defaults(dir)

	if err := cfg.loadFile(filepath.Join(dir, "config.yaml")); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Dir = dir

	cfg.APIURL = ensureScheme(strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("PAWS_API_URL is required")
	}
	if c.Store == "" {
		return fmt.Errorf("PAWS_STORE is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("PAWS_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.CatalogTTL < 0 {
		return fmt.Errorf("PAWS_CATALOG_TTL must not be negative, got %s", c.CatalogTTL)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Save writes the persisted subset of the config to config.yaml.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.Dir, "config.yaml"), data, 0644)
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
