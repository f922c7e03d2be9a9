// ABOUTME: Durable key-value storage for persisted session slots
// ABOUTME: Selects a file, sqlite, redis or in-memory driver from a store URL

package store

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Slot keys used by the session manager.
const (
	KeyToken = "auth_token"
	KeyRole  = "auth_role"
	KeyUser  = "auth_user"
)

// SessionKeys lists every slot owned by the session, in purge order.
var SessionKeys = []string{KeyToken, KeyRole, KeyUser}

// ErrUnsupportedDriver is returned by Open for an unknown URL scheme.
var ErrUnsupportedDriver = errors.New("unsupported store driver")

// Store is a small synchronous string key-value store.
// Get reports ok=false for a key that was never set or has been deleted.
// Delete of a missing key is not an error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Open returns the driver named by rawURL's scheme.
//
//	file:///path/to/dir
//	sqlite:///path/to/session.db
//	redis://localhost:6379/0
//	memory://
//
// A bare path with no scheme is treated as a file store directory.
func Open(rawURL string) (Store, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("store url is required")
	}
	if !strings.Contains(rawURL, "://") {
		return NewFile(rawURL), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid store url %q: %w", rawURL, err)
	}

	switch u.Scheme {
	case "file":
		return NewFile(hostPath(u)), nil
	case "sqlite":
		return OpenSQLite(hostPath(u))
	case "redis", "rediss":
		return OpenRedis(rawURL)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, u.Scheme)
	}
}

// hostPath rebuilds a filesystem path from a URL, accepting both
// file:///abs/path and file://relative/path forms.
func hostPath(u *url.URL) string {
	if u.Host == "" {
		return u.Path
	}
	return u.Host + u.Path
}
