// ABOUTME: Session manager owning the bearer token, role and profile of the signed-in user
// ABOUTME: Hydrates from durable storage, logs in and out, answers role checks

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/uiopaws/pawsctl/internal/client"
	"github.com/uiopaws/pawsctl/internal/store"
)

// ErrNotHydrated is returned by Login when Hydrate has not run yet.
var ErrNotHydrated = errors.New("session not hydrated")

// ErrUnusableToken is returned by Login when the backend answers without a usable token.
var ErrUnusableToken = errors.New("login returned an unusable token")

// ErrNotAuthenticated is returned by RefreshProfile without a session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Authenticator performs the login and profile calls.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*client.LoginResponse, error)
	Profile(ctx context.Context) (*client.User, error)
}

// State is the session lifecycle state.
type State int

const (
	StateHydrating State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateHydrating:
		return "hydrating"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Snapshot is a point-in-time copy of the session, safe to hand to views.
type Snapshot struct {
	State   State
	Role    Role
	Profile *client.User
}

// Authenticated reports whether the snapshot holds a session.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated
}

// corruption markers left behind by earlier writers
const (
	markerUndefined = "undefined"
	markerNull      = "null"
)

// normalize treats empty values and corruption markers as absent.
func normalize(raw string) (string, bool) {
	if raw == "" || raw == markerUndefined || raw == markerNull {
		return "", false
	}
	return raw, true
}

// Manager is the single owner of session state. It is safe for concurrent
// use; the lock is never held across a network call.
type Manager struct {
	mu      sync.RWMutex
	store   store.Store
	auth    Authenticator
	state   State
	token   string
	role    Role
	profile *client.User
}

// NewManager creates a manager in the Hydrating state.
func NewManager(st store.Store, auth Authenticator) *Manager {
	return &Manager{
		store: st,
		auth:  auth,
		state: StateHydrating,
	}
}

// Hydrate restores the session from storage. It runs once; later calls are no-ops.
//
// A valid token together with a decodable profile restores an authenticated
// session. A corruption marker in any slot, or any other stored but unusable
// combination, purges all three slots. An empty store is left untouched.
// Read errors never purge: an unreadable token or profile leaves the session
// unauthenticated, an unreadable role restores the session without a role.
func (m *Manager) Hydrate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateHydrating {
		return
	}

	raw := make(map[string]string, len(store.SessionKeys))
	unreadable := make(map[string]bool)
	anyStored := false
	corrupt := false
	for _, key := range store.SessionKeys {
		v, ok, err := m.store.Get(key)
		if err != nil {
			slog.Warn("Session slot unreadable", "key", key, "error", err)
			unreadable[key] = true
			continue
		}
		if !ok || v == "" {
			continue
		}
		anyStored = true
		if _, usable := normalize(v); !usable {
			corrupt = true
			continue
		}
		raw[key] = v
	}

	token, hasToken := normalize(raw[store.KeyToken])
	profile, hasProfile := decodeProfile(raw[store.KeyUser])
	roleRaw, hasRole := normalize(raw[store.KeyRole])

	switch {
	case unreadable[store.KeyToken] || unreadable[store.KeyUser]:
		// a failed read says nothing about what is stored; leave it for the next run
		m.state = StateUnauthenticated
		slog.Warn("Session left unrestored after a storage read failure")
	case !corrupt && hasToken && hasProfile:
		m.token = token
		m.profile = profile
		if hasRole {
			m.role = ParseRole(roleRaw)
		}
		m.state = StateAuthenticated
		slog.Debug("Session restored", "role", m.role, "email", profile.Email, "role_unreadable", unreadable[store.KeyRole])
	case anyStored:
		slog.Warn("Discarding unusable stored session",
			"has_token", hasToken,
			"has_profile", hasProfile,
			"corrupt_marker", corrupt,
		)
		m.purgeLocked()
		m.state = StateUnauthenticated
	default:
		m.state = StateUnauthenticated
		slog.Debug("No stored session")
	}
}

func decodeProfile(raw string) (*client.User, bool) {
	v, ok := normalize(raw)
	if !ok {
		return nil, false
	}
	var u client.User
	if err := json.Unmarshal([]byte(v), &u); err != nil {
		return nil, false
	}
	return &u, true
}

// Login authenticates with the backend and replaces the session.
//
// Token and role are committed to memory and storage before the profile
// is requested, so the profile call can attach the new credential. A failed
// profile call leaves the session authenticated with token and role only.
// A failed login leaves state and storage untouched and returns the error as is.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if m.State() == StateHydrating {
		return ErrNotHydrated
	}

	resp, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	token, ok := normalize(resp.AccessToken)
	if !ok {
		return ErrUnusableToken
	}

	if err := m.commitLogin(token, ParseRole(resp.UserRole), resp.User); err != nil {
		return err
	}
	slog.Info("Logged in", "role", ParseRole(resp.UserRole), "email", email)

	profile, err := m.auth.Profile(ctx)
	if err != nil {
		slog.Warn("Profile fetch after login failed; continuing with login role", "error", err)
		return nil
	}
	m.commitProfile(token, profile)
	return nil
}

type slot struct {
	key   string
	value string
}

// commitLogin swaps in the new token and role (and the login's user record
// when present). On a storage failure the previous state is restored.
func (m *Manager) commitLogin(token string, role Role, user *client.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.persistedLocked()

	writes := []slot{{store.KeyToken, token}}
	if role != "" {
		writes = append(writes, slot{store.KeyRole, string(role)})
	}
	var profileJSON string
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		profileJSON = string(data)
		writes = append(writes, slot{store.KeyUser, profileJSON})
	}

	for _, w := range writes {
		if err := m.store.Set(w.key, w.value); err != nil {
			m.restoreLocked(prev)
			return fmt.Errorf("persist session: %w", err)
		}
	}
	if role == "" {
		if err := m.store.Delete(store.KeyRole); err != nil {
			m.restoreLocked(prev)
			return fmt.Errorf("persist session: %w", err)
		}
	}
	if user == nil {
		if err := m.store.Delete(store.KeyUser); err != nil {
			m.restoreLocked(prev)
			return fmt.Errorf("persist session: %w", err)
		}
	}

	m.token = token
	m.role = role
	m.profile = user
	m.state = StateAuthenticated
	return nil
}

// commitProfile stores a freshly fetched profile if the session still
// belongs to token. A logout or another login in between wins.
func (m *Manager) commitProfile(token string, profile *client.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAuthenticated || m.token != token {
		slog.Debug("Dropping profile for superseded session")
		return
	}

	data, err := json.Marshal(profile)
	if err != nil {
		slog.Warn("Encode profile failed", "error", err)
		return
	}
	if err := m.store.Set(store.KeyUser, string(data)); err != nil {
		slog.Warn("Persist profile failed", "error", err)
		return
	}
	m.profile = profile
}

// RefreshProfile re-fetches the profile for the current session.
// Unlike the follow-up inside Login, failures are returned.
func (m *Manager) RefreshProfile(ctx context.Context) error {
	token, ok := m.CurrentCredential()
	if !ok {
		return ErrNotAuthenticated
	}
	profile, err := m.auth.Profile(ctx)
	if err != nil {
		return fmt.Errorf("refresh profile: %w", err)
	}
	m.commitProfile(token, profile)
	return nil
}

// Logout clears the session from memory and storage. It never fails;
// storage errors are logged.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purgeLocked()
	m.token = ""
	m.role = ""
	m.profile = nil
	if m.state != StateHydrating {
		m.state = StateUnauthenticated
	}
	slog.Info("Logged out")
}

// HasRole reports whether the session satisfies required.
//
// The login role is checked against the hierarchy. Only when no login role
// is held are the profile's role names consulted, and those must match
// exactly (no hierarchy).
func (m *Manager) HasRole(required Role) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state != StateAuthenticated {
		return false
	}
	if m.role != "" {
		return m.role.Satisfies(required)
	}
	if m.profile == nil {
		return false
	}
	for _, r := range m.profile.Roles {
		if ParseRole(r.Name) == required {
			return true
		}
	}
	return false
}

// CurrentCredential returns the bearer token when one is held.
func (m *Manager) CurrentCredential() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return normalize(m.token)
}

// IsAuthenticated reports whether a token is held.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.CurrentCredential()
	return ok
}

// IsLoading reports whether hydration is still pending.
func (m *Manager) IsLoading() bool {
	return m.State() == StateHydrating
}

// State returns the lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Snapshot copies the session for display.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{State: m.state, Role: m.role}
	if m.profile != nil {
		p := *m.profile
		p.Roles = append([]client.UserRole(nil), m.profile.Roles...)
		s.Profile = &p
	}
	return s
}

func (m *Manager) purgeLocked() {
	for _, key := range store.SessionKeys {
		if err := m.store.Delete(key); err != nil {
			slog.Warn("Failed to clear session slot", "key", key, "error", err)
		}
	}
}

// persistedLocked reads the current slot values for rollback.
func (m *Manager) persistedLocked() map[string]*string {
	prev := make(map[string]*string, len(store.SessionKeys))
	for _, key := range store.SessionKeys {
		v, ok, err := m.store.Get(key)
		if err != nil || !ok {
			prev[key] = nil
			continue
		}
		prev[key] = &v
	}
	return prev
}

func (m *Manager) restoreLocked(prev map[string]*string) {
	for key, v := range prev {
		var err error
		if v == nil {
			err = m.store.Delete(key)
		} else {
			err = m.store.Set(key, *v)
		}
		if err != nil {
			slog.Warn("Failed to restore session slot", "key", key, "error", err)
		}
	}
}
