// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Also provides helpers that build a command context against a fake backend

package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/uiopaws/pawsctl/internal/client"
	"github.com/uiopaws/pawsctl/internal/config"
	"github.com/uiopaws/pawsctl/internal/session"
	"github.com/uiopaws/pawsctl/internal/store"
)

// testEnv is a command context wired to an httptest backend and a memory store.
type testEnv struct {
	ctx    context.Context
	deps   *deps
	store  *store.Memory
	server *httptest.Server
}

// newTestEnv builds deps over handler. seed pre-populates the session store
// before hydration.
func newTestEnv(t *testing.T, handler http.Handler, seed map[string]string) *testEnv {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	mem := store.NewMemory()
	for k, v := range seed {
		mem.Set(k, v)
	}

	cfg := &config.Config{
		APIURL:     server.URL,
		Timeout:    5 * time.Second,
		Store:      "memory://",
		CatalogTTL: time.Minute,
		LogLevel:   "error",
		LogFormat:  "text",
		Dir:        t.TempDir(),
	}
	d := newDeps(cfg, mem)
	return &testEnv{
		ctx:    withDeps(context.Background(), d),
		deps:   d,
		store:  mem,
		server: server,
	}
}

// signedIn returns a store seed for an authenticated session with role.
func signedIn(t *testing.T, role string) map[string]string {
	t.Helper()
	profile, err := json.Marshal(client.User{IDUser: 7, Email: "ana@example.com", FirstName: "Ana", LastName: "Vera"})
	if err != nil {
		t.Fatal(err)
	}
	seed := map[string]string{
		store.KeyToken: "tok-seeded",
		store.KeyUser:  string(profile),
	}
	if role != "" {
		seed[store.KeyRole] = role
	}
	return seed
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func withJSONOutput(t *testing.T) {
	t.Helper()
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })
}

func TestGetAPIURL_Default(t *testing.T) {
	os.Unsetenv("PAWS_API_URL")
	apiURL = "" // Reset flag

	url := GetAPIURL("")
	if url != "https://uiopaws-api2.onrender.com" {
		t.Errorf("expected default URL, got %s", url)
	}
}

func TestGetAPIURL_Fallback(t *testing.T) {
	os.Unsetenv("PAWS_API_URL")
	apiURL = ""

	url := GetAPIURL("https://from-config.example.com")
	if url != "https://from-config.example.com" {
		t.Errorf("expected config value, got %s", url)
	}
}

func TestGetAPIURL_FromEnv(t *testing.T) {
	t.Setenv("PAWS_API_URL", "http://backend.example.com/")
	apiURL = ""

	url := GetAPIURL("https://from-config.example.com")
	if url != "http://backend.example.com" {
		t.Errorf("expected http://backend.example.com, got %s", url)
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	t.Setenv("PAWS_API_URL", "http://backend.example.com")
	apiURL = "http://flag-override.example.com"
	defer func() { apiURL = "" }()

	url := GetAPIURL("")
	if url != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", url)
	}
}

func TestGetStoreURL(t *testing.T) {
	os.Unsetenv("PAWS_STORE")
	storeURL = ""
	if got := GetStoreURL("file:///tmp/session"); got != "file:///tmp/session" {
		t.Errorf("expected fallback, got %s", got)
	}

	t.Setenv("PAWS_STORE", "memory://")
	if got := GetStoreURL("file:///tmp/session"); got != "memory://" {
		t.Errorf("expected env, got %s", got)
	}

	storeURL = "sqlite:///tmp/paws.db"
	defer func() { storeURL = "" }()
	if got := GetStoreURL("file:///tmp/session"); got != "sqlite:///tmp/paws.db" {
		t.Errorf("expected flag, got %s", got)
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestDepsFrom_Missing(t *testing.T) {
	if _, err := depsFrom(context.Background()); err == nil {
		t.Error("expected error for bare context")
	}
}

func TestNewDeps_HydratesAndInstallsSession(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler(), signedIn(t, "Admin"))

	mgr, err := session.FromContext(env.ctx)
	if err != nil {
		t.Fatalf("expected session in context: %v", err)
	}
	if mgr != env.deps.session {
		t.Error("expected the same manager in context and deps")
	}
	if !mgr.IsAuthenticated() {
		t.Error("expected seeded session to hydrate as authenticated")
	}
}

func TestNewDeps_AttachesStoredToken(t *testing.T) {
	var gotAuth string
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, client.User{Email: "ana@example.com"})
	}), signedIn(t, "User"))

	if _, err := env.deps.api.Profile(env.ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-seeded" {
		t.Errorf("expected stored token on request, got %q", gotAuth)
	}
}
