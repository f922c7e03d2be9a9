// ABOUTME: Tests for the login, logout, whoami and register commands
// ABOUTME: Verifies persisted session state and exit codes against a fake backend

package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/uiopaws/pawsctl/internal/client"
	"github.com/uiopaws/pawsctl/internal/store"
)

func authBackend(t *testing.T, role string) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "correct" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Credenciales inválidas"})
			return
		}
		writeJSON(w, http.StatusOK, client.LoginResponse{AccessToken: "tok-new", TokenType: "Bearer", UserRole: role})
	})
	mux.HandleFunc("GET /api/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-new" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
			return
		}
		writeJSON(w, http.StatusOK, client.User{IDUser: 3, Email: "luis@example.com", FirstName: "Luis", LastName: "Paz"})
	})
	return mux
}

func TestRunLogin_Success(t *testing.T) {
	env := newTestEnv(t, authBackend(t, "Admin"), nil)

	var buf bytes.Buffer
	code := runLogin(env.ctx, &buf, "luis@example.com", "correct")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}

	out := buf.String()
	for _, want := range []string{"Luis Paz", "Admin", "/admin"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}

	token, ok, _ := env.store.Get(store.KeyToken)
	if !ok || token != "tok-new" {
		t.Errorf("expected token persisted, got %q", token)
	}
	role, _, _ := env.store.Get(store.KeyRole)
	if role != "Admin" {
		t.Errorf("expected role persisted, got %q", role)
	}
}

func TestRunLogin_JSON(t *testing.T) {
	withJSONOutput(t)
	env := newTestEnv(t, authBackend(t, "User"), nil)

	var buf bytes.Buffer
	if code := runLogin(env.ctx, &buf, "luis@example.com", "correct"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["role"] != "User" || parsed["landing"] != "/user" {
		t.Errorf("unexpected output %v", parsed)
	}
}

func TestRunLogin_BadCredentialsLeavesStoreUntouched(t *testing.T) {
	env := newTestEnv(t, authBackend(t, "Admin"), signedIn(t, "User"))

	var buf bytes.Buffer
	code := runLogin(env.ctx, &buf, "luis@example.com", "wrong")
	if code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "Credenciales inválidas") {
		t.Errorf("expected backend message, got %q", buf.String())
	}

	token, _, _ := env.store.Get(store.KeyToken)
	if token != "tok-seeded" {
		t.Errorf("expected previous session kept, got %q", token)
	}
	if !env.deps.session.IsAuthenticated() {
		t.Error("expected previous session still authenticated")
	}
}

func TestRunLogin_MissingCredentials(t *testing.T) {
	env := newTestEnv(t, authBackend(t, "Admin"), nil)

	var buf bytes.Buffer
	if code := runLogin(env.ctx, &buf, " ", "correct"); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
}

func TestRunLogout(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler(), signedIn(t, "Admin"))

	var buf bytes.Buffer
	if code := runLogout(env.ctx, &buf); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if env.store.Len() != 0 {
		t.Errorf("expected all session slots cleared, %d left", env.store.Len())
	}
	if env.deps.session.IsAuthenticated() {
		t.Error("expected unauthenticated after logout")
	}
	if !strings.Contains(buf.String(), "Logged out") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestRunWhoami_NotLoggedIn(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler(), nil)

	var buf bytes.Buffer
	code := runWhoami(env.ctx, &buf, time.Now())
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Not logged in") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestRunWhoami_SignedIn(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler(), signedIn(t, "Super Admin"))

	var buf bytes.Buffer
	if code := runWhoami(env.ctx, &buf, time.Now()); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	out := buf.String()
	for _, want := range []string{"Ana Vera", "ana@example.com", "Super Admin", "/super-admin"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestRunWhoami_TokenExpiry(t *testing.T) {
	withJSONOutput(t)
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	seed := signedIn(t, "User")
	seed[store.KeyToken] = token
	env := newTestEnv(t, http.NotFoundHandler(), seed)

	var buf bytes.Buffer
	if code := runWhoami(env.ctx, &buf, exp.Add(time.Hour)); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var info whoamiInfo
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if info.ExpiresAt == nil || !info.ExpiresAt.Equal(exp) {
		t.Errorf("expected expiry %s, got %v", exp, info.ExpiresAt)
	}
	if !info.Expired {
		t.Error("expected token reported as expired")
	}
}

func TestRunWhoami_RefreshFailure(t *testing.T) {
	whoamiRefresh = true
	defer func() { whoamiRefresh = false }()
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	}), signedIn(t, "User"))

	var buf bytes.Buffer
	if code := runWhoami(env.ctx, &buf, time.Now()); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
}

func TestRunRegister_ValidatesLocally(t *testing.T) {
	called := false
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}), nil)

	var buf bytes.Buffer
	code := runRegister(env.ctx, &buf, client.RegisterPayload{FirstName: "Ana", DocumentType: client.DocumentCedula})
	if code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if called {
		t.Error("expected no request for an invalid payload")
	}
}

func TestRunRegister_Success(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Usuario registrado"})
	}), nil)

	payload := client.RegisterPayload{
		FirstName:      "Ana",
		LastName:       "Vera",
		DocumentType:   client.DocumentCedula,
		DocumentNumber: "1712345678",
		Phone:          "0991234567",
		Email:          "ana@example.com",
		Password:       "s3cret",
	}
	var buf bytes.Buffer
	if code := runRegister(env.ctx, &buf, payload); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Usuario registrado") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
