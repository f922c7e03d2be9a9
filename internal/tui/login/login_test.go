// ABOUTME: Tests for the login screen
// ABOUTME: Validates pending lockout, submission, and error display

package login

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uiopaws/pawsctl/internal/client"
)

func TestSubmitEntersPending(t *testing.T) {
	l := New("ana@example.com")
	l.password = "secret"

	_, cmd := l.submit()
	if !l.Pending() {
		t.Fatal("expected pending after submit")
	}
	if cmd == nil {
		t.Fatal("expected submit command")
	}

	msgs := cmd().(tea.BatchMsg)
	var got *SubmitMsg
	for _, c := range msgs {
		if m, ok := c().(SubmitMsg); ok {
			got = &m
		}
	}
	if got == nil || got.Email != "ana@example.com" || got.Password != "secret" {
		t.Errorf("unexpected submit %+v", got)
	}
	if !strings.Contains(l.View(), "Signing in as ana@example.com") {
		t.Error("expected pending view")
	}
}

func TestPendingIgnoresInput(t *testing.T) {
	l := New("ana@example.com")
	l.submit()

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected enter to be ignored while pending")
	}
	_, cmd = l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("expected esc to be ignored while pending")
	}
}

func TestSetErrorKeepsEmail(t *testing.T) {
	l := New("")
	l.email = "ana@example.com"
	l.password = "wrong"
	l.submit()

	l.SetError(&client.APIError{Status: http.StatusUnauthorized, Message: "Unauthorized"})

	if l.Pending() {
		t.Error("expected pending to end")
	}
	if l.email != "ana@example.com" || l.password != "" {
		t.Errorf("expected email kept and password cleared, got %q %q", l.email, l.password)
	}
	if !strings.Contains(l.View(), "Invalid email or password") {
		t.Error("expected friendly unauthorized message")
	}
}

func TestSetErrorOther(t *testing.T) {
	l := New("")
	l.SetError(errors.New("connection refused"))
	if !strings.Contains(l.View(), "connection refused") {
		t.Error("expected raw error for non-API failures")
	}
}

func TestEscCancels(t *testing.T) {
	l := New("")
	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Error("expected CancelledMsg")
	}
}

func TestRequired(t *testing.T) {
	if err := required("email")("  "); err == nil || err.Error() != "email is required" {
		t.Errorf("unexpected error %v", err)
	}
	if err := required("email")("a@b.c"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
