// ABOUTME: Login screen for the TUI built on a huh form
// ABOUTME: Locks input while a sign-in is pending and reports failures inline

package login

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/uiopaws/pawsctl/internal/client"
	"github.com/uiopaws/pawsctl/internal/tui/icons"
	"github.com/uiopaws/pawsctl/internal/tui/styles"
	"github.com/uiopaws/pawsctl/internal/tui/widgets"
)

// SubmitMsg carries the credentials once the form is submitted
type SubmitMsg struct {
	Email    string
	Password string
}

// CancelledMsg is sent when the user backs out
type CancelledMsg struct{}

// Login is the sign-in screen
type Login struct {
	form     *huh.Form
	spinner  spinner.Model
	email    string
	password string
	pending  bool
	err      string
}

// New creates the screen, prefilling email when known
func New(email string) *Login {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.KeyStyle

	l := &Login{email: email, spinner: s}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&l.email).
				Validate(required("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password).
				Validate(required("password")),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// Pending reports whether a submitted login is awaiting its result
func (l *Login) Pending() bool {
	return l.pending
}

// SetError ends the pending state and shows why sign-in failed.
// The email is kept and the password cleared.
func (l *Login) SetError(err error) {
	l.pending = false
	l.password = ""
	l.err = describe(err)
	l.form = l.createForm()
}

func describe(err error) string {
	if client.IsUnauthorized(err) {
		return "Invalid email or password"
	}
	return err.Error()
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if l.pending {
		// input is ignored until the result arrives
		if _, ok := msg.(spinner.TickMsg); ok {
			var cmd tea.Cmd
			l.spinner, cmd = l.spinner.Update(msg)
			return l, cmd
		}
		return l, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return l, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}
	if l.form.State == huh.StateCompleted {
		return l.submit()
	}
	return l, cmd
}

func (l *Login) submit() (tea.Model, tea.Cmd) {
	l.pending = true
	l.err = ""
	creds := SubmitMsg{Email: strings.TrimSpace(l.email), Password: l.password}
	return l, tea.Batch(
		l.spinner.Tick,
		func() tea.Msg { return creds },
	)
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Login.String() + " Sign in"))
	sb.WriteString("\n")
	if l.pending {
		sb.WriteString(l.spinner.View() + " Signing in as " + l.email + "...")
		return sb.String()
	}
	if l.err != "" {
		sb.WriteString(widgets.StatusText(l.err, widgets.StatusCritical))
		sb.WriteString("\n\n")
	}
	sb.WriteString(l.form.View())
	return sb.String()
}
