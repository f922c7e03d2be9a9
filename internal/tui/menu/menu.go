// ABOUTME: Main menu for the TUI with role-gated entries
// ABOUTME: Marks entries the current session cannot open and reports the guard decision on selection

package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uiopaws/pawsctl/internal/access"
	"github.com/uiopaws/pawsctl/internal/tui/icons"
	"github.com/uiopaws/pawsctl/internal/tui/styles"
)

// Entry identifies a menu destination
type Entry int

const (
	EntryAnimals Entry = iota
	EntryDonations
	EntryDashboard
	EntryAddAnimal
	EntrySignIn
	EntrySignOut
	EntryQuit
)

// String returns the stable name of an entry
func (e Entry) String() string {
	switch e {
	case EntryAnimals:
		return "animals"
	case EntryDonations:
		return "donations"
	case EntryDashboard:
		return "dashboard"
	case EntryAddAnimal:
		return "add-animal"
	case EntrySignIn:
		return "sign-in"
	case EntrySignOut:
		return "sign-out"
	case EntryQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// SelectedMsg is sent when the user picks an entry. Decision is the
// guard outcome for that entry at selection time.
type SelectedMsg struct {
	Entry    Entry
	Decision access.Decision
}

type option struct {
	label    string
	icon     icons.Icon
	value    Entry
	guard    *access.Guard
	decision access.Decision
}

// Menu is the main navigation list
type Menu struct {
	options []option
	cursor  int
}

var (
	signedInGuard = access.Authenticated()
	adminGuard    = access.Require("Admin")
)

// New builds the menu for the session described by c
func New(c access.Checker) *Menu {
	opts := []option{
		{label: "Browse animals", icon: icons.Animal, value: EntryAnimals},
		{label: "Donation needs", icon: icons.Donation, value: EntryDonations},
		{label: "My dashboard", icon: icons.User, value: EntryDashboard, guard: &signedInGuard},
		{label: "Register an animal", icon: icons.Wizard, value: EntryAddAnimal, guard: &adminGuard},
	}
	if c.IsAuthenticated() {
		opts = append(opts, option{label: "Sign out", icon: icons.Logout, value: EntrySignOut})
	} else {
		opts = append(opts, option{label: "Sign in", icon: icons.Login, value: EntrySignIn})
	}
	opts = append(opts, option{label: "Quit", icon: icons.Quit, value: EntryQuit})

	for i := range opts {
		if opts[i].guard != nil {
			opts[i].decision = opts[i].guard.Decide(c)
		}
	}
	return &Menu{options: opts}
}

// Decision returns the guard outcome for e. Unguarded entries report
// Allow; ok is false when e is not on the menu.
func (m *Menu) Decision(e Entry) (access.Decision, bool) {
	for _, opt := range m.options {
		if opt.value == e {
			return opt.decision, true
		}
	}
	return access.Allow, false
}

// Selected returns the entry under the cursor
func (m *Menu) Selected() Entry {
	return m.options[m.cursor].value
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		opt := m.options[m.cursor]
		return m, func() tea.Msg {
			return SelectedMsg{Entry: opt.value, Decision: opt.decision}
		}
	}
	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(icons.App.String() + " UIO Paws"))
	b.WriteString("\n")
	for i, opt := range m.options {
		line := fmt.Sprintf("%s %s", opt.icon.String(), opt.label)
		if note := lockNote(opt.decision); note != "" {
			line += " " + note
		}
		style := styles.Normal
		switch {
		case i == m.cursor:
			style = styles.Selected
		case opt.decision != access.Allow:
			style = styles.Disabled
		}
		b.WriteString(styles.Cursor(i == m.cursor) + style.Render(line) + "\n")
	}
	b.WriteString(styles.Help.Render("↑/↓ navigate • enter select • q quit"))
	return b.String()
}

func lockNote(d access.Decision) string {
	switch d {
	case access.RedirectLogin:
		return "(sign in)"
	case access.RedirectDashboard:
		return "(admins only)"
	case access.Loading:
		return "(loading)"
	}
	return ""
}
