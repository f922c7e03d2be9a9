// ABOUTME: Route guard and landing decisions for role-gated screens and commands
// ABOUTME: Maps a session's state and role onto allow, wait, or redirect outcomes

package access

import (
	"fmt"
	"log/slog"

	"github.com/uiopaws/pawsctl/internal/session"
)

// Decision is the outcome of guarding a route.
type Decision int

const (
	// Allow renders the protected content.
	Allow Decision = iota
	// Loading means hydration has not finished; show a spinner.
	Loading
	// RedirectLogin sends an unauthenticated caller to the login screen.
	RedirectLogin
	// RedirectDashboard sends an authenticated caller lacking the role home.
	RedirectDashboard
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectDashboard:
		return "redirect-dashboard"
	}
	return fmt.Sprintf("Decision(%d)", int(d))
}

// Checker is the part of the session manager a guard needs.
type Checker interface {
	IsLoading() bool
	IsAuthenticated() bool
	HasRole(required session.Role) bool
}

// Guard protects a route, optionally requiring a role.
type Guard struct {
	required session.Role
}

// Require returns a guard for routes needing role. Panics if role is not
// a ranked role, so a mistyped route table fails at startup.
func Require(role string) Guard {
	return Guard{required: session.MustParseKnownRole(role)}
}

// Authenticated returns a guard that only needs a signed-in user.
func Authenticated() Guard {
	return Guard{}
}

// Required returns the role the guard demands, or "" for any signed-in user.
func (g Guard) Required() session.Role {
	return g.required
}

// Decide evaluates the guard. Precedence: loading, login, role.
func (g Guard) Decide(c Checker) Decision {
	if c.IsLoading() {
		return Loading
	}
	if !c.IsAuthenticated() {
		return RedirectLogin
	}
	if g.required != "" && !c.HasRole(g.required) {
		slog.Warn("Access denied", "required_role", g.required)
		return RedirectDashboard
	}
	return Allow
}

// Landing identifies the home screen for a session.
type Landing int

const (
	LandingLogin Landing = iota
	LandingUser
	LandingAdmin
	LandingSuperAdmin
)

func (l Landing) String() string {
	switch l {
	case LandingLogin:
		return "login"
	case LandingUser:
		return "user"
	case LandingAdmin:
		return "admin"
	case LandingSuperAdmin:
		return "super-admin"
	}
	return fmt.Sprintf("Landing(%d)", int(l))
}

// Path is the route for the landing screen.
func (l Landing) Path() string {
	switch l {
	case LandingUser:
		return "/user"
	case LandingAdmin:
		return "/admin"
	case LandingSuperAdmin:
		return "/super-admin"
	}
	return "/login"
}

// LandingFor picks the home screen. SuperAdmin is checked before Admin
// because a super admin also satisfies Admin through the hierarchy.
func LandingFor(c Checker) Landing {
	if c.IsLoading() || !c.IsAuthenticated() {
		return LandingLogin
	}
	switch {
	case c.HasRole(session.RoleSuperAdmin):
		return LandingSuperAdmin
	case c.HasRole(session.RoleAdmin):
		return LandingAdmin
	default:
		return LandingUser
	}
}
