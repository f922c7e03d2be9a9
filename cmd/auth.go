// ABOUTME: Auth check command for the paws CLI
// ABOUTME: Lets scripts gate on the stored session's role through exit codes

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/uiopaws/pawsctl/internal/access"
	"github.com/uiopaws/pawsctl/internal/session"
)

var checkRole string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect the stored session",
}

var authCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the session satisfies a role",
	Long: `Check that the stored session is signed in and satisfies a role.

Roles are ranked User < Admin < SuperAdmin; a higher role satisfies a lower one.

Exit codes:
  0 - Session satisfies the role
  1 - Session is signed in but lacks the role
  2 - Error (not signed in, unknown role)`,
	Run: runWith(func(ctx context.Context, w io.Writer, _ []string) int {
		return runAuthCheck(ctx, w, checkRole)
	}),
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authCheckCmd)
	authCheckCmd.Flags().StringVar(&checkRole, "role", string(session.RoleUser), "Required role: User, Admin or SuperAdmin")
}

// checkResult represents the outcome of a role check
type checkResult struct {
	required session.Role
	current  session.Role
	decision access.Decision
}

func (r checkResult) passed() bool {
	return r.decision == access.Allow
}

// runAuthCheck executes the role check and returns exit code
func runAuthCheck(ctx context.Context, w io.Writer, role string) int {
	required, err := validateRole(role)
	if err != nil {
		return fail(w, err)
	}

	mgr, err := session.FromContext(ctx)
	if err != nil {
		return fail(w, err)
	}

	result := checkResult{
		required: required,
		current:  mgr.Snapshot().Role,
		decision: access.Require(string(required)).Decide(mgr),
	}

	if result.decision == access.RedirectLogin || result.decision == access.Loading {
		fmt.Fprintln(w, "Error: not logged in. Run 'paws login' first.")
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(result))
	} else {
		fmt.Fprintln(w, formatCheckHuman(result))
	}

	if !result.passed() {
		return 1
	}
	return 0
}

// validateRole ensures the role is one of the ranked roles
func validateRole(role string) (session.Role, error) {
	r := session.ParseRole(role)
	if !r.Ranked() {
		return "", fmt.Errorf("--role must be one of User, Admin, SuperAdmin (got %q)", role)
	}
	return r, nil
}

// formatCheckHuman formats the check result for human readability
func formatCheckHuman(r checkResult) string {
	if r.passed() {
		return fmt.Sprintf("✓ Role %s: current role %s\n\nPASSED: session satisfies the required role",
			r.required.Label(), roleLabel(r.current))
	}
	return fmt.Sprintf("✗ Role %s: current role %s\n\nFAILED: session does not satisfy the required role",
		r.required.Label(), roleLabel(r.current))
}

// formatCheckJSON formats the check result as JSON
func formatCheckJSON(r checkResult) string {
	status := "passed"
	if !r.passed() {
		status = "failed"
	}
	return formatJSON(map[string]any{
		"status":   status,
		"required": string(r.required),
		"current":  string(r.current),
		"decision": r.decision.String(),
	})
}
