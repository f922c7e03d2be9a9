// ABOUTME: Whoami command for the paws CLI
// ABOUTME: Shows the stored session, its role and token expiry

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/uiopaws/pawsctl/internal/access"
	"github.com/uiopaws/pawsctl/internal/client"
	"github.com/uiopaws/pawsctl/internal/session"
)

var whoamiRefresh bool

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long: `Display the stored session: profile, role, home screen and token expiry.

Exit codes:
  0 - Signed in
  1 - Not signed in
  2 - Error (profile refresh failed)`,
	Run: runWith(func(ctx context.Context, w io.Writer, _ []string) int {
		return runWhoami(ctx, w, time.Now())
	}),
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	whoamiCmd.Flags().BoolVar(&whoamiRefresh, "refresh", false, "Re-fetch the profile from the backend first")
}

// whoamiInfo is the view of a session printed by whoami
type whoamiInfo struct {
	Authenticated bool         `json:"authenticated"`
	Role          string       `json:"role,omitempty"`
	Landing       string       `json:"landing"`
	User          *client.User `json:"user,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
	Expired       bool         `json:"expired"`
}

// runWhoami prints the session and returns exit code
func runWhoami(ctx context.Context, w io.Writer, now time.Time) int {
	mgr, err := session.FromContext(ctx)
	if err != nil {
		return fail(w, err)
	}

	if whoamiRefresh && mgr.IsAuthenticated() {
		if err := mgr.RefreshProfile(ctx); err != nil {
			return fail(w, err)
		}
	}

	info := describeSession(mgr, now)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(info))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(info))
	}

	if !info.Authenticated {
		return 1
	}
	return 0
}

func describeSession(mgr *session.Manager, now time.Time) whoamiInfo {
	snap := mgr.Snapshot()
	info := whoamiInfo{
		Authenticated: snap.Authenticated(),
		Role:          string(snap.Role),
		Landing:       access.LandingFor(mgr).Path(),
		User:          snap.Profile,
	}
	if token, ok := mgr.CurrentCredential(); ok {
		if claims, ok := client.InspectToken(token); ok && !claims.ExpiresAt.IsZero() {
			exp := claims.ExpiresAt
			info.ExpiresAt = &exp
			info.Expired = claims.Expired(now)
		}
	}
	return info
}

// formatWhoamiHuman formats the session for human readability
func formatWhoamiHuman(info whoamiInfo) string {
	if !info.Authenticated {
		return "Not logged in. Run 'paws login' to sign in."
	}

	var sb strings.Builder
	if info.User != nil {
		fmt.Fprintf(&sb, "User:     %s <%s>\n", info.User.FullName(), info.User.Email)
	}
	fmt.Fprintf(&sb, "Role:     %s\n", roleLabel(session.Role(info.Role)))
	fmt.Fprintf(&sb, "Home:     %s", info.Landing)
	if info.ExpiresAt != nil {
		state := "valid"
		if info.Expired {
			state = "expired"
		}
		fmt.Fprintf(&sb, "\nToken:    %s (expires %s)", state, info.ExpiresAt.Format(time.RFC3339))
	}
	return sb.String()
}
