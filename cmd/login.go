// ABOUTME: Login and logout commands for the paws CLI
// ABOUTME: Prompts for missing credentials with huh and persists the session

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/uiopaws/pawsctl/internal/access"
	"github.com/uiopaws/pawsctl/internal/session"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Long: `Sign in with email and password. Missing values are prompted for.

The token, role and profile are written to the session store so later
commands run as the signed-in user.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if loginEmail != "" && loginPassword != "" {
			return nil
		}
		return promptCredentials(&loginEmail, &loginPassword)
	},
	Run: runWith(func(ctx context.Context, w io.Writer, _ []string) int {
		return runLogin(ctx, w, loginEmail, loginPassword)
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Run: runWith(func(ctx context.Context, w io.Writer, _ []string) int {
		return runLogout(ctx, w)
	}),
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
}

// promptCredentials asks for whichever credential is missing.
func promptCredentials(email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(email).
			Validate(notBlank("email")))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(notBlank("password")))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func notBlank(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// runLogin signs in and returns exit code
func runLogin(ctx context.Context, w io.Writer, email, password string) int {
	mgr, err := session.FromContext(ctx)
	if err != nil {
		return fail(w, err)
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return fail(w, errors.New("--email and --password are required"))
	}

	if err := mgr.Login(ctx, email, password); err != nil {
		return fail(w, err)
	}

	snap := mgr.Snapshot()
	landing := access.LandingFor(mgr)
	if IsJSONOutput() {
		fmt.Fprintln(w, formatLoginJSON(snap, landing))
	} else {
		fmt.Fprintln(w, formatLoginHuman(email, snap, landing))
	}
	return 0
}

func formatLoginHuman(email string, snap session.Snapshot, landing access.Landing) string {
	name := email
	if snap.Profile != nil && snap.Profile.FullName() != "" {
		name = fmt.Sprintf("%s <%s>", snap.Profile.FullName(), snap.Profile.Email)
	}
	return fmt.Sprintf("✓ Logged in as %s\nRole:    %s\nHome:    %s", name, roleLabel(snap.Role), landing.Path())
}

func formatLoginJSON(snap session.Snapshot, landing access.Landing) string {
	output := map[string]any{
		"status":  "authenticated",
		"role":    string(snap.Role),
		"landing": landing.Path(),
	}
	if snap.Profile != nil {
		output["user"] = snap.Profile
	}
	return formatJSON(output)
}

func roleLabel(r session.Role) string {
	if r == "" {
		return "(none)"
	}
	return r.Label()
}

// runLogout clears the session; it never fails once a session exists
func runLogout(ctx context.Context, w io.Writer) int {
	mgr, err := session.FromContext(ctx)
	if err != nil {
		return fail(w, err)
	}
	mgr.Logout()

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]string{"status": "logged_out"}))
	} else {
		fmt.Fprintln(w, "Logged out")
	}
	return 0
}
