// ABOUTME: Register command for the paws CLI
// ABOUTME: Creates an account; validation runs locally before the request

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uiopaws/pawsctl/internal/client"
)

var registerInput client.RegisterPayload

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a new account on the adoption platform.

Example:
  paws register --first-name Ana --last-name Vera --document-type Cédula \
    --document-number 1712345678 --phone 0991234567 --email ana@example.com --password s3cret`,
	Run: runWith(func(ctx context.Context, w io.Writer, _ []string) int {
		return runRegister(ctx, w, registerInput)
	}),
}

func init() {
	rootCmd.AddCommand(registerCmd)
	f := registerCmd.Flags()
	f.StringVar(&registerInput.FirstName, "first-name", "", "First name (required)")
	f.StringVar(&registerInput.MiddleName, "middle-name", "", "Middle name")
	f.StringVar(&registerInput.LastName, "last-name", "", "Last name (required)")
	f.StringVar(&registerInput.SecondLastName, "second-last-name", "", "Second last name")
	f.StringVar(&registerInput.DocumentType, "document-type", client.DocumentCedula,
		"Document type: "+strings.Join(client.DocumentTypes, ", "))
	f.StringVar(&registerInput.DocumentNumber, "document-number", "", "Document number (required)")
	f.StringVar(&registerInput.Phone, "phone", "", "Phone number (required)")
	f.StringVar(&registerInput.Email, "email", "", "Email (required)")
	f.StringVar(&registerInput.Password, "password", "", "Password (required)")
}

// runRegister submits the registration and returns exit code
func runRegister(ctx context.Context, w io.Writer, payload client.RegisterPayload) int {
	d, err := depsFrom(ctx)
	if err != nil {
		return fail(w, err)
	}

	resp, err := d.api.Register(ctx, payload)
	if err != nil {
		return fail(w, err)
	}

	msg := resp.Message
	if msg == "" {
		msg = "Account created"
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]string{"status": "registered", "email": payload.Email, "message": msg}))
	} else {
		fmt.Fprintf(w, "✓ %s. Sign in with 'paws login --email %s'\n", msg, payload.Email)
	}
	return 0
}
