// ABOUTME: Shared run wrapper and output helpers for paws commands
// ABOUTME: Exit codes: 0 success, 1 check failed, 2 error

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// runFunc is the testable body of a command.
type runFunc func(ctx context.Context, w io.Writer, args []string) int

// runWith adapts a runFunc to cobra, cancelling on SIGINT/SIGTERM and
// exiting with the returned code.
func runWith(fn runFunc) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := fn(ctx, cmd.OutOrStdout(), args)
		if exitCode != 0 {
			if d, err := depsFrom(cmd.Context()); err == nil {
				d.Close()
			}
			os.Exit(exitCode)
		}
	}
}

// fail prints an error the way every command reports it and returns 2.
func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}

// formatJSON renders v as indented JSON.
func formatJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// formatTable renders rows under headers with a plain border.
func formatTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}
