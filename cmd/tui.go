// ABOUTME: Tui command for the paws CLI
// ABOUTME: Launches the interactive terminal UI with logging routed to a file

package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/uiopaws/pawsctl/internal/tui"
	"github.com/uiopaws/pawsctl/internal/tui/debuglog"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal UI.

Log output goes to debug.log in the config directory while the UI owns the terminal.`,
	Run: runWith(func(ctx context.Context, w io.Writer, _ []string) int {
		return runTUI(ctx, w)
	}),
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI starts the terminal UI and returns exit code
func runTUI(ctx context.Context, w io.Writer) int {
	d, err := depsFrom(ctx)
	if err != nil {
		return fail(w, err)
	}

	if err := debuglog.Init(d.cfg.Dir, d.cfg.LogLevel); err != nil {
		slog.Warn("Debug log unavailable", "error", err)
	}
	defer debuglog.Close()

	err = tui.Run(ctx, tui.Options{
		Client:    d.api,
		Session:   d.session,
		Catalogs:  d.catalogs,
		ConfigDir: d.cfg.Dir,
	})
	if err != nil {
		return fail(w, err)
	}
	return 0
}
