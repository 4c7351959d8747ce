package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Docsight.

Ask questions, browse documents, and follow citations into the page
viewer with keyboard navigation.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Ask / Select
  1-9      - Open citation source
  ←/h, →/l - Previous/next page in the viewer
  Esc      - Back
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Pick up config edits made while the TUI runs. The watcher reloads
	// the store in place; the next command invocation sees fresh values.
	if reloads, err := configStore.Watch(ctx); err == nil {
		go func() {
			for range reloads {
			}
		}()
	}

	ports := tui.NewPorts(queryService, documentService, catalog)
	ports.History = historyService

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
