package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsight-labs/docsight-cli/internal/core/domain"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent questions and answers",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 10,
		"maximum number of exchanges to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	exchanges, err := historyService.Recent(cmd.Context(), flagHistoryLimit)
	if err != nil {
		if errors.Is(err, domain.ErrHistoryDisabled) {
			cmd.Println("History is disabled. Enable it with history.enabled in the config.")
			return nil
		}
		return fmt.Errorf("loading history: %w", err)
	}

	if len(exchanges) == 0 {
		cmd.Println("No history yet.")
		return nil
	}

	for i := range exchanges {
		e := &exchanges[i]
		cmd.Printf("%s  %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Question)
		cmd.Printf("    %s\n", firstLine(e.Answer.Text))
		if n := len(e.Answer.Citations); n > 0 {
			cmd.Printf("    (%d sources)\n", n)
		}
		cmd.Println()
	}
	return nil
}

// firstLine truncates an answer to a single summary line.
func firstLine(text string) string {
	const maxLen = 100
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			text = text[:i]
			break
		}
	}
	if len(text) > maxLen {
		text = text[:maxLen-3] + "..."
	}
	return text
}
