package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/styles"
	"github.com/docsight-labs/docsight-cli/internal/core/domain"
)

var (
	flagTopK    int
	flagAskJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Asks a question against the uploaded documents and prints the answer.

Citation markers like [1] in the answer refer to the numbered source list
printed below it. Each source carries a deep link that the view command
can open directly.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&flagTopK, "top-k", "k", 0,
		"number of chunks to retrieve (overrides config)")
	askCmd.Flags().BoolVar(&flagAskJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if queryService == nil {
		return errors.New("query service not configured")
	}

	answer, err := queryService.Ask(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if flagAskJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer *domain.Answer) error {
	cmd.Println(renderAnswerText(answer, stdoutIsTerminal()))
	cmd.Println()

	if len(answer.Citations) == 0 {
		return nil
	}

	cmd.Println("Sources:")
	for i := range answer.Citations {
		c := &answer.Citations[i]
		cmd.Printf("  [%d] %s, page %d", c.Number, c.Filename, c.PageNumber)
		if c.SimilarityScore > 0 {
			cmd.Printf(" (%.2f)", c.SimilarityScore)
		}
		cmd.Println()
		if c.TextPreview != "" {
			cmd.Printf("      %s\n", c.TextPreview)
		}
		cmd.Printf("      %s\n", c.DeepLink)
	}

	if !answer.HasValidCitations {
		cmd.Println()
		cmd.Println("Note: citation markers could not be verified against the sources.")
	}

	return nil
}

// renderAnswerText returns the answer with markers emphasised when writing
// to a terminal. Piped output gets the text untouched.
func renderAnswerText(answer *domain.Answer, colour bool) string {
	segments := domain.ResolveMarkers(answer.Text, answer.Citations)
	if len(segments) == 0 {
		return answer.Text
	}
	if !colour {
		return answer.Text
	}

	s := styles.DefaultStyles()
	var b strings.Builder
	for _, segment := range segments {
		if segment.Resolved() {
			b.WriteString(s.Citation.Render(segment.Text))
		} else {
			b.WriteString(segment.Text)
		}
	}
	return b.String()
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
