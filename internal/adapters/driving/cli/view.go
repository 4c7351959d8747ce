package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsight-labs/docsight-cli/internal/core/domain"
	"github.com/docsight-labs/docsight-cli/internal/core/services"
)

var viewCmd = &cobra.Command{
	Use:   "view [deep-link]",
	Short: "Show the page a deep link points at",
	Long: `Resolves a deep link (as printed under the ask command's sources)
and prints that page's paragraphs. The cited paragraph is marked with >>.

Example:
  docsight view "/viewer/policy_v2.pdf?page=2&highlight=c7"`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	if documentService == nil || catalog == nil {
		return errors.New("document service not configured")
	}

	ctx := cmd.Context()
	if _, err := documentService.Documents(ctx); err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	target := domain.ParseDeepLink(args[0])

	nav := services.NewNavigator(catalog)
	req, err := nav.Open(target)
	if err != nil {
		return fmt.Errorf("opening %q: %w", target.DocumentID, err)
	}

	chunks, err := documentService.PageChunks(ctx, req.Document.Filename, req.Page)
	nav.Apply(services.PageResult{Generation: req.Generation, Chunks: chunks, Err: err})
	if err != nil {
		return fmt.Errorf("loading page: %w", err)
	}

	cmd.Printf("%s, page %d/%d\n\n", req.Document.Filename, req.Page, req.Document.TotalPages)

	if len(chunks) == 0 {
		cmd.Println("This page has no content.")
		return nil
	}

	for i := range chunks {
		chunk := &chunks[i]
		prefix := "   "
		if chunk.ID == target.HighlightChunkID {
			prefix = ">> "
		}
		if chunk.Type == domain.SemanticHeading {
			cmd.Printf("%s# %s\n\n", prefix, chunk.Text)
			continue
		}
		cmd.Printf("%s%s\n\n", prefix, chunk.Text)
	}

	return nil
}
