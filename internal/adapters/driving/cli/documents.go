package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsight-labs/docsight-cli/internal/core/domain"
)

var flagDocumentsJSON bool

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage uploaded documents",
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	RunE:  runDocumentsList,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [filename]",
	Short: "Delete a document from the backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

func init() {
	documentsListCmd.Flags().BoolVar(&flagDocumentsJSON, "json", false,
		"output documents as JSON")
	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.Documents(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if flagDocumentsJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents uploaded yet.")
		return nil
	}

	cmd.Printf("%-40s %8s %8s\n", "FILENAME", "PAGES", "CHUNKS")
	for i := range docs {
		cmd.Printf("%-40s %8d %8d\n", docs[i].Filename, docs[i].TotalPages, docs[i].ChunkCount)
	}
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	filename := args[0]
	if err := documentService.Delete(cmd.Context(), filename); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return fmt.Errorf("no document named %q", filename)
		}
		return fmt.Errorf("deleting %q: %w", filename, err)
	}

	cmd.Printf("Deleted %s\n", filename)
	return nil
}
