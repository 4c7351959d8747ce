package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [path]",
	Short: "Upload a document for processing",
	Long: `Uploads a local file to the backend, which extracts its text into
page-addressed chunks. Processing can take a while for large documents.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read %q: %w", path, err)
	}

	cmd.Printf("Uploading %s...\n", path)
	result, err := documentService.Upload(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Processed %s: %d chunks created\n", result.Filename, result.ChunksCreated)
	return nil
}
