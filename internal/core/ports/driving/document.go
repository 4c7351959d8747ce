package driving

import (
	"context"

	"github.com/docsight-labs/docsight-cli/internal/core/domain"
)

// DocumentService exposes the backend's document catalog and page content
// to the user interfaces.
type DocumentService interface {
	// Documents refreshes and returns the document catalog.
	Documents(ctx context.Context) ([]domain.Document, error)

	// PageChunks returns the chunks of one page of a document in
	// paragraph order.
	PageChunks(ctx context.Context, filename string, page int) ([]domain.Chunk, error)

	// Upload sends a local file to the backend for processing.
	Upload(ctx context.Context, path string) (*domain.UploadResult, error)

	// Delete removes a document from the backend.
	Delete(ctx context.Context, filename string) error

	// Health probes the backend.
	Health(ctx context.Context) (*domain.Health, error)
}
