package driven

import (
	"context"

	"github.com/docsight-labs/docsight-cli/internal/core/domain"
)

// Backend is the fixed request/response contract with the external
// document-QA service. Retrieval, embedding, and answer generation all
// happen behind it; the client only consumes the shapes it returns.
type Backend interface {
	// Query asks a question and returns the generated answer with its
	// citation list. topK bounds how many chunks the backend retrieves.
	Query(ctx context.Context, question string, topK int) (*domain.Answer, error)

	// ListDocuments returns the document catalog.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// PageChunks returns the chunks of one page of one document, ordered
	// by paragraph number ascending. Failures are reported as
	// *domain.ChunkFetchError. Every call is independent; its result
	// supersedes any prior result the caller holds for the same page.
	PageChunks(ctx context.Context, filename string, page int) ([]domain.Chunk, error)

	// UploadFile uploads a local file for ingestion.
	UploadFile(ctx context.Context, path string) (*domain.UploadResult, error)

	// DeleteDocument removes a document and its chunks from the backend.
	DeleteDocument(ctx context.Context, filename string) error

	// Health probes the backend and its components.
	Health(ctx context.Context) (*domain.Health, error)
}
