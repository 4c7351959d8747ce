package services

import (
	"context"

	"github.com/docsight-labs/docsight-cli/internal/core/domain"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driven"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driving"
	"github.com/docsight-labs/docsight-cli/internal/logger"
)

// Ensure DocumentService implements the driving port.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService mediates document catalog and page content access,
// keeping the shared catalog in sync with the backend.
type DocumentService struct {
	backend driven.Backend
	catalog *Catalog
}

// NewDocumentService creates a document service that refreshes the given
// catalog on every listing.
func NewDocumentService(backend driven.Backend, catalog *Catalog) *DocumentService {
	return &DocumentService{
		backend: backend,
		catalog: catalog,
	}
}

// Documents refreshes the catalog from the backend and returns its contents.
func (s *DocumentService) Documents(ctx context.Context) ([]domain.Document, error) {
	if err := s.catalog.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.catalog.Documents(), nil
}

// PageChunks returns the chunks of one page of a document.
func (s *DocumentService) PageChunks(ctx context.Context, filename string, page int) ([]domain.Chunk, error) {
	if s.backend == nil {
		return nil, domain.ErrBackendUnavailable
	}
	return s.backend.PageChunks(ctx, filename, page)
}

// Upload sends a local file to the backend and refreshes the catalog so
// the new document shows up immediately.
func (s *DocumentService) Upload(ctx context.Context, path string) (*domain.UploadResult, error) {
	if s.backend == nil {
		return nil, domain.ErrBackendUnavailable
	}
	result, err := s.backend.UploadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.Refresh(ctx); err != nil {
		logger.Warn("refreshing catalog after upload: %v", err)
	}
	return result, nil
}

// Delete removes a document from the backend and refreshes the catalog.
func (s *DocumentService) Delete(ctx context.Context, filename string) error {
	if s.backend == nil {
		return domain.ErrBackendUnavailable
	}
	if err := s.backend.DeleteDocument(ctx, filename); err != nil {
		return err
	}
	if err := s.catalog.Refresh(ctx); err != nil {
		logger.Warn("refreshing catalog after delete: %v", err)
	}
	return nil
}

// Health probes the backend.
func (s *DocumentService) Health(ctx context.Context) (*domain.Health, error) {
	if s.backend == nil {
		return nil, domain.ErrBackendUnavailable
	}
	return s.backend.Health(ctx)
}
