package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/docsight-labs/docsight-cli/internal/core/domain"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driven"
)

// Catalog is the explicitly owned container for the backend's document
// list. It is constructed once and handed to whoever needs document
// resolution; changes are published on the Updates channel instead of being
// observed through shared mutation.
type Catalog struct {
	backend driven.Backend

	mu        sync.RWMutex
	documents []domain.Document
	updates   chan struct{}
}

// NewCatalog creates an empty catalog backed by the given backend.
func NewCatalog(backend driven.Backend) *Catalog {
	return &Catalog{
		backend: backend,
		updates: make(chan struct{}, 1),
	}
}

// Refresh fetches the document list from the backend and replaces the
// catalog contents.
func (c *Catalog) Refresh(ctx context.Context) error {
	if c.backend == nil {
		return domain.ErrBackendUnavailable
	}
	documents, err := c.backend.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("refreshing catalog: %w", err)
	}
	c.SetDocuments(documents)
	return nil
}

// SetDocuments replaces the catalog contents and notifies subscribers.
func (c *Catalog) SetDocuments(documents []domain.Document) {
	c.mu.Lock()
	c.documents = make([]domain.Document, len(documents))
	copy(c.documents, documents)
	c.mu.Unlock()

	// Non-blocking: the channel holds at most one pending notification.
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// Documents returns a copy of the current catalog contents.
func (c *Catalog) Documents() []domain.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()

	documents := make([]domain.Document, len(c.documents))
	copy(documents, c.documents)
	return documents
}

// Updates returns a channel that receives a signal after each catalog
// replacement. The channel is never closed.
func (c *Catalog) Updates() <-chan struct{} {
	return c.updates
}

// Resolve locates the document a navigation target identifier refers to.
// Precedence, in order: exact filename match; first entry whose filename
// contains the identifier as a substring; first entry whose filename is
// itself a substring of the identifier. The order is fixed to keep fuzzy
// matching deterministic.
func (c *Catalog) Resolve(documentID string) (*domain.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if documentID == "" {
		return nil, domain.ErrDocumentNotFound
	}

	for i := range c.documents {
		if c.documents[i].Filename == documentID {
			doc := c.documents[i]
			return &doc, nil
		}
	}
	for i := range c.documents {
		if strings.Contains(c.documents[i].Filename, documentID) {
			doc := c.documents[i]
			return &doc, nil
		}
	}
	for i := range c.documents {
		if c.documents[i].Filename != "" && strings.Contains(documentID, c.documents[i].Filename) {
			doc := c.documents[i]
			return &doc, nil
		}
	}
	return nil, domain.ErrDocumentNotFound
}
