// Package tui provides an interactive terminal user interface for docsight.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driving"
	"github.com/docsight-labs/docsight-cli/internal/core/services"
)

// Ports aggregates everything the TUI needs from the core.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query asks questions against the backend.
	Query driving.QueryService

	// Document exposes the catalog and page content.
	Document driving.DocumentService

	// Catalog is the shared document catalog used for deep-link
	// resolution in the viewer.
	Catalog *services.Catalog

	// History lists past exchanges. Optional; nil disables the feature.
	History driving.HistoryService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	query driving.QueryService,
	document driving.DocumentService,
	catalog *services.Catalog,
) *Ports {
	return &Ports{
		Query:    query,
		Document: document,
		Catalog:  catalog,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Catalog == nil {
		return ErrMissingCatalog
	}
	return nil
}
