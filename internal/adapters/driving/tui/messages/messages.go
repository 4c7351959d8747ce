// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/docsight-labs/docsight-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewChat is the question input and answer view.
	ViewChat
	// ViewDocuments lists the backend's documents.
	ViewDocuments
	// ViewViewer shows one page of a document's chunks.
	ViewViewer
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChat:
		return "chat"
	case ViewDocuments:
		return "documents"
	case ViewViewer:
		return "viewer"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// AnswerReceived carries a query answer back to the chat view.
type AnswerReceived struct {
	Question string
	Answer   *domain.Answer
	Err      error
}

// DocumentsLoaded carries the refreshed document catalog.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// CatalogUpdated mirrors a catalog replacement published on the catalog's
// update channel, so views showing the document list stay current when an
// upload, delete, or deep-link refresh changes it elsewhere.
type CatalogUpdated struct {
	Documents []domain.Document
}

// DocumentDeleted signals a document was removed from the backend.
type DocumentDeleted struct {
	Filename string
	Err      error
}

// OpenTarget requests navigation to a document location, either from a
// citation's deep link or from the document list.
type OpenTarget struct {
	Target domain.NavigationTarget
}

// PageLoaded carries one page fetch outcome into the viewer. Generation
// ties the result to the navigation that requested it; stale generations
// are discarded.
type PageLoaded struct {
	Generation uint64
	Chunks     []domain.Chunk
	Err        error
}

// HighlightSettled fires once after a highlighted page has rendered, so
// the viewer can scroll the highlight into view exactly once.
type HighlightSettled struct {
	Generation uint64
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
