// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/styles"
	"github.com/docsight-labs/docsight-cli/internal/core/domain"
)

// DocumentList displays the document catalog in a navigable list.
type DocumentList struct {
	documents []domain.Document
	selected  int
	styles    *styles.Styles
	width     int
	height    int
}

// NewDocumentList creates a new document list component.
func NewDocumentList(s *styles.Styles) *DocumentList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &DocumentList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the document list.
func (l *DocumentList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *DocumentList) Update(msg tea.Msg) (*DocumentList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			l.MoveUp()
		case tea.KeyDown:
			l.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			l.MoveUp()
		case "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the document list.
func (l *DocumentList) View() string {
	if len(l.documents) == 0 {
		return l.styles.Muted.Render("No documents uploaded yet")
	}

	lines := make([]string, 0, len(l.documents)+2)

	header := l.styles.Subtitle.Render(fmt.Sprintf("Documents (%d)", len(l.documents)))
	lines = append(lines, header, "")

	// Each document takes one line
	visibleCount := l.height - 4
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.documents) {
		end = len(l.documents)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderDocument(i, &l.documents[i]))
	}

	return strings.Join(lines, "\n")
}

// renderDocument formats a single catalog entry.
func (l *DocumentList) renderDocument(index int, doc *domain.Document) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	name := doc.Filename
	maxNameLen := l.width - 30
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	info := fmt.Sprintf("%d pages, %d chunks", doc.TotalPages, doc.ChunkCount)

	if index == l.selected {
		return l.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxNameLen, name, info))
	}
	return l.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxNameLen, name)) +
		l.styles.Muted.Render(info)
}

// SetDocuments updates the list contents.
func (l *DocumentList) SetDocuments(documents []domain.Document) {
	l.documents = documents
	if l.selected >= len(documents) {
		l.selected = 0
	}
}

// Documents returns the current list contents.
func (l *DocumentList) Documents() []domain.Document {
	return l.documents
}

// Selected returns the index of the selected document.
func (l *DocumentList) Selected() int {
	return l.selected
}

// SelectedDocument returns the currently selected document, or nil if none.
func (l *DocumentList) SelectedDocument() *domain.Document {
	if len(l.documents) == 0 || l.selected < 0 || l.selected >= len(l.documents) {
		return nil
	}
	return &l.documents[l.selected]
}

// MoveUp moves selection up.
func (l *DocumentList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *DocumentList) MoveDown() {
	if l.selected < len(l.documents)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *DocumentList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of documents.
func (l *DocumentList) Count() int {
	return len(l.documents)
}

// IsEmpty returns whether the list is empty.
func (l *DocumentList) IsEmpty() bool {
	return len(l.documents) == 0
}
