// Package documents provides the document catalog view for the TUI.
package documents

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/components/list"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/components/status"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/keymap"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/messages"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/styles"
	"github.com/docsight-labs/docsight-cli/internal/core/domain"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driving"
)

// ErrNoDocumentService is returned when the view has no document service.
var ErrNoDocumentService = errors.New("documents: no document service configured")

// View lists the backend's documents. Enter opens the selected document at
// its first page, x deletes it, r refreshes the list.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.DocumentList
	statusbar *status.Bar

	documentService driving.DocumentService
	ctx             context.Context

	width   int
	height  int
	ready   bool
	loading bool
	err     error
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, km *keymap.KeyMap, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		list:            list.NewDocumentList(s),
		statusbar:       status.NewBar(s, km),
		documentService: documentService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init triggers the initial catalog load.
func (v *View) Init() tea.Cmd {
	return v.Refresh()
}

// Refresh returns a command that reloads the catalog.
func (v *View) Refresh() tea.Cmd {
	v.loading = true
	v.statusbar.SetState(status.StateLoading)
	return func() tea.Msg {
		if v.documentService == nil {
			return messages.DocumentsLoaded{Err: ErrNoDocumentService}
		}
		documents, err := v.documentService.Documents(v.ctx)
		return messages.DocumentsLoaded{Documents: documents, Err: err}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.handleDocumentsLoaded(msg)
		return v, nil

	case messages.DocumentDeleted:
		return v.handleDocumentDeleted(msg)

	case messages.CatalogUpdated:
		v.handleCatalogUpdated(msg)
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyEnter {
		return v.openSelected()
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
	case "j":
		v.list.MoveDown()
	case "r":
		return v, v.Refresh()
	case "x":
		return v.deleteSelected()
	}

	return v, nil
}

// openSelected emits an OpenTarget for the selected document's first page.
func (v *View) openSelected() (*View, tea.Cmd) {
	doc := v.list.SelectedDocument()
	if doc == nil {
		return v, nil
	}
	target := domain.NavigationTarget{DocumentID: doc.Filename, Page: 1}
	return v, func() tea.Msg {
		return messages.OpenTarget{Target: target}
	}
}

// deleteSelected removes the selected document from the backend.
func (v *View) deleteSelected() (*View, tea.Cmd) {
	doc := v.list.SelectedDocument()
	if doc == nil {
		return v, nil
	}
	filename := doc.Filename
	v.statusbar.SetState(status.StateLoading)
	return v, func() tea.Msg {
		if v.documentService == nil {
			return messages.DocumentDeleted{Filename: filename, Err: ErrNoDocumentService}
		}
		err := v.documentService.Delete(v.ctx, filename)
		return messages.DocumentDeleted{Filename: filename, Err: err}
	}
}

// handleDocumentsLoaded folds a catalog refresh into the view.
func (v *View) handleDocumentsLoaded(msg messages.DocumentsLoaded) {
	v.loading = false

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.list.SetDocuments(msg.Documents)
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// handleCatalogUpdated mirrors a catalog change made elsewhere (an upload,
// a delete, a viewer deep-link refresh) into the list without another fetch.
func (v *View) handleCatalogUpdated(msg messages.CatalogUpdated) {
	v.list.SetDocuments(msg.Documents)
}

// handleDocumentDeleted reports the delete outcome and refreshes on success.
func (v *View) handleDocumentDeleted(msg messages.DocumentDeleted) (*View, tea.Cmd) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("Deleted " + msg.Filename)
	return v, v.Refresh()
}

// View renders the documents view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Documents")
	sections = append(sections, header, "")

	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	if v.loading && v.list.IsEmpty() {
		sections = append(sections, v.styles.Muted.Render("Loading..."))
	} else {
		sections = append(sections, v.list.View())
	}

	sections = append(sections, "")
	hints := v.styles.Muted.Render("[Enter] Open  [x] Delete  [r] Refresh  [Esc] Back")
	sections = append(sections, hints, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.list.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Loading reports whether a catalog refresh is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Documents returns the currently listed documents.
func (v *View) Documents() []domain.Document {
	return v.list.Documents()
}

// SelectedDocument returns the selected document, nil when the list is empty.
func (v *View) SelectedDocument() *domain.Document {
	return v.list.SelectedDocument()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
