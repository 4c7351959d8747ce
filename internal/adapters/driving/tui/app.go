package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/messages"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/styles"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/views/chat"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/views/documents"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/views/menu"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/views/viewer"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// chatView is the question and answer view.
	chatView *chat.View

	// documentsView is the document catalog view.
	documentsView *documents.View

	// viewerView shows one page of a document and handles deep links.
	viewerView *viewer.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// returnView is where Esc from the viewer goes back to: documents
	// when opened from the list, chat when opened from a citation.
	returnView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		menuView:      menu.NewView(s),
		chatView:      chat.NewView(s, nil, ports.Query),
		documentsView: documents.NewView(s, nil, ports.Document),
		viewerView:    viewer.NewView(s, nil, ports.Document, ports.Catalog),
		currentView:   messages.ViewMenu,
		returnView:    messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and all views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	a.documentsView.WithContext(ctx)
	a.viewerView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("docsight"),
		a.watchCatalogUpdates(),
	)
}

// watchCatalogUpdates blocks until the catalog publishes a change, then
// reports the fresh contents. Update re-arms it after every delivery.
func (a *App) watchCatalogUpdates() tea.Cmd {
	return func() tea.Msg {
		<-a.ports.Catalog.Updates()
		return messages.CatalogUpdated{Documents: a.ports.Catalog.Documents()}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.chatView.SetDimensions(msg.Width, msg.Height)
		a.documentsView.SetDimensions(msg.Width, msg.Height)
		a.viewerView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to the active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
			a.err = a.chatView.Err()
			return a, cmd

		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
			a.err = a.documentsView.Err()
			return a, cmd

		case messages.ViewViewer:
			// Esc from the viewer returns to where it was opened from
			if msg.Type == tea.KeyEsc {
				a.currentView = a.returnView
				return a, nil
			}
			a.viewerView, cmd = a.viewerView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewChat:
			return a, a.chatView.Init()
		case messages.ViewDocuments:
			return a, a.documentsView.Init()
		case messages.ViewMenu, messages.ViewViewer, messages.ViewHelp:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.OpenTarget:
		// Deep-link navigation: remember where we came from, then hand
		// the target to the viewer.
		a.returnView = a.currentView
		a.currentView = messages.ViewViewer
		return a, a.viewerView.Open(msg.Target)

	case messages.AnswerReceived:
		a.chatView, cmd = a.chatView.Update(msg)
		a.err = a.chatView.Err()
		return a, cmd

	case messages.DocumentsLoaded, messages.DocumentDeleted:
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.err = a.documentsView.Err()
		return a, cmd

	case messages.CatalogUpdated:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, tea.Batch(cmd, a.watchCatalogUpdates())

	case messages.PageLoaded, messages.HighlightSettled:
		a.viewerView, cmd = a.viewerView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to current view
		switch a.currentView {
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewViewer:
			a.viewerView, cmd = a.viewerView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewViewer:
		a.viewerView, cmd = a.viewerView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewViewer:
		return a.viewerView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Ask:
  (type)      Enter a question
  enter       Submit question
  1-9         Open citation source
  n           New question

Documents:
  j/k, ↑/↓    Navigate documents
  enter       Open document
  x           Delete document
  r           Refresh list

Viewer:
  h/l, ←/→    Previous/next page
  j/k, ↑/↓    Scroll
  g/G         Top/bottom of page
  r           Retry failed load

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
	a.viewerView.SetDimensions(width, height)
}
