// Package viewer provides the document page viewer for the TUI. It renders
// one page of chunks at a time and deep-links citations to their source
// passage, scrolling the highlighted chunk into view exactly once.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/keymap"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/messages"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/styles"
	"github.com/docsight-labs/docsight-cli/internal/core/domain"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driving"
	"github.com/docsight-labs/docsight-cli/internal/core/services"
)

// ErrNoDocumentService is returned when the view has no document service.
var ErrNoDocumentService = errors.New("viewer: no document service configured")

// settleDelay is how long after a page renders the highlight scroll fires.
// One tick is enough for the layout to settle; the generation check on the
// resulting message keeps a late tick from scrolling a newer page.
const settleDelay = 50 * time.Millisecond

// View renders one page of a document's chunks. Page navigation and deep
// link opening go through the navigator, which discards fetch results that
// arrive after a newer navigation superseded them.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	nav    *services.Navigator

	documentService driving.DocumentService
	catalog         *services.Catalog
	ctx             context.Context

	// target is the last requested navigation target, kept so retry can
	// re-run resolution after a failed Open.
	target domain.NavigationTarget

	// refreshing is true while a catalog reload for a deferred open is in
	// flight, so the interim not-found state renders as loading.
	refreshing bool

	// lines is the wrapped render of the current chunks; chunkStart maps
	// a chunk index to its first line for highlight scrolling.
	lines      []string
	chunkStart []int

	scrollOffset  int
	pendingScroll int

	width  int
	height int
	ready  bool
}

// NewView creates a new viewer resolving documents against the catalog.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	documentService driving.DocumentService,
	catalog *services.Catalog,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		nav:             services.NewNavigator(catalog),
		documentService: documentService,
		catalog:         catalog,
		ctx:             context.Background(),
		pendingScroll:   -1,
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the viewer.
func (v *View) Init() tea.Cmd {
	return nil
}

// catalogRefreshed reports the catalog reload that precedes resolving a
// deep link when the catalog has not been populated yet.
type catalogRefreshed struct {
	target    domain.NavigationTarget
	documents []domain.Document
	err       error
}

// Open starts navigation to a target. An empty catalog is refreshed first,
// so a citation opened right after startup still resolves. Resolution
// failure leaves the viewer in an error state, rendered with a retry hint;
// the fetch command for the resolved page is returned otherwise.
func (v *View) Open(target domain.NavigationTarget) tea.Cmd {
	v.lines = nil
	v.chunkStart = nil
	v.scrollOffset = 0
	v.pendingScroll = -1
	v.target = target
	v.refreshing = false

	req, err := v.nav.Open(target)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) && v.canRefreshCatalog() {
			v.refreshing = true
			return v.refreshCatalog(target)
		}
		return nil
	}
	return v.fetchPage(req)
}

// canRefreshCatalog reports whether an unresolved target is worth a catalog
// reload: only when the catalog is empty, so unknown documents against a
// populated catalog stay a plain error.
func (v *View) canRefreshCatalog() bool {
	return v.catalog != nil && v.documentService != nil && len(v.catalog.Documents()) == 0
}

// refreshCatalog reloads the document list, then retries the deferred open.
func (v *View) refreshCatalog(target domain.NavigationTarget) tea.Cmd {
	return func() tea.Msg {
		documents, err := v.documentService.Documents(v.ctx)
		return catalogRefreshed{target: target, documents: documents, err: err}
	}
}

// fetchPage executes one page fetch and delivers the outcome tagged with
// the generation that requested it.
func (v *View) fetchPage(req services.PageRequest) tea.Cmd {
	return func() tea.Msg {
		if v.documentService == nil {
			return messages.PageLoaded{Generation: req.Generation, Err: ErrNoDocumentService}
		}
		chunks, err := v.documentService.PageChunks(v.ctx, req.Document.Filename, req.Page)
		return messages.PageLoaded{Generation: req.Generation, Chunks: chunks, Err: err}
	}
}

// Update handles messages for the viewer.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PageLoaded:
		return v.handlePageLoaded(msg)

	case messages.HighlightSettled:
		v.handleHighlightSettled(msg)
		return v, nil

	case catalogRefreshed:
		return v.handleCatalogRefreshed(msg)
	}

	return v, nil
}

// handlePageLoaded folds a fetch result into the navigator and re-renders.
// Stale results are discarded untouched.
func (v *View) handlePageLoaded(msg messages.PageLoaded) (*View, tea.Cmd) {
	outcome := v.nav.Apply(services.PageResult{
		Generation: msg.Generation,
		Chunks:     msg.Chunks,
		Err:        msg.Err,
	})
	if !outcome.Applied || v.nav.State() != services.StateReady {
		return v, nil
	}

	v.rebuildLines()
	v.scrollOffset = 0
	v.pendingScroll = -1

	if outcome.HasScroll {
		v.pendingScroll = outcome.ScrollTo
		generation := msg.Generation
		return v, tea.Tick(settleDelay, func(time.Time) tea.Msg {
			return messages.HighlightSettled{Generation: generation}
		})
	}
	return v, nil
}

// handleCatalogRefreshed retries a deferred open once the catalog has been
// reloaded. A refresh that arrives after a newer navigation is dropped.
func (v *View) handleCatalogRefreshed(msg catalogRefreshed) (*View, tea.Cmd) {
	if msg.target != v.target {
		return v, nil
	}
	v.refreshing = false
	if msg.err != nil {
		return v, nil
	}

	v.catalog.SetDocuments(msg.documents)

	req, err := v.nav.Open(msg.target)
	if err != nil {
		return v, nil
	}
	return v, v.fetchPage(req)
}

// handleHighlightSettled performs the one-shot scroll to the highlighted
// chunk, unless navigation moved on while the tick was pending.
func (v *View) handleHighlightSettled(msg messages.HighlightSettled) {
	if msg.Generation != v.nav.Generation() || v.pendingScroll < 0 {
		return
	}
	if v.pendingScroll < len(v.chunkStart) {
		v.scrollTo(v.chunkStart[v.pendingScroll])
	}
	v.pendingScroll = -1
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.PrevPage):
		return v.goToPage(v.nav.Page() - 1)

	case keymap.Matches(keyStr, v.keymap.NextPage):
		return v.goToPage(v.nav.Page() + 1)

	case keymap.Matches(keyStr, v.keymap.Up):
		v.scrollTo(v.scrollOffset - 1)

	case keymap.Matches(keyStr, v.keymap.Down):
		v.scrollTo(v.scrollOffset + 1)

	case keymap.Matches(keyStr, v.keymap.Top):
		v.scrollTo(0)

	case keymap.Matches(keyStr, v.keymap.Bottom):
		v.scrollTo(v.maxScrollOffset())

	case keymap.Matches(keyStr, v.keymap.Retry):
		if req, ok := v.nav.Retry(); ok {
			return v, v.fetchPage(req)
		}
		// Resolution failures leave the navigator without a document, so
		// retry must go through a fresh open.
		if v.nav.State() == services.StateError {
			return v, v.Open(v.target)
		}
	}

	return v, nil
}

// goToPage navigates to an explicit page. Out-of-range pages are rejected
// by the navigator with no state change.
func (v *View) goToPage(page int) (*View, tea.Cmd) {
	req, ok := v.nav.GoToPage(page)
	if !ok {
		return v, nil
	}
	v.pendingScroll = -1
	return v, v.fetchPage(req)
}

// rebuildLines wraps the current chunks into render lines and records where
// each chunk starts.
func (v *View) rebuildLines() {
	chunks := v.nav.Chunks()
	highlightID := v.nav.Target().HighlightChunkID

	v.lines = v.lines[:0]
	v.chunkStart = v.chunkStart[:0]

	wrapAt := v.width - 4
	if wrapAt < 20 {
		wrapAt = 20
	}

	for i := range chunks {
		chunk := &chunks[i]
		v.chunkStart = append(v.chunkStart, len(v.lines))

		style := v.chunkStyle(chunk, highlightID)
		for _, line := range wrapText(chunk.Text, wrapAt) {
			v.lines = append(v.lines, style.Render(line))
		}
		if i < len(chunks)-1 {
			v.lines = append(v.lines, "")
		}
	}
}

// chunkStyle picks the render style for a chunk.
func (v *View) chunkStyle(chunk *domain.Chunk, highlightID string) lipgloss.Style {
	if highlightID != "" && chunk.ID == highlightID {
		return v.styles.Highlight
	}
	if chunk.Type == domain.SemanticHeading {
		return v.styles.Heading
	}
	return v.styles.Normal
}

// wrapText wraps text into lines no wider than width. Words longer than
// the width get a line of their own rather than being split.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	lines = append(lines, current)
	return lines
}

// View renders the viewer.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 6)
	sections = append(sections, v.renderHeader(), "")

	switch v.nav.State() {
	case services.StateLoading:
		sections = append(sections, v.styles.Muted.Render("Loading page..."))
	case services.StateError:
		if v.refreshing {
			sections = append(sections, v.styles.Muted.Render("Loading page..."))
			break
		}
		sections = append(sections, v.renderError())
	case services.StateReady:
		sections = append(sections, v.renderPage())
	case services.StateIdle:
		sections = append(sections, v.styles.Muted.Render("No document open"))
	}

	sections = append(sections, "", v.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader shows the document name and page position.
func (v *View) renderHeader() string {
	doc := v.nav.Document()
	if doc == nil {
		return v.styles.Title.Render("Viewer")
	}
	title := v.styles.Title.Render(doc.Filename)
	position := v.styles.Muted.Render(fmt.Sprintf("  Page %d/%d", v.nav.Page(), doc.TotalPages))
	return title + position
}

// renderError shows the failure that stopped the last navigation.
func (v *View) renderError() string {
	message := "navigation failed"
	if err := v.nav.Err(); err != nil {
		message = err.Error()
	}
	errView := v.styles.Error.Render("Error: " + message)
	hint := v.styles.Muted.Render("[r] Retry  [Esc] Back")
	return errView + "\n\n" + hint
}

// renderPage shows the visible window of the current page's lines.
func (v *View) renderPage() string {
	if len(v.lines) == 0 {
		return v.styles.Muted.Render("This page has no content")
	}

	visible := v.visibleLines()
	end := v.scrollOffset + visible
	if end > len(v.lines) {
		end = len(v.lines)
	}
	start := v.scrollOffset
	if start > end {
		start = end
	}

	return strings.Join(v.lines[start:end], "\n")
}

// renderFooter shows navigation hints and the scroll position.
func (v *View) renderFooter() string {
	hints := "[h/l] Page  [j/k] Scroll  [g/G] Top/Bottom  [Esc] Back"
	if v.nav.State() == services.StateError && !v.refreshing {
		hints = "[r] Retry  [Esc] Back"
	}

	position := ""
	if max := v.maxScrollOffset(); max > 0 {
		position = fmt.Sprintf("  %d/%d", v.scrollOffset+1, max+1)
	}

	return v.styles.Muted.Render(hints + position)
}

// scrollTo clamps and applies a scroll offset.
func (v *View) scrollTo(offset int) {
	if offset < 0 {
		offset = 0
	}
	if max := v.maxScrollOffset(); offset > max {
		offset = max
	}
	v.scrollOffset = offset
}

// visibleLines is how many content lines fit between header and footer.
func (v *View) visibleLines() int {
	visible := v.height - 6
	if visible < 1 {
		visible = 1
	}
	return visible
}

// maxScrollOffset is the largest valid scroll offset for the current page.
func (v *View) maxScrollOffset() int {
	max := len(v.lines) - v.visibleLines()
	if max < 0 {
		max = 0
	}
	return max
}

// SetDimensions sets the view dimensions and re-wraps the current page.
func (v *View) SetDimensions(width, height int) {
	rewrap := width != v.width
	v.width = width
	v.height = height
	v.ready = true

	if rewrap && v.nav.State() == services.StateReady {
		v.rebuildLines()
		v.scrollTo(v.scrollOffset)
	}
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Navigator exposes the underlying navigator, mainly for inspection.
func (v *View) Navigator() *services.Navigator {
	return v.nav
}

// ScrollOffset returns the current scroll offset.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}
