package services

import (
	"github.com/docsight-labs/docsight-cli/internal/core/domain"
)

// PageState identifies the navigator's lifecycle phase for the current page.
type PageState int

const (
	// StateIdle means no navigation has happened yet.
	StateIdle PageState = iota

	// StateLoading means a page fetch is in flight.
	StateLoading

	// StateReady means the current page's chunks are displayed.
	StateReady

	// StateError means document resolution or the page fetch failed.
	StateError
)

// String returns the string representation of the state.
func (s PageState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// PageRequest describes one page fetch the caller must perform. Generation
// ties the eventual result back to the navigation that requested it.
type PageRequest struct {
	// Generation is the navigation generation that issued the request.
	Generation uint64

	// Document is the resolved document the page belongs to.
	Document domain.Document

	// Page is the clamped 1-based page to fetch.
	Page int
}

// PageResult carries the outcome of a page fetch back into the navigator.
type PageResult struct {
	// Generation must echo the PageRequest that triggered the fetch.
	Generation uint64

	// Chunks are the fetched page chunks, nil on failure.
	Chunks []domain.Chunk

	// Err is the fetch failure, nil on success.
	Err error
}

// ApplyOutcome reports what applying a fetch result changed.
type ApplyOutcome struct {
	// Applied is false when the result was stale and discarded.
	Applied bool

	// ScrollTo is the index into Chunks of the highlight target.
	// Only meaningful when HasScroll is true.
	ScrollTo int

	// HasScroll is true when a single scroll to ScrollTo should be
	// scheduled after the next layout pass.
	HasScroll bool
}

// Navigator reconciles deep-link navigation targets with asynchronously
// fetched page content. It owns the generation counter that guards against
// out-of-order fetch completions: a result is applied only while its
// generation is still current, so rapid page changes can never paint a
// superseded page over a newer one.
//
// All methods must be called from a single goroutine; in the TUI that is
// the bubbletea update loop, which makes every transition atomic.
type Navigator struct {
	catalog *Catalog

	generation uint64
	target     domain.NavigationTarget
	document   *domain.Document
	page       int
	chunks     []domain.Chunk
	state      PageState
	err        error

	// highlight is the chunk to scroll to once its page is applied.
	highlight string

	// targetPage is the clamped page the deep link pointed at. Manual
	// page changes only carry the highlight when they return here.
	targetPage int

	// scrolledFor is the highlight id already signalled, so repeated
	// loads of the same page do not re-trigger a scroll.
	scrolledFor string
}

// NewNavigator creates a navigator resolving documents against the catalog.
func NewNavigator(catalog *Catalog) *Navigator {
	return &Navigator{catalog: catalog}
}

// Open resolves the target's document and begins loading its page. The
// returned request must be executed by the caller and its result handed to
// Apply. Resolution failure puts the navigator into StateError and returns
// domain.ErrDocumentNotFound.
func (n *Navigator) Open(target domain.NavigationTarget) (PageRequest, error) {
	document, err := n.catalog.Resolve(target.DocumentID)
	if err != nil {
		n.state = StateError
		n.err = err
		n.document = nil
		n.chunks = nil
		return PageRequest{}, err
	}

	n.target = target
	n.document = document
	n.highlight = target.HighlightChunkID
	n.targetPage = clampPage(target.Page, document.TotalPages)
	n.scrolledFor = ""

	return n.request(n.targetPage), nil
}

// GoToPage navigates to an explicit page of the current document. Pages
// outside [1, TotalPages] are rejected with no state change. The deep
// link's highlight is carried over only when returning to the page the
// link originally pointed at; on any other page no highlight search runs.
func (n *Navigator) GoToPage(page int) (PageRequest, bool) {
	if n.document == nil || page < 1 || page > n.document.TotalPages {
		return PageRequest{}, false
	}

	if page == n.targetPage {
		n.highlight = n.target.HighlightChunkID
	} else {
		n.highlight = ""
	}

	return n.request(page), true
}

// Retry re-issues the fetch for the current page after a failure.
func (n *Navigator) Retry() (PageRequest, bool) {
	if n.document == nil {
		return PageRequest{}, false
	}
	return n.request(n.page), true
}

// request bumps the generation and enters the loading state. Any fetch
// still in flight for an older generation is implicitly superseded: its
// result will be discarded at apply time.
func (n *Navigator) request(page int) PageRequest {
	n.generation++
	n.page = page
	n.state = StateLoading
	n.err = nil

	return PageRequest{
		Generation: n.generation,
		Document:   *n.document,
		Page:       page,
	}
}

// Apply folds a fetch result into the navigator. Stale results (any
// generation other than the current one) are discarded without touching
// state. On success the outcome reports whether, and where, a single
// highlight scroll should be scheduled; a highlight that is not among the
// loaded chunks is a silent no-op.
func (n *Navigator) Apply(result PageResult) ApplyOutcome {
	if result.Generation != n.generation {
		return ApplyOutcome{}
	}

	if result.Err != nil {
		n.state = StateError
		n.err = result.Err
		return ApplyOutcome{Applied: true}
	}

	n.chunks = result.Chunks
	n.state = StateReady
	n.err = nil

	outcome := ApplyOutcome{Applied: true}
	if n.highlight != "" && n.highlight != n.scrolledFor {
		for i := range n.chunks {
			if n.chunks[i].ID == n.highlight {
				outcome.ScrollTo = i
				outcome.HasScroll = true
				n.scrolledFor = n.highlight
				break
			}
		}
	}
	return outcome
}

// State returns the current lifecycle state.
func (n *Navigator) State() PageState {
	return n.state
}

// Err returns the error that put the navigator into StateError.
func (n *Navigator) Err() error {
	return n.err
}

// Document returns the resolved document, nil before a successful Open.
func (n *Navigator) Document() *domain.Document {
	return n.document
}

// Page returns the page the navigator currently points at.
func (n *Navigator) Page() int {
	return n.page
}

// Chunks returns the chunks of the last applied page load.
func (n *Navigator) Chunks() []domain.Chunk {
	return n.chunks
}

// Target returns the navigation target of the last Open.
func (n *Navigator) Target() domain.NavigationTarget {
	return n.target
}

// Generation returns the current navigation generation.
func (n *Navigator) Generation() uint64 {
	return n.generation
}

// Highlight returns the chunk id a scroll is pending for, empty when none.
func (n *Navigator) Highlight() string {
	return n.highlight
}

// clampPage clamps an out-of-range deep-link page into [1, totalPages].
// Out-of-range links are not an error.
func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages >= 1 && page > totalPages {
		return totalPages
	}
	return page
}
