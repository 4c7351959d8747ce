package domain

// SemanticType classifies the role a chunk plays within its source document.
type SemanticType string

const (
	// SemanticParagraph is a regular body paragraph.
	SemanticParagraph SemanticType = "paragraph"

	// SemanticHeading is a section or chapter heading.
	SemanticHeading SemanticType = "heading"

	// SemanticTable is tabular content flattened to text.
	SemanticTable SemanticType = "table"

	// SemanticListItem is a single bullet or numbered list entry.
	SemanticListItem SemanticType = "list_item"

	// SemanticCaption is a figure or table caption.
	SemanticCaption SemanticType = "caption"
)

// Document describes one uploaded document as reported by the backend
// catalog. The filename doubles as the stable identifier; documents are
// created by the upload pipeline and never mutated client-side.
type Document struct {
	// Filename is the unique, stable identifier.
	Filename string `json:"filename"`

	// TotalPages is the number of pages, at least 1.
	TotalPages int `json:"total_pages"`

	// ChunkCount is the number of extracted chunks.
	ChunkCount int `json:"chunk_count"`

	// CreatedAt is the upload timestamp as the backend formats it.
	CreatedAt string `json:"created_at,omitempty"`
}

// Chunk is a paragraph-sized unit of a document's extracted text,
// addressable by page and paragraph. Chunks are immutable once fetched;
// a new page fetch supersedes any previously held chunks for that page.
type Chunk struct {
	// ID is unique within the owning document.
	ID string `json:"chunk_id"`

	// Filename identifies the owning document.
	Filename string `json:"filename"`

	// PageNumber is the 1-based page the chunk was extracted from.
	PageNumber int `json:"page_number"`

	// ParagraphNumber is the 0-based paragraph position on the page.
	ParagraphNumber int `json:"paragraph_number"`

	// Type is the semantic classification of the chunk.
	Type SemanticType `json:"semantic_type"`

	// Text is the extracted content.
	Text string `json:"text"`

	// StartChar and EndChar are character offsets into the page text.
	StartChar int `json:"start_char"`
	EndChar   int `json:"end_char"`
}

// UploadResult reports the outcome of uploading a document.
type UploadResult struct {
	Message       string `json:"message"`
	Filename      string `json:"filename"`
	ChunksCreated int    `json:"chunks_created"`
}

// Health reports backend component status as returned by the health probe.
type Health struct {
	// Status is "healthy" or "degraded".
	Status string `json:"status"`

	// Components maps component names to their individual status strings.
	Components map[string]string `json:"-"`
}

// Healthy reports whether every backend component is up.
func (h *Health) Healthy() bool {
	return h.Status == "healthy"
}
