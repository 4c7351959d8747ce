package domain

// Citation links a numbered marker in generated answer text to the source
// passage it was drawn from. Citations are produced once per query response
// and are immutable for the lifetime of that response.
type Citation struct {
	// Number is the marker value, unique within one answer, at least 1.
	Number int `json:"citation_number"`

	// ChunkID identifies the cited chunk. The chunk itself may not be
	// loaded client-side.
	ChunkID string `json:"chunk_id"`

	// Filename identifies the source document.
	Filename string `json:"filename"`

	// PageNumber is the 1-based page of the cited passage.
	PageNumber int `json:"page_number"`

	// ParagraphNumber is the 0-based paragraph of the cited passage.
	ParagraphNumber int `json:"paragraph_number"`

	// TextPreview is a short excerpt of the cited passage.
	TextPreview string `json:"text_preview"`

	// DeepLink is the canonical viewer link for the cited passage.
	DeepLink string `json:"deep_link"`

	// SimilarityScore is the retrieval score in [0,1], 0 when unset.
	SimilarityScore float64 `json:"similarity_score"`

	// IsDefault marks citations the backend attached as fallback sources
	// rather than passages it verified were used in the answer.
	IsDefault bool `json:"is_default"`
}

// Target returns the navigation target the citation points at.
func (c *Citation) Target() NavigationTarget {
	page := c.PageNumber
	if page < 1 {
		page = 1
	}
	paragraph := c.ParagraphNumber
	if paragraph < 0 {
		paragraph = 0
	}
	return NavigationTarget{
		DocumentID:       c.Filename,
		Page:             page,
		Paragraph:        paragraph,
		HighlightChunkID: c.ChunkID,
	}
}

// Answer is the result of one question asked against the backend.
type Answer struct {
	// Text is the generated answer, possibly containing [n] markers.
	Text string `json:"answer"`

	// Citations is the ordered citation list for the answer.
	Citations []Citation `json:"citations"`

	// ContextUsed is how many chunks were given to the model.
	ContextUsed int `json:"context_used"`

	// ProcessingTime is the backend-side duration in seconds.
	ProcessingTime float64 `json:"processing_time"`

	// HasValidCitations reports whether the backend verified the markers
	// in the text against the citation list.
	HasValidCitations bool `json:"has_valid_citations"`
}

// CitationByNumber returns the citation with the given marker number,
// or nil when no citation carries it.
func (a *Answer) CitationByNumber(n int) *Citation {
	for i := range a.Citations {
		if a.Citations[i].Number == n {
			return &a.Citations[i]
		}
	}
	return nil
}
