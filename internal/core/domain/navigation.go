package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// ViewerPathPrefix is the canonical deep-link path prefix. It is the contract
// shared with whatever emits citation deep links.
const ViewerPathPrefix = "/viewer/"

// NavigationTarget identifies a position inside a document: a page, a
// paragraph, and optionally one chunk to highlight. Targets are derived
// entirely from a deep link and are replaced, never mutated, when the link
// changes.
type NavigationTarget struct {
	// DocumentID is the document identifier, usually a filename.
	DocumentID string

	// Page is the 1-based page number.
	Page int

	// Paragraph is the 0-based paragraph number.
	Paragraph int

	// HighlightChunkID is the chunk to scroll to, empty when none.
	HighlightChunkID string
}

// EncodeDeepLink renders the target as a canonical deep link of the form
// /viewer/{document_id}?page={n}&paragraph={n}&highlight={chunk_id}.
// Default values (page 1, paragraph 0, no highlight) are omitted and the
// document identifier is path-escaped.
func EncodeDeepLink(t NavigationTarget) string {
	var b strings.Builder
	b.WriteString(ViewerPathPrefix)
	b.WriteString(url.PathEscape(t.DocumentID))

	// Parameters keep the canonical page, paragraph, highlight order.
	var params []string
	if t.Page > 1 {
		params = append(params, "page="+strconv.Itoa(t.Page))
	}
	if t.Paragraph > 0 {
		params = append(params, "paragraph="+strconv.Itoa(t.Paragraph))
	}
	if t.HighlightChunkID != "" {
		params = append(params, "highlight="+url.QueryEscape(t.HighlightChunkID))
	}
	if len(params) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(params, "&"))
	}
	return b.String()
}

// ParseDeepLink decodes a deep link into a navigation target. It never
// fails: a missing or non-positive page becomes 1, a missing or non-numeric
// paragraph becomes 0, a missing highlight stays empty, and input that does
// not parse as a URL is treated as a bare document identifier.
func ParseDeepLink(link string) NavigationTarget {
	t := NavigationTarget{Page: 1}

	u, err := url.Parse(link)
	if err != nil {
		t.DocumentID = strings.TrimPrefix(link, ViewerPathPrefix)
		return t
	}

	path := u.Path
	if id, ok := strings.CutPrefix(path, ViewerPathPrefix); ok {
		t.DocumentID = id
	} else {
		t.DocumentID = strings.TrimPrefix(path, "/")
	}

	q := u.Query()
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		if page < 1 {
			page = 1
		}
		t.Page = page
	}
	if paragraph, err := strconv.Atoi(q.Get("paragraph")); err == nil && paragraph >= 0 {
		t.Paragraph = paragraph
	}
	t.HighlightChunkID = q.Get("highlight")

	return t
}
