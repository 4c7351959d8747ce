package domain

import (
	"regexp"
	"strconv"
)

// markerPattern matches literal bracketed-integer citation markers such as
// [1] or [12]. No nesting, no signs; leading zeros parse to the same value.
var markerPattern = regexp.MustCompile(`\[(\d+)\]`)

// AnswerSegment is one display unit of resolved answer text: either a
// literal text run or a citation marker resolved against the answer's
// citation list.
type AnswerSegment struct {
	// Text is the literal content. For resolved markers it is the original
	// bracketed marker, so concatenating all segment texts reconstructs the
	// answer exactly.
	Text string

	// Citation is non-nil for resolved markers.
	Citation *Citation
}

// Resolved reports whether the segment carries a citation.
func (s AnswerSegment) Resolved() bool {
	return s.Citation != nil
}

// ResolveMarkers splits answer text into literal runs and resolved citation
// markers. A marker whose number has no matching citation stays inside the
// surrounding literal run untouched; text is never dropped. The function is
// pure: the same inputs always yield the same segments, and repeated marker
// numbers resolve to the same citation.
func ResolveMarkers(text string, citations []Citation) []AnswerSegment {
	if text == "" {
		return nil
	}

	byNumber := make(map[int]*Citation, len(citations))
	for i := range citations {
		c := &citations[i]
		if _, ok := byNumber[c.Number]; !ok {
			byNumber[c.Number] = c
		}
	}

	var segments []AnswerSegment
	last := 0
	for _, loc := range markerPattern.FindAllStringSubmatchIndex(text, -1) {
		number, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			// Digit run too large for int; leave it in the literal run.
			continue
		}
		citation, ok := byNumber[number]
		if !ok {
			continue
		}
		if loc[0] > last {
			segments = append(segments, AnswerSegment{Text: text[last:loc[0]]})
		}
		segments = append(segments, AnswerSegment{
			Text:     text[loc[0]:loc[1]],
			Citation: citation,
		})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, AnswerSegment{Text: text[last:]})
	}
	return segments
}
