package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDocumentNotFound indicates no catalog entry matched a navigation
	// target's document identifier. Surfaced to the user, never fatal.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBackendUnavailable indicates the document-QA service could not be
	// reached at all.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrHistoryDisabled indicates the local ask-history store is turned
	// off in configuration.
	ErrHistoryDisabled = errors.New("history disabled")
)

// ChunkFetchError reports a failed page fetch. It carries the document and
// page so the error banner can be scoped to the page the user asked for;
// retry is user-initiated, never automatic.
type ChunkFetchError struct {
	// Document is the document identifier the fetch was for.
	Document string

	// Page is the 1-based page number.
	Page int

	// Err is the underlying transport or status failure.
	Err error
}

// Error implements the error interface.
func (e *ChunkFetchError) Error() string {
	return fmt.Sprintf("fetching page %d of %q: %v", e.Page, e.Document, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ChunkFetchError) Unwrap() error {
	return e.Err
}
