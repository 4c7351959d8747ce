package driving

import (
	"context"

	"github.com/docsight-labs/docsight-cli/internal/core/domain"
)

// QueryService answers questions through the backend and normalises the
// citation list for display.
type QueryService interface {
	// Ask submits a question and returns the answer. Every citation in
	// the returned answer carries a usable deep link.
	Ask(ctx context.Context, question string) (*domain.Answer, error)
}

// HistoryService exposes the local ask history.
type HistoryService interface {
	// Recent returns the most recent exchanges, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Exchange, error)
}
