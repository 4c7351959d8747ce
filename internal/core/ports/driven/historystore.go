package driven

import (
	"context"

	"github.com/docsight-labs/docsight-cli/internal/core/domain"
)

// HistoryStore persists question/answer exchanges locally.
type HistoryStore interface {
	// SaveExchange stores one completed exchange.
	SaveExchange(ctx context.Context, exchange *domain.Exchange) error

	// ListExchanges returns the most recent exchanges, newest first.
	// A limit of 0 or less returns all of them.
	ListExchanges(ctx context.Context, limit int) ([]domain.Exchange, error)

	// Close releases the underlying storage.
	Close() error
}
