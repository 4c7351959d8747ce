// Package memory provides in-memory implementations of driven port
// interfaces, used when persistence is disabled and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/docsight-labs/docsight-cli/internal/core/domain"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Exchanges are kept in arrival order and forgotten on process exit.
type HistoryStore struct {
	mu        sync.RWMutex
	exchanges []domain.Exchange
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// SaveExchange stores one question/answer exchange.
func (s *HistoryStore) SaveExchange(_ context.Context, exchange *domain.Exchange) error {
	if exchange.ID == "" || exchange.Question == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = append(s.exchanges, *exchange)
	return nil
}

// ListExchanges returns the most recent exchanges, newest first. A limit of
// zero or less returns everything.
func (s *HistoryStore) ListExchanges(_ context.Context, limit int) ([]domain.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.exchanges)
	if limit > 0 && limit < n {
		n = limit
	}

	result := make([]domain.Exchange, 0, n)
	for i := len(s.exchanges) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, s.exchanges[i])
	}
	return result, nil
}

// Close is a no-op for the in-memory store.
func (s *HistoryStore) Close() error {
	return nil
}
