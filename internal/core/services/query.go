package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docsight-labs/docsight-cli/internal/core/domain"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driven"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driving"
	"github.com/docsight-labs/docsight-cli/internal/logger"
)

// DefaultTopK is how many chunks the backend retrieves per question when
// configuration does not say otherwise.
const DefaultTopK = 5

// Ensure QueryService implements the driving ports.
var (
	_ driving.QueryService   = (*QueryService)(nil)
	_ driving.HistoryService = (*QueryService)(nil)
)

// QueryService asks questions through the backend and normalises the
// citation list so every citation carries a usable deep link.
type QueryService struct {
	backend driven.Backend
	history driven.HistoryStore // optional, nil disables history
	topK    int
}

// NewQueryService creates a query service. history may be nil.
func NewQueryService(backend driven.Backend, history driven.HistoryStore, topK int) *QueryService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &QueryService{
		backend: backend,
		history: history,
		topK:    topK,
	}
}

// Ask submits a question and returns the normalised answer.
func (s *QueryService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.backend == nil {
		return nil, domain.ErrBackendUnavailable
	}

	answer, err := s.backend.Query(ctx, question, s.topK)
	if err != nil {
		return nil, err
	}

	normaliseCitations(answer)

	if s.history != nil {
		exchange := &domain.Exchange{
			ID:        uuid.NewString(),
			Question:  question,
			Answer:    *answer,
			CreatedAt: time.Now().UTC(),
		}
		// History is best-effort; a full disk must not eat the answer.
		if err := s.history.SaveExchange(ctx, exchange); err != nil {
			logger.Warn("saving exchange to history: %v", err)
		}
	}

	return answer, nil
}

// Recent returns the most recent exchanges from the history store.
func (s *QueryService) Recent(ctx context.Context, limit int) ([]domain.Exchange, error) {
	if s.history == nil {
		return nil, domain.ErrHistoryDisabled
	}
	return s.history.ListExchanges(ctx, limit)
}

// normaliseCitations clamps citation fields into their documented ranges
// and fills in missing deep links from the citation's own coordinates, so
// the rest of the client can rely on every citation being navigable.
func normaliseCitations(answer *domain.Answer) {
	for i := range answer.Citations {
		c := &answer.Citations[i]
		if c.SimilarityScore < 0 || c.SimilarityScore > 1 {
			c.SimilarityScore = 0
		}
		if c.PageNumber < 1 {
			c.PageNumber = 1
		}
		if c.ParagraphNumber < 0 {
			c.ParagraphNumber = 0
		}
		if c.DeepLink == "" {
			c.DeepLink = domain.EncodeDeepLink(c.Target())
		}
	}
}
