package services

import (
	"context"

	"github.com/docsight-labs/docsight-cli/internal/core/domain"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driven"
)

var (
	_ driven.Backend      = (*MockBackend)(nil)
	_ driven.HistoryStore = (*MockHistoryStore)(nil)
)

// MockBackend is a configurable test double for driven.Backend.
type MockBackend struct {
	QueryFunc          func(ctx context.Context, question string, topK int) (*domain.Answer, error)
	ListDocumentsFunc  func(ctx context.Context) ([]domain.Document, error)
	PageChunksFunc     func(ctx context.Context, filename string, page int) ([]domain.Chunk, error)
	UploadFileFunc     func(ctx context.Context, path string) (*domain.UploadResult, error)
	DeleteDocumentFunc func(ctx context.Context, filename string) error
	HealthFunc         func(ctx context.Context) (*domain.Health, error)
}

func (m *MockBackend) Query(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, question, topK)
	}
	return &domain.Answer{}, nil
}

func (m *MockBackend) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	if m.ListDocumentsFunc != nil {
		return m.ListDocumentsFunc(ctx)
	}
	return nil, nil
}

func (m *MockBackend) PageChunks(ctx context.Context, filename string, page int) ([]domain.Chunk, error) {
	if m.PageChunksFunc != nil {
		return m.PageChunksFunc(ctx, filename, page)
	}
	return nil, nil
}

func (m *MockBackend) UploadFile(ctx context.Context, path string) (*domain.UploadResult, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, path)
	}
	return &domain.UploadResult{}, nil
}

func (m *MockBackend) DeleteDocument(ctx context.Context, filename string) error {
	if m.DeleteDocumentFunc != nil {
		return m.DeleteDocumentFunc(ctx, filename)
	}
	return nil
}

func (m *MockBackend) Health(ctx context.Context) (*domain.Health, error) {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return &domain.Health{Status: "healthy"}, nil
}

// MockHistoryStore is a configurable test double for driven.HistoryStore.
type MockHistoryStore struct {
	SaveExchangeFunc  func(ctx context.Context, exchange *domain.Exchange) error
	ListExchangesFunc func(ctx context.Context, limit int) ([]domain.Exchange, error)

	saved []domain.Exchange
}

func (m *MockHistoryStore) SaveExchange(ctx context.Context, exchange *domain.Exchange) error {
	if m.SaveExchangeFunc != nil {
		return m.SaveExchangeFunc(ctx, exchange)
	}
	m.saved = append(m.saved, *exchange)
	return nil
}

func (m *MockHistoryStore) ListExchanges(ctx context.Context, limit int) ([]domain.Exchange, error) {
	if m.ListExchangesFunc != nil {
		return m.ListExchangesFunc(ctx, limit)
	}
	if limit > 0 && limit < len(m.saved) {
		return m.saved[len(m.saved)-limit:], nil
	}
	return m.saved, nil
}

func (m *MockHistoryStore) Close() error {
	return nil
}
