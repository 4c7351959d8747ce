package documents

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/messages"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/styles"
	"github.com/docsight-labs/docsight-cli/internal/core/domain"
)

// mockDocumentService implements driving.DocumentService for testing.
type mockDocumentService struct {
	DocumentsFunc  func(ctx context.Context) ([]domain.Document, error)
	PageChunksFunc func(ctx context.Context, filename string, page int) ([]domain.Chunk, error)
	UploadFunc     func(ctx context.Context, path string) (*domain.UploadResult, error)
	DeleteFunc     func(ctx context.Context, filename string) error
	HealthFunc     func(ctx context.Context) (*domain.Health, error)
}

func (m *mockDocumentService) Documents(ctx context.Context) ([]domain.Document, error) {
	if m.DocumentsFunc != nil {
		return m.DocumentsFunc(ctx)
	}
	return []domain.Document{
		{Filename: "policy_v2.pdf", TotalPages: 4, ChunkCount: 12},
		{Filename: "handbook.pdf", TotalPages: 10, ChunkCount: 40},
	}, nil
}

func (m *mockDocumentService) PageChunks(
	ctx context.Context, filename string, page int,
) ([]domain.Chunk, error) {
	if m.PageChunksFunc != nil {
		return m.PageChunksFunc(ctx, filename, page)
	}
	return nil, nil
}

func (m *mockDocumentService) Upload(ctx context.Context, path string) (*domain.UploadResult, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, path)
	}
	return &domain.UploadResult{}, nil
}

func (m *mockDocumentService) Delete(ctx context.Context, filename string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, filename)
	}
	return nil
}

func (m *mockDocumentService) Health(ctx context.Context) (*domain.Health, error) {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return &domain.Health{Status: "healthy"}, nil
}

// loadedView returns a view with the mock's default catalog applied.
func loadedView(service *mockDocumentService) *View {
	v := NewView(nil, nil, service)
	v.SetDimensions(80, 24)
	cmd := v.Init()
	v.Update(cmd())
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(styles.DefaultStyles(), nil, &mockDocumentService{})

	require.NotNil(t, v)
	assert.Empty(t, v.Documents())
}

func TestNewView_NilStyles(t *testing.T) {
	v := NewView(nil, nil, &mockDocumentService{})

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
}

func TestView_Init_LoadsDocuments(t *testing.T) {
	v := NewView(nil, nil, &mockDocumentService{})
	v.SetDimensions(80, 24)

	cmd := v.Init()

	assert.True(t, v.Loading())
	require.NotNil(t, cmd)

	loaded, ok := cmd().(messages.DocumentsLoaded)
	require.True(t, ok)
	assert.Len(t, loaded.Documents, 2)
}

func TestView_DocumentsLoaded(t *testing.T) {
	v := loadedView(&mockDocumentService{})

	assert.False(t, v.Loading())
	assert.Len(t, v.Documents(), 2)
	assert.NoError(t, v.Err())
}

func TestView_CatalogUpdated_ReplacesListWithoutFetch(t *testing.T) {
	v := loadedView(&mockDocumentService{})

	_, cmd := v.Update(messages.CatalogUpdated{Documents: []domain.Document{
		{Filename: "notes.pdf", TotalPages: 1, ChunkCount: 2},
	}})

	assert.Nil(t, cmd, "a pushed update needs no follow-up fetch")
	require.Len(t, v.Documents(), 1)
	assert.Equal(t, "notes.pdf", v.Documents()[0].Filename)
}

func TestView_DocumentsLoaded_Error(t *testing.T) {
	v := NewView(nil, nil, &mockDocumentService{})
	v.SetDimensions(80, 24)

	v.Update(messages.DocumentsLoaded{Err: errors.New("backend down")})

	assert.False(t, v.Loading())
	assert.Error(t, v.Err())
}

func TestView_NoService(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(80, 24)

	cmd := v.Init()

	require.NotNil(t, cmd)
	loaded, ok := cmd().(messages.DocumentsLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, ErrNoDocumentService)
}

func TestView_Enter_OpensSelected(t *testing.T) {
	v := loadedView(&mockDocumentService{})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	open, ok := cmd().(messages.OpenTarget)
	require.True(t, ok)
	assert.Equal(t, "handbook.pdf", open.Target.DocumentID)
	assert.Equal(t, 1, open.Target.Page)
	assert.Empty(t, open.Target.HighlightChunkID)
}

func TestView_Enter_EmptyList_Ignored(t *testing.T) {
	v := NewView(nil, nil, &mockDocumentService{})
	v.SetDimensions(80, 24)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_Delete(t *testing.T) {
	var deleted string
	service := &mockDocumentService{
		DeleteFunc: func(ctx context.Context, filename string) error {
			deleted = filename
			return nil
		},
	}
	v := loadedView(service)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.DocumentDeleted)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	assert.Equal(t, "policy_v2.pdf", msg.Filename)
	assert.Equal(t, "policy_v2.pdf", deleted)
}

func TestView_DocumentDeleted_TriggersRefresh(t *testing.T) {
	v := loadedView(&mockDocumentService{})

	_, cmd := v.Update(messages.DocumentDeleted{Filename: "policy_v2.pdf"})

	require.NotNil(t, cmd)
	_, ok := cmd().(messages.DocumentsLoaded)
	assert.True(t, ok)
}

func TestView_DocumentDeleted_Error(t *testing.T) {
	v := loadedView(&mockDocumentService{})

	_, cmd := v.Update(messages.DocumentDeleted{
		Filename: "policy_v2.pdf",
		Err:      domain.ErrDocumentNotFound,
	})

	assert.Nil(t, cmd)
	assert.Error(t, v.Err())
}

func TestView_Refresh(t *testing.T) {
	v := loadedView(&mockDocumentService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	assert.True(t, v.Loading())
	require.NotNil(t, cmd)
}

func TestView_Esc_GoesToMenu(t *testing.T) {
	v := loadedView(&mockDocumentService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_Navigation(t *testing.T) {
	v := loadedView(&mockDocumentService{})

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	require.NotNil(t, v.SelectedDocument())
	assert.Equal(t, "handbook.pdf", v.SelectedDocument().Filename)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, "policy_v2.pdf", v.SelectedDocument().Filename)
}

func TestView_View_NotReady(t *testing.T) {
	v := NewView(nil, nil, &mockDocumentService{})

	assert.Contains(t, v.View(), "Initialising")
}

func TestView_View_ShowsDocuments(t *testing.T) {
	v := loadedView(&mockDocumentService{})

	view := v.View()

	assert.Contains(t, view, "Documents")
	assert.Contains(t, view, "policy_v2.pdf")
	assert.Contains(t, view, "handbook.pdf")
}

func TestView_View_ShowsError(t *testing.T) {
	v := NewView(nil, nil, &mockDocumentService{})
	v.SetDimensions(80, 24)
	v.Update(messages.DocumentsLoaded{Err: errors.New("backend down")})

	assert.Contains(t, v.View(), "backend down")
}
