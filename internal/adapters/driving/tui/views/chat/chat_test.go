package chat

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

// mockQueryService implements driving.QueryService for testing.
type mockQueryService struct {
	AskFunc func(ctx context.Context, question string) (*domain.Answer, error)
}

func (m *mockQueryService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question)
	}
	return &domain.Answer{}, nil
}

func testAnswer() *domain.Answer {
	return &domain.Answer{
		Text: "Remote work needs approval [1], see also the handbook [2].",
		Citations: []domain.Citation{
			{
				Number: 1, ChunkID: "c2", Filename: "policy_v2.pdf",
				PageNumber: 2, TextPreview: "Remote work requires approval",
				DeepLink: "/viewer/policy_v2.pdf?page=2&highlight=c2",
			},
			{
				Number: 2, ChunkID: "h7", Filename: "handbook.pdf",
				PageNumber: 5, TextPreview: "Working from home",
				DeepLink: "/viewer/handbook.pdf?page=5&highlight=h7",
			},
		},
		HasValidCitations: true,
	}
}

func TestNewView(t *testing.T) {
	v := NewView(styles.DefaultStyles(), nil, &mockQueryService{})

	require.NotNil(t, v)
	assert.True(t, v.InputFocused())
	assert.Nil(t, v.Answer())
}

func TestNewView_NilStyles(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.NotNil(t, v.keymap)
}

func TestView_Init(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})

	assert.NotNil(t, v.Init())
}

func TestView_SubmitQuestion(t *testing.T) {
	service := &mockQueryService{
		AskFunc: func(ctx context.Context, question string) (*domain.Answer, error) {
			assert.Equal(t, "can I work remotely?", question)
			return testAnswer(), nil
		},
	}
	v := NewView(nil, nil, service)
	v.SetDimensions(80, 24)
	v.input.SetValue("can I work remotely?")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, v.Asking())
	assert.False(t, v.InputFocused())
	require.NotNil(t, cmd)

	msg := cmd()
	received, ok := msg.(messages.AnswerReceived)
	require.True(t, ok)
	assert.NoError(t, received.Err)
	assert.Equal(t, "can I work remotely?", received.Question)
}

func TestView_SubmitEmptyQuestion_Ignored(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})
	v.SetDimensions(80, 24)
	v.input.SetValue("   ")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, v.Asking())
	assert.True(t, v.InputFocused())
}

func TestView_SubmitWhileAsking_Ignored(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})
	v.SetDimensions(80, 24)
	v.input.SetValue("first question")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	v.focusInput = true
	v.input.SetValue("second question")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_NoService(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(80, 24)
	v.input.SetValue("anyone there?")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	received, ok := cmd().(messages.AnswerReceived)
	require.True(t, ok)
	assert.ErrorIs(t, received.Err, ErrNoQueryService)
}

func TestView_AnswerReceived(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})
	v.SetDimensions(80, 24)

	v.Update(messages.AnswerReceived{Question: "can I work remotely?", Answer: testAnswer()})

	assert.False(t, v.Asking())
	require.NotNil(t, v.Answer())
	assert.NoError(t, v.Err())
	assert.Equal(t, "can I work remotely?", v.Question())
}

func TestView_AnswerReceived_Error(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})
	v.SetDimensions(80, 24)

	v.Update(messages.AnswerReceived{Question: "q", Err: errors.New("backend down")})

	assert.False(t, v.Asking())
	assert.Nil(t, v.Answer())
	assert.Error(t, v.Err())
}

func TestView_OpenCitation(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})
	v.SetDimensions(80, 24)
	v.Update(messages.AnswerReceived{Question: "q", Answer: testAnswer()})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})

	require.NotNil(t, cmd)
	open, ok := cmd().(messages.OpenTarget)
	require.True(t, ok)
	assert.Equal(t, "handbook.pdf", open.Target.DocumentID)
	assert.Equal(t, 5, open.Target.Page)
	assert.Equal(t, "h7", open.Target.HighlightChunkID)
}

func TestView_OpenCitation_UnknownNumber_Ignored(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})
	v.SetDimensions(80, 24)
	v.Update(messages.AnswerReceived{Question: "q", Answer: testAnswer()})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})

	assert.Nil(t, cmd)
}

func TestView_NewQuestion_Resets(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})
	v.SetDimensions(80, 24)
	v.Update(messages.AnswerReceived{Question: "q", Answer: testAnswer()})

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	assert.True(t, v.InputFocused())
	assert.Nil(t, v.Answer())
	assert.Equal(t, "", v.Question())
}

func TestView_RenderSegments_KeepsPunctuationAttached(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})
	v.SetDimensions(80, 24)

	answer := &domain.Answer{
		Text: "Remote work requires approval [1]. The handbook [2] agrees.",
		Citations: []domain.Citation{
			{Number: 1, ChunkID: "c2", Filename: "policy_v2.pdf", PageNumber: 2},
			{Number: 2, ChunkID: "h7", Filename: "handbook.pdf", PageNumber: 5},
		},
	}
	v.Update(messages.AnswerReceived{Question: "remote?", Answer: answer})

	view := v.View()
	assert.Contains(t, view, "[1].")
	assert.NotContains(t, view, "[1] .")
	assert.Contains(t, view, "The handbook [2] agrees.")
}

func TestSegmentWrapUnits_FusesAcrossSegmentBoundary(t *testing.T) {
	segments := domain.ResolveMarkers("approval [1]. Done.", []domain.Citation{
		{Number: 1, ChunkID: "c2", Filename: "policy_v2.pdf", PageNumber: 2},
	})

	units := segmentWrapUnits(segments)

	require.Len(t, units, 3)
	assert.Equal(t, "approval", units[0][0].text)
	require.Len(t, units[1], 2)
	assert.Equal(t, "[1]", units[1][0].text)
	assert.True(t, units[1][0].resolved)
	assert.Equal(t, ".", units[1][1].text)
	assert.False(t, units[1][1].resolved)
	assert.Equal(t, "Done.", units[2][0].text)
}

func TestSegmentWrapUnits_SpacedMarkerStaysSeparate(t *testing.T) {
	segments := domain.ResolveMarkers("see [1] here", []domain.Citation{
		{Number: 1, ChunkID: "c2", Filename: "policy_v2.pdf", PageNumber: 2},
	})

	units := segmentWrapUnits(segments)

	require.Len(t, units, 3)
	assert.Equal(t, "[1]", units[1][0].text)
	require.Len(t, units[1], 1)
}

func TestView_Esc_GoesToMenu(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})
	v.SetDimensions(80, 24)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_View_NotReady(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})

	assert.Contains(t, v.View(), "Initialising")
}

func TestView_View_ShowsAnswerAndSources(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})
	v.SetDimensions(120, 40)
	v.Update(messages.AnswerReceived{Question: "can I work remotely?", Answer: testAnswer()})

	view := v.View()

	assert.Contains(t, view, "can I work remotely?")
	assert.Contains(t, view, "[1]")
	assert.Contains(t, view, "Sources")
	assert.Contains(t, view, "policy_v2.pdf p.2")
	assert.Contains(t, view, "handbook.pdf p.5")
}

func TestView_View_ShowsError(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})
	v.SetDimensions(80, 24)
	v.Update(messages.AnswerReceived{Question: "q", Err: errors.New("backend down")})

	assert.Contains(t, v.View(), "backend down")
}

func TestView_ErrorOccurred(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{})
	v.SetDimensions(80, 24)

	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.Error(t, v.Err())
	assert.False(t, v.Asking())
}
