// Package chat provides the question and answer view for the TUI.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/components/input"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/components/status"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/keymap"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/messages"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/tui/styles"
	"github.com/docsight-labs/docsight-cli/internal/core/domain"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driving"
)

// ErrNoQueryService is returned when the view has no query service to ask.
var ErrNoQueryService = errors.New("chat: no query service configured")

// View represents the chat view with question input, answer display, and
// status bar. Pressing a digit while an answer is shown opens the citation
// with that number in the viewer.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	statusbar *status.Bar

	queryService driving.QueryService
	ctx          context.Context

	question string
	answer   *domain.Answer
	segments []domain.AnswerSegment

	width      int
	height     int
	ready      bool
	asking     bool
	err        error
	focusInput bool // true = typing a question, false = reading the answer
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, queryService driving.QueryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:       s,
		keymap:       km,
		input:        input.NewQuestionInput(s),
		statusbar:    status.NewBar(s, km),
		queryService: queryService,
		ctx:          context.Background(),
		width:        80,
		height:       24,
		focusInput:   true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnswerReceived:
		v.handleAnswerReceived(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.asking = false
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Enter in input mode submits the question
	if msg.Type == tea.KeyEnter && v.focusInput {
		question := strings.TrimSpace(v.input.Value())
		if question == "" || v.asking {
			return v, nil
		}
		v.asking = true
		v.err = nil
		v.statusbar.SetState(status.StateAsking)
		v.focusInput = false
		v.input.Blur()
		return v, v.performAsk(question)
	}

	// Input mode: all keys go to the input component
	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	// Answer mode: digits open citations, n starts a new question
	keyStr := msg.String()
	if keymap.Matches(keyStr, v.keymap.OpenCitation) && v.answer != nil {
		return v.openCitation(keyStr)
	}

	switch keyStr {
	case "n":
		v.Reset()
		return v, v.input.Focus()
	}

	return v, nil
}

// openCitation emits an OpenTarget for the citation with the given number.
// Unknown numbers are ignored so stray digit presses do nothing.
func (v *View) openCitation(digit string) (*View, tea.Cmd) {
	number := int(digit[0] - '0')
	citation := v.answer.CitationByNumber(number)
	if citation == nil {
		return v, nil
	}
	target := citation.Target()
	return v, func() tea.Msg {
		return messages.OpenTarget{Target: target}
	}
}

// performAsk submits the question and delivers the answer as a message.
func (v *View) performAsk(question string) tea.Cmd {
	return func() tea.Msg {
		if v.queryService == nil {
			return messages.AnswerReceived{Question: question, Err: ErrNoQueryService}
		}
		answer, err := v.queryService.Ask(v.ctx, question)
		return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

// handleAnswerReceived folds a query outcome into the view.
func (v *View) handleAnswerReceived(msg messages.AnswerReceived) {
	v.asking = false
	v.question = msg.Question

	if msg.Err != nil {
		v.err = msg.Err
		v.answer = nil
		v.segments = nil
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.answer = msg.Answer
	v.segments = domain.ResolveMarkers(msg.Answer.Text, msg.Answer.Citations)
	v.statusbar.SetState(status.StateAnswer)
	v.statusbar.SetCitationCount(len(msg.Answer.Citations))

	// Switch to answer mode so digit keys open citations
	v.focusInput = false
	v.input.Blur()
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("Docsight")
	sections = append(sections, header, "")

	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	if v.answer != nil {
		sections = append(sections, v.renderAnswer())
	} else if !v.asking && v.err == nil {
		hint := v.styles.Muted.Render("Type a question and press Enter.")
		sections = append(sections, hint)
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderAnswer renders the answer text with citation markers emphasised,
// followed by the numbered source list.
func (v *View) renderAnswer() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Q: " + v.question))
	b.WriteString("\n\n")

	b.WriteString(v.renderSegments())
	b.WriteString("\n")

	if len(v.answer.Citations) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Sources"))
		b.WriteString("\n")
		for i := range v.answer.Citations {
			b.WriteString(v.renderCitation(&v.answer.Citations[i]))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderSegments renders the resolved answer text, wrapped to the view
// width. Marker segments keep their bracketed text but take the citation
// style so they stand out as openable. Wrapping works on units that may
// span a segment boundary, so punctuation directly after a marker stays
// attached to it instead of gaining a space.
func (v *View) renderSegments() string {
	wrapAt := v.width - 4
	if wrapAt < 20 {
		wrapAt = 20
	}

	var b strings.Builder
	col := 0
	for _, unit := range segmentWrapUnits(v.segments) {
		length := 0
		for _, f := range unit {
			length += len(f.text)
		}
		if col > 0 && col+1+length > wrapAt {
			b.WriteString("\n")
			col = 0
		} else if col > 0 {
			b.WriteString(" ")
			col++
		}
		for _, f := range unit {
			if f.resolved {
				b.WriteString(v.styles.Citation.Render(f.text))
			} else {
				b.WriteString(v.styles.Normal.Render(f.text))
			}
		}
		col += length
	}
	return b.String()
}

// fragment is one styled piece of a wrap unit.
type fragment struct {
	text     string
	resolved bool
}

// segmentWrapUnits splits answer segments into wrap units. Within a segment
// words break on whitespace as usual; across a segment boundary with no
// whitespace on either side the adjacent pieces fuse into one unit, so
// "approval [1]." keeps the period glued to the marker.
func segmentWrapUnits(segments []domain.AnswerSegment) [][]fragment {
	var units [][]fragment
	glue := false

	for _, segment := range segments {
		if segment.Text == "" {
			continue
		}

		first, _ := utf8.DecodeRuneInString(segment.Text)
		last, _ := utf8.DecodeLastRuneInString(segment.Text)
		words := strings.Fields(segment.Text)
		if len(words) == 0 {
			// Whitespace-only segment separates its neighbours.
			glue = false
			continue
		}

		for i, word := range words {
			f := fragment{text: word, resolved: segment.Resolved()}
			if i == 0 && glue && !unicode.IsSpace(first) && len(units) > 0 {
				units[len(units)-1] = append(units[len(units)-1], f)
				continue
			}
			units = append(units, []fragment{f})
		}
		glue = !unicode.IsSpace(last)
	}
	return units
}

// renderCitation formats one entry of the source list.
func (v *View) renderCitation(c *domain.Citation) string {
	marker := v.styles.Citation.Render(fmt.Sprintf("[%d]", c.Number))
	location := fmt.Sprintf("%s p.%d", c.Filename, c.PageNumber)

	preview := c.TextPreview
	maxPreview := v.width - len(location) - 12
	if maxPreview < 10 {
		maxPreview = 10
	}
	if len(preview) > maxPreview {
		preview = preview[:maxPreview-3] + "..."
	}

	line := fmt.Sprintf("%s %s", marker, v.styles.Normal.Render(location))
	if preview != "" {
		line += v.styles.Muted.Render("  " + preview)
	}
	return line
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Question returns the last submitted question.
func (v *View) Question() string {
	return v.question
}

// Answer returns the current answer, nil when none.
func (v *View) Answer() *domain.Answer {
	return v.answer
}

// Asking reports whether a question is in flight.
func (v *View) Asking() bool {
	return v.asking
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns the view to a fresh input state.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.question = ""
	v.answer = nil
	v.segments = nil
	v.err = nil
	v.asking = false
	v.statusbar.Clear()
}
