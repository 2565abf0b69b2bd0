package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"structcheck/internal/content"
	"structcheck/internal/flow"
	"structcheck/internal/session"
)

// DiagnosisModel renders the question-by-question assessment.
type DiagnosisModel struct {
	orch     *flow.Orchestrator
	provider *content.Provider
	styles   Styles

	cursor    int // question being shown
	optCursor int // highlighted option
	progress  progress.Model
}

// NewDiagnosisModel creates the diagnosis page.
func NewDiagnosisModel(orch *flow.Orchestrator, provider *content.Provider, styles Styles) DiagnosisModel {
	return DiagnosisModel{
		orch:     orch,
		provider: provider,
		styles:   styles,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

// Sync aligns the view with the session's current question, preselecting a
// previously chosen option when revisiting.
func (m *DiagnosisModel) Sync() {
	sess := m.orch.Session()
	m.cursor = sess.CurrentQuestion
	m.optCursor = 0
	if a := sess.Answers[m.cursor]; a != session.Unanswered {
		m.optCursor = a
	}
}

// SetCursor jumps the view to a question (scheduled advance landing). The
// answers slice bounds the jump too: a catalog reload can change the
// question count while an advance is in flight.
func (m *DiagnosisModel) SetCursor(question int) {
	sess := m.orch.Session()
	if question < 0 || question >= m.provider.QuestionCount() || question >= len(sess.Answers) {
		return
	}
	m.cursor = question
	m.optCursor = 0
	if a := sess.Answers[question]; a != session.Unanswered {
		m.optCursor = a
	}
}

// Update handles keys. The third return value reports diagnosis completion.
func (m DiagnosisModel) Update(msg tea.Msg, advanceDelay time.Duration) (DiagnosisModel, tea.Cmd, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}

	optN := m.provider.OptionCount(m.cursor)
	switch key.String() {
	case "up", "k":
		if m.optCursor > 0 {
			m.optCursor--
		}
	case "down", "j":
		if m.optCursor < optN-1 {
			m.optCursor++
		}
	case "left", "b":
		if err := m.orch.GoBack(); err == nil {
			m.Sync()
		}
	case "enter", " ":
		events, err := m.orch.SelectAnswer(m.cursor, m.optCursor)
		if err != nil {
			// Selection outside the visited range never happens from
			// this view; surfacing it would only confuse the visitor.
			return m, nil, false
		}
		for _, ev := range events {
			switch ev.Kind {
			case flow.EventDiagnosisCompleted:
				return m, nil, true
			case flow.EventAdvanceScheduled:
				return m, ScheduleAdvance(ev.Question, ev.After), false
			}
		}
	}
	return m, nil, false
}

// View renders the current question.
func (m DiagnosisModel) View() string {
	s := m.styles
	q, err := m.provider.Question(m.cursor)
	if err != nil {
		return s.Error.Render(err.Error())
	}
	cat, _ := m.provider.Category(q.Category)
	sess := m.orch.Session()
	n := m.provider.QuestionCount()

	var sb strings.Builder
	sb.WriteString(s.Category.Render(cat.Name))
	sb.WriteString("  ")
	sb.WriteString(s.Subtitle.Render(fmt.Sprintf("Q%d / %d", m.cursor+1, n)))
	sb.WriteString("\n\n")
	sb.WriteString(s.Question.Render(q.Text))
	sb.WriteString("\n\n")

	for i, opt := range q.Options {
		marker := "  "
		style := s.Option
		if i == m.optCursor {
			marker = "> "
			style = s.Selected
		} else if sess.Answers[m.cursor] == i {
			marker = "* "
			style = s.Answered
		}
		sb.WriteString(style.Render(marker + opt.Text))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.progress.ViewAs(float64(m.cursor+1) / float64(n)))
	sb.WriteString("\n\n")
	help := "↑/↓ choose · enter select"
	if m.cursor > 0 {
		help += " · ← previous question"
	}
	sb.WriteString(s.Help.Render(help))
	return sb.String()
}
