package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"structcheck/internal/content"
	"structcheck/internal/flow"
	"structcheck/internal/session"
)

// TrackerModel is the 7-day reflection screen. The current day takes a
// free-text answer; earlier days can be revisited read-only.
type TrackerModel struct {
	orch     *flow.Orchestrator
	provider *content.Provider
	styles   Styles

	input   textarea.Model
	viewing int // 1-based day shown
	errText string
	width   int
}

// NewTrackerModel creates the tracker page.
func NewTrackerModel(orch *flow.Orchestrator, provider *content.Provider, styles Styles) TrackerModel {
	ta := textarea.New()
	ta.Placeholder = "What did you notice today?"
	ta.CharLimit = 0
	ta.SetHeight(4)
	return TrackerModel{
		orch:     orch,
		provider: provider,
		styles:   styles,
		input:    ta,
		viewing:  1,
		width:    80,
	}
}

// Sync points the view at the day waiting for an answer.
func (m *TrackerModel) Sync() {
	sess := m.orch.Session()
	m.viewing = sess.TrackerDay
	if m.viewing > session.TrackerDays {
		m.viewing = session.TrackerDays
	}
	m.input.Reset()
	m.errText = ""
}

// Focus gives the textarea keyboard focus.
func (m *TrackerModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// SetSize adapts the textarea width.
func (m *TrackerModel) SetSize(width, _ int) {
	m.width = width
	if w := width - 4; w > 20 {
		m.input.SetWidth(w)
	}
}

// Update handles tracker keys. The third return value reports that the
// seventh answer was just saved.
func (m TrackerModel) Update(msg tea.Msg) (TrackerModel, tea.Cmd, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd, false
	}

	sess := m.orch.Session()
	switch key.String() {
	case "ctrl+s":
		if m.viewing != sess.TrackerDay {
			return m, nil, false
		}
		events, err := m.orch.SubmitDayAnswer(m.input.Value())
		if err != nil {
			if errors.Is(err, flow.ErrEmptyAnswer) {
				m.errText = "Write a line or two before saving the day."
			} else {
				m.errText = err.Error()
			}
			return m, nil, false
		}
		m.errText = ""
		m.input.Reset()
		for _, ev := range events {
			if ev.Kind == flow.EventTrackerCompleted {
				return m, nil, true
			}
		}
		m.viewing = m.orch.Session().TrackerDay
		return m, nil, false

	case "ctrl+p", "left":
		if key.String() == "left" && m.viewing == sess.TrackerDay {
			break // turn inside the textarea, not day navigation
		}
		if err := m.orch.ViewDay(m.viewing - 1); err == nil {
			m.viewing--
			m.errText = ""
		}
		return m, nil, false

	case "ctrl+n", "right":
		if key.String() == "right" && m.viewing == sess.TrackerDay {
			break
		}
		if err := m.orch.ViewDay(m.viewing + 1); err == nil {
			m.viewing++
			m.errText = ""
		} else if errors.Is(err, flow.ErrDayLocked) {
			m.errText = "Finish today before peeking ahead."
		}
		return m, nil, false
	}

	if m.viewing == sess.TrackerDay {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd, false
	}
	return m, nil, false
}

// View renders the day strip, the day's prompt, and either the textarea or
// the saved reflection.
func (m TrackerModel) View() string {
	s := m.styles
	sess := m.orch.Session()

	var days []string
	for d := 1; d <= session.TrackerDays; d++ {
		label := fmt.Sprintf("D%d", d)
		switch {
		case d == m.viewing:
			days = append(days, s.DayActive.Render("["+label+"]"))
		case m.orch.DayCompleted(d):
			days = append(days, s.DayDone.Render(label))
		default:
			days = append(days, s.DayTodo.Render(label))
		}
	}

	task, err := m.provider.TrackerTask(m.viewing)
	if err != nil {
		return s.Error.Render(err.Error())
	}

	var sb strings.Builder
	sb.WriteString(s.Title.Render("7-Day Structure Tracker"))
	sb.WriteString("  ")
	sb.WriteString(strings.Join(days, " "))
	sb.WriteString("\n\n")
	sb.WriteString(s.Category.Render(fmt.Sprintf("Day %d — %s", m.viewing, task.Title)))
	sb.WriteString("\n")
	sb.WriteString(s.Question.Render(task.Question))
	sb.WriteString("\n\n")

	if m.viewing == sess.TrackerDay {
		sb.WriteString(m.input.View())
		sb.WriteString("\n\n")
		sb.WriteString(s.Help.Render("ctrl+s save today · ctrl+p previous day · ctrl+c quit"))
	} else {
		sb.WriteString(s.Answered.Render(sess.TrackerAnswers[m.viewing-1]))
		sb.WriteString("\n\n")
		sb.WriteString(s.Help.Render("ctrl+p/ctrl+n browse days · ctrl+c quit"))
	}

	if m.errText != "" {
		sb.WriteString("\n")
		sb.WriteString(s.Error.Render(m.errText))
	}
	return sb.String()
}
