package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// analyzeSteps are the staged status lines shown between the last answer
// and the result reveal.
var analyzeSteps = []string{
	"Reading your answers",
	"Matching owner patterns",
	"Building your profile",
}

// AnalyzingModel is the short interlude before the result page. It is pure
// presentation; the owner type is already classified and persisted by the
// time this screen appears.
type AnalyzingModel struct {
	styles  Styles
	spinner spinner.Model
	step    int
}

// NewAnalyzingModel creates the interlude.
func NewAnalyzingModel(styles Styles) AnalyzingModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Category
	return AnalyzingModel{styles: styles, spinner: sp}
}

// Start resets the interlude and schedules the first step.
func (m AnalyzingModel) Start(stepDelay time.Duration) (AnalyzingModel, tea.Cmd) {
	m.step = 0
	return m, tea.Batch(m.spinner.Tick, scheduleAnalyze(1, stepDelay))
}

// Step records a completed step and schedules the next one.
func (m AnalyzingModel) Step(step int, stepDelay time.Duration) (AnalyzingModel, tea.Cmd) {
	if step > m.step {
		m.step = step
	}
	if m.Done() {
		return m, nil
	}
	return m, scheduleAnalyze(m.step+1, stepDelay)
}

// Done reports whether every step has run.
func (m AnalyzingModel) Done() bool {
	return m.step >= len(analyzeSteps)
}

// UpdateSpinner advances the spinner animation.
func (m AnalyzingModel) UpdateSpinner(msg tea.Msg) (AnalyzingModel, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the step list with the spinner on the active line.
func (m AnalyzingModel) View() string {
	s := m.styles
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Analyzing"))
	sb.WriteString("\n\n")
	for i, label := range analyzeSteps {
		switch {
		case i < m.step:
			sb.WriteString(s.DayDone.Render("✓ " + label))
		case i == m.step:
			sb.WriteString(m.spinner.View() + s.Question.Render(label))
		default:
			sb.WriteString(s.DayTodo.Render("· " + label))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func scheduleAnalyze(step int, after time.Duration) tea.Cmd {
	if after <= 0 {
		return func() tea.Msg { return analyzeMsg{step: step} }
	}
	return tea.Tick(after, func(time.Time) tea.Msg { return analyzeMsg{step: step} })
}
