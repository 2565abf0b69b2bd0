package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"structcheck/internal/classify"
	"structcheck/internal/content"
	"structcheck/internal/flow"
)

// ResultModel shows the classified owner-type profile as rendered markdown.
type ResultModel struct {
	orch     *flow.Orchestrator
	provider *content.Provider
	styles   Styles

	viewport viewport.Model
	width    int
	ready    bool
}

// NewResultModel creates the result page.
func NewResultModel(orch *flow.Orchestrator, provider *content.Provider, styles Styles) ResultModel {
	return ResultModel{
		orch:     orch,
		provider: provider,
		styles:   styles,
		viewport: viewport.New(80, 20),
		width:    80,
	}
}

// Sync re-renders the profile from the session's owner type.
func (m *ResultModel) Sync() {
	m.viewport.SetContent(m.render())
	m.viewport.GotoTop()
	m.ready = true
}

// SetSize resizes the viewport and re-wraps the markdown.
func (m *ResultModel) SetSize(width, height int) {
	m.width = width
	m.viewport.Width = width
	if h := height - 4; h > 4 {
		m.viewport.Height = h
	}
	if m.ready {
		m.viewport.SetContent(m.render())
	}
}

// Update scrolls the profile. The third return value requests the tracker.
func (m ResultModel) Update(msg tea.Msg) (ResultModel, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "t":
			return m, nil, true
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd, false
}

// View renders the scrollable profile.
func (m ResultModel) View() string {
	return m.viewport.View() + "\n" +
		m.styles.Help.Render("↑/↓ scroll · enter start the 7-day tracker")
}

// render builds and glamour-renders the profile markdown. On any rendering
// problem the raw markdown is shown instead of an empty screen.
func (m ResultModel) render() string {
	sess := m.orch.Session()
	if sess.UserType == "" {
		return m.styles.Subtitle.Render("No result yet — finish the questionnaire first.")
	}
	oc, err := m.provider.OwnerTypeContent(classify.OwnerType(sess.UserType))
	if err != nil {
		return m.styles.Error.Render(err.Error())
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n_%s_\n\n%s\n\n", oc.Name, oc.Subtitle, oc.Summary)
	fmt.Fprintf(&md, "> %s\n\n", oc.Warning)
	md.WriteString("## What you pull off anyway\n\n")
	for _, line := range oc.CanDo {
		fmt.Fprintf(&md, "- %s\n", line)
	}
	md.WriteString("\n## What keeps falling through\n\n")
	for _, line := range oc.CantDo {
		fmt.Fprintf(&md, "- %s\n", line)
	}
	fmt.Fprintf(&md, "\n**First fix:** %s\n", oc.Tip)

	wrap := m.width - 2
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap))
	if err != nil {
		return md.String()
	}
	out, err := r.Render(md.String())
	if err != nil {
		return md.String()
	}
	return out
}
