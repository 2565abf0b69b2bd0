package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"structcheck/internal/store"
)

// AdminModel is the operator panel: the visitor log, its aggregates, and
// recent activity.
type AdminModel struct {
	store  *store.Store
	styles Styles

	table    table.Model
	stats    store.VisitorStats
	activity []store.ActivityEvent
	errText  string
}

// NewAdminModel creates the operator panel.
func NewAdminModel(st *store.Store, styles Styles) AdminModel {
	cols := []table.Column{
		{Title: "Visitor", Width: 26},
		{Title: "Type", Width: 12},
		{Title: "Day", Width: 4},
		{Title: "Rate", Width: 6},
		{Title: "Density", Width: 8},
		{Title: "Status", Width: 10},
		{Title: "Last seen", Width: 16},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(10), table.WithFocused(true))
	return AdminModel{store: st, styles: styles, table: t}
}

// Sync reloads the visitor log from the database.
func (m *AdminModel) Sync() {
	m.errText = ""
	sums, err := m.store.LoadSummaries()
	if err != nil {
		m.errText = err.Error()
		return
	}
	rows := make([]table.Row, 0, len(sums))
	for _, sum := range sums {
		rows = append(rows, table.Row{
			sum.UserID,
			sum.UserType,
			fmt.Sprintf("%d", sum.TrackerDay),
			fmt.Sprintf("%.0f%%", sum.CompletionRate),
			sum.AnswerDensity,
			sum.Status,
			sum.LastActivity.Format("2006-01-02 15:04"),
		})
	}
	m.table.SetRows(rows)

	if stats, err := m.store.Stats(); err == nil {
		m.stats = stats
	}
	if events, err := m.store.RecentActivity(5); err == nil {
		m.activity = events
	}
}

// SetSize adapts the table height to the terminal.
func (m *AdminModel) SetSize(_, height int) {
	if h := height - 12; h > 3 {
		m.table.SetHeight(h)
	}
}

// Update forwards navigation keys to the table.
func (m AdminModel) Update(msg tea.Msg) (AdminModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m AdminModel) View() string {
	s := m.styles
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Operator Panel"))
	sb.WriteString("\n")
	sb.WriteString(s.StatLine.Render(fmt.Sprintf(
		"visitors %d · in tracker %d · completed %d",
		m.stats.Total, m.stats.InTracker, m.stats.Completed)))
	sb.WriteString("\n\n")

	if m.errText != "" {
		sb.WriteString(s.Error.Render(m.errText))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
	}

	if len(m.activity) > 0 {
		sb.WriteString("\n")
		sb.WriteString(s.Subtitle.Render("Recent activity"))
		sb.WriteString("\n")
		for _, ev := range m.activity {
			line := fmt.Sprintf("%s  %s %s", ev.CreatedAt.Format("01-02 15:04"), ev.Event, ev.Detail)
			sb.WriteString(s.StatLine.Render(strings.TrimRight(line, " ")))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(s.Help.Render("↑/↓ browse · ctrl+a back · q quit"))
	return sb.String()
}
