package ui

import "github.com/charmbracelet/lipgloss"

// Styles bundles the lipgloss styles shared by all pages.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Category  lipgloss.Style
	Question  lipgloss.Style
	Option    lipgloss.Style
	Selected  lipgloss.Style
	Answered  lipgloss.Style
	DayDone   lipgloss.Style
	DayActive lipgloss.Style
	DayTodo   lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
	Badge     lipgloss.Style
	StatLine  lipgloss.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Category:  lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true),
		Question:  lipgloss.NewStyle().Bold(true),
		Option:    lipgloss.NewStyle().PaddingLeft(2),
		Selected:  lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("212")).Bold(true),
		Answered:  lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("114")),
		DayDone:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		DayActive: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		DayTodo:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Badge:     lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
		StatLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
}
