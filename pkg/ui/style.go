package ui

import (
	"groupby/pkg/ui/base"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(base.AdaptivePrimary).
			Bold(true).
			Padding(0, 2)

	summaryStyle = lipgloss.NewStyle().
			Foreground(base.AdaptiveMuted).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(base.AdaptiveError).
			Foreground(base.AdaptiveError).
			Padding(0, 1)

	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(base.AdaptiveSecondary)
)

// tableStyles renders a static table: the cursor row looks like any other.
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(base.AdaptivePrimary).
		BorderBottom(true).
		Bold(true).
		Foreground(base.AdaptivePrimary)
	s.Cell = s.Cell.Foreground(base.AdaptiveAccent)
	s.Selected = lipgloss.NewStyle()
	return s
}
