package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dayIndexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(9)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(12)

	completeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	partialStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	incompleteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)
