package ui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#36C2A8"))

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	HeaderRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7FD9C8"))

	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#36C2A8")).
			Bold(true)

	CheckedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7FD9C8")).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5E7EB"))

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5964")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F4B860")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#36C2A8")).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#36C2A8")).
			Padding(1, 2)
)
