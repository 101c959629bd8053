package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles for terminal output.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// phaseBadge renders one lifecycle milestone as done or pending.
func phaseBadge(label string, done bool) string {
	if done {
		return successStyle.Render("[" + label + "]")
	}
	return mutedStyle.Render("[" + label + "]")
}
