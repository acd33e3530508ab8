// Package tui provides the interactive terminal explorer for analyzed
// traces.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dissectlabs/dissect/internal/graph"
)

// Color palette
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#06B6D4") // Cyan
	successColor   = lipgloss.Color("#10B981") // Green
	errorColor     = lipgloss.Color("#EF4444") // Red
	warningColor   = lipgloss.Color("#F59E0B") // Amber
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	accentColor    = lipgloss.Color("#F472B6") // Pink
)

var (
	// TitleStyle for the top bar
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 2)

	// HeaderStyle for panel headers
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	// SectionHeaderStyle for detail view sections
	SectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(secondaryColor).
				Padding(0, 1).
				Margin(1, 0, 0, 0)

	// SelectedStyle for the cursor row
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(secondaryColor)

	// CursorStyle for the cursor indicator
	CursorStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	// MutedStyle for less important text
	MutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// CriticalStyle marks critical-path rows
	CriticalStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// WarningStyle for warnings
	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// SuccessStyle for positive indicators
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// DurationStyle for duration values
	DurationStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// AttributeKeyStyle for attribute keys in the detail pane
	AttributeKeyStyle = lipgloss.NewStyle().
				Foreground(secondaryColor)

	// HelpStyle for the bottom key bar
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	// HelpKeyStyle for key names in the help bar
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)
)

// Kind styles
var (
	agentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")) // Blue

	toolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")) // Amber

	llmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")) // Emerald

	userInputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8B5CF6")) // Violet

	systemStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// KindStyle returns the display style for a node kind.
func KindStyle(kind graph.Kind) lipgloss.Style {
	switch kind {
	case graph.KindAgent:
		return agentStyle
	case graph.KindTool:
		return toolStyle
	case graph.KindLLMCall:
		return llmStyle
	case graph.KindUserInput:
		return userInputStyle
	case graph.KindSystem:
		return systemStyle
	default:
		return lipgloss.NewStyle()
	}
}
