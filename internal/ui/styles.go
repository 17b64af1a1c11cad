// Package ui provides shared lipgloss styles for CLI output.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Catppuccin Mocha inspired).
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"} // Blue
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	ColorWarning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	ColorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"} // Overlay0
)

// Styles contains the reusable lipgloss styles of the CLI.
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the default CLI styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),

		Error: lipgloss.NewStyle().
			Foreground(ColorError),

		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}
