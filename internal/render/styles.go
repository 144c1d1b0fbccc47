package render

import "github.com/charmbracelet/lipgloss"

// Adaptive color definitions for light/dark terminal support
var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff5555"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	ColorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	ColorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	ColorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	StyleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorRed)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorYellow)

	StyleSubtle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StylePrompt = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)

	StyleSystem = lipgloss.NewStyle().
			Foreground(ColorCyan)
)
