package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPass = lipgloss.AdaptiveColor{
		Light: "#86b300",
		Dark:  "#c2d94c",
	}
	colorWarn = lipgloss.AdaptiveColor{
		Light: "#f2ae49",
		Dark:  "#ffb454",
	}
	colorFail = lipgloss.AdaptiveColor{
		Light: "#f07171",
		Dark:  "#f07178",
	}
	colorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	}
	colorAccent = lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	}
)

// Status symbols
const (
	IconPass    = "✓"
	IconWarn    = "⚠"
	IconFail    = "✗"
	IconPending = "⏳"
	IconRunning = "▶"
)

var (
	Success = lipgloss.NewStyle().Foreground(colorPass).Bold(true)
	Warning = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	Error   = lipgloss.NewStyle().Foreground(colorFail).Bold(true)
	Info    = lipgloss.NewStyle().Foreground(colorAccent)
	Dim     = lipgloss.NewStyle().Foreground(colorMuted)
	Bold    = lipgloss.NewStyle().Bold(true)

	// Header is used for table headings
	Header = lipgloss.NewStyle().Bold(true).Underline(true)
)

// DisableColor turns every style into plain text (--no-color, NO_COLOR)
func DisableColor() {
	Success = lipgloss.NewStyle()
	Warning = lipgloss.NewStyle()
	Error = lipgloss.NewStyle()
	Info = lipgloss.NewStyle()
	Dim = lipgloss.NewStyle()
	Bold = lipgloss.NewStyle()
	Header = lipgloss.NewStyle()
}
