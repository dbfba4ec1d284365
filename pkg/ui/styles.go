package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Brand colors
	Primary   = lipgloss.Color("#D7263D") // echoCTF red
	Secondary = lipgloss.Color("#00D4AA") // Cyan/Teal

	// Status colors
	Success = lipgloss.Color("#00D26A") // Bright green
	Warning = lipgloss.Color("#FFB800") // Amber
	Error   = lipgloss.Color("#FF3838") // Red
	Muted   = lipgloss.Color("#6B7280") // Gray
)

// Pre-configured styles
var (
	// Banner/version line
	BannerStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Status lines
	PassStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	FailStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Primary)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Target listing
	IDStyle = lipgloss.NewStyle().
		Foreground(Secondary).
		Width(6)

	NameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))
)

// Tone classifies a result line for styling. The zero Tone is unstyled.
type Tone int

const (
	ToneSuccess Tone = iota + 1
	ToneWarning
	ToneFailure
)

// ToneStyle returns the style used for result lines of the given tone.
func ToneStyle(t Tone) lipgloss.Style {
	switch t {
	case ToneSuccess:
		return PassStyle
	case ToneWarning:
		return WarnStyle
	case ToneFailure:
		return FailStyle
	default:
		return lipgloss.NewStyle()
	}
}
