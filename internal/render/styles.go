package render

import "github.com/charmbracelet/lipgloss"

// Styling constants
var (
	// Colors
	PrimaryColor   = lipgloss.Color("#F5C518") // IMDb yellow
	SecondaryColor = lipgloss.Color("#F5F5F1")
	AccentColor    = lipgloss.Color("#564D4D")
	ErrorColor     = lipgloss.Color("#FF5F5F")

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	NormalTextStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	MutedTextStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	HighlightedTextStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	ScoreStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Component styles
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)

	DropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AccentColor).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)

	ItemStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AccentColor).
			Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PrimaryColor).
				Padding(0, 1)
)
