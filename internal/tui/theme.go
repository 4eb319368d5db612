package tui

import "github.com/charmbracelet/lipgloss"

// Palette follows the Tokyo Night colors used across our terminal tools.
var (
	colorAccent  = lipgloss.Color("#7aa2f7")
	colorText    = lipgloss.Color("#c0caf5")
	colorDim     = lipgloss.Color("#565f89")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorWarning = lipgloss.Color("#e0af68")
	colorError   = lipgloss.Color("#f7768e")
	colorInfo    = lipgloss.Color("#7dcfff")
)

// Styles groups the lipgloss styles used by the rehearsal view.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
	Error    lipgloss.Style
	Buffer   lipgloss.Style
	Cursor   lipgloss.Style
	BarFull  lipgloss.Style
	BarEmpty lipgloss.Style
	Phase    map[string]lipgloss.Style
}

// DefaultStyles is the dark theme.
var DefaultStyles = Styles{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Label:   lipgloss.NewStyle().Foreground(colorDim),
	Value:   lipgloss.NewStyle().Foreground(colorText),
	Help:    lipgloss.NewStyle().Foreground(colorDim),
	Message: lipgloss.NewStyle().Italic(true).Foreground(colorInfo),
	Error:   lipgloss.NewStyle().Bold(true).Foreground(colorError),
	Buffer: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim).
		Foreground(colorText).
		Padding(0, 1),
	Cursor:   lipgloss.NewStyle().Reverse(true),
	BarFull:  lipgloss.NewStyle().Foreground(colorSuccess),
	BarEmpty: lipgloss.NewStyle().Foreground(colorDim),
	Phase: map[string]lipgloss.Style{
		"idle":                lipgloss.NewStyle().Bold(true).Foreground(colorDim),
		"awaiting-activation": lipgloss.NewStyle().Bold(true).Foreground(colorWarning),
		"typing":              lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
		"paused":              lipgloss.NewStyle().Bold(true).Foreground(colorInfo),
	},
}
