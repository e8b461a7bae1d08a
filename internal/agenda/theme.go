package agenda

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used by the agenda views.
type Theme struct {
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Header      lipgloss.Style
	Error       lipgloss.Style
	Card        lipgloss.Style
	CardTitle   lipgloss.Style
	CardValue   lipgloss.Style
	Free        lipgloss.Style
	Busy        lipgloss.Style
}

type palette struct {
	text    string
	muted   string
	dim     string
	border  string
	accent  string
	free    string
	errText string
}

var (
	darkPalette = palette{
		text:    "#F0F0F0",
		muted:   "#B0B0B0",
		dim:     "#6E6E6E",
		border:  "#4A4A4A",
		accent:  "#C89A3A",
		free:    "#6FBF73",
		errText: "#FF4D4F",
	}
	lightPalette = palette{
		text:    "#1F1F1F",
		muted:   "#4F4F4F",
		dim:     "#8C8C8C",
		border:  "#C8C8C8",
		accent:  "#9A6B12",
		free:    "#2E7D32",
		errText: "#C62828",
	}
)

// NewTheme returns the dark or light theme.
func NewTheme(dark bool) Theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return Theme{
		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.text)).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(p.accent)),
		InactiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(p.border)),
		Header: lipgloss.NewStyle().Foreground(lipgloss.Color(p.dim)),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.errText)),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(p.border)),
		CardTitle: lipgloss.NewStyle().Foreground(lipgloss.Color(p.dim)),
		CardValue: lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Bold(true),
		Free:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.free)),
		Busy:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
	}
}
