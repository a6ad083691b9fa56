package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the panel.
type Styles struct {
	Panel        lipgloss.Style
	Title        lipgloss.Style
	Query        lipgloss.Style
	GhostSuffix  lipgloss.Style
	Row          lipgloss.Style
	RowSelected  lipgloss.Style
	RowActive    lipgloss.Style
	RowGhost     lipgloss.Style
	RowHighlight lipgloss.Style
	Header       lipgloss.Style
	URL          lipgloss.Style
	Tag          lipgloss.Style
	Badge        lipgloss.Style
	Palette      lipgloss.Style
	PaletteSel   lipgloss.Style
	HintKey      lipgloss.Style
	HintDesc     lipgloss.Style
	Empty        lipgloss.Style
	Status       lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}

	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Query: lipgloss.NewStyle().
			Foreground(primary),

		GhostSuffix: lipgloss.NewStyle().
			Foreground(subtle),

		Row: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		RowSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		RowActive: lipgloss.NewStyle().
			Foreground(accent).
			PaddingLeft(1),

		RowGhost: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true).
			PaddingLeft(1),

		RowHighlight: lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(lipgloss.AdaptiveColor{Light: "#3A5A3A", Dark: "#87AF87"}),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(subtle),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Tag: lipgloss.NewStyle().
			Foreground(subtle),

		Badge: lipgloss.NewStyle().
			Foreground(accent),

		Palette: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(2),

		PaletteSel: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(accent).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Status: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
