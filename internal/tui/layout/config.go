package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Panel PanelConfig
	Input InputConfig
	Text  TextConfig
}

// PanelConfig holds the floating panel dimension configuration.
type PanelConfig struct {
	// WidthPercent is the panel width as a percentage of terminal width.
	WidthPercent int

	// MinWidth is the minimum panel width in characters.
	MinWidth int

	// MaxWidth is the maximum panel width in characters.
	MaxWidth int

	// HeightReduction is subtracted from terminal height for the list area.
	// Accounts for: panel borders (2) + search box (2) + hint bar (2) = 6
	HeightReduction int

	// MinListHeight is the minimum number of visible list rows.
	MinListHeight int

	// ContentPadding is subtracted from panel width for row rendering.
	ContentPadding int

	// PaletteMaxVisible: max commands shown in the palette.
	PaletteMaxVisible int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	QueryCharLimit int
	TagsCharLimit  int
	NoteCharLimit  int

	QueryWidth int
	FieldWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Panel: PanelConfig{
			WidthPercent:      60,
			MinWidth:          48,
			MaxWidth:          100,
			HeightReduction:   6,
			MinListHeight:     4,
			ContentPadding:    4,
			PaletteMaxVisible: 5,
		},
		Input: InputConfig{
			QueryCharLimit: 100,
			TagsCharLimit:  200,
			NoteCharLimit:  300,
			QueryWidth:     40,
			FieldWidth:     40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
