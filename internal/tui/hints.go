package tui

import (
	"strings"

	"github.com/nikbrunner/tabdeck/internal/command"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "↑/↓", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar.
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (↑/↓, alt+↑/↓)
	Action []Hint // Action hints (Enter, ctrl+p, ...)
	System []Hint // System hints (Esc, ctrl+c)
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current state.
func (a App) getContextualHints() HintSet {
	if a.detail != nil {
		return a.getDetailHints()
	}
	switch a.machine.Mode() {
	case command.ModeCommandSelect:
		return a.getPaletteHints()
	case command.ModeCommandActive:
		return a.getCommandActiveHints()
	}
	return a.getSearchHints()
}

// getSearchHints returns hints for the plain search state.
func (a App) getSearchHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "↑/↓", Desc: "move"},
			{Key: "alt+1/2/3", Desc: "view"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "open"},
			{Key: "Tab", Desc: "details"},
			{Key: "/", Desc: "commands"},
			{Key: "ctrl+p", Desc: "pin"},
			{Key: "ctrl+b", Desc: "bookmark"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "close"},
			{Key: "ctrl+c", Desc: "quit"},
		},
	}
}

// getPaletteHints returns hints while the command palette is open.
func (a App) getPaletteHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "↑/↓", Desc: "select"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "complete/confirm"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "cancel"},
		},
	}
}

// getCommandActiveHints returns hints while a command is armed.
func (a App) getCommandActiveHints() HintSet {
	hints := HintSet{
		Action: []Hint{
			{Key: "Enter", Desc: "apply"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "cancel"},
		},
	}
	if a.queryInput.Value() == "" {
		hints.System = append(hints.System, Hint{Key: "Backspace", Desc: "disarm"})
	}
	return hints
}

// getDetailHints returns hints for the detail view.
func (a App) getDetailHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "Tab", Desc: "next field"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "save"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "back"},
		},
	}
}
