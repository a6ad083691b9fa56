package layout

// CalculatePanelWidth computes the floating panel width from the terminal
// width, clamped between MinWidth and MaxWidth.
func CalculatePanelWidth(terminalWidth int, cfg PanelConfig) int {
	width := terminalWidth * cfg.WidthPercent / 100

	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}

	// Don't exceed terminal width
	if width > terminalWidth-4 {
		width = terminalWidth - 4
	}
	if width < 1 {
		return 1
	}

	return width
}

// CalculateListHeight computes the visible row count for the tab list.
// Returns at least MinListHeight.
func CalculateListHeight(terminalHeight int, cfg PanelConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinListHeight {
		return cfg.MinListHeight
	}
	return height
}

// CalculateRowWidth computes the width available for row content.
func CalculateRowWidth(panelWidth int, cfg PanelConfig) int {
	return panelWidth - cfg.ContentPadding
}

// CalculateVisibleListItems computes the start and end indices for a
// scrollable list. Returns (start, end) where items[start:end] should be
// displayed.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
