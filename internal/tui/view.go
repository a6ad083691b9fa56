package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/tabdeck/internal/command"
	"github.com/nikbrunner/tabdeck/internal/merge"
	"github.com/nikbrunner/tabdeck/internal/tui/layout"
	"github.com/nikbrunner/tabdeck/internal/view"
)

// renderView draws the floating panel, or the closed-state hint line.
func (a App) renderView() string {
	if !a.panelOpen {
		hint := a.styles.Empty.Render("tabdeck hidden: " + a.keys.TogglePanel.Help().Key + " to open")
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, hint)
	}

	panelWidth := layout.CalculatePanelWidth(a.width, a.layoutConfig.Panel)
	rowWidth := layout.CalculateRowWidth(panelWidth, a.layoutConfig.Panel)

	var content string
	if a.detail != nil {
		content = a.renderDetail(rowWidth)
	} else {
		sections := []string{
			a.renderTitleBar(),
			a.renderQueryLine(),
		}
		if a.machine.Mode() == command.ModeCommandSelect {
			sections = append(sections, a.renderPalette())
		}
		sections = append(sections, a.renderRows(rowWidth))
		sections = append(sections, a.renderHints(a.getContextualHints()))
		content = strings.Join(sections, "\n")
	}

	panel := a.styles.Panel.Width(panelWidth).Render(content)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, panel)
}

// renderTitleBar shows the app name and the view mode selector.
func (a App) renderTitleBar() string {
	modes := []view.Mode{view.ModeList, view.ModeGroups, view.ModeBookmarks}
	parts := make([]string, len(modes))
	for i, m := range modes {
		label := m.String()
		if m == a.viewMode {
			parts[i] = a.styles.Title.Render("[" + label + "]")
		} else {
			parts[i] = a.styles.Empty.Render(" " + label + " ")
		}
	}
	return a.styles.Title.Render("tabdeck") + "  " + strings.Join(parts, " ")
}

// renderQueryLine shows the search box, with the armed command's trigger as
// a prompt and the inline autocomplete preview while the palette is open.
func (a App) renderQueryLine() string {
	var prefix string
	if a.machine.Mode() == command.ModeCommandActive {
		if cmd, ok := command.Lookup(a.machine.Active()); ok {
			prefix = a.styles.Badge.Render("/"+cmd.Trigger) + " "
		}
	}

	line := prefix + a.queryInput.View()

	if a.machine.Mode() == command.ModeCommandSelect {
		if cmd, ok := a.machine.SelectedCommand(a.queryInput.Value()); ok {
			if suffix := command.GhostSuffix(a.queryInput.Value(), cmd); suffix != "" {
				line += a.styles.GhostSuffix.Render(suffix)
			}
		}
	}

	return line
}

// renderPalette lists the commands matching the typed prefix.
func (a App) renderPalette() string {
	filtered := a.machine.Filtered(a.queryInput.Value())
	if len(filtered) == 0 {
		return a.styles.Empty.Render("  no matching command")
	}

	start, end := layout.CalculateVisibleListItems(
		a.layoutConfig.Panel.PaletteMaxVisible, a.machine.PaletteIndex(), len(filtered))

	var b strings.Builder
	for i := start; i < end; i++ {
		cmd := filtered[i]
		line := fmt.Sprintf("/%s  %s", cmd.Trigger, cmd.Desc)
		if i == a.machine.PaletteIndex() {
			b.WriteString(a.styles.PaletteSel.Render("> " + line))
		} else {
			b.WriteString(a.styles.Palette.Render("  " + line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderRows draws the tab list for the current projection, windowed around
// the cursor.
func (a App) renderRows(rowWidth int) string {
	if len(a.projection.Visible) == 0 {
		return a.styles.Empty.Render("  no tabs")
	}

	maxVisible := layout.CalculateListHeight(a.height, a.layoutConfig.Panel)
	selected := a.cursor.Index()
	if selected < 0 {
		selected = 0
	}
	start, end := layout.CalculateVisibleListItems(maxVisible, selected, len(a.projection.Visible))

	var lines []string

	if a.viewMode == view.ModeList && len(a.projection.Pinned) > 0 {
		marker := "▾"
		if !a.pinnedExpanded {
			marker = "▸"
		}
		lines = append(lines, a.styles.Header.Render(
			fmt.Sprintf("%s Pinned (%d)", marker, len(a.projection.Pinned))))
	}

	for _, row := range a.projection.Rows {
		switch row.Kind {
		case view.RowHeader:
			if a.headerVisible(row, start, end) {
				lines = append(lines, a.styles.Header.Render("── "+a.headerLabel(row)+" ──"))
			}
		case view.RowTab:
			if row.VisibleIndex < start || row.VisibleIndex >= end {
				continue
			}
			lines = append(lines, a.renderRow(row, rowWidth))
		}
	}

	return strings.Join(lines, "\n")
}

// headerVisible reports whether any tab row under this header falls in the
// scroll window.
func (a App) headerVisible(header view.Row, start, end int) bool {
	seen := false
	for _, row := range a.projection.Rows {
		if row.Kind == view.RowHeader {
			seen = row.Header == header.Header
			continue
		}
		if seen && row.VisibleIndex >= start && row.VisibleIndex < end {
			return true
		}
	}
	return false
}

// headerLabel resolves a header row to display text. Bookmark headers carry
// group ids; a dangling id renders as "unknown group".
func (a App) headerLabel(row view.Row) string {
	if a.viewMode != view.ModeBookmarks {
		return row.Header
	}
	if row.Header == "" {
		return "ungrouped"
	}
	if group := a.store.GroupByID(row.Header); group != nil {
		return group.Title
	}
	return "unknown group"
}

// renderRow draws a single tab row with its badges and tags.
func (a App) renderRow(row view.Row, rowWidth int) string {
	tab := row.Tab

	style := a.styles.Row
	switch {
	case row.VisibleIndex == a.cursor.Index():
		style = a.styles.RowSelected
	case a.highlight.ActiveFor(tab.Ref, a.now()):
		style = a.styles.RowHighlight
	case !tab.Ref.IsLive():
		style = a.styles.RowGhost
	case tab.Active:
		style = a.styles.RowActive
	}

	var badges strings.Builder
	if tab.Active {
		badges.WriteString("●")
	}
	if tab.Pinned {
		badges.WriteString("*")
	}
	if tab.Bookmarked {
		badges.WriteString("◆")
	}
	if tab.Muted {
		badges.WriteString("∅")
	} else if tab.Audible {
		badges.WriteString("♪")
	}

	title := tab.Title
	if title == "" {
		title = tab.URL
	}

	line := title
	if badges.Len() > 0 {
		line += " " + a.styles.Badge.Render(badges.String())
	}
	if len(tab.Tags) > 0 {
		line += " " + a.styles.Tag.Render("["+strings.Join(tab.Tags, ", ")+"]")
	}

	return layout.TruncateANSIAware(style.Render(line), rowWidth, a.layoutConfig.Text)
}

// renderDetail draws the detail view for the tab the cursor was on.
func (a App) renderDetail(rowWidth int) string {
	tab := a.detailTab()
	if tab == nil {
		return a.styles.Empty.Render("tab no longer exists") + "\n\n" +
			a.renderHints(a.getDetailHints())
	}

	var b strings.Builder

	title := tab.Title
	if title == "" {
		title = tab.URL
	}
	b.WriteString(a.styles.Title.Render(title) + "\n")

	url, _ := layout.TruncateText(tab.URL, rowWidth, a.layoutConfig.Text)
	b.WriteString(a.styles.URL.Render(url) + "\n\n")

	b.WriteString(a.detailStatusLine(*tab) + "\n\n")

	b.WriteString(a.styles.Header.Render("Tags") + "\n")
	b.WriteString(a.detail.TagsInput.View() + "\n\n")

	b.WriteString(a.styles.Header.Render("Note") + "\n")
	b.WriteString(a.detail.NoteInput.View() + "\n\n")

	b.WriteString(a.renderHints(a.getDetailHints()))

	return b.String()
}

// detailStatusLine summarizes pin/bookmark/group state for the detail view.
func (a App) detailStatusLine(tab merge.UnifiedTab) string {
	var parts []string
	if !tab.Ref.IsLive() {
		parts = append(parts, "closed")
	}
	if tab.Pinned {
		parts = append(parts, "pinned")
	}
	if tab.Bookmarked {
		label := "bookmarked"
		if tab.BookmarkGroupID != "" {
			if group := a.store.GroupByID(tab.BookmarkGroupID); group != nil {
				label += " in " + group.Title
			} else {
				label += " in unknown group"
			}
		}
		parts = append(parts, label)
	}
	if len(parts) == 0 {
		parts = append(parts, "open tab")
	}
	return a.styles.Status.Render(strings.Join(parts, " · "))
}
