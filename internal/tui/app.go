package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/tabdeck/internal/command"
	"github.com/nikbrunner/tabdeck/internal/merge"
	"github.com/nikbrunner/tabdeck/internal/model"
	"github.com/nikbrunner/tabdeck/internal/tui/layout"
	"github.com/nikbrunner/tabdeck/internal/view"
)

// highlightTickMsg fires when a row highlight is due to expire; it only
// forces a re-render, the marker itself is checked against the clock.
type highlightTickMsg time.Time

// App is the main bubbletea model for the tab panel.
type App struct {
	store        *model.Store
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	machine    command.Machine
	cursor     view.Cursor
	queryInput textinput.Model
	viewMode   view.Mode
	projection view.Projection

	panelOpen      bool
	pinnedExpanded bool
	detail         *DetailState
	highlight      Highlight

	// Injectable clock for deterministic highlight tests.
	now func() time.Time

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store  *model.Store
	Keys   *KeyMap // optional, uses default if nil
	Styles *Styles // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	cfg := layout.DefaultConfig()

	app := App{
		store:          params.Store,
		keys:           keys,
		styles:         styles,
		layoutConfig:   cfg,
		machine:        command.NewMachine(),
		cursor:         view.NewCursor(),
		queryInput:     newQueryInput(cfg),
		viewMode:       view.ModeList,
		panelOpen:      true,
		pinnedExpanded: true,
		now:            time.Now,
		width:          80,
		height:         24,
	}

	app.recompute()
	return app
}

// PanelOpen reports whether the panel is visible.
func (a App) PanelOpen() bool {
	return a.panelOpen
}

// ViewMode returns the current view mode.
func (a App) ViewMode() view.Mode {
	return a.viewMode
}

// Selected returns the highlighted tab, nil when nothing is highlighted.
func (a App) Selected() *merge.UnifiedTab {
	return a.cursor.Selected(a.projection.Visible)
}

// Projection returns the currently derived view projection.
func (a App) Projection() view.Projection {
	return a.projection
}

// InputMode returns the command machine's current mode.
func (a App) InputMode() command.InputMode {
	return a.machine.Mode()
}

// DetailOpen reports whether the detail view is showing.
func (a App) DetailOpen() bool {
	return a.detail != nil
}

// tabsForMode derives the unified tab set feeding the projection: the
// bookmark view is built from the bookmark store (ghosts included), the
// others from the live registry.
func (a *App) tabsForMode() []merge.UnifiedTab {
	if a.viewMode == view.ModeBookmarks {
		return merge.MergeBookmarked(a.store)
	}
	return merge.MergeLive(a.store)
}

// recompute re-derives the projection and reconciles the cursor. Called
// after every event that can change what is visible.
func (a *App) recompute() {
	a.projection = view.Project(view.Input{
		Tabs:           a.tabsForMode(),
		Query:          a.queryInput.Value(),
		Mode:           a.viewMode,
		InputMode:      a.machine.Mode(),
		ActiveCommand:  a.machine.Active(),
		PinnedExpanded: a.pinnedExpanded,
	})
	a.cursor.Reconcile(a.projection.Visible, a.viewMode)
}

// markRow sets the expiring highlight on a row and keeps the cursor on it
// across the recompute.
func (a *App) markRow(ref merge.TabRef) tea.Cmd {
	a.highlight = NewHighlight(ref, a.now())
	a.cursor.SetPendingTarget(ref)
	return tea.Tick(highlightDuration, func(t time.Time) tea.Msg {
		return highlightTickMsg(t)
	})
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case highlightTickMsg:
		// Re-render; the marker expires by clock comparison.
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.TogglePanel):
		a.togglePanel()
		return a, nil
	}

	if !a.panelOpen {
		return a, nil
	}

	if a.detail != nil {
		return a.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Back):
		a.unwind()
		a.recompute()
		return a, nil

	case key.Matches(msg, a.keys.ViewList):
		a.viewMode = view.ModeList
	case key.Matches(msg, a.keys.ViewGroups):
		a.viewMode = view.ModeGroups
	case key.Matches(msg, a.keys.ViewBookmarks):
		a.viewMode = view.ModeBookmarks

	case key.Matches(msg, a.keys.Up):
		if a.machine.Mode() == command.ModeCommandSelect {
			a.machine.MovePalette(-1, a.queryInput.Value())
		} else {
			a.cursor.Move(-1, len(a.projection.Visible))
		}
		return a, nil

	case key.Matches(msg, a.keys.Down):
		if a.machine.Mode() == command.ModeCommandSelect {
			a.machine.MovePalette(1, a.queryInput.Value())
		} else {
			a.cursor.Move(1, len(a.projection.Visible))
		}
		return a, nil

	case key.Matches(msg, a.keys.MoveUp):
		cmd := a.reorderSelected(-1)
		a.recompute()
		return a, cmd

	case key.Matches(msg, a.keys.MoveDown):
		cmd := a.reorderSelected(1)
		a.recompute()
		return a, cmd

	case key.Matches(msg, a.keys.TogglePinned):
		a.pinnedExpanded = !a.pinnedExpanded

	case key.Matches(msg, a.keys.Pin):
		cmd := a.pinSelected()
		a.recompute()
		return a, cmd

	case key.Matches(msg, a.keys.Bookmark):
		cmd := a.bookmarkSelected()
		a.recompute()
		return a, cmd

	case key.Matches(msg, a.keys.CloseTab):
		a.closeSelected()

	case key.Matches(msg, a.keys.Yank):
		a.yankSelected()
		return a, nil

	case key.Matches(msg, a.keys.Detail):
		a.openDetail()
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		return a.handleEnter()

	default:
		// Backspace on an empty query disarms an armed command instead of
		// reaching the (already empty) input.
		if msg.Type == tea.KeyBackspace && a.queryInput.Value() == "" && a.machine.BackspaceOnEmpty() {
			a.recompute()
			return a, nil
		}

		var cmd tea.Cmd
		before := a.queryInput.Value()
		a.queryInput, cmd = a.queryInput.Update(msg)
		if after := a.queryInput.Value(); after != before {
			a.machine.QueryChanged(after)
		}
		a.recompute()
		return a, cmd
	}

	a.recompute()
	return a, nil
}

// togglePanel opens or closes the panel. Reopening resets to search mode
// with an empty query; the view mode persists.
func (a *App) togglePanel() {
	a.panelOpen = !a.panelOpen
	if a.panelOpen {
		a.machine.Reset()
		a.queryInput.Reset()
		a.queryInput.Focus()
		a.detail = nil
		a.recompute()
	}
}

// unwind handles Escape, innermost layer first: command mode, then the
// query text, then the panel itself. The detail view is handled before this
// is reached.
func (a *App) unwind() {
	if a.machine.ExitCommand() {
		a.queryInput.Reset()
		return
	}
	if a.queryInput.Value() != "" {
		a.queryInput.Reset()
		a.machine.QueryChanged("")
		return
	}
	a.panelOpen = false
}

func (a App) handleEnter() (tea.Model, tea.Cmd) {
	if a.machine.Mode() != command.ModeSearch {
		res := a.machine.Enter(a.queryInput.Value())
		switch res.Action {
		case command.EnterAutocomplete:
			a.queryInput.SetValue(res.Query)
			a.queryInput.CursorEnd()
			a.machine.QueryChanged(res.Query)

		case command.EnterActivate:
			a.queryInput.Reset()
			if !res.Command.TakesArg {
				cmd := a.executeCommand(res.Command, "")
				a.machine.Reset()
				a.recompute()
				return a, cmd
			}

		case command.EnterExecute:
			arg := a.queryInput.Value()
			a.queryInput.Reset()
			cmd := a.executeCommand(res.Command, arg)
			a.recompute()
			return a, cmd
		}
		a.recompute()
		return a, nil
	}

	// Plain search mode: Enter acts on the selected row. A ghost reopens
	// its URL as a fresh tab; a live tab is activated and the panel closes.
	selected := a.Selected()
	if selected == nil {
		return a, nil
	}
	if selected.Ref.IsLive() {
		if err := a.store.ActivateTab(selected.Ref.Live); err == nil {
			a.panelOpen = false
		}
		a.recompute()
		return a, nil
	}

	opened := a.store.OpenTab(model.OpenTabParams{
		Title:   selected.Title,
		URL:     selected.URL,
		IconURL: selected.IconURL,
	})
	cmd := a.markRow(merge.LiveRef(opened.ID))
	a.recompute()
	return a, cmd
}

// executeCommand applies a confirmed slash command to the active tab.
func (a *App) executeCommand(cmd command.Command, arg string) tea.Cmd {
	active := a.store.ActiveTab()
	if active == nil {
		return nil
	}
	ref := merge.LiveRef(active.ID)

	switch cmd.Kind {
	case command.KindMark:
		a.store.AddTag(active.URL, arg)
	case command.KindNote:
		a.store.SetNote(active.URL, arg)
	case command.KindClose:
		a.store.CloseTab(active.ID)
		return nil
	case command.KindMute:
		a.store.ToggleMute(active.ID)
	case command.KindPin:
		a.store.TogglePin(active.ID)
	default:
		return nil
	}

	return a.markRow(ref)
}

// reorderSelected moves the selected pinned tab within the pinned sequence.
// Only meaningful in the list view. The down move targets the neighbor after
// the next one because the tab is removed before it is reinserted.
func (a *App) reorderSelected(direction int) tea.Cmd {
	if a.viewMode != view.ModeList {
		return nil
	}
	selected := a.Selected()
	if selected == nil || !selected.Ref.IsLive() || !selected.Pinned {
		return nil
	}

	pinned := a.store.PinnedLive()
	idx := -1
	for i, tab := range pinned {
		if tab.ID == selected.Ref.Live {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	var err error
	if direction > 0 {
		if idx+2 < len(pinned) {
			err = a.store.ReorderPinned(selected.Ref.Live, pinned[idx+2].ID)
		} else {
			err = a.store.ReorderPinnedToEnd(selected.Ref.Live)
		}
	} else {
		if idx > 0 {
			err = a.store.ReorderPinned(selected.Ref.Live, pinned[idx-1].ID)
		} else {
			err = a.store.ReorderPinnedToEnd(selected.Ref.Live)
		}
	}
	if err != nil {
		return nil
	}

	return a.markRow(selected.Ref)
}

func (a *App) pinSelected() tea.Cmd {
	selected := a.Selected()
	if selected == nil || !selected.Ref.IsLive() {
		return nil
	}
	if err := a.store.TogglePin(selected.Ref.Live); err != nil {
		return nil
	}
	return a.markRow(selected.Ref)
}

func (a *App) bookmarkSelected() tea.Cmd {
	selected := a.Selected()
	if selected == nil {
		return nil
	}
	a.store.ToggleBookmark(selected.URL, selected.BookmarkGroupID)
	return a.markRow(selected.Ref)
}

func (a *App) closeSelected() {
	selected := a.Selected()
	if selected == nil || !selected.Ref.IsLive() {
		return
	}
	a.store.CloseTab(selected.Ref.Live)
}

func (a *App) yankSelected() {
	selected := a.Selected()
	if selected == nil {
		return
	}
	// Clipboard failure (headless session) is silently ignored.
	clipboard.WriteAll(selected.URL)
}

// openDetail shows the detail view for the selected tab.
func (a *App) openDetail() {
	selected := a.Selected()
	if selected == nil {
		return
	}
	detail := NewDetailState(*selected, a.layoutConfig)
	a.detail = &detail
}

// handleDetailKey routes keys while the detail view is open.
func (a App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.detail = nil
		a.recompute()
		return a, nil

	case key.Matches(msg, a.keys.Detail):
		a.detail.CycleFocus()
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		tab := a.detailTab()
		if tab == nil {
			a.detail = nil
			a.recompute()
			return a, nil
		}
		a.store.ReplaceTags(tab.URL, a.detail.ParseTags())
		a.store.SetNote(tab.URL, a.detail.NoteInput.Value())
		ref := a.detail.Ref
		a.detail = nil
		cmd := a.markRow(ref)
		a.recompute()
		return a, cmd
	}

	var cmd tea.Cmd
	if a.detail.Focused == fieldTags {
		a.detail.TagsInput, cmd = a.detail.TagsInput.Update(msg)
	} else {
		a.detail.NoteInput, cmd = a.detail.NoteInput.Update(msg)
	}
	return a, cmd
}

// detailTab resolves the detail view's ref against the current tab set.
// A vanished tab yields nil and the detail view renders nothing.
func (a App) detailTab() *merge.UnifiedTab {
	if a.detail == nil {
		return nil
	}
	tabs := a.tabsForMode()
	for i := range tabs {
		if tabs[i].Ref == a.detail.Ref {
			return &tabs[i]
		}
	}
	return nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
