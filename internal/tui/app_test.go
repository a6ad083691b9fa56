package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/tabdeck/internal/command"
	"github.com/nikbrunner/tabdeck/internal/model"
	"github.com/nikbrunner/tabdeck/internal/view"
)

func demoStore() *model.Store {
	store := model.NewStore()
	store.SetLiveTabs([]model.LiveTab{
		{ID: 1, Title: "Alpha", URL: "https://one.test", Active: true},
		{ID: 2, Title: "Beta", URL: "https://two.test"},
		{ID: 3, Title: "Gamma", URL: "https://three.test"},
	})
	return store
}

func newTestApp(store *model.Store) App {
	return NewApp(AppParams{Store: store})
}

func press(a App, msg tea.Msg) App {
	m, _ := a.Update(msg)
	return m.(App)
}

func pressKey(a App, kt tea.KeyType) App {
	return press(a, tea.KeyMsg{Type: kt})
}

func typeText(a App, s string) App {
	for _, r := range s {
		a = press(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return a
}

func altDigit(d rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{d}, Alt: true}
}

func TestApp_InitialState(t *testing.T) {
	a := newTestApp(demoStore())

	if !a.PanelOpen() {
		t.Error("panel should start open")
	}
	if a.ViewMode() != view.ModeList {
		t.Errorf("expected list view, got %v", a.ViewMode())
	}
	if len(a.Projection().Visible) != 3 {
		t.Errorf("expected 3 visible tabs, got %d", len(a.Projection().Visible))
	}
	if a.cursor.Index() != 0 {
		t.Errorf("cursor should start at 0, got %d", a.cursor.Index())
	}
}

func TestApp_QueryFiltersList(t *testing.T) {
	store := demoStore()
	store.AddTag("https://two.test", "x")
	a := newTestApp(store)

	a = typeText(a, "x")

	if len(a.Projection().Visible) != 1 || a.Projection().Visible[0].Title != "Beta" {
		t.Errorf("query 'x' should keep only the tagged tab, got %d visible", len(a.Projection().Visible))
	}
}

func TestApp_ViewModeKeys(t *testing.T) {
	a := newTestApp(demoStore())

	a = press(a, altDigit('2'))
	if a.ViewMode() != view.ModeGroups {
		t.Errorf("alt+2 should switch to groups, got %v", a.ViewMode())
	}

	a = press(a, altDigit('3'))
	if a.ViewMode() != view.ModeBookmarks {
		t.Errorf("alt+3 should switch to bookmarks, got %v", a.ViewMode())
	}

	a = press(a, altDigit('1'))
	if a.ViewMode() != view.ModeList {
		t.Errorf("alt+1 should switch back to list, got %v", a.ViewMode())
	}
}

func TestApp_EnterActivatesTabAndClosesPanel(t *testing.T) {
	store := demoStore()
	a := newTestApp(store)

	a = pressKey(a, tea.KeyDown) // Beta
	a = pressKey(a, tea.KeyEnter)

	if active := store.ActiveTab(); active == nil || active.ID != 2 {
		t.Errorf("expected tab 2 active, got %+v", active)
	}
	if a.PanelOpen() {
		t.Error("activating a tab should close the panel")
	}
}

func TestApp_EnterReopensGhost(t *testing.T) {
	store := demoStore()
	store.ToggleBookmark("https://two.test", "")
	store.CloseTab(2)
	a := newTestApp(store)

	a = press(a, altDigit('3'))
	if len(a.Projection().Visible) != 1 || a.Projection().Visible[0].Ref.IsLive() {
		t.Fatalf("expected a single ghost row, got %+v", a.Projection().Visible)
	}

	// The view switch drops the selection; Down picks up the ghost row.
	a = pressKey(a, tea.KeyDown)
	a = pressKey(a, tea.KeyEnter)

	reopened := store.LiveTabByURL("https://two.test")
	if reopened == nil {
		t.Fatal("ghost Enter should reopen the tab")
	}
	if !reopened.Active {
		t.Error("reopened tab should be active")
	}
	if a.PanelOpen() != true {
		t.Error("reopening keeps the panel open")
	}
	// The row is now live-backed and the cursor followed it.
	sel := a.Selected()
	if sel == nil || !sel.Ref.IsLive() {
		t.Errorf("cursor should sit on the reopened tab, got %+v", sel)
	}
}

func TestApp_MarkCommandFlow(t *testing.T) {
	store := demoStore()
	a := newTestApp(store)

	a = typeText(a, "/")
	if a.InputMode() != command.ModeCommandSelect {
		t.Fatalf("'/' should open the palette, got mode %v", a.InputMode())
	}

	a = typeText(a, "m")
	a = pressKey(a, tea.KeyEnter) // autocomplete
	if got := a.queryInput.Value(); got != "/mark" {
		t.Fatalf("expected autocompleted query '/mark', got %q", got)
	}
	if a.InputMode() != command.ModeCommandSelect {
		t.Fatal("autocomplete should keep the palette open")
	}

	a = pressKey(a, tea.KeyEnter) // confirm
	if a.InputMode() != command.ModeCommandActive {
		t.Fatalf("second Enter should arm the command, got mode %v", a.InputMode())
	}
	if len(a.Projection().Visible) != 1 || !a.Projection().Visible[0].Active {
		t.Error("armed mark should restrict the list to the active tab")
	}

	a = typeText(a, "urgent")
	a = pressKey(a, tea.KeyEnter) // execute

	meta := store.MetadataByURL("https://one.test")
	if meta == nil || len(meta.Tags) != 1 || meta.Tags[0] != "urgent" {
		t.Errorf("expected tag 'urgent' on the active tab, got %+v", meta)
	}
	if a.InputMode() != command.ModeSearch {
		t.Errorf("execution should return to search, got mode %v", a.InputMode())
	}
	if a.queryInput.Value() != "" {
		t.Errorf("query should be cleared, got %q", a.queryInput.Value())
	}
}

func TestApp_ImmediateCommandExecutes(t *testing.T) {
	store := demoStore()
	a := newTestApp(store)

	a = typeText(a, "/mute")
	a = pressKey(a, tea.KeyEnter)

	if tab := store.LiveTabByID(1); tab == nil || !tab.Muted {
		t.Error("confirming /mute should mute the active tab immediately")
	}
	if a.InputMode() != command.ModeSearch {
		t.Errorf("immediate command should return to search, got %v", a.InputMode())
	}
}

func TestApp_BackspaceOnEmptyDisarms(t *testing.T) {
	store := demoStore()
	a := newTestApp(store)

	a = typeText(a, "/mark")
	a = pressKey(a, tea.KeyEnter)
	if a.InputMode() != command.ModeCommandActive {
		t.Fatal("expected armed command")
	}

	a = pressKey(a, tea.KeyBackspace)
	if a.InputMode() != command.ModeSearch {
		t.Errorf("backspace on empty should disarm, got %v", a.InputMode())
	}
	if meta := store.MetadataByURL("https://one.test"); meta != nil && len(meta.Tags) > 0 {
		t.Error("disarm must not execute the command")
	}
}

func TestApp_EscapeUnwind(t *testing.T) {
	a := newTestApp(demoStore())

	// Query layer first.
	a = typeText(a, "al")
	a = pressKey(a, tea.KeyEsc)
	if a.queryInput.Value() != "" {
		t.Errorf("first Esc should clear the query, got %q", a.queryInput.Value())
	}
	if !a.PanelOpen() {
		t.Fatal("panel should survive the first Esc")
	}

	// Then the panel itself.
	a = pressKey(a, tea.KeyEsc)
	if a.PanelOpen() {
		t.Error("second Esc should close the panel")
	}
}

func TestApp_EscapeLeavesCommandModeFirst(t *testing.T) {
	a := newTestApp(demoStore())

	a = typeText(a, "/ma")
	a = pressKey(a, tea.KeyEsc)

	if a.InputMode() != command.ModeSearch {
		t.Errorf("Esc should leave command mode, got %v", a.InputMode())
	}
	if !a.PanelOpen() {
		t.Error("leaving command mode must not close the panel")
	}
	if a.queryInput.Value() != "" {
		t.Errorf("query should be cleared, got %q", a.queryInput.Value())
	}
}

func TestApp_ToggleReopenResets(t *testing.T) {
	a := newTestApp(demoStore())

	a = typeText(a, "/")
	a = pressKey(a, tea.KeyCtrlAt) // close
	if a.PanelOpen() {
		t.Fatal("toggle should close the panel")
	}

	a = pressKey(a, tea.KeyCtrlAt) // reopen
	if !a.PanelOpen() {
		t.Fatal("toggle should reopen the panel")
	}
	if a.InputMode() != command.ModeSearch {
		t.Errorf("reopen should reset to search, got %v", a.InputMode())
	}
	if a.queryInput.Value() != "" {
		t.Errorf("reopen should clear the query, got %q", a.queryInput.Value())
	}
}

func TestApp_PinAndReorder(t *testing.T) {
	store := demoStore()
	store.TogglePin(1)
	store.TogglePin(2)
	a := newTestApp(store)

	// Cursor starts on pinned[0] = tab 1; alt+down from the top of a
	// two-tab pinned section lands at the end.
	a = press(a, tea.KeyMsg{Type: tea.KeyDown, Alt: true})

	pinned := store.PinnedLive()
	if len(pinned) != 2 || pinned[0].ID != 2 || pinned[1].ID != 1 {
		t.Fatalf("expected pinned order [2 1], got %+v", pinned)
	}
	// The cursor followed the moved tab.
	if sel := a.Selected(); sel == nil || !sel.Ref.IsLive() || sel.Ref.Live != 1 {
		t.Errorf("cursor should follow the moved tab, got %+v", sel)
	}
}

func TestApp_ReorderUpFromTopMovesToEnd(t *testing.T) {
	store := demoStore()
	store.TogglePin(1)
	store.TogglePin(2)
	store.TogglePin(3)
	a := newTestApp(store)

	a = press(a, tea.KeyMsg{Type: tea.KeyUp, Alt: true})

	pinned := store.PinnedLive()
	if len(pinned) != 3 || pinned[2].ID != 1 {
		t.Errorf("alt+up from the top should wrap to the end, got %+v", pinned)
	}
}

func TestApp_ReorderIgnoredOutsideListView(t *testing.T) {
	store := demoStore()
	store.TogglePin(1)
	store.TogglePin(2)
	a := newTestApp(store)

	a = press(a, altDigit('2'))
	a = press(a, tea.KeyMsg{Type: tea.KeyDown, Alt: true})

	pinned := store.PinnedLive()
	if pinned[0].ID != 1 || pinned[1].ID != 2 {
		t.Errorf("reorder outside list view must be a no-op, got %+v", pinned)
	}
}

func TestApp_CtrlPTogglesPin(t *testing.T) {
	store := demoStore()
	a := newTestApp(store)

	a = pressKey(a, tea.KeyCtrlP)
	if tab := store.LiveTabByID(1); tab == nil || !tab.Pinned {
		t.Error("ctrl+p should pin the selected tab")
	}

	// Highlight marker is set and expires by clock.
	sel := a.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if !a.highlight.ActiveFor(sel.Ref, a.now()) {
		t.Error("mutation should highlight the row")
	}
	if a.highlight.ActiveFor(sel.Ref, a.now().Add(2*time.Second)) {
		t.Error("highlight should expire")
	}
}

func TestApp_CtrlBTogglesBookmark(t *testing.T) {
	store := demoStore()
	a := newTestApp(store)

	a = pressKey(a, tea.KeyCtrlB)
	if store.BookmarkByURL("https://one.test") == nil {
		t.Error("ctrl+b should bookmark the selected tab")
	}

	a = pressKey(a, tea.KeyCtrlB)
	if store.BookmarkByURL("https://one.test") != nil {
		t.Error("ctrl+b again should remove the bookmark")
	}
}

func TestApp_CtrlWClosesTab(t *testing.T) {
	store := demoStore()
	a := newTestApp(store)

	a = pressKey(a, tea.KeyCtrlW)

	if store.LiveTabByID(1) != nil {
		t.Error("ctrl+w should close the selected tab")
	}
	if len(a.Projection().Visible) != 2 {
		t.Errorf("expected 2 visible tabs after close, got %d", len(a.Projection().Visible))
	}
}

func TestApp_PinnedSectionCollapse(t *testing.T) {
	store := demoStore()
	store.TogglePin(1)
	a := newTestApp(store)

	if len(a.Projection().Visible) != 3 {
		t.Fatalf("expected 3 visible, got %d", len(a.Projection().Visible))
	}

	a = pressKey(a, tea.KeyCtrlE)
	if len(a.Projection().Visible) != 2 {
		t.Errorf("collapsing should hide the pinned tab, got %d visible", len(a.Projection().Visible))
	}

	a = pressKey(a, tea.KeyCtrlE)
	if len(a.Projection().Visible) != 3 {
		t.Errorf("expanding should restore the pinned tab, got %d visible", len(a.Projection().Visible))
	}
}

func TestApp_DetailEditsTagsAndNote(t *testing.T) {
	store := demoStore()
	a := newTestApp(store)

	a = pressKey(a, tea.KeyTab)
	if !a.DetailOpen() {
		t.Fatal("Tab should open the detail view")
	}

	a = typeText(a, "work, urgent")
	a = pressKey(a, tea.KeyTab) // focus note
	a = typeText(a, "review later")
	a = pressKey(a, tea.KeyEnter)

	if a.DetailOpen() {
		t.Error("saving should close the detail view")
	}
	meta := store.MetadataByURL("https://one.test")
	if meta == nil {
		t.Fatal("expected metadata after detail save")
	}
	if len(meta.Tags) != 2 || meta.Tags[0] != "work" || meta.Tags[1] != "urgent" {
		t.Errorf("expected tags [work urgent], got %v", meta.Tags)
	}
	if meta.Note != "review later" {
		t.Errorf("expected note 'review later', got %q", meta.Note)
	}
}

func TestApp_DetailEscapeDiscards(t *testing.T) {
	store := demoStore()
	a := newTestApp(store)

	a = pressKey(a, tea.KeyTab)
	a = typeText(a, "scratch")
	a = pressKey(a, tea.KeyEsc)

	if a.DetailOpen() {
		t.Error("Esc should close the detail view")
	}
	if !a.PanelOpen() {
		t.Error("Esc from detail must not close the panel")
	}
	if meta := store.MetadataByURL("https://one.test"); meta != nil && len(meta.Tags) > 0 {
		t.Error("Esc must discard unsaved edits")
	}
}

func TestApp_PaletteNavigation(t *testing.T) {
	a := newTestApp(demoStore())

	a = typeText(a, "/")
	if a.machine.PaletteIndex() != 0 {
		t.Fatalf("palette should start at 0, got %d", a.machine.PaletteIndex())
	}

	a = pressKey(a, tea.KeyDown)
	if a.machine.PaletteIndex() != 1 {
		t.Errorf("down should move the palette selection, got %d", a.machine.PaletteIndex())
	}

	// List cursor is untouched while the palette is open.
	if a.cursor.Index() != 0 {
		t.Errorf("list cursor should stay put, got %d", a.cursor.Index())
	}
}

func TestApp_ViewRendersWithoutPanic(t *testing.T) {
	store := demoStore()
	store.TogglePin(2)
	store.ToggleBookmark("https://three.test", "")
	a := newTestApp(store)

	for _, msg := range []tea.Msg{
		tea.WindowSizeMsg{Width: 100, Height: 30},
		altDigit('2'),
		altDigit('3'),
		altDigit('1'),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}},
	} {
		a = press(a, msg)
		if a.View() == "" {
			t.Fatal("view should never be empty")
		}
	}

	a = pressKey(a, tea.KeyCtrlAt)
	if a.View() == "" {
		t.Error("closed panel still renders its hint line")
	}
}
