package view_test

import (
	"testing"

	"github.com/nikbrunner/tabdeck/internal/merge"
	"github.com/nikbrunner/tabdeck/internal/view"
)

func tabs(ids ...int64) []merge.UnifiedTab {
	result := make([]merge.UnifiedTab, len(ids))
	for i, id := range ids {
		result[i] = merge.UnifiedTab{Ref: merge.LiveRef(id)}
	}
	return result
}

func TestCursor_FirstListSelectsTop(t *testing.T) {
	c := view.NewCursor()
	c.Reconcile(tabs(1, 2, 3), view.ModeList)
	if c.Index() != 0 {
		t.Errorf("expected first reconcile to select the top, got %d", c.Index())
	}
}

func TestCursor_PendingTargetFollowsTab(t *testing.T) {
	c := view.NewCursor()
	c.Reconcile(tabs(1, 2, 3), view.ModeList)

	// A mutation on tab 3 sets the pending target; the tab then moves.
	c.SetPendingTarget(merge.LiveRef(3))
	c.Reconcile(tabs(3, 1, 2), view.ModeList)
	if c.Index() != 0 {
		t.Errorf("cursor should follow tab 3 to index 0, got %d", c.Index())
	}
}

func TestCursor_PendingTargetClearedWhenGone(t *testing.T) {
	c := view.NewCursor()
	c.Reconcile(tabs(1, 2, 3), view.ModeList)
	c.Move(1, 3) // index 1

	c.SetPendingTarget(merge.LiveRef(99))
	c.Reconcile(tabs(1, 2, 3), view.ModeList)
	if c.Index() != 1 {
		t.Errorf("missing target should leave the cursor untouched, got %d", c.Index())
	}

	// The stale pending target must not resurface on the next change.
	c.Reconcile(tabs(2, 3), view.ModeList)
	if c.Index() != 0 {
		t.Errorf("identity change should reset to 0, got %d", c.Index())
	}
}

func TestCursor_ViewModeSwitchClearsSelection(t *testing.T) {
	c := view.NewCursor()
	c.Reconcile(tabs(1, 2, 3), view.ModeList)
	c.Move(1, 3)

	c.Reconcile(tabs(1, 2, 3), view.ModeGroups)
	if c.Index() != -1 {
		t.Errorf("view mode switch should clear the selection, got %d", c.Index())
	}
}

func TestCursor_IdentityChangeResetsToTop(t *testing.T) {
	c := view.NewCursor()
	c.Reconcile(tabs(1, 2, 3), view.ModeList)
	c.Move(1, 3)
	c.Move(1, 3) // index 2

	// Filtering produced a different list: start fresh at the top.
	c.Reconcile(tabs(2, 3), view.ModeList)
	if c.Index() != 0 {
		t.Errorf("expected reset to 0 on identity change, got %d", c.Index())
	}
}

func TestCursor_UnchangedListKeepsCursor(t *testing.T) {
	c := view.NewCursor()
	c.Reconcile(tabs(1, 2, 3), view.ModeList)
	c.Move(1, 3)

	// Pure re-render: same list, same mode.
	c.Reconcile(tabs(1, 2, 3), view.ModeList)
	if c.Index() != 1 {
		t.Errorf("unchanged list must not perturb the cursor, got %d", c.Index())
	}
}

func TestCursor_MoveWraparound(t *testing.T) {
	c := view.NewCursor()
	c.Reconcile(tabs(1, 2, 3), view.ModeList)

	c.Move(-1, 3)
	if c.Index() != 2 {
		t.Errorf("up from the top should wrap to the bottom, got %d", c.Index())
	}
	c.Move(1, 3)
	if c.Index() != 0 {
		t.Errorf("down from the bottom should wrap to the top, got %d", c.Index())
	}
}

func TestCursor_MoveFromNoSelection(t *testing.T) {
	c := view.NewCursor()
	c.Reconcile(tabs(1, 2, 3), view.ModeGroups)
	c.Reconcile(tabs(1, 2, 3), view.ModeList) // mode switch: index -1

	c.Move(1, 3)
	if c.Index() != 0 {
		t.Errorf("down from -1 should land on 0, got %d", c.Index())
	}

	c2 := view.NewCursor()
	c2.Reconcile(tabs(1, 2, 3), view.ModeGroups)
	c2.Reconcile(tabs(1, 2, 3), view.ModeBookmarks) // -1 again
	c2.Move(-1, 3)
	if c2.Index() != 2 {
		t.Errorf("up from -1 should land on the last index, got %d", c2.Index())
	}
}

func TestCursor_ClampAfterShrink(t *testing.T) {
	c := view.NewCursor()
	c.Reconcile(tabs(1, 2, 3), view.ModeList)
	c.Move(1, 3)
	c.Move(1, 3) // index 2

	// Target still present keeps the pending path off; list shrank under the
	// cursor with an unfound pending target.
	c.SetPendingTarget(merge.LiveRef(99))
	c.Reconcile(tabs(1), view.ModeList)
	if c.Index() != 0 {
		t.Errorf("cursor must clamp into the shrunken list, got %d", c.Index())
	}
}
