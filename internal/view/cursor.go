package view

import (
	"strings"

	"github.com/nikbrunner/tabdeck/internal/merge"
)

// Cursor tracks the highlighted row of the visible list across view changes.
// An index of -1 means no row is highlighted, which is the state right after
// a view-mode switch so a stale highlight can't be acted on.
type Cursor struct {
	index    int
	pending  *merge.TabRef
	lastKeys string
	lastMode Mode
	started  bool
}

// NewCursor creates a cursor with nothing highlighted.
func NewCursor() Cursor {
	return Cursor{index: -1}
}

// Index returns the highlighted position in the visible list, -1 for none.
func (c *Cursor) Index() int {
	return c.index
}

// Selected returns the highlighted tab, nil when nothing is highlighted.
func (c *Cursor) Selected(visible []merge.UnifiedTab) *merge.UnifiedTab {
	if c.index < 0 || c.index >= len(visible) {
		return nil
	}
	return &visible[c.index]
}

// SetPendingTarget makes the next reconciliation follow the given tab, so
// the cursor stays on the row the user just mutated.
func (c *Cursor) SetPendingTarget(ref merge.TabRef) {
	r := ref
	c.pending = &r
}

// Reconcile updates the cursor for a freshly derived visible list.
//
// Priority: a pending target wins and is cleared whether or not it is still
// visible (a mutation that removes its target must not leave a stale
// pending). Otherwise a view-mode change clears the highlight, a change in
// the list's identity resets to the top, and an unchanged list leaves the
// cursor alone.
func (c *Cursor) Reconcile(visible []merge.UnifiedTab, mode Mode) {
	keys := identity(visible)

	switch {
	case c.pending != nil:
		target := *c.pending
		c.pending = nil
		for i := range visible {
			if visible[i].Ref == target {
				c.index = i
			}
		}
	case c.started && mode != c.lastMode:
		c.index = -1
	case !c.started || keys != c.lastKeys:
		if len(visible) > 0 {
			c.index = 0
		} else {
			c.index = -1
		}
	}

	if c.index >= len(visible) {
		c.index = len(visible) - 1
	}

	c.lastKeys = keys
	c.lastMode = mode
	c.started = true
}

// Move shifts the highlight by delta with wraparound in both directions.
// From -1, down lands on the first row and up on the last.
func (c *Cursor) Move(delta, length int) {
	if length == 0 {
		c.index = -1
		return
	}
	if c.index == -1 {
		if delta > 0 {
			c.index = 0
		} else {
			c.index = length - 1
		}
		return
	}
	c.index = ((c.index+delta)%length + length) % length
}

func identity(visible []merge.UnifiedTab) string {
	keys := make([]string, len(visible))
	for i, tab := range visible {
		keys[i] = tab.Ref.Key()
	}
	return strings.Join(keys, "|")
}
