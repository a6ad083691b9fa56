package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/tabdeck/internal/merge"
	"github.com/nikbrunner/tabdeck/internal/tui/layout"
)

// detailField identifies the focused input in the detail view.
type detailField int

const (
	fieldTags detailField = iota
	fieldNote
)

// DetailState holds state for the tab detail view: which tab it shows and
// the inline tag/note editors.
type DetailState struct {
	Ref       merge.TabRef
	TagsInput textinput.Model
	NoteInput textinput.Model
	Focused   detailField
}

// NewDetailState creates a detail view for the given tab with the editors
// pre-filled from its current state.
func NewDetailState(tab merge.UnifiedTab, cfg layout.LayoutConfig) DetailState {
	tagsInput := textinput.New()
	tagsInput.Placeholder = "tag1, tag2, tag3"
	tagsInput.CharLimit = cfg.Input.TagsCharLimit
	tagsInput.Width = cfg.Input.FieldWidth
	tagsInput.SetValue(strings.Join(tab.Tags, ", "))
	tagsInput.Focus()

	noteInput := textinput.New()
	noteInput.Placeholder = "Note"
	noteInput.CharLimit = cfg.Input.NoteCharLimit
	noteInput.Width = cfg.Input.FieldWidth
	noteInput.SetValue(tab.Note)

	return DetailState{
		Ref:       tab.Ref,
		TagsInput: tagsInput,
		NoteInput: noteInput,
		Focused:   fieldTags,
	}
}

// CycleFocus moves focus between the tag and note editors.
func (d *DetailState) CycleFocus() {
	if d.Focused == fieldTags {
		d.Focused = fieldNote
		d.TagsInput.Blur()
		d.NoteInput.Focus()
	} else {
		d.Focused = fieldTags
		d.NoteInput.Blur()
		d.TagsInput.Focus()
	}
}

// ParseTags splits the tags editor value into a clean tag list.
func (d *DetailState) ParseTags() []string {
	parts := strings.Split(d.TagsInput.Value(), ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Highlight is an expiring marker on a single row, set after a mutation so
// the affected tab flashes briefly. It is a plain value checked against the
// clock at render time; a tick that fires after expiry is a harmless no-op.
type Highlight struct {
	Ref      merge.TabRef
	Deadline time.Time
}

// highlightDuration is how long a mutation highlight stays visible.
const highlightDuration = 900 * time.Millisecond

// NewHighlight marks the given tab starting now.
func NewHighlight(ref merge.TabRef, now time.Time) Highlight {
	return Highlight{Ref: ref, Deadline: now.Add(highlightDuration)}
}

// ActiveFor reports whether the marker currently applies to ref.
func (h Highlight) ActiveFor(ref merge.TabRef, now time.Time) bool {
	return h.Ref == ref && !h.Deadline.IsZero() && now.Before(h.Deadline)
}

// newQueryInput creates the search box input.
func newQueryInput(cfg layout.LayoutConfig) textinput.Model {
	input := textinput.New()
	input.Placeholder = "Search tabs, / for commands"
	input.CharLimit = cfg.Input.QueryCharLimit
	input.Width = cfg.Input.QueryWidth
	input.Focus()
	return input
}
