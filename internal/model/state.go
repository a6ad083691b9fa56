package model

// PersistentState is the durable part of a Store: everything keyed by URL
// plus the bookmark groups. Live tabs are deliberately excluded, they belong
// to the browser session.
type PersistentState struct {
	Metadata  []TabMetadata   `json:"metadata"`
	Bookmarks []BookmarkItem  `json:"bookmarks"`
	Groups    []BookmarkGroup `json:"groups"`
}

// NewPersistentState creates an empty PersistentState with initialized slices.
func NewPersistentState() *PersistentState {
	return &PersistentState{
		Metadata:  []TabMetadata{},
		Bookmarks: []BookmarkItem{},
		Groups:    []BookmarkGroup{},
	}
}
