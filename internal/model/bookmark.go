package model

import "time"

// BookmarkItem represents a bookmarked URL. At most one item exists per URL.
type BookmarkItem struct {
	URL           string    `json:"url"`
	GroupID       string    `json:"groupId"` // empty = ungrouped
	AddedAt       time.Time `json:"addedAt"`
	PinnedInGroup bool      `json:"pinnedInGroup"` // promotes to top of its group
}

// BookmarkGroup is a named container for bookmarks. IDs are generated at
// creation and never reused.
type BookmarkGroup struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NewBookmarkGroup creates a BookmarkGroup with a generated UUID.
func NewBookmarkGroup(title string) BookmarkGroup {
	return BookmarkGroup{
		ID:    GenerateUUID(),
		Title: title,
	}
}
