package model

// TabMetadata holds persistent per-URL state. It is keyed by URL rather than
// tab ID so it survives tab close and reopen. Created lazily on the first
// tag/note/bookmark action for a URL; never garbage-collected.
type TabMetadata struct {
	URL          string   `json:"url"`
	Tags         []string `json:"tags"` // case-sensitive set, no duplicates
	Note         string   `json:"note"`
	SavedTitle   string   `json:"savedTitle"`   // snapshot from the last open tab with this URL
	SavedIconURL string   `json:"savedIconUrl"` // snapshot, lets closed bookmarks render an icon
}
