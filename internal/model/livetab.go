package model

// LiveTab represents a currently-open browser tab. Live tabs are ephemeral:
// they exist only while the simulated browser session is running and are
// destroyed on close. Identity is the process-unique ID, stable while open.
type LiveTab struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	IconURL  string `json:"iconUrl"`
	Active   bool   `json:"active"`
	Pinned   bool   `json:"pinned"`
	PinnedAt int64  `json:"pinnedAt"` // monotonic ordering key, 0 = unpinned
	Audible  bool   `json:"audible"`
	Muted    bool   `json:"muted"`
}

// OpenTabParams holds parameters for opening a new LiveTab.
type OpenTabParams struct {
	Title   string
	URL     string
	IconURL string
}
