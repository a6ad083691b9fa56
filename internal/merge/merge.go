// Package merge joins the live tab registry with the persistent metadata and
// bookmark stores into unified, view-facing tab entities. Everything here is
// a pure function of a store snapshot; all writes go through the store and
// re-derive.
package merge

import (
	"github.com/nikbrunner/tabdeck/internal/model"
)

// UnifiedTab is the merged entity behind every visible row. It is derived on
// every store notification and never mutated directly.
type UnifiedTab struct {
	Ref     TabRef
	Title   string
	URL     string
	IconURL string

	Active   bool
	Pinned   bool
	PinnedAt int64
	Audible  bool
	Muted    bool

	Tags []string
	Note string

	Bookmarked      bool
	BookmarkGroupID string
	GroupPinned     bool
}

// source is the tagged union feeding toUnified: either a live tab or a
// closed bookmark known only by URL. Making the "tab might not exist live"
// case explicit here keeps presence checks out of every consumer.
type source struct {
	live *model.LiveTab // nil for ghosts
	url  string
}

func liveSource(tab *model.LiveTab) source {
	return source{live: tab, url: tab.URL}
}

func ghostSource(url string) source {
	return source{url: url}
}

// toUnified combines one source with its optional metadata and bookmark.
func toUnified(src source, meta *model.TabMetadata, bm *model.BookmarkItem) UnifiedTab {
	tab := UnifiedTab{
		URL:  src.url,
		Tags: []string{},
	}

	if src.live != nil {
		tab.Ref = LiveRef(src.live.ID)
		tab.Title = src.live.Title
		tab.IconURL = src.live.IconURL
		tab.Active = src.live.Active
		tab.Pinned = src.live.Pinned
		tab.PinnedAt = src.live.PinnedAt
		tab.Audible = src.live.Audible
		tab.Muted = src.live.Muted
	} else {
		tab.Ref = GhostRef(src.url)
		if meta != nil {
			tab.Title = meta.SavedTitle
			tab.IconURL = meta.SavedIconURL
		}
		if tab.Title == "" {
			tab.Title = src.url
		}
	}

	if meta != nil {
		if len(meta.Tags) > 0 {
			tab.Tags = append(tab.Tags, meta.Tags...)
		}
		tab.Note = meta.Note
	}

	if bm != nil {
		tab.Bookmarked = true
		tab.BookmarkGroupID = bm.GroupID
		tab.GroupPinned = bm.PinnedInGroup
	}

	return tab
}

// MergeLive produces one UnifiedTab per open tab, in registry order.
func MergeLive(s *model.Store) []UnifiedTab {
	tabs := make([]UnifiedTab, 0, len(s.LiveTabs))
	for i := range s.LiveTabs {
		live := &s.LiveTabs[i]
		tabs = append(tabs, toUnified(
			liveSource(live),
			s.MetadataByURL(live.URL),
			s.BookmarkByURL(live.URL),
		))
	}
	return tabs
}

// MergeBookmarked produces one UnifiedTab per bookmark, in bookmark-store
// order. Bookmarks whose URL is currently open are live-backed; the rest are
// ghosts rendered from their metadata snapshots.
func MergeBookmarked(s *model.Store) []UnifiedTab {
	tabs := make([]UnifiedTab, 0, len(s.Bookmarks))
	for i := range s.Bookmarks {
		bm := &s.Bookmarks[i]
		meta := s.MetadataByURL(bm.URL)

		if live := s.LiveTabByURL(bm.URL); live != nil {
			tabs = append(tabs, toUnified(liveSource(live), meta, bm))
			continue
		}
		tabs = append(tabs, toUnified(ghostSource(bm.URL), meta, bm))
	}
	return tabs
}
