// Package view derives what the panel actually shows: the filtered, sorted,
// and grouped projection of the merged tabs, and the selection cursor that
// navigates it.
package view

import (
	"net/url"
	"sort"
	"strings"

	"github.com/nikbrunner/tabdeck/internal/command"
	"github.com/nikbrunner/tabdeck/internal/merge"
	"github.com/nikbrunner/tabdeck/internal/search"
)

// Mode selects how the tab list is arranged.
type Mode int

const (
	// ModeList: flat list, pinned section first.
	ModeList Mode = iota
	// ModeGroups: grouped by domain.
	ModeGroups
	// ModeBookmarks: bookmarked tabs grouped by bookmark group.
	ModeBookmarks
)

// String returns the display name of a mode.
func (m Mode) String() string {
	switch m {
	case ModeList:
		return "List"
	case ModeGroups:
		return "Groups"
	case ModeBookmarks:
		return "Bookmarks"
	}
	return "Unknown"
}

// RowKind distinguishes header rows from tab rows.
type RowKind int

const (
	RowTab RowKind = iota
	RowHeader
)

// Row is one rendered line: either a section header or a tab. For tab rows,
// VisibleIndex is the tab's position in Projection.Visible, which is what
// the selection cursor indexes into.
type Row struct {
	Kind         RowKind
	Header       string // domain, or bookmark group id, for RowHeader
	Tab          merge.UnifiedTab
	VisibleIndex int
}

// Input is everything the projection depends on.
type Input struct {
	Tabs           []merge.UnifiedTab
	Query          string
	Mode           Mode
	InputMode      command.InputMode
	ActiveCommand  command.Kind
	PinnedExpanded bool // list mode only: whether the pinned section is open
}

// Projection is the derived view state. Visible is the flattened navigation
// list: it must exactly match the render order of tab rows or keyboard
// navigation desyncs from the display.
type Projection struct {
	Rows     []Row
	Pinned   []merge.UnifiedTab // list mode pinned section, ascending PinnedAt
	Unpinned []merge.UnifiedTab
	Visible  []merge.UnifiedTab
}

// Project derives the rendered list from the merged tabs and the current
// input state.
func Project(in Input) Projection {
	tabs := filter(in)

	switch in.Mode {
	case ModeGroups:
		return projectGroups(tabs)
	case ModeBookmarks:
		return projectBookmarks(tabs)
	default:
		return projectList(tabs, in.PinnedExpanded)
	}
}

// filter applies the filtering policy; the first applicable rule wins.
func filter(in Input) []merge.UnifiedTab {
	switch {
	case in.InputMode == command.ModeCommandActive && in.ActiveCommand == command.KindMark:
		// Restrict to the active tab so the user sees exactly what they tag.
		var active []merge.UnifiedTab
		for _, tab := range in.Tabs {
			if tab.Active {
				active = append(active, tab)
			}
		}
		return active
	case in.InputMode == command.ModeCommandSelect:
		// The query belongs to the palette, not the list.
		return in.Tabs
	case in.Query != "":
		var matched []merge.UnifiedTab
		for _, tab := range in.Tabs {
			if search.Matches(tab, in.Query) {
				matched = append(matched, tab)
			}
		}
		return matched
	default:
		return in.Tabs
	}
}

// projectList splits into pinned (ascending PinnedAt) and unpinned (input
// order untouched). Visible is pinned ++ unpinned when the pinned section is
// expanded, unpinned only when collapsed.
func projectList(tabs []merge.UnifiedTab, pinnedExpanded bool) Projection {
	var pinned, unpinned []merge.UnifiedTab
	for _, tab := range tabs {
		if tab.Pinned {
			pinned = append(pinned, tab)
		} else {
			unpinned = append(unpinned, tab)
		}
	}
	sort.SliceStable(pinned, func(i, j int) bool {
		return pinned[i].PinnedAt < pinned[j].PinnedAt
	})

	var visible []merge.UnifiedTab
	if pinnedExpanded {
		visible = append(visible, pinned...)
	}
	visible = append(visible, unpinned...)

	rows := make([]Row, 0, len(visible))
	for i, tab := range visible {
		rows = append(rows, Row{Kind: RowTab, Tab: tab, VisibleIndex: i})
	}

	return Projection{
		Rows:     rows,
		Pinned:   pinned,
		Unpinned: unpinned,
		Visible:  visible,
	}
}

// projectGroups sorts by domain, pinned-before-unpinned within a domain,
// then title, and emits a header row whenever the domain changes.
func projectGroups(tabs []merge.UnifiedTab) Projection {
	sorted := append([]merge.UnifiedTab(nil), tabs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := Domain(sorted[i].URL), Domain(sorted[j].URL)
		if di != dj {
			return di < dj
		}
		if sorted[i].Pinned != sorted[j].Pinned {
			return sorted[i].Pinned
		}
		return titleLess(sorted[i], sorted[j])
	})

	var rows []Row
	prevDomain := ""
	for i, tab := range sorted {
		domain := Domain(tab.URL)
		if i == 0 || domain != prevDomain {
			rows = append(rows, Row{Kind: RowHeader, Header: domain})
			prevDomain = domain
		}
		rows = append(rows, Row{Kind: RowTab, Tab: tab, VisibleIndex: i})
	}

	return Projection{Rows: rows, Visible: sorted}
}

// projectBookmarks restricts to bookmarked tabs, groups by bookmark group id,
// group-pinned items first within a group, then title.
func projectBookmarks(tabs []merge.UnifiedTab) Projection {
	var bookmarked []merge.UnifiedTab
	for _, tab := range tabs {
		if tab.Bookmarked {
			bookmarked = append(bookmarked, tab)
		}
	}
	sort.SliceStable(bookmarked, func(i, j int) bool {
		if bookmarked[i].BookmarkGroupID != bookmarked[j].BookmarkGroupID {
			return bookmarked[i].BookmarkGroupID < bookmarked[j].BookmarkGroupID
		}
		if bookmarked[i].GroupPinned != bookmarked[j].GroupPinned {
			return bookmarked[i].GroupPinned
		}
		return titleLess(bookmarked[i], bookmarked[j])
	})

	var rows []Row
	prevGroup := ""
	started := false
	for i, tab := range bookmarked {
		if !started || tab.BookmarkGroupID != prevGroup {
			rows = append(rows, Row{Kind: RowHeader, Header: tab.BookmarkGroupID})
			prevGroup = tab.BookmarkGroupID
			started = true
		}
		rows = append(rows, Row{Kind: RowTab, Tab: tab, VisibleIndex: i})
	}

	return Projection{Rows: rows, Visible: bookmarked}
}

func titleLess(a, b merge.UnifiedTab) bool {
	return strings.ToLower(a.Title) < strings.ToLower(b.Title)
}

// Domain extracts the grouping key for a URL: the hostname with a leading
// "www." stripped. Unparseable URLs sort under the literal "Other".
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "Other"
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return "Other"
	}
	return host
}
