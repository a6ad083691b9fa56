package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Store owns the live tab registry and all persistent tab state. It is
// constructed once at process start and passed by reference to every layer
// that needs it; there is no ambient global. Observers registered via
// Subscribe are invoked synchronously after every mutation so derived state
// (merged tabs, persistence) can be recomputed.
type Store struct {
	LiveTabs  []LiveTab
	Metadata  []TabMetadata
	Bookmarks []BookmarkItem
	Groups    []BookmarkGroup

	nextTabID  int64
	nextPinSeq int64
	observers  []func()
}

// NewStore creates an empty Store with initialized slices.
func NewStore() *Store {
	return &Store{
		LiveTabs:   []LiveTab{},
		Metadata:   []TabMetadata{},
		Bookmarks:  []BookmarkItem{},
		Groups:     []BookmarkGroup{},
		nextTabID:  1,
		nextPinSeq: 1,
	}
}

// Subscribe registers an observer called after every mutation.
func (s *Store) Subscribe(fn func()) {
	s.observers = append(s.observers, fn)
}

func (s *Store) notify() {
	for _, fn := range s.observers {
		fn()
	}
}

// SetPersistent installs loaded persistent state, replacing any current one.
func (s *Store) SetPersistent(state *PersistentState) {
	if state == nil {
		state = NewPersistentState()
	}
	s.Metadata = state.Metadata
	s.Bookmarks = state.Bookmarks
	s.Groups = state.Groups
	if s.Metadata == nil {
		s.Metadata = []TabMetadata{}
	}
	if s.Bookmarks == nil {
		s.Bookmarks = []BookmarkItem{}
	}
	if s.Groups == nil {
		s.Groups = []BookmarkGroup{}
	}
}

// Persistent returns a copy of the durable state for saving.
func (s *Store) Persistent() *PersistentState {
	state := NewPersistentState()
	state.Metadata = append(state.Metadata, s.Metadata...)
	state.Bookmarks = append(state.Bookmarks, s.Bookmarks...)
	state.Groups = append(state.Groups, s.Groups...)
	return state
}

// SetLiveTabs installs a browser session. Counters are advanced past the
// highest seen values so fresh IDs and pin keys never collide, and the
// exactly-one-active invariant is restored if the session lacks an active tab.
func (s *Store) SetLiveTabs(tabs []LiveTab) {
	if tabs == nil {
		tabs = []LiveTab{}
	}
	s.LiveTabs = tabs

	activeSeen := false
	for i := range s.LiveTabs {
		t := &s.LiveTabs[i]
		if t.ID >= s.nextTabID {
			s.nextTabID = t.ID + 1
		}
		if t.PinnedAt >= s.nextPinSeq {
			s.nextPinSeq = t.PinnedAt + 1
		}
		if t.Active {
			if activeSeen {
				t.Active = false
			}
			activeSeen = true
		}
	}
	if !activeSeen && len(s.LiveTabs) > 0 {
		s.LiveTabs[0].Active = true
	}
	s.notify()
}

// --- lookups ---

// LiveTabByID finds a live tab by ID, returns nil if not open.
func (s *Store) LiveTabByID(id int64) *LiveTab {
	for i := range s.LiveTabs {
		if s.LiveTabs[i].ID == id {
			return &s.LiveTabs[i]
		}
	}
	return nil
}

// LiveTabByURL finds the first live tab with the given URL.
func (s *Store) LiveTabByURL(url string) *LiveTab {
	for i := range s.LiveTabs {
		if s.LiveTabs[i].URL == url {
			return &s.LiveTabs[i]
		}
	}
	return nil
}

// ActiveTab returns the currently active live tab, nil if no tabs are open.
func (s *Store) ActiveTab() *LiveTab {
	for i := range s.LiveTabs {
		if s.LiveTabs[i].Active {
			return &s.LiveTabs[i]
		}
	}
	return nil
}

// MetadataByURL finds metadata for a URL, returns nil if none exists yet.
func (s *Store) MetadataByURL(url string) *TabMetadata {
	for i := range s.Metadata {
		if s.Metadata[i].URL == url {
			return &s.Metadata[i]
		}
	}
	return nil
}

// BookmarkByURL finds the bookmark for a URL, returns nil if not bookmarked.
func (s *Store) BookmarkByURL(url string) *BookmarkItem {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].URL == url {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// GroupByID finds a bookmark group by ID, returns nil if not found. Callers
// must tolerate nil: bookmarks may reference groups that no longer exist.
func (s *Store) GroupByID(id string) *BookmarkGroup {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return &s.Groups[i]
		}
	}
	return nil
}

// GroupByTitle finds a bookmark group by exact title.
func (s *Store) GroupByTitle(title string) *BookmarkGroup {
	for i := range s.Groups {
		if s.Groups[i].Title == title {
			return &s.Groups[i]
		}
	}
	return nil
}

// PinnedLive returns the pinned live tabs ordered by ascending PinnedAt.
func (s *Store) PinnedLive() []LiveTab {
	var pinned []LiveTab
	for _, t := range s.LiveTabs {
		if t.Pinned {
			pinned = append(pinned, t)
		}
	}
	sort.SliceStable(pinned, func(i, j int) bool {
		return pinned[i].PinnedAt < pinned[j].PinnedAt
	})
	return pinned
}

// AllTags returns the sorted set of every tag in the store.
func (s *Store) AllTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, m := range s.Metadata {
		for _, tag := range m.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// --- live tab mutations (simulated browser actions) ---

// OpenTab opens a new tab and makes it active.
func (s *Store) OpenTab(params OpenTabParams) *LiveTab {
	for i := range s.LiveTabs {
		s.LiveTabs[i].Active = false
	}
	tab := LiveTab{
		ID:      s.nextTabID,
		Title:   params.Title,
		URL:     params.URL,
		IconURL: params.IconURL,
		Active:  true,
	}
	s.nextTabID++
	s.LiveTabs = append(s.LiveTabs, tab)
	s.snapshotMetadata(params.URL)
	s.notify()
	return &s.LiveTabs[len(s.LiveTabs)-1]
}

// CloseTab removes a live tab. If the closed tab was active, the next tab in
// registry order becomes active (the previous one when closing the last tab).
func (s *Store) CloseTab(id int64) error {
	idx := -1
	for i := range s.LiveTabs {
		if s.LiveTabs[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("no open tab with id %d", id)
	}

	wasActive := s.LiveTabs[idx].Active
	s.LiveTabs = append(s.LiveTabs[:idx], s.LiveTabs[idx+1:]...)

	if wasActive && len(s.LiveTabs) > 0 {
		next := idx
		if next >= len(s.LiveTabs) {
			next = len(s.LiveTabs) - 1
		}
		s.LiveTabs[next].Active = true
	}
	s.notify()
	return nil
}

// ActivateTab makes the given tab the single active one.
func (s *Store) ActivateTab(id int64) error {
	target := s.LiveTabByID(id)
	if target == nil {
		return fmt.Errorf("no open tab with id %d", id)
	}
	for i := range s.LiveTabs {
		s.LiveTabs[i].Active = s.LiveTabs[i].ID == id
	}
	s.snapshotMetadata(target.URL)
	s.notify()
	return nil
}

// RenameTab sets a tab's title. Blank titles are a silent no-op.
func (s *Store) RenameTab(id int64, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	tab := s.LiveTabByID(id)
	if tab == nil {
		return fmt.Errorf("no open tab with id %d", id)
	}
	tab.Title = title
	s.snapshotMetadata(tab.URL)
	s.notify()
	return nil
}

// ToggleMute toggles the muted flag on a live tab.
func (s *Store) ToggleMute(id int64) error {
	tab := s.LiveTabByID(id)
	if tab == nil {
		return fmt.Errorf("no open tab with id %d", id)
	}
	tab.Muted = !tab.Muted
	s.notify()
	return nil
}

// TogglePin toggles the browser-level pin on a live tab. Pinning assigns the
// next monotonic ordering key; unpinning clears it.
func (s *Store) TogglePin(id int64) error {
	tab := s.LiveTabByID(id)
	if tab == nil {
		return fmt.Errorf("no open tab with id %d", id)
	}
	if tab.Pinned {
		tab.Pinned = false
		tab.PinnedAt = 0
	} else {
		tab.Pinned = true
		tab.PinnedAt = s.nextPinSeq
		s.nextPinSeq++
	}
	s.snapshotMetadata(tab.URL)
	s.notify()
	return nil
}

// ReorderPinned removes fromID from the pinned sequence and reinserts it
// immediately before toID's position after the removal. The whole sequence
// then gets freshly-generated ordering keys, so stale keys never collide.
func (s *Store) ReorderPinned(fromID, toID int64) error {
	return s.reorderPinned(fromID, &toID)
}

// ReorderPinnedToEnd moves fromID to the tail of the pinned sequence.
func (s *Store) ReorderPinnedToEnd(fromID int64) error {
	return s.reorderPinned(fromID, nil)
}

func (s *Store) reorderPinned(fromID int64, toID *int64) error {
	pinned := s.PinnedLive()
	ids := make([]int64, 0, len(pinned))
	fromIdx := -1
	for i, t := range pinned {
		ids = append(ids, t.ID)
		if t.ID == fromID {
			fromIdx = i
		}
	}
	if fromIdx == -1 {
		return fmt.Errorf("tab %d is not pinned", fromID)
	}

	ids = append(ids[:fromIdx], ids[fromIdx+1:]...)

	insertAt := len(ids)
	if toID != nil {
		insertAt = -1
		for i, id := range ids {
			if id == *toID {
				insertAt = i
				break
			}
		}
		if insertAt == -1 {
			return fmt.Errorf("tab %d is not pinned", *toID)
		}
	}

	ids = append(ids, 0)
	copy(ids[insertAt+1:], ids[insertAt:])
	ids[insertAt] = fromID

	for _, id := range ids {
		if tab := s.LiveTabByID(id); tab != nil {
			tab.PinnedAt = s.nextPinSeq
			s.nextPinSeq++
		}
	}
	s.notify()
	return nil
}

// --- metadata mutations ---

// ensureMetadata returns the metadata record for a URL, creating it lazily.
func (s *Store) ensureMetadata(url string) *TabMetadata {
	if m := s.MetadataByURL(url); m != nil {
		return m
	}
	s.Metadata = append(s.Metadata, TabMetadata{URL: url, Tags: []string{}})
	m := &s.Metadata[len(s.Metadata)-1]
	s.captureSnapshot(m)
	return m
}

// snapshotMetadata refreshes the saved title/icon snapshot for a URL if a
// metadata record already exists. Records are never created here: snapshots
// are opportunistic, metadata creation is not.
func (s *Store) snapshotMetadata(url string) {
	if m := s.MetadataByURL(url); m != nil {
		s.captureSnapshot(m)
	}
}

func (s *Store) captureSnapshot(m *TabMetadata) {
	if tab := s.LiveTabByURL(m.URL); tab != nil {
		m.SavedTitle = tab.Title
		m.SavedIconURL = tab.IconURL
	}
}

// AddTag adds a tag to a URL. Blank tags and duplicates are silent no-ops.
func (s *Store) AddTag(url, tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	m := s.ensureMetadata(url)
	for _, existing := range m.Tags {
		if existing == tag {
			return
		}
	}
	m.Tags = append(m.Tags, tag)
	s.notify()
}

// RemoveTag removes a tag from a URL. Unknown tags are a no-op.
func (s *Store) RemoveTag(url, tag string) {
	m := s.MetadataByURL(url)
	if m == nil {
		return
	}
	for i, existing := range m.Tags {
		if existing == tag {
			m.Tags = append(m.Tags[:i], m.Tags[i+1:]...)
			s.notify()
			return
		}
	}
}

// RenameTag renames a tag on a URL. Renaming onto an existing tag merges by
// deleting the old name. Blank new names are a silent no-op.
func (s *Store) RenameTag(url, oldTag, newTag string) {
	newTag = strings.TrimSpace(newTag)
	if newTag == "" || newTag == oldTag {
		return
	}
	m := s.MetadataByURL(url)
	if m == nil {
		return
	}
	oldIdx := -1
	newExists := false
	for i, existing := range m.Tags {
		if existing == oldTag {
			oldIdx = i
		}
		if existing == newTag {
			newExists = true
		}
	}
	if oldIdx == -1 {
		return
	}
	if newExists {
		m.Tags = append(m.Tags[:oldIdx], m.Tags[oldIdx+1:]...)
	} else {
		m.Tags[oldIdx] = newTag
	}
	s.notify()
}

// ReplaceTags replaces the whole tag set for a URL. Entries are trimmed,
// blanks dropped, and duplicates collapsed keeping first occurrence.
func (s *Store) ReplaceTags(url string, tags []string) {
	m := s.ensureMetadata(url)
	seen := make(map[string]bool)
	cleaned := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		cleaned = append(cleaned, tag)
	}
	m.Tags = cleaned
	s.notify()
}

// SetNote sets the free-text note for a URL.
func (s *Store) SetNote(url, note string) {
	m := s.ensureMetadata(url)
	m.Note = note
	s.notify()
}

// --- bookmark mutations ---

// ToggleBookmark bookmarks a URL into the given group, or removes the
// bookmark if one already exists. groupID may be empty for ungrouped.
func (s *Store) ToggleBookmark(url, groupID string) {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].URL == url {
			s.Bookmarks = append(s.Bookmarks[:i], s.Bookmarks[i+1:]...)
			s.notify()
			return
		}
	}
	s.ensureMetadata(url)
	s.Bookmarks = append(s.Bookmarks, BookmarkItem{
		URL:     url,
		GroupID: groupID,
		AddedAt: time.Now(),
	})
	s.notify()
}

// SetBookmarkGroup moves a bookmark to another group.
func (s *Store) SetBookmarkGroup(url, groupID string) error {
	bm := s.BookmarkByURL(url)
	if bm == nil {
		return fmt.Errorf("%s is not bookmarked", url)
	}
	bm.GroupID = groupID
	s.notify()
	return nil
}

// ToggleGroupPin toggles the pinned-in-group flag on a bookmark.
func (s *Store) ToggleGroupPin(url string) error {
	bm := s.BookmarkByURL(url)
	if bm == nil {
		return fmt.Errorf("%s is not bookmarked", url)
	}
	bm.PinnedInGroup = !bm.PinnedInGroup
	s.notify()
	return nil
}

// CreateGroup creates a named bookmark group. Blank titles are a silent
// no-op returning nil.
func (s *Store) CreateGroup(title string) *BookmarkGroup {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	s.Groups = append(s.Groups, NewBookmarkGroup(title))
	s.notify()
	return &s.Groups[len(s.Groups)-1]
}

// RenameGroup renames a bookmark group. Blank titles are a silent no-op.
func (s *Store) RenameGroup(id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	group := s.GroupByID(id)
	if group == nil {
		return fmt.Errorf("no group with id %s", id)
	}
	group.Title = title
	s.notify()
	return nil
}

// ImportMerge merges imported groups, bookmarks, and metadata into the store.
// Bookmarks whose URL already exists are skipped; imported groups are reused
// by title when one with the same title exists. Returns (added, skipped).
func (s *Store) ImportMerge(groups []BookmarkGroup, bookmarks []BookmarkItem, metadata []TabMetadata) (added, skipped int) {
	groupRemap := make(map[string]string)
	for _, g := range groups {
		if existing := s.GroupByTitle(g.Title); existing != nil {
			groupRemap[g.ID] = existing.ID
			continue
		}
		s.Groups = append(s.Groups, g)
		groupRemap[g.ID] = g.ID
	}

	for _, m := range metadata {
		if s.MetadataByURL(m.URL) == nil {
			s.Metadata = append(s.Metadata, m)
		}
	}

	for _, bm := range bookmarks {
		if s.BookmarkByURL(bm.URL) != nil {
			skipped++
			continue
		}
		if remapped, ok := groupRemap[bm.GroupID]; ok {
			bm.GroupID = remapped
		}
		s.Bookmarks = append(s.Bookmarks, bm)
		added++
	}

	s.notify()
	return added, skipped
}
