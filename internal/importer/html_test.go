package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/tabdeck/internal/importer"
)

func TestParseHTML_SingleBookmark(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	groups, bookmarks, metadata, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(groups) != 0 {
		t.Errorf("expected 0 groups, got %d", len(groups))
	}
	if len(bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(bookmarks))
	}

	b := bookmarks[0]
	if b.URL != "https://example.com" {
		t.Errorf("expected URL 'https://example.com', got %q", b.URL)
	}
	if b.GroupID != "" {
		t.Errorf("expected ungrouped bookmark, got group %q", b.GroupID)
	}

	if len(metadata) != 1 || metadata[0].SavedTitle != "Example Site" {
		t.Errorf("expected title snapshot 'Example Site', got %+v", metadata)
	}
	if metadata[0].URL != b.URL {
		t.Errorf("metadata URL %q should match bookmark URL %q", metadata[0].URL, b.URL)
	}
}

func TestParseHTML_NestedFoldersFlatten(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	groups, bookmarks, _, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both folders become flat groups.
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	groupID := make(map[string]string)
	for _, g := range groups {
		groupID[g.Title] = g.ID
	}
	if groupID["Development"] == "" || groupID["React"] == "" {
		t.Fatalf("missing expected groups, got %v", groupID)
	}

	if len(bookmarks) != 3 {
		t.Fatalf("expected 3 bookmarks, got %d", len(bookmarks))
	}

	// Each bookmark belongs to the innermost group enclosing it.
	byURL := make(map[string]string)
	for _, b := range bookmarks {
		byURL[b.URL] = b.GroupID
	}
	if byURL["https://react.dev"] != groupID["React"] {
		t.Error("react.dev should land in the React group")
	}
	if byURL["https://github.com"] != groupID["Development"] {
		t.Error("github.com should land in the Development group")
	}
	if byURL["https://google.com"] != "" {
		t.Error("google.com should stay ungrouped")
	}
}

func TestParseHTML_EmptyFile(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
</DL><p>`

	groups, bookmarks, metadata, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(groups) != 0 || len(bookmarks) != 0 || len(metadata) != 0 {
		t.Errorf("expected everything empty, got %d/%d/%d", len(groups), len(bookmarks), len(metadata))
	}
}

func TestParseHTML_Timestamps(t *testing.T) {
	// 1234567890 = Fri Feb 13 2009 23:31:30 UTC
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Test</A>
</DL><p>`

	_, bookmarks, _, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(bookmarks))
	}

	expected := time.Unix(1234567890, 0)
	if !bookmarks[0].AddedAt.Equal(expected) {
		t.Errorf("expected AddedAt %v, got %v", expected, bookmarks[0].AddedAt)
	}
}

func TestParseHTML_MissingHref(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><A ADD_DATE="1234567890">No URL</A>
    <DT><A HREF="https://valid.com" ADD_DATE="1234567890">Valid</A>
</DL><p>`

	_, bookmarks, metadata, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Anchors without HREF are skipped.
	if len(bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark (skip missing href), got %d", len(bookmarks))
	}
	if metadata[0].SavedTitle != "Valid" {
		t.Errorf("expected 'Valid' snapshot, got %q", metadata[0].SavedTitle)
	}
}

func TestParseHTML_TitleFallsBackToURL(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><A HREF="https://untitled.example"></A>
</DL><p>`

	_, _, metadata, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(metadata) != 1 || metadata[0].SavedTitle != "https://untitled.example" {
		t.Errorf("empty title should fall back to the URL, got %+v", metadata)
	}
}
