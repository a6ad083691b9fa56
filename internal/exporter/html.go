package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/tabdeck/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/tabdeck-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tabdeck-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders bookmarks and groups to Netscape bookmark HTML.
// Grouped bookmarks nest under an H3 per group; ungrouped ones sit at
// the root. Titles come from the metadata snapshot, falling back to the URL.
func ExportHTML(state *model.PersistentState) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	titles := make(map[string]string)
	for _, m := range state.Metadata {
		titles[m.URL] = m.SavedTitle
	}

	for _, group := range state.Groups {
		fmt.Fprintf(&b, "    <DT><H3>%s</H3>\n", html.EscapeString(group.Title))
		b.WriteString("    <DL><p>\n")
		for _, bm := range state.Bookmarks {
			if bm.GroupID == group.ID {
				writeBookmark(&b, bm, titles, 2)
			}
		}
		b.WriteString("    </DL><p>\n")
	}

	knownGroups := make(map[string]bool)
	for _, group := range state.Groups {
		knownGroups[group.ID] = true
	}
	for _, bm := range state.Bookmarks {
		// Dangling group ids export at the root rather than vanishing.
		if bm.GroupID == "" || !knownGroups[bm.GroupID] {
			writeBookmark(&b, bm, titles, 1)
		}
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeBookmark(b *strings.Builder, bm model.BookmarkItem, titles map[string]string, indent int) {
	title := titles[bm.URL]
	if title == "" {
		title = bm.URL
	}
	fmt.Fprintf(b,
		"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
		strings.Repeat("    ", indent),
		html.EscapeString(bm.URL),
		bm.AddedAt.Unix(),
		html.EscapeString(title),
	)
}
