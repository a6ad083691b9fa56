package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/nikbrunner/tabdeck/internal/model"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns groups,
// bookmarks and the title snapshots to seed metadata with.
//
// Folder nesting in the source file is flattened: every H3 becomes a
// top-level group, and an anchor belongs to the innermost group above it.
func ParseHTMLBookmarks(r io.Reader) ([]model.BookmarkGroup, []model.BookmarkItem, []model.TabMetadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, nil, err
	}

	var groups []model.BookmarkGroup
	var bookmarks []model.BookmarkItem
	var metadata []model.TabMetadata

	// Stack of group IDs; empty means ungrouped.
	var groupStack []string
	var pendingGroup string

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				title := getTextContent(n)
				if title != "" {
					group := model.NewBookmarkGroup(title)
					groups = append(groups, group)
					// Pushed when the matching DL opens.
					pendingGroup = group.ID
				}
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href
				}

				var groupID string
				if len(groupStack) > 0 {
					groupID = groupStack[len(groupStack)-1]
				}

				addedAt := time.Now()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						addedAt = time.Unix(ts, 0)
					}
				}

				bookmarks = append(bookmarks, model.BookmarkItem{
					URL:     href,
					GroupID: groupID,
					AddedAt: addedAt,
				})
				metadata = append(metadata, model.TabMetadata{
					URL:        href,
					Tags:       []string{},
					SavedTitle: title,
				})
				return

			case "dl":
				pushed := false
				if pendingGroup != "" {
					groupStack = append(groupStack, pendingGroup)
					pendingGroup = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed && len(groupStack) > 0 {
					groupStack = groupStack[:len(groupStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return groups, bookmarks, metadata, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
