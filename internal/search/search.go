package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/tabdeck/internal/merge"
)

// Matches reports whether a query hits a tab: a case-insensitive substring
// match against the title, the URL, or any tag (a hit on any field counts).
// An empty query matches everything.
func Matches(tab merge.UnifiedTab, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(tab.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(tab.URL), q) {
		return true
	}
	for _, tag := range tab.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Result represents a fuzzy search match.
type Result struct {
	Tab            merge.UnifiedTab
	MatchedIndexes []int
	Score          int
}

// tabTitles implements fuzzy.Source over unified tab titles.
type tabTitles []merge.UnifiedTab

func (tt tabTitles) String(i int) string {
	return tt[i].Title
}

func (tt tabTitles) Len() int {
	return len(tt)
}

// FuzzySearch searches tabs by title using fuzzy matching. Results are
// sorted by match score, best first.
func FuzzySearch(tabs []merge.UnifiedTab, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, tabTitles(tabs))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Tab:            tabs[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
