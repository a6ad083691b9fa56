package culler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nikbrunner/tabdeck/internal/model"
)

func stateWithURLs(urls ...string) *model.PersistentState {
	state := model.NewPersistentState()
	for _, u := range urls {
		state.Bookmarks = append(state.Bookmarks, model.BookmarkItem{URL: u, AddedAt: time.Now()})
	}
	return state
}

func TestCheckBookmarks_Empty(t *testing.T) {
	results := CheckBookmarks(model.NewPersistentState(), 4, time.Second, nil, nil)
	if results != nil {
		t.Errorf("expected nil for no bookmarks, got %v", results)
	}
}

func TestCheckBookmarks_Classification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	state := stateWithURLs(server.URL+"/ok", server.URL+"/gone", server.URL+"/boom")
	state.Metadata = append(state.Metadata, model.TabMetadata{
		URL:        server.URL + "/ok",
		SavedTitle: "Known good",
	})

	results := CheckBookmarks(state, 2, 5*time.Second, nil, nil)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	byURL := make(map[string]Result)
	for _, r := range results {
		byURL[r.URL] = r
	}

	ok := byURL[server.URL+"/ok"]
	if ok.Status != Healthy || ok.StatusCode != 200 {
		t.Errorf("expected healthy 200, got %+v", ok)
	}
	if ok.Title != "Known good" {
		t.Errorf("expected title snapshot, got %q", ok.Title)
	}

	if got := byURL[server.URL+"/gone"]; got.Status != Dead {
		t.Errorf("404 should classify as dead, got %+v", got)
	}
	if got := byURL[server.URL+"/boom"]; got.Status != Unreachable {
		t.Errorf("500 should classify as unreachable, got %+v", got)
	}
}

func TestCheckBookmarks_ExcludedDomain404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	host := server.Listener.Addr().String()
	results := CheckBookmarks(stateWithURLs(server.URL+"/private"), 1, 5*time.Second, []string{host}, nil)

	if len(results) != 1 || results[0].Status != Unreachable {
		t.Errorf("404 on an excluded domain should not be dead, got %+v", results)
	}
}

func TestCheckBookmarks_Unreachable(t *testing.T) {
	// Reserved TEST-NET-1 address, nothing listens there.
	results := CheckBookmarks(stateWithURLs("http://192.0.2.1:9"), 1, 500*time.Millisecond, nil, nil)

	if len(results) != 1 || results[0].Status != Unreachable {
		t.Fatalf("expected unreachable, got %+v", results)
	}
	if results[0].Error == "" {
		t.Error("unreachable result should carry an error message")
	}
}

func TestCheckBookmarks_ReportsProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var calls int
	CheckBookmarks(stateWithURLs(server.URL+"/a", server.URL+"/b"), 2, 5*time.Second, nil, func(completed, total int) {
		calls++
		if total != 2 {
			t.Errorf("expected total 2, got %d", total)
		}
	})

	if calls != 2 {
		t.Errorf("expected 2 progress callbacks, got %d", calls)
	}
}
