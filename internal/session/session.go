package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/nikbrunner/tabdeck/internal/model"
)

// DefaultPath returns the default session file path: ~/.config/tabdeck/session.json
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tabdeck", "session.json"), nil
}

// Load reads the live tab registry from the session file.
// A missing file means no session; callers decide whether to seed one.
func Load(path string) ([]model.LiveTab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var tabs []model.LiveTab
	if err := json.Unmarshal(data, &tabs); err != nil {
		return nil, err
	}
	return tabs, nil
}

// Save writes the live tab registry to the session file.
func Save(path string, tabs []model.LiveTab) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if tabs == nil {
		tabs = []model.LiveTab{}
	}
	data, err := json.MarshalIndent(tabs, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DemoTabs returns a small seed registry for first runs without a session.
func DemoTabs() []model.LiveTab {
	return []model.LiveTab{
		{ID: 1, Title: "The Go Programming Language", URL: "https://go.dev", Active: true},
		{ID: 2, Title: "Go Packages", URL: "https://pkg.go.dev"},
		{ID: 3, Title: "GitHub", URL: "https://github.com"},
		{ID: 4, Title: "Hacker News", URL: "https://news.ycombinator.com"},
	}
}
