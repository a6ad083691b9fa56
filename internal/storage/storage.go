package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/nikbrunner/tabdeck/internal/model"
)

// Storage defines the interface for persisting tab metadata and bookmarks.
type Storage interface {
	Load() (*model.PersistentState, error)
	Save(state *model.PersistentState) error
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the state from the JSON file.
// Returns an empty state if the file doesn't exist.
func (s *JSONStorage) Load() (*model.PersistentState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewPersistentState(), nil
		}
		return nil, err
	}

	var state model.PersistentState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	// Ensure slices are not nil
	if state.Metadata == nil {
		state.Metadata = []model.TabMetadata{}
	}
	if state.Bookmarks == nil {
		state.Bookmarks = []model.BookmarkItem{}
	}
	if state.Groups == nil {
		state.Groups = []model.BookmarkGroup{}
	}

	return &state, nil
}

// Save writes the state to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(state *model.PersistentState) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// DefaultConfigPath returns the default JSON path: ~/.config/tabdeck/tabs.json
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tabdeck", "tabs.json"), nil
}

// OpenStorage opens the appropriate storage backend.
// Prefers SQLite if the database file exists, otherwise falls back to JSON.
func OpenStorage() (Storage, error) {
	sqlitePath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteStorage(sqlitePath)
	}

	jsonPath, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return NewJSONStorage(jsonPath), nil
}
