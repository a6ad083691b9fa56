package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/tabdeck/internal/model"
)

const currentSchemaVersion = 1

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < currentSchemaVersion {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS metadata (
			url TEXT PRIMARY KEY NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			note TEXT NOT NULL DEFAULT '',
			saved_title TEXT NOT NULL DEFAULT '',
			saved_icon_url TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS groups (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			url TEXT PRIMARY KEY NOT NULL,
			group_id TEXT NOT NULL DEFAULT '',
			added_at TEXT NOT NULL,
			group_pinned INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_group_id ON bookmarks(group_id);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the state from the SQLite database.
func (s *SQLiteStorage) Load() (*model.PersistentState, error) {
	state := model.NewPersistentState()

	// Load metadata
	rows, err := s.db.Query(`
		SELECT url, tags, note, saved_title, saved_icon_url
		FROM metadata
		ORDER BY url
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m model.TabMetadata
		var tagsJSON string

		if err := rows.Scan(&m.URL, &tagsJSON, &m.Note, &m.SavedTitle, &m.SavedIconURL); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(tagsJSON), &m.Tags); err != nil {
			m.Tags = []string{}
		}

		state.Metadata = append(state.Metadata, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load groups
	rows, err = s.db.Query(`SELECT id, title FROM groups ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var g model.BookmarkGroup
		if err := rows.Scan(&g.ID, &g.Title); err != nil {
			return nil, err
		}
		state.Groups = append(state.Groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load bookmarks
	rows, err = s.db.Query(`
		SELECT url, group_id, added_at, group_pinned
		FROM bookmarks
		ORDER BY added_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b model.BookmarkItem
		var addedAtStr string
		var groupPinned int

		if err := rows.Scan(&b.URL, &b.GroupID, &addedAtStr, &groupPinned); err != nil {
			return nil, err
		}

		b.AddedAt, _ = time.Parse(time.RFC3339, addedAtStr)
		b.PinnedInGroup = groupPinned == 1

		state.Bookmarks = append(state.Bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return state, nil
}

// Save writes the state to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(state *model.PersistentState) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Clear existing data
	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM groups"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM metadata"); err != nil {
		return err
	}

	// Insert metadata
	metaStmt, err := tx.Prepare(`
		INSERT INTO metadata (url, tags, note, saved_title, saved_icon_url)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer metaStmt.Close()

	for _, m := range state.Metadata {
		tagsJSON, _ := json.Marshal(m.Tags)
		if m.Tags == nil {
			tagsJSON = []byte("[]")
		}
		if _, err := metaStmt.Exec(m.URL, string(tagsJSON), m.Note, m.SavedTitle, m.SavedIconURL); err != nil {
			return err
		}
	}

	// Insert groups
	groupStmt, err := tx.Prepare(`INSERT INTO groups (id, title) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer groupStmt.Close()

	for _, g := range state.Groups {
		if _, err := groupStmt.Exec(g.ID, g.Title); err != nil {
			return err
		}
	}

	// Insert bookmarks
	bookmarkStmt, err := tx.Prepare(`
		INSERT INTO bookmarks (url, group_id, added_at, group_pinned)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer bookmarkStmt.Close()

	for _, b := range state.Bookmarks {
		groupPinned := 0
		if b.PinnedInGroup {
			groupPinned = 1
		}
		if _, err := bookmarkStmt.Exec(b.URL, b.GroupID, b.AddedAt.Format(time.RFC3339), groupPinned); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DefaultSQLitePath returns the default SQLite database path: ~/.config/tabdeck/tabs.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tabdeck", "tabs.db"), nil
}
