// ABOUTME: SQLite backend lifecycle: locating, opening, and closing the database.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required) with per-connection pragmas.
package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// AppName names the data and config directories.
const AppName = "habits"

// connPragmas are applied by the driver to every new connection.
var connPragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
}

// DB is the SQLite-backed Repository. Habits live in one table and their
// completion days in another, ordered by position.
type DB struct {
	db *sql.DB
}

var _ Repository = (*DB)(nil)

// Open opens or creates the habit database at dbPath and migrates its schema.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	q := url.Values{}
	for _, p := range connPragmas {
		q.Add("_pragma", p)
	}
	sqlDB, err := sql.Open("sqlite", dbPath+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Toggles from concurrent MCP calls are serialized here.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{db: sqlDB}
	if err := d.initSchema(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}
	return d, nil
}

// DataDir returns $XDG_DATA_HOME/habits, falling back to ~/.local/share/habits.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName)
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}
