// Package sqlite implements the history repository on SQLite.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/lborak/cleftmeter/internal/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_guid TEXT NOT NULL,
	action TEXT NOT NULL,
	path TEXT NOT NULL,
	points INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at);
`

// NewDB opens (or creates) the history database at dbPath and ensures the
// schema exists. The parent directory is created with owner-only permissions.
func NewDB(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		log.ErrorErr(log.CatDB, "Failed to create database directory", err, "dir", dir)
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	log.Debug(log.CatDB, "Opening database", "path", dbPath)
	db, err := sql.Open("sqlite3", "file:"+dbPath)
	if err != nil {
		log.ErrorErr(log.CatDB, "Failed to open database", err, "path", dbPath)
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		log.ErrorErr(log.CatDB, "Failed to ping database", err, "path", dbPath)
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		log.ErrorErr(log.CatDB, "Failed to apply schema", err, "path", dbPath)
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	log.Info(log.CatDB, "Connected to database", "path", dbPath)
	return db, nil
}
