// Package testutil provides an in-memory SQLite database for tests.
// The repositories only use portable SQL (? placeholders, plain CRUD),
// so the same code that talks to MySQL in production runs against
// SQLite in tests without a server.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite rendition of internal/database/schema.sql.
const schema = `
CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE rooms (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE assignments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    room_id INTEGER NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX idx_assignments_user ON assignments (user_id);
CREATE INDEX idx_assignments_room ON assignments (room_id);
`

// OpenTestDB opens an in-memory SQLite database with the application
// schema applied. name must be unique per test so databases are not
// shared across tests. The handle is closed via t.Cleanup.
func OpenTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// A single connection keeps the shared in-memory database alive and
	// avoids SQLITE_BUSY between the pool's connections.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		t.Fatalf("ping test db: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("apply test schema: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
