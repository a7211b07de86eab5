package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryPath keeps the whole database inside the process.
const MemoryPath = ":memory:"

// InitDB opens the SQLite database at path and ensures tables exist. An empty
// path opens an in-memory database, which lives as long as its single
// connection, i.e. the process.
func InitDB(path string) (*sql.DB, error) {
	if path == "" {
		path = MemoryPath
	}
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// One connection: SQLite dislikes concurrent writers and an in-memory
	// database is private to its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaWidgetState = `
CREATE TABLE IF NOT EXISTS widget_state (
    session_id INTEGER PRIMARY KEY,
    min INTEGER NOT NULL,
    max INTEGER NOT NULL,
    count INTEGER NOT NULL,
    filter TEXT NOT NULL,
    current TEXT NOT NULL,
    theme TEXT NOT NULL,
    auto_generate BOOLEAN NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaGenerations = `
CREATE TABLE IF NOT EXISTS generations (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT UNIQUE NOT NULL,
    session_id INTEGER NOT NULL,
    numbers TEXT NOT NULL,
    min INTEGER NOT NULL,
    max INTEGER NOT NULL,
    count INTEGER NOT NULL,
    filter TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

const indexGenerationsSession = `
CREATE INDEX IF NOT EXISTS idx_generations_session ON generations (session_id, seq);
`

const schemaWidgetEvents = `
CREATE TABLE IF NOT EXISTS widget_events (
    id TEXT PRIMARY KEY,
    session_id INTEGER NOT NULL,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    guest BOOLEAN NOT NULL DEFAULT 0
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaWidgetState,
		schemaGenerations,
		indexGenerationsSession,
		schemaWidgetEvents,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
