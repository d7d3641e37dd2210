package db

import (
	"database/sql"
	"testing"
)

// NewTestDB creates a fresh in-memory database with the schema applied.
// The pool is pinned to one connection because every new connection to
// :memory: would see an empty database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := EnsureSchema(db); err != nil {
		db.Close()
		t.Fatalf("creating test database schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
