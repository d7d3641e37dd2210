package db

import (
	"database/sql"
	"fmt"
)

// schema holds the two catalog collections. Games keep their category
// references as a JSON array of category ids; there is no reverse index.
const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_categories_name ON categories(name);

CREATE TABLE IF NOT EXISTS games (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    description     TEXT NOT NULL,
    price           TEXT,
    number_of_items INTEGER CHECK (number_of_items IS NULL OR number_of_items >= 1),
    category        TEXT NOT NULL DEFAULT '[]' CHECK (json_valid(category)),
    cover           BLOB,
    cover_mime      TEXT
);

CREATE INDEX IF NOT EXISTS idx_games_name ON games(name);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
