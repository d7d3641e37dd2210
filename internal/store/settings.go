package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// GetInstanceSecret returns the per-installation secret used to derive
// signing keys. It is generated and stored on first use.
// INSERT OR IGNORE followed by a re-read keeps concurrent first starts in
// agreement on a single value.
func GetInstanceSecret(ctx context.Context, db *sql.DB) ([]byte, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generating instance secret: %w", err)
	}

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('instance_secret', ?)`,
		hex.EncodeToString(buf),
	)
	if err != nil {
		return nil, fmt.Errorf("storing instance secret: %w", err)
	}

	var stored string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'instance_secret'`,
	).Scan(&stored)
	if err != nil {
		return nil, fmt.Errorf("querying instance secret: %w", err)
	}

	secret, err := hex.DecodeString(stored)
	if err != nil {
		return nil, fmt.Errorf("decoding instance secret: %w", err)
	}
	return secret, nil
}
