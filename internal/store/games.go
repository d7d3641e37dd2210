package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/gamebase/internal/model"
)

const gameColumns = `id, name, description, price, number_of_items, category, cover_mime`

// CreateGame inserts g with a freshly generated id and returns the stored
// record. g itself is not modified.
func CreateGame(ctx context.Context, db *sql.DB, g model.Game) (*model.Game, error) {
	g.ID = uuid.NewString()
	g.CoverMime = ""

	doc, err := encodeIDs(g.Categories)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO games (id, name, description, price, number_of_items, category)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Description, g.Price, nullInt(g.NumberOfItems), doc,
	)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	if g.Categories == nil {
		g.Categories = []string{}
	}
	return &g, nil
}

// GetGame returns a game by ID, or nil if there is none.
func GetGame(ctx context.Context, db *sql.DB, id string) (*model.Game, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = ?`, id,
	)
	g, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting game: %w", err)
	}
	return g, nil
}

// ListGames returns the name projection of all games ordered by name.
func ListGames(ctx context.Context, db *sql.DB) ([]model.GameSummary, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name FROM games ORDER BY name, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	defer rows.Close()

	var games []model.GameSummary
	for rows.Next() {
		var g model.GameSummary
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// ListGamesByCategory returns the games whose category set contains
// categoryID, projected to name and description.
func ListGamesByCategory(ctx context.Context, db *sql.DB, categoryID string) ([]model.GameSummary, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT g.id, g.name, g.description FROM games g
		 WHERE EXISTS (SELECT 1 FROM json_each(g.category) j WHERE j.value = ?)
		 ORDER BY g.name, g.id`, categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing games by category: %w", err)
	}
	defer rows.Close()

	var games []model.GameSummary
	for rows.Next() {
		var g model.GameSummary
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// ReplaceGame overwrites every field of the game with id g.ID, including
// its category set. The cover image is kept. It returns sql.ErrNoRows
// (wrapped) if the game does not exist.
func ReplaceGame(ctx context.Context, db *sql.DB, g model.Game) error {
	doc, err := encodeIDs(g.Categories)
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx,
		`UPDATE games SET name = ?, description = ?, price = ?, number_of_items = ?, category = ?
		 WHERE id = ?`,
		g.Name, g.Description, g.Price, nullInt(g.NumberOfItems), doc, g.ID,
	)
	if err != nil {
		return fmt.Errorf("replacing game: %w", err)
	}
	return expectOneRow(result, "game", g.ID)
}

// DeleteGame removes a game by ID and reports whether it existed. Deleting
// a missing game is not an error.
func DeleteGame(ctx context.Context, db *sql.DB, id string) (bool, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting game: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking game delete: %w", err)
	}
	return n > 0, nil
}

// CountGames returns the number of stored games.
func CountGames(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting games: %w", err)
	}
	return n, nil
}

// SetGameCover stores a game's cover image.
func SetGameCover(ctx context.Context, db *sql.DB, id string, image []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE games SET cover = ?, cover_mime = ? WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting game cover: %w", err)
	}
	return expectOneRow(result, "game", id)
}

// GetGameCover returns a game's cover image and MIME type. Both are empty
// if the game has no cover or does not exist.
func GetGameCover(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT cover, cover_mime FROM games WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting game cover: %w", err)
	}
	return image, mime.String, nil
}

func scanGame(row *sql.Row) (*model.Game, error) {
	g := &model.Game{}
	var quantity sql.NullInt64
	var doc string
	var coverMime sql.NullString
	if err := row.Scan(&g.ID, &g.Name, &g.Description, &g.Price, &quantity, &doc, &coverMime); err != nil {
		return nil, err
	}
	if quantity.Valid {
		n := int(quantity.Int64)
		g.NumberOfItems = &n
	}
	if err := json.Unmarshal([]byte(doc), &g.Categories); err != nil {
		return nil, fmt.Errorf("decoding category set of game %s: %w", g.ID, err)
	}
	if g.Categories == nil {
		g.Categories = []string{}
	}
	g.CoverMime = coverMime.String
	return g, nil
}

// encodeIDs renders an id set as the JSON array stored in games.category.
func encodeIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	doc, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encoding category set: %w", err)
	}
	return string(doc), nil
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
