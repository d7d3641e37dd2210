package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/gamebase/internal/model"
)

// CreateCategory inserts a new category with a generated id.
func CreateCategory(ctx context.Context, db *sql.DB, name string) (*model.Category, error) {
	c := &model.Category{ID: uuid.NewString(), Name: name}
	_, err := db.ExecContext(ctx,
		`INSERT INTO categories (id, name) VALUES (?, ?)`,
		c.ID, c.Name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return c, nil
}

// GetCategory returns a category by ID, or nil if there is none.
func GetCategory(ctx context.Context, db *sql.DB, id string) (*model.Category, error) {
	c := &model.Category{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}
	return c, nil
}

// ListCategories returns all categories ordered by name. The ordering uses
// SQLite's binary collation, so it is case-sensitive.
func ListCategories(ctx context.Context, db *sql.DB) ([]model.Category, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name FROM categories ORDER BY name, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// GetCategoriesByID returns the categories whose ids are in ids, ordered by
// name. Unknown ids are skipped.
func GetCategoriesByID(ctx context.Context, db *sql.DB, ids []string) ([]model.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	doc, err := encodeIDs(ids)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, name FROM categories
		 WHERE id IN (SELECT value FROM json_each(?))
		 ORDER BY name, id`, doc,
	)
	if err != nil {
		return nil, fmt.Errorf("getting categories by id: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// UpdateCategory overwrites a category's name. It returns sql.ErrNoRows
// (wrapped) if the category does not exist.
func UpdateCategory(ctx context.Context, db *sql.DB, id, name string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE categories SET name = ? WHERE id = ?`,
		name, id,
	)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	return expectOneRow(result, "category", id)
}

// DeleteCategory removes a category. Callers are responsible for checking
// that no game references it.
func DeleteCategory(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return nil
}

// CountCategories returns the number of stored categories.
func CountCategories(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}
	return n, nil
}

func scanCategories(rows *sql.Rows) ([]model.Category, error) {
	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// expectOneRow turns an update that matched nothing into sql.ErrNoRows.
func expectOneRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s update: %w", kind, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, sql.ErrNoRows)
	}
	return nil
}
