// Package catalog implements the category and game services: validation,
// cross-entity checks and the paired reads the pages need.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/erazemk/gamebase/internal/model"
	"github.com/erazemk/gamebase/internal/store"
)

// Categories is the category service.
type Categories struct {
	db *sql.DB
}

// NewCategories returns a category service backed by db.
func NewCategories(db *sql.DB) *Categories {
	return &Categories{db: db}
}

// CategoryDetail is a category together with the games that reference it.
type CategoryDetail struct {
	Category model.Category
	Games    []model.GameSummary
}

// ListAll returns all categories ordered by name.
func (s *Categories) ListAll(ctx context.Context) ([]model.Category, error) {
	return store.ListCategories(ctx, s.db)
}

// Count returns the number of categories.
func (s *Categories) Count(ctx context.Context) (int, error) {
	return store.CountCategories(ctx, s.db)
}

// Get returns the category with its referencing games, or ErrNotFound.
func (s *Categories) Get(ctx context.Context, id string) (*CategoryDetail, error) {
	c, games, err := s.withGames(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return &CategoryDetail{Category: *c, Games: games}, nil
}

// Create validates in and stores a new category. If a category with the
// same name (ignoring case and accents) exists, that one is returned and
// created is false.
func (s *Categories) Create(ctx context.Context, in CategoryInput) (c *model.Category, created bool, err error) {
	in.normalize()
	if err := check(in, categoryMessages); err != nil {
		return nil, false, err
	}

	existing, err := store.ListCategories(ctx, s.db)
	if err != nil {
		return nil, false, err
	}
	if dup := findByName(existing, in.Name); dup != nil {
		return dup, false, nil
	}

	c, err = store.CreateCategory(ctx, s.db, in.Name)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// Update validates in and overwrites the category's name. Unlike Create it
// does not look for duplicate names.
func (s *Categories) Update(ctx context.Context, id string, in CategoryInput) (*model.Category, error) {
	in.normalize()
	if err := check(in, categoryMessages); err != nil {
		return nil, err
	}

	if err := store.UpdateCategory(ctx, s.db, id, in.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &model.Category{ID: id, Name: in.Name}, nil
}

// Delete removes the category unless a game references it, in which case
// an *InUseError listing those games is returned. Deleting a missing
// category is a no-op; the returned category is nil then.
func (s *Categories) Delete(ctx context.Context, id string) (*model.Category, error) {
	c, games, err := s.withGames(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(games) > 0 {
		return c, &InUseError{CategoryID: id, Category: c, Games: games}
	}

	if err := store.DeleteCategory(ctx, s.db, id); err != nil {
		return nil, err
	}
	return c, nil
}

// withGames reads the category and its referencing games concurrently.
func (s *Categories) withGames(ctx context.Context, id string) (*model.Category, []model.GameSummary, error) {
	var (
		c     *model.Category
		games []model.GameSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		c, err = store.GetCategory(gctx, s.db, id)
		return err
	})
	g.Go(func() error {
		var err error
		games, err = store.ListGamesByCategory(gctx, s.db, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("loading category %s: %w", id, err)
	}
	return c, games, nil
}
