package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/erazemk/gamebase/internal/cover"
	"github.com/erazemk/gamebase/internal/model"
	"github.com/erazemk/gamebase/internal/store"
)

// Games is the game service.
type Games struct {
	db *sql.DB
}

// NewGames returns a game service backed by db.
func NewGames(db *sql.DB) *Games {
	return &Games{db: db}
}

// GameDetail is a game with its category set expanded.
type GameDetail struct {
	Game       model.Game
	Categories []model.Category
}

// ListAll returns the name projection of all games ordered by name.
func (s *Games) ListAll(ctx context.Context) ([]model.GameSummary, error) {
	return store.ListGames(ctx, s.db)
}

// Count returns the number of games.
func (s *Games) Count(ctx context.Context) (int, error) {
	return store.CountGames(ctx, s.db)
}

// Get returns the game with its categories, or ErrNotFound. Ids that no
// longer resolve to a category are left out of the expansion.
func (s *Games) Get(ctx context.Context, id string) (*GameDetail, error) {
	g, err := store.GetGame(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}

	categories, err := store.GetCategoriesByID(ctx, s.db, g.Categories)
	if err != nil {
		return nil, err
	}
	return &GameDetail{Game: *g, Categories: categories}, nil
}

// FormOptions lists every category as a checkbox, checked when in selected.
func (s *Games) FormOptions(ctx context.Context, selected []string) ([]CategoryOption, error) {
	all, err := store.ListCategories(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return MarkSelected(all, selected), nil
}

// EditForm loads a game and the category checkboxes for its update form.
// Both reads run concurrently.
func (s *Games) EditForm(ctx context.Context, id string) (*model.Game, []CategoryOption, error) {
	var (
		game *model.Game
		all  []model.Category
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		game, err = store.GetGame(gctx, s.db, id)
		return err
	})
	eg.Go(func() error {
		var err error
		all, err = store.ListCategories(gctx, s.db)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, fmt.Errorf("loading game form %s: %w", id, err)
	}
	if game == nil {
		return nil, nil, ErrNotFound
	}
	return game, MarkSelected(all, game.Categories), nil
}

// Create validates in and stores a new game. Invalid input yields a
// *GameFormError.
func (s *Games) Create(ctx context.Context, in GameInput) (*model.Game, error) {
	in.normalize()
	if err := check(in, gameMessages); err != nil {
		return nil, s.formError(ctx, err, in.Categories)
	}
	return store.CreateGame(ctx, s.db, in.game())
}

// Update validates in and replaces the whole game at id, including its
// category set.
func (s *Games) Update(ctx context.Context, id string, in GameInput) (*model.Game, error) {
	in.normalize()
	if err := check(in, gameMessages); err != nil {
		return nil, s.formError(ctx, err, in.Categories)
	}

	g := in.game()
	g.ID = id
	if err := store.ReplaceGame(ctx, s.db, g); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// Delete removes a game and reports whether it existed. Games are leaves,
// so nothing is checked.
func (s *Games) Delete(ctx context.Context, id string) (bool, error) {
	return store.DeleteGame(ctx, s.db, id)
}

// SetCover normalizes an uploaded image and stores it as the game's cover.
func (s *Games) SetCover(ctx context.Context, id string, r io.Reader) error {
	img, err := cover.Normalize(r)
	if err != nil {
		switch {
		case errors.Is(err, cover.ErrUnsupported):
			return &ValidationError{Fields: []FieldError{{Field: "cover", Message: "La imagen debe ser JPEG, PNG o GIF"}}}
		case errors.Is(err, cover.ErrTooLarge):
			return &ValidationError{Fields: []FieldError{{Field: "cover", Message: "La imagen no debe superar los 4 MB"}}}
		}
		return err
	}

	if err := store.SetGameCover(ctx, s.db, id, img.Data, img.MIME); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Cover returns the stored cover image, or ErrNotFound if there is none.
func (s *Games) Cover(ctx context.Context, id string) ([]byte, string, error) {
	data, mime, err := store.GetGameCover(ctx, s.db, id)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", ErrNotFound
	}
	return data, mime, nil
}

// formError attaches category checkboxes to a validation failure so the
// form can be rendered again with the submitted selection.
func (s *Games) formError(ctx context.Context, err error, selected []string) error {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	opts, ferr := s.FormOptions(ctx, selected)
	if ferr != nil {
		return ferr
	}
	return &GameFormError{ValidationError: verr, Categories: opts}
}
