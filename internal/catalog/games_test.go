package catalog

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/gamebase/internal/cover"
	"github.com/erazemk/gamebase/internal/db"
	"github.com/erazemk/gamebase/internal/model"
	"github.com/erazemk/gamebase/internal/store"
)

func seedCategories(t *testing.T, svc *Categories, names ...string) []*model.Category {
	t.Helper()
	out := make([]*model.Category, len(names))
	for i, name := range names {
		c, _, err := svc.Create(context.Background(), CategoryInput{Name: name})
		require.NoError(t, err)
		out[i] = c
	}
	return out
}

func TestCreateGameWithOptionalFieldsOmitted(t *testing.T) {
	database := db.NewTestDB(t)
	svc := NewGames(database)
	ctx := context.Background()

	g, err := svc.Create(ctx, GameInput{Name: "FIFA 23", Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, "/catalog/game/"+g.ID, g.URL())

	stored, err := store.GetGame(ctx, database, g.ID)
	require.NoError(t, err)
	assert.False(t, stored.Price.Valid)
	assert.Nil(t, stored.NumberOfItems)
	assert.Empty(t, stored.Categories)
}

func TestCreateGameStoresQuantityAsNumberOfItems(t *testing.T) {
	database := db.NewTestDB(t)
	svc := NewGames(database)
	ctx := context.Background()

	g, err := svc.Create(ctx, GameInput{Name: "Fallout 3", Description: "Páramo", Price: " 10.99 ", Quantity: "2"})
	require.NoError(t, err)

	stored, _ := store.GetGame(ctx, database, g.ID)
	require.NotNil(t, stored.NumberOfItems)
	assert.Equal(t, 2, *stored.NumberOfItems)
	assert.Equal(t, "10.99", stored.PriceText())
}

func TestCreateGameValidation(t *testing.T) {
	database := db.NewTestDB(t)
	cats := NewCategories(database)
	svc := NewGames(database)
	ctx := context.Background()

	c := seedCategories(t, cats, "RPG", "Shooter")

	tests := []struct {
		name  string
		input GameInput
		field string
		msg   string
	}{
		{"empty name", GameInput{Name: "  ", Description: "d"}, "name", "El nombre no debe estar vacío"},
		{"empty description", GameInput{Name: "n", Description: ""}, "description", "La descripción no debe estar vacía"},
		{"price not a number", GameInput{Name: "n", Description: "d", Price: "barato"}, "price", "El precio debe ser un número"},
		{"price NaN", GameInput{Name: "n", Description: "d", Price: "NaN"}, "price", "El precio debe ser un número"},
		{"price infinite", GameInput{Name: "n", Description: "d", Price: "Infinity"}, "price", "El precio debe ser un número"},
		{"price lone dot", GameInput{Name: "n", Description: "d", Price: "."}, "price", "El precio debe ser un número"},
		{"zero quantity", GameInput{Name: "n", Description: "d", Quantity: "0"}, "quantity", "La cantidad debe ser un número entero mayor que 0"},
		{"fractional quantity", GameInput{Name: "n", Description: "d", Quantity: "1.5"}, "quantity", "La cantidad debe ser un número entero mayor que 0"},
		{"long description", GameInput{Name: "n", Description: strings.Repeat("a", 251)}, "description", "La descripción no debe superar los 250 caracteres"},
		{"bad category id", GameInput{Name: "n", Description: "d", Categories: []string{c[0].ID, "not-an-id"}}, "category", "Categoría no válida"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)

			var ferr *GameFormError
			require.ErrorAs(t, err, &ferr)
			assert.Equal(t, tt.msg, ferr.For(tt.field))
			assert.Len(t, ferr.Categories, 2)

			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}

	n, _ := svc.Count(ctx)
	assert.Zero(t, n)
}

func TestCreateGameFailureKeepsSelection(t *testing.T) {
	database := db.NewTestDB(t)
	cats := NewCategories(database)
	svc := NewGames(database)
	ctx := context.Background()

	c := seedCategories(t, cats, "RPG", "Shooter", "Sports")

	_, err := svc.Create(ctx, GameInput{Description: "d", Categories: []string{c[2].ID}})

	var ferr *GameFormError
	require.ErrorAs(t, err, &ferr)
	checked := map[string]bool{}
	for _, opt := range ferr.Categories {
		checked[opt.Name] = opt.Checked
	}
	assert.Equal(t, map[string]bool{"RPG": false, "Shooter": false, "Sports": true}, checked)
}

func TestCreateGameAcceptsFloatPrices(t *testing.T) {
	database := db.NewTestDB(t)
	svc := NewGames(database)
	ctx := context.Background()

	tests := []struct {
		price string
		want  string
	}{
		{"20.50", "20.50"},
		{"-3", "-3.00"},
		{".5", "0.50"},
		{"5.", "5.00"},
		{"1e3", "1000.00"},
		{"+2.25", "2.25"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			g, err := svc.Create(ctx, GameInput{Name: "x", Description: "y", Price: tt.price})
			require.NoError(t, err)

			stored, err := store.GetGame(ctx, database, g.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.PriceText())
		})
	}
}

func TestGetGameExpandsCategories(t *testing.T) {
	database := db.NewTestDB(t)
	cats := NewCategories(database)
	svc := NewGames(database)
	ctx := context.Background()

	c := seedCategories(t, cats, "RPG", "Open World")

	g, err := svc.Create(ctx, GameInput{Name: "The Witcher 3", Description: "d", Categories: []string{c[0].ID, c[1].ID, c[0].ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{c[0].ID, c[1].ID}, g.Categories)

	detail, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, detail.Categories, 2)
	assert.Equal(t, "Open World", detail.Categories[0].Name)
	assert.Equal(t, "RPG", detail.Categories[1].Name)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateGameReplacesCategorySet(t *testing.T) {
	database := db.NewTestDB(t)
	cats := NewCategories(database)
	svc := NewGames(database)
	ctx := context.Background()

	c := seedCategories(t, cats, "A-cat", "B-cat", "C-cat")

	g, err := svc.Create(ctx, GameInput{Name: "Game", Description: "d", Price: "5", Quantity: "3", Categories: []string{c[0].ID, c[1].ID}})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, g.ID, GameInput{Name: "Game", Description: "d2", Categories: []string{c[1].ID, c[2].ID}})
	require.NoError(t, err)
	assert.Equal(t, g.URL(), updated.URL())

	stored, _ := store.GetGame(ctx, database, g.ID)
	assert.Equal(t, []string{c[1].ID, c[2].ID}, stored.Categories)
	assert.Equal(t, "d2", stored.Description)
	assert.False(t, stored.Price.Valid, "omitted price replaces the old one")
	assert.Nil(t, stored.NumberOfItems, "omitted quantity replaces the old one")
}

func TestUpdateGameErrors(t *testing.T) {
	database := db.NewTestDB(t)
	svc := NewGames(database)
	ctx := context.Background()

	g, _ := svc.Create(ctx, GameInput{Name: "Game", Description: "d"})

	_, err := svc.Update(ctx, g.ID, GameInput{Name: "", Description: "d"})
	var ferr *GameFormError
	assert.ErrorAs(t, err, &ferr)

	_, err = svc.Update(ctx, "missing", GameInput{Name: "Game", Description: "d"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditFormMarksCurrentCategories(t *testing.T) {
	database := db.NewTestDB(t)
	cats := NewCategories(database)
	svc := NewGames(database)
	ctx := context.Background()

	c := seedCategories(t, cats, "RPG", "Shooter")
	g, _ := svc.Create(ctx, GameInput{Name: "Call of Duty", Description: "d", Categories: []string{c[1].ID}})

	game, opts, err := svc.EditForm(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Call of Duty", game.Name)
	require.Len(t, opts, 2)
	assert.False(t, opts[0].Checked)
	assert.True(t, opts[1].Checked)

	_, _, err = svc.EditForm(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteGameIsUnconditional(t *testing.T) {
	database := db.NewTestDB(t)
	cats := NewCategories(database)
	svc := NewGames(database)
	ctx := context.Background()

	c := seedCategories(t, cats, "RPG")
	g, _ := svc.Create(ctx, GameInput{Name: "Fallout 3", Description: "d", Categories: []string{c[0].ID}})

	deleted, err := svc.Delete(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = svc.Get(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err = svc.Delete(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// The category is free to go now.
	_, err = cats.Delete(ctx, c[0].ID)
	assert.NoError(t, err)
}

func TestGameCover(t *testing.T) {
	database := db.NewTestDB(t)
	svc := NewGames(database)
	ctx := context.Background()

	g, _ := svc.Create(ctx, GameInput{Name: "Box", Description: "d"})

	_, _, err := svc.Cover(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	require.NoError(t, svc.SetCover(ctx, g.ID, &buf))
	data, mime, err := svc.Cover(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	assert.NotEmpty(t, data)

	err = svc.SetCover(ctx, g.ID, bytes.NewReader([]byte("text")))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	err = svc.SetCover(ctx, g.ID, bytes.NewReader(make([]byte, cover.MaxUpload+1)))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "La imagen no debe superar los 4 MB", verr.For("cover"))

	buf.Reset()
	require.NoError(t, png.Encode(&buf, img))
	assert.ErrorIs(t, svc.SetCover(ctx, "missing", &buf), ErrNotFound)
}
