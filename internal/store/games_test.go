package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/erazemk/gamebase/internal/db"
	"github.com/erazemk/gamebase/internal/model"
)

func TestCreateAndGetGame(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	rpg, _ := CreateCategory(ctx, database, "RPG")
	n := 4
	g, err := CreateGame(ctx, database, model.Game{
		Name:          "The Witcher 3",
		Description:   "Caza monstruos.",
		Price:         decimal.NewNullDecimal(decimal.RequireFromString("20.50")),
		NumberOfItems: &n,
		Categories:    []string{rpg.ID},
	})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	got, err := GetGame(ctx, database, g.ID)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if got.Name != "The Witcher 3" {
		t.Errorf("expected name, got %q", got.Name)
	}
	if !got.Price.Valid || !got.Price.Decimal.Equal(decimal.RequireFromString("20.5")) {
		t.Errorf("expected price 20.50, got %v", got.Price)
	}
	if got.NumberOfItems == nil || *got.NumberOfItems != 4 {
		t.Errorf("expected 4 items, got %v", got.NumberOfItems)
	}
	if len(got.Categories) != 1 || got.Categories[0] != rpg.ID {
		t.Errorf("expected category set [%s], got %v", rpg.ID, got.Categories)
	}
}

func TestCreateGameWithoutPriceOrQuantity(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	g, err := CreateGame(ctx, database, model.Game{Name: "FIFA 23", Description: "x"})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	got, _ := GetGame(ctx, database, g.ID)
	if got.Price.Valid {
		t.Errorf("expected absent price, got %v", got.Price.Decimal)
	}
	if got.NumberOfItems != nil {
		t.Errorf("expected absent quantity, got %d", *got.NumberOfItems)
	}
	if got.Categories == nil || len(got.Categories) != 0 {
		t.Errorf("expected empty category set, got %v", got.Categories)
	}
}

func TestListGamesByCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	rpg, _ := CreateCategory(ctx, database, "RPG")
	open, _ := CreateCategory(ctx, database, "Open World")

	CreateGame(ctx, database, model.Game{Name: "Fallout 3", Description: "a", Categories: []string{rpg.ID, open.ID}})
	CreateGame(ctx, database, model.Game{Name: "Red Dead Redemption II", Description: "b", Categories: []string{open.ID}})
	CreateGame(ctx, database, model.Game{Name: "Juego de prueba 2", Description: "c"})

	games, err := ListGamesByCategory(ctx, database, open.ID)
	if err != nil {
		t.Fatalf("ListGamesByCategory: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if games[0].Name != "Fallout 3" || games[0].Description != "a" {
		t.Errorf("unexpected first game %+v", games[0])
	}

	games, _ = ListGamesByCategory(ctx, database, rpg.ID)
	if len(games) != 1 {
		t.Errorf("expected 1 RPG game, got %d", len(games))
	}
}

func TestListGamesOrderedByName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"fallout 3", "FIFA 23", "Call of Duty"} {
		CreateGame(ctx, database, model.Game{Name: name, Description: "d"})
	}

	games, _ := ListGames(ctx, database)
	want := []string{"Call of Duty", "FIFA 23", "fallout 3"}
	for i, name := range want {
		if games[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, games[i].Name)
		}
		if games[i].Description != "" {
			t.Errorf("list projection should not carry descriptions")
		}
	}
}

func TestReplaceGame(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	g, _ := CreateGame(ctx, database, model.Game{Name: "Old", Description: "d", Categories: []string{"a", "b"}})

	g.Name = "New"
	g.Categories = []string{"b", "c"}
	if err := ReplaceGame(ctx, database, *g); err != nil {
		t.Fatalf("ReplaceGame: %v", err)
	}

	got, _ := GetGame(ctx, database, g.ID)
	if got.Name != "New" {
		t.Errorf("expected name New, got %q", got.Name)
	}
	if len(got.Categories) != 2 || got.Categories[0] != "b" || got.Categories[1] != "c" {
		t.Errorf("expected category set [b c], got %v", got.Categories)
	}

	err := ReplaceGame(ctx, database, model.Game{ID: "missing", Name: "x", Description: "y"})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestGameCover(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	g, _ := CreateGame(ctx, database, model.Game{Name: "Box", Description: "d"})
	if err := SetGameCover(ctx, database, g.ID, []byte("fake image data"), "image/jpeg"); err != nil {
		t.Fatalf("SetGameCover: %v", err)
	}

	data, mime, err := GetGameCover(ctx, database, g.ID)
	if err != nil {
		t.Fatalf("GetGameCover: %v", err)
	}
	if string(data) != "fake image data" || mime != "image/jpeg" {
		t.Errorf("unexpected cover %q %q", data, mime)
	}

	got, _ := GetGame(ctx, database, g.ID)
	if !got.HasCover() {
		t.Error("expected game to report a cover")
	}

	// Replacing the document keeps the cover.
	got.Name = "Box 2"
	ReplaceGame(ctx, database, *got)
	if _, mime, _ := GetGameCover(ctx, database, g.ID); mime != "image/jpeg" {
		t.Errorf("cover lost after replace, mime %q", mime)
	}
}

func TestDeleteAndCountGames(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	g, _ := CreateGame(ctx, database, model.Game{Name: "A", Description: "d"})
	if n, _ := CountGames(ctx, database); n != 1 {
		t.Errorf("expected 1 game, got %d", n)
	}

	deleted, err := DeleteGame(ctx, database, g.ID)
	if err != nil || !deleted {
		t.Errorf("expected game to be deleted, got deleted=%v err=%v", deleted, err)
	}
	if n, _ := CountGames(ctx, database); n != 0 {
		t.Errorf("expected 0 games, got %d", n)
	}

	deleted, err = DeleteGame(ctx, database, g.ID)
	if err != nil {
		t.Errorf("deleting a missing game should not fail: %v", err)
	}
	if deleted {
		t.Error("expected deleted=false for a missing game")
	}
}
