package model

import (
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

// Game is a catalog item. Categories holds ids of referenced categories;
// the game does not own them.
type Game struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Price         decimal.NullDecimal `json:"price"`
	NumberOfItems *int                `json:"number_of_items,omitempty"`
	Categories    []string            `json:"category"`
	CoverMime     string              `json:"cover_mime,omitempty"`
}

// URL returns the canonical page for the game.
func (g Game) URL() string {
	return "/catalog/game/" + g.ID
}

// HasCategory reports whether the game references the category.
func (g Game) HasCategory(id string) bool {
	return slices.Contains(g.Categories, id)
}

// PriceText formats the price for display, or a dash when absent.
func (g Game) PriceText() string {
	if !g.Price.Valid {
		return "—"
	}
	return g.Price.Decimal.StringFixed(2)
}

// QuantityText formats the stock count for display, or a dash when absent.
func (g Game) QuantityText() string {
	if g.NumberOfItems == nil {
		return "—"
	}
	return strconv.Itoa(*g.NumberOfItems)
}

// HasCover reports whether a cover image has been uploaded.
func (g Game) HasCover() bool {
	return g.CoverMime != ""
}

// GameSummary is the list projection of a game.
type GameSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// URL returns the canonical page for the game.
func (g GameSummary) URL() string {
	return "/catalog/game/" + g.ID
}
