package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/erazemk/gamebase/internal/model"
)

func TestNormalizeCategoryIDs(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{"absent", nil, []string{}},
		{"single value", []string{"a"}, []string{"a"}},
		{"many values", []string{"a", "b"}, []string{"a", "b"}},
		{"blanks and duplicates", []string{" a ", "", "b", "a"}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCategoryIDs(tt.raw)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkSelected(t *testing.T) {
	all := []model.Category{{ID: "1", Name: "RPG"}, {ID: "2", Name: "Sports"}}

	opts := MarkSelected(all, []string{"2", "unknown"})
	assert.Equal(t, []CategoryOption{
		{Category: all[0], Checked: false},
		{Category: all[1], Checked: true},
	}, opts)

	for _, o := range MarkSelected(all, nil) {
		assert.False(t, o.Checked)
	}
}

func TestInputFromGameRoundTrip(t *testing.T) {
	n := 7
	g := model.Game{
		Name:          "Juego",
		Description:   "d",
		Price:         decimal.NewNullDecimal(decimal.RequireFromString("1.05")),
		NumberOfItems: &n,
		Categories:    []string{"c1"},
	}

	in := InputFromGame(g)
	assert.Equal(t, "1.05", in.Price)
	assert.Equal(t, "7", in.Quantity)

	back := in.game()
	assert.True(t, back.Price.Decimal.Equal(g.Price.Decimal))
	assert.Equal(t, 7, *back.NumberOfItems)
	assert.Equal(t, g.Categories, back.Categories)

	empty := InputFromGame(model.Game{Name: "x"})
	assert.Empty(t, empty.Price)
	assert.Empty(t, empty.Quantity)
}

func TestValidationErrorMessages(t *testing.T) {
	err := check(GameInput{Price: "x"}, gameMessages)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"El nombre no debe estar vacío",
		"La descripción no debe estar vacía",
		"El precio debe ser un número",
	}, verr.Messages())
	assert.Empty(t, verr.For("quantity"))
	assert.Contains(t, verr.Error(), "price: El precio debe ser un número")
}
