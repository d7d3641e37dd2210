package catalog

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/erazemk/gamebase/internal/model"
)

// CategoryInput is a submitted category form.
type CategoryInput struct {
	Name string `form:"name" validate:"min=3,max=100"`
}

// GameInput is a submitted game form. Price and Quantity are the raw form
// values; empty means absent. Quantity is stored as number_of_items.
type GameInput struct {
	Name        string   `form:"name" validate:"required,max=100"`
	Description string   `form:"description" validate:"required,max=250"`
	Price       string   `form:"price" validate:"omitempty,price"`
	Quantity    string   `form:"quantity" validate:"omitempty,positive_int"`
	Categories  []string `form:"category" validate:"dive,uuid"`
}

var categoryMessages = map[string]string{
	"name":     "La Categoría debe contener al menos 3 caracteres",
	"name.max": "La Categoría no debe superar los 100 caracteres",
}

var gameMessages = map[string]string{
	"name":            "El nombre no debe estar vacío",
	"name.max":        "El nombre no debe superar los 100 caracteres",
	"description":     "La descripción no debe estar vacía",
	"description.max": "La descripción no debe superar los 250 caracteres",
	"price":           "El precio debe ser un número",
	"quantity":        "La cantidad debe ser un número entero mayor que 0",
	"category":        "Categoría no válida",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	v.RegisterValidation("positive_int", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Field().String())
		return err == nil && n >= 1
	})
	// Same parser as GameInput.game, so ".5", "5." and "1e3" are prices.
	v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		_, err := decimal.NewFromString(fl.Field().String())
		return err == nil
	})
	return v
}

// check validates in and translates failures into a ValidationError using
// messages, keyed by "field.tag" with a per-field fallback.
func check(in any, messages map[string]string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	verr := &ValidationError{}
	seen := map[string]bool{}
	for _, fe := range errs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if seen[field] {
			continue
		}
		seen[field] = true

		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = messages[field]
		}
		verr.Fields = append(verr.Fields, FieldError{Field: field, Message: msg})
	}
	return verr
}

func (in *CategoryInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
}

func (in *GameInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Price = strings.TrimSpace(in.Price)
	in.Quantity = strings.TrimSpace(in.Quantity)
	in.Categories = NormalizeCategoryIDs(in.Categories)
}

// NormalizeCategoryIDs turns the raw category submission into a set of ids:
// blanks are dropped, duplicates removed, first-seen order kept. The result
// is never nil, so an absent field becomes an empty set.
func NormalizeCategoryIDs(raw []string) []string {
	ids := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// game converts a validated input into a record. Callers must run check
// first; parse failures here are impossible for validated input.
func (in GameInput) game() model.Game {
	g := model.Game{
		Name:        in.Name,
		Description: in.Description,
		Categories:  in.Categories,
	}
	if in.Price != "" {
		if d, err := decimal.NewFromString(in.Price); err == nil {
			g.Price = decimal.NewNullDecimal(d)
		}
	}
	if in.Quantity != "" {
		if n, err := strconv.Atoi(in.Quantity); err == nil {
			g.NumberOfItems = &n
		}
	}
	return g
}

// InputFromGame fills a form from a stored game, for the update form.
func InputFromGame(g model.Game) GameInput {
	in := GameInput{
		Name:        g.Name,
		Description: g.Description,
		Categories:  g.Categories,
	}
	if g.Price.Valid {
		in.Price = g.Price.Decimal.String()
	}
	if g.NumberOfItems != nil {
		in.Quantity = strconv.Itoa(*g.NumberOfItems)
	}
	return in
}

// CategoryOption is a category checkbox on the game form.
type CategoryOption struct {
	model.Category
	Checked bool
}

// MarkSelected pairs every category with whether it is in selected.
func MarkSelected(all []model.Category, selected []string) []CategoryOption {
	chosen := make(map[string]bool, len(selected))
	for _, id := range selected {
		chosen[id] = true
	}

	opts := make([]CategoryOption, len(all))
	for i, c := range all {
		opts[i] = CategoryOption{Category: c, Checked: chosen[c.ID]}
	}
	return opts
}
