package catalog

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/erazemk/gamebase/internal/model"
)

// findByName returns the first category whose name matches name when case
// and accents are ignored, or nil.
func findByName(categories []model.Category, name string) *model.Category {
	// Collators keep internal buffers and are not safe to share.
	col := collate.New(language.English, collate.IgnoreCase, collate.IgnoreDiacritics)
	for i := range categories {
		if col.CompareString(categories[i].Name, name) == 0 {
			return &categories[i]
		}
	}
	return nil
}
