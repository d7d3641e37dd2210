package model

// Category is a named grouping that games may reference.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// URL returns the canonical page for the category.
func (c Category) URL() string {
	return "/catalog/category/" + c.ID
}
