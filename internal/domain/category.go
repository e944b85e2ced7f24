package domain

// Category groups events for browsing and analytics. Names are unique;
// once created a category is only ever referenced, never edited.
type Category struct {
	ID   int64
	Name string
}

// ValidateCategory checks that the category carries a name.
func ValidateCategory(c Category) error {
	if c.Name == "" {
		return ErrCategoryNameRequired
	}
	return nil
}
