package domain

import (
	"strings"
	"time"
)

// DefaultCategory is assigned to dishes extracted or entered without a category.
const DefaultCategory = "Uncategorized"

// Dish is a persisted menu item.
type Dish struct {
	// ID is the opaque dish identifier.
	ID string

	// Name is the dish name. Never empty.
	Name string

	// Description may be empty.
	Description string

	// Category defaults to DefaultCategory.
	Category string

	// Price is non-negative; 0 when unknown.
	Price float64

	// Ingredients holds the resolved ingredient names, in link order.
	Ingredients []string

	// CreatedAt is when the dish was stored.
	CreatedAt time.Time
}

// Ingredient is a corpus entry shared by every dish that links to it.
// Its identity is its canonical name.
type Ingredient struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// DraftDish is a dish record before validation and persistence.
type DraftDish struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Ingredients []string
}

// ApplyDefaults trims string fields and fills in missing values.
func (d DraftDish) ApplyDefaults() DraftDish {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	if d.Category == "" {
		d.Category = DefaultCategory
	}

	ingredients := make([]string, 0, len(d.Ingredients))
	for _, name := range d.Ingredients {
		if name = strings.TrimSpace(name); name != "" {
			ingredients = append(ingredients, name)
		}
	}
	d.Ingredients = ingredients
	return d
}

// Validate checks the fields required for persistence.
func (d DraftDish) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if d.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

// CanonicalIngredientName returns the identity form of an ingredient name:
// surrounding whitespace trimmed and inner runs collapsed to one space.
// With fold set the result is also lower-cased, so "Garlic" and "garlic"
// resolve to the same corpus entry.
func CanonicalIngredientName(name string, fold bool) string {
	name = strings.Join(strings.Fields(name), " ")
	if fold {
		name = strings.ToLower(name)
	}
	return name
}
