package driven

import (
	"context"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

// MenuStore persists dishes, ingredients and the links between them.
//
// Ingredient names are unique in the store. Implementations must enforce
// this with a storage-level constraint so that concurrent creators of the
// same name cannot both succeed, even across processes.
type MenuStore interface {
	// CreateDish stores a dish and links it to the given ingredients in a
	// single transaction. Either all rows are written or none are.
	// Returns the new dish ID.
	CreateDish(ctx context.Context, draft domain.DraftDish, ingredientIDs []string) (string, error)

	// LinkIngredient links an existing ingredient to an existing dish.
	// Linking an already-linked pair is a no-op.
	LinkIngredient(ctx context.Context, dishID, ingredientID string) error

	// FindIngredientByName returns the ingredient with exactly this name.
	// Returns domain.ErrNotFound if none exists.
	FindIngredientByName(ctx context.Context, name string) (*domain.Ingredient, error)

	// CreateIngredient stores a new ingredient.
	// Returns domain.ErrAlreadyExists if the name is taken.
	CreateIngredient(ctx context.Context, name string) (*domain.Ingredient, error)

	// GetDish returns one dish with its ingredient names.
	// Returns domain.ErrNotFound if the dish does not exist.
	GetDish(ctx context.Context, id string) (*domain.Dish, error)

	// ListDishesWithIngredients returns every dish in creation order,
	// each with its ingredient names resolved.
	ListDishesWithIngredients(ctx context.Context) ([]domain.Dish, error)

	// ListDistinctCategories returns each category used by at least one dish, sorted.
	ListDistinctCategories(ctx context.Context) ([]string, error)

	// ListIngredients returns the ingredient corpus sorted by name.
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
}
