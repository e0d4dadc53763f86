package driving

import (
	"context"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

// MenuService reads and edits the stored menu.
type MenuService interface {
	// List returns every dish with ingredient names, in creation order.
	List(ctx context.Context) ([]domain.Dish, error)

	// Categories returns the distinct dish categories.
	Categories(ctx context.Context) ([]string, error)

	// Ingredients returns the ingredient corpus.
	Ingredients(ctx context.Context) ([]domain.Ingredient, error)

	// AddDish validates and stores a single manually entered dish.
	AddDish(ctx context.Context, draft domain.DraftDish) (*domain.Dish, error)

	// AddIngredient returns the corpus entry for name, creating it if absent.
	AddIngredient(ctx context.Context, name string) (*domain.Ingredient, error)

	// LinkIngredients links existing ingredients, by ID, to a dish and
	// returns the updated dish.
	LinkIngredients(ctx context.Context, dishID string, ingredientIDs []string) (*domain.Dish, error)

	// AddIngredients links the named ingredients to a dish, creating
	// corpus entries as needed, and returns the updated dish.
	AddIngredients(ctx context.Context, dishID string, names []string) (*domain.Dish, error)
}
