package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
	"github.com/custodia-labs/menumem/internal/core/ports/driving"
)

// Ensure MenuService implements the interface.
var _ driving.MenuService = (*MenuService)(nil)

// MenuService reads the menu corpus and applies manual edits.
type MenuService struct {
	store    driven.MenuStore
	resolver *IngredientResolver
	ingest   *IngestService
}

// NewMenuService creates a new menu service.
func NewMenuService(store driven.MenuStore, resolver *IngredientResolver) *MenuService {
	return &MenuService{
		store:    store,
		resolver: resolver,
		ingest:   NewIngestService(store, resolver, nil, nil, nil, 1),
	}
}

// List returns every dish with ingredient names, in creation order.
func (s *MenuService) List(ctx context.Context) ([]domain.Dish, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	dishes, err := s.store.ListDishesWithIngredients(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "list dishes", Err: err}
	}
	return dishes, nil
}

// Categories returns the distinct dish categories.
func (s *MenuService) Categories(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	categories, err := s.store.ListDistinctCategories(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "list categories", Err: err}
	}
	return categories, nil
}

// Ingredients returns the ingredient corpus.
func (s *MenuService) Ingredients(ctx context.Context) ([]domain.Ingredient, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	ingredients, err := s.store.ListIngredients(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "list ingredients", Err: err}
	}
	return ingredients, nil
}

// AddDish stores one manually entered dish through the same path as uploads.
func (s *MenuService) AddDish(ctx context.Context, draft domain.DraftDish) (*domain.Dish, error) {
	if s.store == nil || s.resolver == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.ingest.storeDish(ctx, draft.ApplyDefaults())
}

// AddIngredient returns the corpus entry for name, creating it if absent.
func (s *MenuService) AddIngredient(ctx context.Context, name string) (*domain.Ingredient, error) {
	if s.resolver == nil {
		return nil, domain.ErrNotImplemented
	}
	if strings.TrimSpace(name) == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "required"}
	}

	byName, err := s.resolver.Resolve(ctx, []string{name})
	if err != nil {
		return nil, err
	}
	ing := byName[name]
	return &ing, nil
}

// AddIngredients resolves names through the deduplicator and links them
// to the dish.
func (s *MenuService) AddIngredients(ctx context.Context, dishID string, names []string) (*domain.Dish, error) {
	if s.store == nil || s.resolver == nil {
		return nil, domain.ErrNotImplemented
	}
	if _, err := s.getDish(ctx, dishID); err != nil {
		return nil, err
	}

	ids, err := s.resolver.ResolveIDs(ctx, names)
	if err != nil {
		return nil, err
	}
	return s.LinkIngredients(ctx, dishID, ids)
}

// LinkIngredients links existing ingredients to a dish. Already linked
// pairs are left as they are.
func (s *MenuService) LinkIngredients(ctx context.Context, dishID string, ingredientIDs []string) (*domain.Dish, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if _, err := s.getDish(ctx, dishID); err != nil {
		return nil, err
	}

	for _, id := range Dedupe(ingredientIDs) {
		if err := s.store.LinkIngredient(ctx, dishID, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("ingredient %s: %w", id, domain.ErrNotFound)
			}
			return nil, &domain.StoreError{Op: "link ingredient", Err: err}
		}
	}
	return s.getDish(ctx, dishID)
}

func (s *MenuService) getDish(ctx context.Context, id string) (*domain.Dish, error) {
	dish, err := s.store.GetDish(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("dish %s: %w", id, domain.ErrNotFound)
		}
		return nil, &domain.StoreError{Op: "get dish", Err: err}
	}
	return dish, nil
}
