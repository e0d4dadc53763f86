package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

// Ensure MenuStore implements the interface.
var _ driven.MenuStore = (*MenuStore)(nil)

type dishRecord struct {
	dish  domain.Dish
	links []string // ingredient IDs in link order
}

// MenuStore is an in-memory implementation of driven.MenuStore.
// Ingredient names are unique exactly as in the SQL stores.
type MenuStore struct {
	mu          sync.RWMutex
	dishes      map[string]*dishRecord
	order       []string
	ingredients map[string]domain.Ingredient // by ID
	byName      map[string]string            // name -> ID
}

// NewMenuStore creates a new in-memory menu store.
func NewMenuStore() *MenuStore {
	return &MenuStore{
		dishes:      make(map[string]*dishRecord),
		ingredients: make(map[string]domain.Ingredient),
		byName:      make(map[string]string),
	}
}

// CreateDish stores a dish and its links atomically.
func (s *MenuStore) CreateDish(_ context.Context, draft domain.DraftDish, ingredientIDs []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ingredientIDs {
		if _, ok := s.ingredients[id]; !ok {
			return "", domain.ErrNotFound
		}
	}

	id := uuid.New().String()
	rec := &dishRecord{
		dish: domain.Dish{
			ID:          id,
			Name:        draft.Name,
			Description: draft.Description,
			Category:    draft.Category,
			Price:       draft.Price,
			CreatedAt:   time.Now(),
		},
	}
	for _, ingID := range ingredientIDs {
		if !slices.Contains(rec.links, ingID) {
			rec.links = append(rec.links, ingID)
		}
	}

	s.dishes[id] = rec
	s.order = append(s.order, id)
	return id, nil
}

// LinkIngredient links an ingredient to a dish. Existing links are kept.
func (s *MenuStore) LinkIngredient(_ context.Context, dishID, ingredientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.dishes[dishID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.ingredients[ingredientID]; !ok {
		return domain.ErrNotFound
	}
	if !slices.Contains(rec.links, ingredientID) {
		rec.links = append(rec.links, ingredientID)
	}
	return nil
}

// FindIngredientByName returns the ingredient with exactly this name.
func (s *MenuStore) FindIngredientByName(_ context.Context, name string) (*domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	ing := s.ingredients[id]
	return &ing, nil
}

// CreateIngredient stores a new ingredient, failing if the name is taken.
func (s *MenuStore) CreateIngredient(_ context.Context, name string) (*domain.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[name]; taken {
		return nil, domain.ErrAlreadyExists
	}

	ing := domain.Ingredient{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	s.ingredients[ing.ID] = ing
	s.byName[name] = ing.ID
	return &ing, nil
}

// GetDish returns one dish with its ingredient names.
func (s *MenuStore) GetDish(_ context.Context, id string) (*domain.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.dishes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	dish := s.resolve(rec)
	return &dish, nil
}

// ListDishesWithIngredients returns every dish in creation order.
func (s *MenuStore) ListDishesWithIngredients(_ context.Context) ([]domain.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dishes := make([]domain.Dish, 0, len(s.order))
	for _, id := range s.order {
		dishes = append(dishes, s.resolve(s.dishes[id]))
	}
	return dishes, nil
}

// ListDistinctCategories returns the sorted set of dish categories.
func (s *MenuStore) ListDistinctCategories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]string, 0)
	for _, rec := range s.dishes {
		if !slices.Contains(categories, rec.dish.Category) {
			categories = append(categories, rec.dish.Category)
		}
	}
	slices.Sort(categories)
	return categories, nil
}

// ListIngredients returns the ingredient corpus sorted by name.
func (s *MenuStore) ListIngredients(_ context.Context) ([]domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ingredients := make([]domain.Ingredient, 0, len(s.ingredients))
	for _, ing := range s.ingredients {
		ingredients = append(ingredients, ing)
	}
	slices.SortFunc(ingredients, func(a, b domain.Ingredient) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return ingredients, nil
}

// resolve copies a dish and fills in its ingredient names (caller holds lock).
func (s *MenuStore) resolve(rec *dishRecord) domain.Dish {
	dish := rec.dish
	dish.Ingredients = make([]string, 0, len(rec.links))
	for _, id := range rec.links {
		dish.Ingredients = append(dish.Ingredients, s.ingredients[id].Name)
	}
	return dish
}
