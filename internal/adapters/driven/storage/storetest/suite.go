// Package storetest holds the behaviour every driven.MenuStore must share.
// Store packages run it from their own tests against a fresh store.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

// NewStoreFunc returns an empty store. Cleanup is registered on t.
type NewStoreFunc func(t *testing.T) driven.MenuStore

// RunMenuStoreSuite runs the shared MenuStore behaviour tests.
func RunMenuStoreSuite(t *testing.T, newStore NewStoreFunc) {
	t.Run("ingredient create and find", func(t *testing.T) {
		testIngredientCreateAndFind(t, newStore(t))
	})
	t.Run("concurrent ingredient create", func(t *testing.T) {
		testConcurrentIngredientCreate(t, newStore(t))
	})
	t.Run("create dish with links", func(t *testing.T) {
		testCreateDishWithLinks(t, newStore(t))
	})
	t.Run("create dish with unknown ingredient", func(t *testing.T) {
		testCreateDishUnknownIngredient(t, newStore(t))
	})
	t.Run("list dishes in creation order", func(t *testing.T) {
		testListDishesOrder(t, newStore(t))
	})
	t.Run("link ingredient", func(t *testing.T) {
		testLinkIngredient(t, newStore(t))
	})
	t.Run("distinct categories", func(t *testing.T) {
		testDistinctCategories(t, newStore(t))
	})
	t.Run("empty store", func(t *testing.T) {
		testEmptyStore(t, newStore(t))
	})
}

func testIngredientCreateAndFind(t *testing.T, store driven.MenuStore) {
	ctx := context.Background()

	_, err := store.FindIngredientByName(ctx, "garlic")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := store.CreateIngredient(ctx, "garlic")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "garlic", created.Name)

	found, err := store.FindIngredientByName(ctx, "garlic")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = store.CreateIngredient(ctx, "garlic")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Names are compared exactly; canonicalisation happens above the store.
	other, err := store.CreateIngredient(ctx, "Garlic")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, other.ID)
}

func testConcurrentIngredientCreate(t *testing.T, store driven.MenuStore) {
	ctx := context.Background()
	const writers = 8

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ids      []string
		conflict int
	)
	start := make(chan struct{})
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ing, err := store.CreateIngredient(ctx, "garlic")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ids = append(ids, ing.ID)
			case errors.Is(err, domain.ErrAlreadyExists):
				conflict++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Len(t, ids, 1, "exactly one writer must win")
	assert.Equal(t, writers-1, conflict)

	all, err := store.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testCreateDishWithLinks(t *testing.T, store driven.MenuStore) {
	ctx := context.Background()
	flour := mustIngredient(t, store, "flour")
	egg := mustIngredient(t, store, "egg")

	id, err := store.CreateDish(ctx, domain.DraftDish{
		Name:        "Pancakes",
		Description: "Fluffy",
		Category:    "Breakfast",
		Price:       6.5,
	}, []string{flour.ID, egg.ID, flour.ID})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	dish, err := store.GetDish(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", dish.Name)
	assert.Equal(t, "Fluffy", dish.Description)
	assert.Equal(t, "Breakfast", dish.Category)
	assert.InDelta(t, 6.5, dish.Price, 0.001)
	assert.ElementsMatch(t, []string{"flour", "egg"}, dish.Ingredients)

	_, err = store.GetDish(ctx, "no-such-dish")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testCreateDishUnknownIngredient(t *testing.T, store driven.MenuStore) {
	ctx := context.Background()

	_, err := store.CreateDish(ctx, domain.DraftDish{Name: "Ghost", Category: "X"}, []string{"missing-id"})
	require.Error(t, err)

	dishes, err := store.ListDishesWithIngredients(ctx)
	require.NoError(t, err)
	assert.Empty(t, dishes, "a failed dish must not be half written")
}

func testListDishesOrder(t *testing.T, store driven.MenuStore) {
	ctx := context.Background()
	cheese := mustIngredient(t, store, "cheese")

	names := []string{"Soup", "Pizza", "Salad"}
	for _, name := range names {
		_, err := store.CreateDish(ctx, domain.DraftDish{Name: name, Category: "Mains"}, []string{cheese.ID})
		require.NoError(t, err)
	}

	dishes, err := store.ListDishesWithIngredients(ctx)
	require.NoError(t, err)
	require.Len(t, dishes, 3)
	for i, d := range dishes {
		assert.Equal(t, names[i], d.Name)
		assert.Equal(t, []string{"cheese"}, d.Ingredients)
	}
}

func testLinkIngredient(t *testing.T, store driven.MenuStore) {
	ctx := context.Background()
	basil := mustIngredient(t, store, "basil")

	id, err := store.CreateDish(ctx, domain.DraftDish{Name: "Pesto", Category: "Sauces"}, nil)
	require.NoError(t, err)

	require.NoError(t, store.LinkIngredient(ctx, id, basil.ID))
	require.NoError(t, store.LinkIngredient(ctx, id, basil.ID))

	dish, err := store.GetDish(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"basil"}, dish.Ingredients)

	assert.ErrorIs(t, store.LinkIngredient(ctx, "no-such-dish", basil.ID), domain.ErrNotFound)
	assert.ErrorIs(t, store.LinkIngredient(ctx, id, "no-such-ingredient"), domain.ErrNotFound)
}

func testDistinctCategories(t *testing.T, store driven.MenuStore) {
	ctx := context.Background()
	for _, d := range []domain.DraftDish{
		{Name: "Tiramisu", Category: "Desserts"},
		{Name: "Bruschetta", Category: "Starters"},
		{Name: "Panna Cotta", Category: "Desserts"},
	} {
		_, err := store.CreateDish(ctx, d, nil)
		require.NoError(t, err)
	}

	categories, err := store.ListDistinctCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Desserts", "Starters"}, categories)
}

func testEmptyStore(t *testing.T, store driven.MenuStore) {
	ctx := context.Background()

	dishes, err := store.ListDishesWithIngredients(ctx)
	require.NoError(t, err)
	assert.Empty(t, dishes)

	categories, err := store.ListDistinctCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)

	ingredients, err := store.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Empty(t, ingredients)
}

func mustIngredient(t *testing.T, store driven.MenuStore, name string) *domain.Ingredient {
	t.Helper()
	ing, err := store.CreateIngredient(context.Background(), name)
	require.NoError(t, err)
	return ing
}
