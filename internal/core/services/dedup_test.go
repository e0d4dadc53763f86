package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/menumem/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/menumem/internal/core/domain"
)

func TestIngredientResolver_Canonical(t *testing.T) {
	folding := NewIngredientResolver(nil, true)
	exact := NewIngredientResolver(nil, false)

	assert.Equal(t, "sea salt", folding.Canonical("  Sea   Salt "))
	assert.Equal(t, "Sea Salt", exact.Canonical("  Sea   Salt "))
	assert.Empty(t, folding.Canonical("   "))
}

func TestIngredientResolver_ResolveIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMenuStore()
	r := NewIngredientResolver(store, true)

	first, err := r.Resolve(ctx, []string{"garlic"})
	require.NoError(t, err)
	second, err := r.Resolve(ctx, []string{"garlic"})
	require.NoError(t, err)

	assert.Equal(t, first["garlic"].ID, second["garlic"].ID)

	all, err := store.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestIngredientResolver_BatchDuplicates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMenuStore()
	r := NewIngredientResolver(store, true)

	byName, err := r.Resolve(ctx, []string{"Salt", "salt", " SALT ", "pepper", ""})

	require.NoError(t, err)
	assert.Len(t, byName, 4)
	assert.Equal(t, byName["Salt"].ID, byName["salt"].ID)
	assert.Equal(t, byName["Salt"].ID, byName[" SALT "].ID)
	assert.Equal(t, "salt", byName["Salt"].Name)
	assert.NotContains(t, byName, "")

	all, err := store.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestIngredientResolver_ExactIdentity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMenuStore()
	r := NewIngredientResolver(store, false)

	ids, err := r.ResolveIDs(ctx, []string{"Garlic", "garlic"})

	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestIngredientResolver_ResolveIDsOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMenuStore()
	r := NewIngredientResolver(store, true)

	egg, err := store.CreateIngredient(ctx, "egg")
	require.NoError(t, err)

	ids, err := r.ResolveIDs(ctx, []string{"flour", "Egg", "flour", "egg"})

	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, egg.ID, ids[1])
}

func TestIngredientResolver_ConcurrentGarlic(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMenuStore()

	// One resolver per writer so in-process call collapsing does not
	// hide the store race.
	const writers = 2
	ids := make([]string, writers)
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := NewIngredientResolver(store, true)
			got, err := r.ResolveIDs(ctx, []string{"garlic"})
			errs[i] = err
			if len(got) == 1 {
				ids[i] = got[0]
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.NotEmpty(t, ids[0])
	assert.Equal(t, ids[0], ids[1])

	all, err := store.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestIngredientResolver_LostRaceRefetches(t *testing.T) {
	ctx := context.Background()
	store := &racingStore{MenuStore: memory.NewMenuStore()}
	r := NewIngredientResolver(store, true)

	byName, err := r.Resolve(ctx, []string{"garlic"})

	require.NoError(t, err)
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, "garlic", byName["garlic"].Name)
	assert.NotEmpty(t, byName["garlic"].ID)
}

func TestIngredientResolver_StoreFailure(t *testing.T) {
	store := &failingStore{MenuStore: memory.NewMenuStore(), failFind: true}
	r := NewIngredientResolver(store, true)

	_, err := r.Resolve(context.Background(), []string{"garlic"})

	var storeErr *domain.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "find ingredient", storeErr.Op)
	assert.ErrorIs(t, err, errBoom)
}

func TestIngredientResolver_FailureDoesNotSpreadToSharedLookup(t *testing.T) {
	ctx := context.Background()
	store := newGatedStore()
	r := NewIngredientResolver(store, true)

	errA := make(chan error, 1)
	go func() {
		_, err := r.Resolve(ctx, []string{"garlic", "bad"})
		errA <- err
	}()
	<-store.garlicSeen

	type result struct {
		byName map[string]domain.Ingredient
		err    error
	}
	resB := make(chan result, 1)
	go func() {
		byName, err := r.Resolve(ctx, []string{"garlic"})
		resB <- result{byName, err}
	}()
	time.Sleep(20 * time.Millisecond)

	close(store.badGate)
	assert.ErrorIs(t, <-errA, errBoom)

	close(store.release)
	b := <-resB
	require.NoError(t, b.err)
	assert.Equal(t, "garlic", b.byName["garlic"].Name)
}

func TestIngredientResolver_CallerCancelled(t *testing.T) {
	store := newGatedStore()
	r := NewIngredientResolver(store, true)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() {
		_, err := r.Resolve(ctx, []string{"garlic"})
		errc <- err
	}()
	<-store.garlicSeen
	cancel()

	assert.ErrorIs(t, <-errc, context.Canceled)
	close(store.release)
}

func TestIngredientResolver_NilStore(t *testing.T) {
	r := NewIngredientResolver(nil, true)
	_, err := r.Resolve(context.Background(), []string{"garlic"})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
