package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
	"github.com/custodia-labs/menumem/internal/logger"
)

const defaultResolveConcurrency = 8

// IngredientResolver maps ingredient names to corpus entries, creating
// entries only for names the corpus does not hold yet.
//
// At most one entry per canonical name is guaranteed by the store's
// uniqueness constraint: a create that loses a race returns
// domain.ErrAlreadyExists and the resolver re-fetches the winner's row.
// Concurrent upserts of one name inside this process are also collapsed
// into a single store round trip.
type IngredientResolver struct {
	store       driven.MenuStore
	fold        bool
	concurrency int
	flight      singleflight.Group
}

// NewIngredientResolver creates a resolver. With fold set, names that
// differ only in case resolve to the same ingredient.
func NewIngredientResolver(store driven.MenuStore, fold bool) *IngredientResolver {
	return &IngredientResolver{
		store:       store,
		fold:        fold,
		concurrency: defaultResolveConcurrency,
	}
}

// Canonical returns the identity form of name under this resolver's policy.
func (r *IngredientResolver) Canonical(name string) string {
	return domain.CanonicalIngredientName(name, r.fold)
}

// Resolve returns the ingredient for every non-blank name, keyed by the
// name as given. Names are canonicalised and deduplicated before any
// store call is made.
func (r *IngredientResolver) Resolve(ctx context.Context, names []string) (map[string]domain.Ingredient, error) {
	if r.store == nil {
		return nil, domain.ErrNotImplemented
	}

	var distinct []string
	for _, name := range names {
		if c := r.Canonical(name); c != "" {
			distinct = append(distinct, c)
		}
	}
	distinct = Dedupe(distinct)

	resolved := make([]*domain.Ingredient, len(distinct))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, name := range distinct {
		g.Go(func() error {
			ing, err := r.upsertOnce(gctx, name)
			if err != nil {
				return err
			}
			resolved[i] = ing
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byCanonical := make(map[string]domain.Ingredient, len(distinct))
	for i, name := range distinct {
		byCanonical[name] = *resolved[i]
	}

	out := make(map[string]domain.Ingredient, len(names))
	for _, name := range names {
		if ing, ok := byCanonical[r.Canonical(name)]; ok {
			out[name] = ing
		}
	}
	return out, nil
}

// ResolveIDs resolves names and returns the distinct ingredient IDs in
// first-seen order, ready to link to a dish.
func (r *IngredientResolver) ResolveIDs(ctx context.Context, names []string) ([]string, error) {
	byName, err := r.Resolve(ctx, names)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(byName))
	for _, name := range names {
		if ing, ok := byName[name]; ok {
			ids = append(ids, ing.ID)
		}
	}
	return Dedupe(ids), nil
}

// upsertOnce shares one store round trip between concurrent callers for
// the same name. The shared call is detached from the cancellation of the
// caller that started it; each caller still gives up on its own context.
func (r *IngredientResolver) upsertOnce(ctx context.Context, name string) (*domain.Ingredient, error) {
	flightCtx := context.WithoutCancel(ctx)
	ch := r.flight.DoChan(name, func() (any, error) {
		return r.upsert(flightCtx, name)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Ingredient), nil
	}
}

func (r *IngredientResolver) upsert(ctx context.Context, name string) (*domain.Ingredient, error) {
	ing, err := r.store.FindIngredientByName(ctx, name)
	if err == nil {
		return ing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.StoreError{Op: "find ingredient", Err: err}
	}

	ing, err = r.store.CreateIngredient(ctx, name)
	if err == nil {
		logger.Debug("Created ingredient %q (%s)", name, ing.ID)
		return ing, nil
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return nil, &domain.StoreError{Op: "create ingredient", Err: err}
	}

	// Lost the race to another writer; its row is the corpus entry.
	logger.Debug("Ingredient %q created concurrently, re-fetching", name)
	ing, err = r.store.FindIngredientByName(ctx, name)
	if err != nil {
		return nil, &domain.StoreError{Op: "find ingredient", Err: err}
	}
	return ing, nil
}
