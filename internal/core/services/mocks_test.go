package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/menumem/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

var errBoom = errors.New("boom")

// mockLLM returns a canned response and records prompts.
type mockLLM struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
	opts     []driven.GenerateOptions
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	return m.response, m.err
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return m.err }
func (m *mockLLM) Close() error                 { return nil }

// mockOCR returns canned text.
type mockOCR struct {
	text  string
	err   error
	calls int
}

func (m *mockOCR) DetectText(_ context.Context, _ []byte) (string, error) {
	m.calls++
	return m.text, m.err
}

func (m *mockOCR) Name() string { return "mock" }
func (m *mockOCR) Close() error { return nil }

// mockPrompts serves fixed templates.
type mockPrompts struct {
	templates map[string]string
	err       error
}

func (m *mockPrompts) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.templates[name], nil
}

func (m *mockPrompts) Reload() {}

// racingStore simulates another writer winning every ingredient create:
// the row is written through the inner store and ErrAlreadyExists returned.
type racingStore struct {
	*memory.MenuStore
	mu      sync.Mutex
	creates int
}

func (s *racingStore) CreateIngredient(ctx context.Context, name string) (*domain.Ingredient, error) {
	s.mu.Lock()
	s.creates++
	s.mu.Unlock()
	if _, err := s.MenuStore.CreateIngredient(ctx, name); err != nil {
		return nil, err
	}
	return nil, domain.ErrAlreadyExists
}

// failingStore fails selected operations.
type failingStore struct {
	*memory.MenuStore
	failCreateDish func(draft domain.DraftDish) bool
	failList       bool
	failFind       bool
}

func (s *failingStore) CreateDish(ctx context.Context, draft domain.DraftDish, ids []string) (string, error) {
	if s.failCreateDish != nil && s.failCreateDish(draft) {
		return "", errBoom
	}
	return s.MenuStore.CreateDish(ctx, draft, ids)
}

func (s *failingStore) ListDishesWithIngredients(ctx context.Context) ([]domain.Dish, error) {
	if s.failList {
		return nil, errBoom
	}
	return s.MenuStore.ListDishesWithIngredients(ctx)
}

func (s *failingStore) ListDistinctCategories(ctx context.Context) ([]string, error) {
	if s.failList {
		return nil, errBoom
	}
	return s.MenuStore.ListDistinctCategories(ctx)
}

func (s *failingStore) FindIngredientByName(ctx context.Context, name string) (*domain.Ingredient, error) {
	if s.failFind {
		return nil, errBoom
	}
	return s.MenuStore.FindIngredientByName(ctx, name)
}

// fixedRandom always draws 0, so shuffles and samples are predictable.
type fixedRandom struct{}

func (fixedRandom) IntN(int) int { return 0 }

// gatedStore holds lookups of "garlic" until release is closed and fails
// lookups of "bad" once badGate is closed.
type gatedStore struct {
	*memory.MenuStore
	badGate    chan struct{}
	release    chan struct{}
	garlicSeen chan struct{}
	once       sync.Once
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		MenuStore:  memory.NewMenuStore(),
		badGate:    make(chan struct{}),
		release:    make(chan struct{}),
		garlicSeen: make(chan struct{}),
	}
}

func (s *gatedStore) FindIngredientByName(ctx context.Context, name string) (*domain.Ingredient, error) {
	switch name {
	case "bad":
		<-s.badGate
		return nil, errBoom
	case "garlic":
		s.once.Do(func() { close(s.garlicSeen) })
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.MenuStore.FindIngredientByName(ctx, name)
}
