package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/menumem/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/services"
)

// mockQuizService is a mock implementation of driving.QuizService.
type mockQuizService struct {
	quiz []domain.QuizQuestion
	opts domain.QuizOptions
	err  error
}

func (m *mockQuizService) Generate(_ context.Context, opts domain.QuizOptions) ([]domain.QuizQuestion, error) {
	m.opts = opts
	return m.quiz, m.err
}

// mockMenuService is a mock implementation of driving.MenuService.
type mockMenuService struct {
	dishes     []domain.Dish
	categories []string
	err        error
}

func (m *mockMenuService) List(_ context.Context) ([]domain.Dish, error) {
	return m.dishes, m.err
}

func (m *mockMenuService) Categories(_ context.Context) ([]string, error) {
	return m.categories, m.err
}

func (m *mockMenuService) Ingredients(_ context.Context) ([]domain.Ingredient, error) {
	return nil, m.err
}

func (m *mockMenuService) AddDish(_ context.Context, _ domain.DraftDish) (*domain.Dish, error) {
	return nil, m.err
}

func (m *mockMenuService) AddIngredient(_ context.Context, _ string) (*domain.Ingredient, error) {
	return nil, m.err
}

func (m *mockMenuService) LinkIngredients(_ context.Context, _ string, _ []string) (*domain.Dish, error) {
	return nil, m.err
}

func (m *mockMenuService) AddIngredients(_ context.Context, _ string, _ []string) (*domain.Dish, error) {
	return nil, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	extraction *domain.Extraction
	text       string
	err        error
}

func (m *mockIngestService) ParseMenu(_ context.Context, text string) (*domain.Extraction, error) {
	m.text = text
	return m.extraction, m.err
}

func (m *mockIngestService) Upload(_ context.Context, _ []domain.DraftDish) (*domain.IngestReport, error) {
	return nil, m.err
}

func (m *mockIngestService) RecognizeText(_ context.Context, _ []byte) (string, error) {
	return "", m.err
}

func (m *mockIngestService) IngestText(_ context.Context, _ string) (*domain.IngestReport, error) {
	return nil, m.err
}

func (m *mockIngestService) IngestImage(_ context.Context, _ []byte) (*domain.IngestReport, error) {
	return nil, m.err
}

// newMenuServer returns a server backed by real services over a memory
// store holding the given dishes.
func newMenuServer(t *testing.T, drafts ...domain.DraftDish) *Server {
	t.Helper()

	store := memory.NewMenuStore()
	resolver := services.NewIngredientResolver(store, true)
	menu := services.NewMenuService(store, resolver)
	for _, d := range drafts {
		_, err := menu.AddDish(context.Background(), d)
		require.NoError(t, err)
	}

	server, err := NewServer(&Ports{
		Quiz: services.NewQuizService(store, domain.DefaultAppSettings().Quiz),
		Menu: menu,
	})
	require.NoError(t, err)
	return server
}
