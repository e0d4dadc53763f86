package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

// MockQuizService implements driving.QuizService for testing.
type MockQuizService struct {
	Questions []domain.QuizQuestion
	Err       error
	Opts      domain.QuizOptions
}

func (m *MockQuizService) Generate(_ context.Context, opts domain.QuizOptions) ([]domain.QuizQuestion, error) {
	m.Opts = opts
	return m.Questions, m.Err
}

// MockMenuService implements driving.MenuService for testing.
type MockMenuService struct {
	Dishes []domain.Dish
	Err    error
}

func (m *MockMenuService) List(context.Context) ([]domain.Dish, error) {
	return m.Dishes, m.Err
}

func (m *MockMenuService) Categories(context.Context) ([]string, error) {
	return nil, m.Err
}

func (m *MockMenuService) Ingredients(context.Context) ([]domain.Ingredient, error) {
	return nil, m.Err
}

func (m *MockMenuService) AddDish(context.Context, domain.DraftDish) (*domain.Dish, error) {
	return nil, domain.ErrNotImplemented
}

func (m *MockMenuService) AddIngredient(context.Context, string) (*domain.Ingredient, error) {
	return nil, domain.ErrNotImplemented
}

func (m *MockMenuService) LinkIngredients(context.Context, string, []string) (*domain.Dish, error) {
	return nil, domain.ErrNotImplemented
}

func (m *MockMenuService) AddIngredients(context.Context, string, []string) (*domain.Dish, error) {
	return nil, domain.ErrNotImplemented
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports Ports
		want  error
	}{
		{"complete", Ports{Quiz: &MockQuizService{}, Menu: &MockMenuService{}}, nil},
		{"missing quiz", Ports{Menu: &MockMenuService{}}, ErrMissingQuizService},
		{"missing menu", Ports{Quiz: &MockQuizService{}}, ErrMissingMenuService},
		{"empty", Ports{}, ErrMissingQuizService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
