package dishes

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/menumem/internal/core/domain"
)

type stubMenuService struct {
	dishes []domain.Dish
	err    error
}

func (s *stubMenuService) List(context.Context) ([]domain.Dish, error) { return s.dishes, s.err }
func (s *stubMenuService) Categories(context.Context) ([]string, error) { return nil, nil }

func (s *stubMenuService) Ingredients(context.Context) ([]domain.Ingredient, error) {
	return nil, nil
}

func (s *stubMenuService) AddDish(context.Context, domain.DraftDish) (*domain.Dish, error) {
	return nil, domain.ErrNotImplemented
}

func (s *stubMenuService) AddIngredient(context.Context, string) (*domain.Ingredient, error) {
	return nil, domain.ErrNotImplemented
}

func (s *stubMenuService) LinkIngredients(context.Context, string, []string) (*domain.Dish, error) {
	return nil, domain.ErrNotImplemented
}

func (s *stubMenuService) AddIngredients(context.Context, string, []string) (*domain.Dish, error) {
	return nil, domain.ErrNotImplemented
}

func sampleDishes() []domain.Dish {
	return []domain.Dish{
		{ID: "1", Name: "Crepe", Category: "Dessert", Description: "Thin pancake", Price: 6, Ingredients: []string{"flour", "egg"}},
		{ID: "2", Name: "Lasagna", Category: "Mains", Description: "Baked pasta", Ingredients: []string{"pasta", "cheese"}},
		{ID: "3", Name: "Leek soup", Category: "Starters", Ingredients: []string{"leek"}},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, svc *stubMenuService) *View {
	t.Helper()
	v := NewView(nil, svc)
	cmd := v.Load()
	require.NotNil(t, cmd)
	assert.Contains(t, v.View(), "Loading dishes...")
	v.Update(cmd())
	return v
}

func TestLoad(t *testing.T) {
	v := loaded(t, &stubMenuService{dishes: sampleDishes()})

	require.NoError(t, v.Err())
	assert.Len(t, v.Visible(), 3)
	out := v.View()
	assert.Contains(t, out, "Dishes (3)")
	assert.Contains(t, out, "> Crepe")
	assert.Contains(t, out, "[Dessert]")
	assert.Contains(t, out, "6.00")
	assert.NotContains(t, out, "Ingredients:")
}

func TestLoad_Error(t *testing.T) {
	v := loaded(t, &stubMenuService{err: errors.New("store closed")})

	assert.EqualError(t, v.Err(), "store closed")
	assert.Contains(t, v.View(), "Error: store closed")
}

func TestLoad_Empty(t *testing.T) {
	v := loaded(t, &stubMenuService{})

	assert.Nil(t, v.SelectedDish())
	assert.Contains(t, v.View(), "No dishes stored yet")
}

func TestLoad_NilService(t *testing.T) {
	v := NewView(nil, nil)
	v.Update(v.Load()())

	assert.Error(t, v.Err())
}

func TestNavigateAndExpand(t *testing.T) {
	v := loaded(t, &stubMenuService{dishes: sampleDishes()})

	v.Update(key("down"))
	v.Update(key("enter"))

	require.NotNil(t, v.SelectedDish())
	assert.Equal(t, "Lasagna", v.SelectedDish().Name)
	assert.True(t, v.Expanded())
	out := v.View()
	assert.Contains(t, out, "Baked pasta")
	assert.Contains(t, out, "Ingredients: pasta, cheese")

	// moving collapses
	v.Update(key("j"))
	assert.False(t, v.Expanded())
	assert.Equal(t, "Leek soup", v.SelectedDish().Name)

	v.Update(key("j"))
	assert.Equal(t, "Leek soup", v.SelectedDish().Name)

	v.Update(key("up"))
	v.Update(key("k"))
	v.Update(key("k"))
	assert.Equal(t, "Crepe", v.SelectedDish().Name)
}

func TestEsc(t *testing.T) {
	v := loaded(t, &stubMenuService{dishes: sampleDishes()})
	v.Update(key("enter"))

	_, cmd := v.Update(key("esc"))
	assert.Nil(t, cmd)
	assert.False(t, v.Expanded())

	_, cmd = v.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestFilter(t *testing.T) {
	v := loaded(t, &stubMenuService{dishes: sampleDishes()})

	v.Update(key("/"))
	require.True(t, v.filter.Focused())

	v.Update(key("CHEESE"))
	require.Len(t, v.Visible(), 1)
	assert.Equal(t, "Lasagna", v.Visible()[0].Name)
	assert.Contains(t, v.View(), "Filter")

	// enter keeps the filter, esc inside the filter clears it
	v.Update(key("enter"))
	assert.False(t, v.filter.Focused())
	assert.Len(t, v.Visible(), 1)

	v.Update(key("/"))
	v.Update(key("esc"))
	assert.Len(t, v.Visible(), 3)
}

func TestFilter_MatchesCategoryAndDescription(t *testing.T) {
	v := loaded(t, &stubMenuService{dishes: sampleDishes()})
	v.Update(key("/"))

	v.Update(key("start"))
	require.Len(t, v.Visible(), 1)
	assert.Equal(t, "Leek soup", v.Visible()[0].Name)

	v.filter.SetValue("thin")
	v.applyFilter()
	require.Len(t, v.Visible(), 1)
	assert.Equal(t, "Crepe", v.Visible()[0].Name)

	v.filter.SetValue("nothing")
	v.applyFilter()
	assert.Empty(t, v.Visible())
	assert.Nil(t, v.SelectedDish())
	assert.Contains(t, v.View(), "No dishes match.")
}

func TestReload(t *testing.T) {
	svc := &stubMenuService{dishes: sampleDishes()[:1]}
	v := loaded(t, svc)

	svc.dishes = sampleDishes()
	_, cmd := v.Update(key("r"))
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Len(t, v.Visible(), 3)
}

func TestScroll(t *testing.T) {
	var many []domain.Dish
	for i := range 30 {
		many = append(many, domain.Dish{ID: string(rune('a' + i)), Name: "Dish", Category: domain.DefaultCategory})
	}
	v := loaded(t, &stubMenuService{dishes: many})
	v.SetDimensions(80, 20)

	for range 10 {
		v.Update(key("down"))
	}

	assert.Equal(t, 5, v.scrollOffset)
	assert.Contains(t, v.View(), "[6-11 of 30]")
}
