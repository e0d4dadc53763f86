// Package dishes provides the dish browser of the TUI.
package dishes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driving"
)

// View lists stored dishes. Enter expands the dish under the cursor.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	menuService driving.MenuService
	ctx         context.Context
	filter      *input.FilterInput

	dishes       []domain.Dish
	visible      []int
	selected     int
	expanded     bool
	scrollOffset int
	loading      bool
	err          error
	width        int
	height       int
}

// NewView creates a dish browser backed by menuService.
func NewView(s *styles.Styles, menuService driving.MenuService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:      s,
		keymap:      keymap.DefaultKeyMap(),
		menuService: menuService,
		ctx:         context.Background(),
		filter:      input.NewFilterInput(s),
		width:       80,
		height:      24,
	}
}

// SetContext sets the context used for loading dishes.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load clears the filter and reloads the dish list.
func (v *View) Load() tea.Cmd {
	v.filter.Reset()
	v.filter.Blur()
	v.selected = 0
	v.scrollOffset = 0
	v.expanded = false
	v.loading = true
	v.err = nil

	svc, ctx := v.menuService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DishesLoaded{Err: errors.New("menu service not available")}
		}
		dishes, err := svc.List(ctx)
		return messages.DishesLoaded{Dishes: dishes, Err: err}
	}
}

// Update handles messages for the dishes view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DishesLoaded:
		v.loading = false
		v.err = msg.Err
		v.dishes = msg.Dishes
		v.applyFilter()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		if v.filter.Focused() {
			return v.handleFilterKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // only keys that leave the filter
	switch msg.Type {
	case tea.KeyEnter:
		v.filter.Blur()
		return v, nil
	case tea.KeyEsc:
		v.filter.Reset()
		v.filter.Blur()
		v.applyFilter()
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	v.applyFilter()
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		if v.expanded {
			v.expanded = false
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.expanded = false
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.visible)-1 {
			v.selected++
			v.expanded = false
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keymap.Select):
		if len(v.visible) > 0 {
			v.expanded = !v.expanded
		}
	case keymap.Matches(k, v.keymap.Filter):
		return v, v.filter.Focus()
	case keymap.Matches(k, v.keymap.Restart):
		return v, v.Load()
	}
	return v, nil
}

// applyFilter recomputes the visible dishes. The filter matches name,
// category, description and ingredient names, case-insensitively.
func (v *View) applyFilter() {
	term := strings.ToLower(strings.TrimSpace(v.filter.Value()))
	v.visible = v.visible[:0]
	for i, d := range v.dishes {
		if term == "" || matches(d, term) {
			v.visible = append(v.visible, i)
		}
	}
	if v.selected >= len(v.visible) {
		v.selected = max(len(v.visible)-1, 0)
	}
	v.adjustScroll()
}

func matches(d domain.Dish, term string) bool {
	fields := append([]string{d.Name, d.Category, d.Description}, d.Ingredients...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func (v *View) adjustScroll() {
	n := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+n {
		v.scrollOffset = v.selected - n + 1
	}
}

func (v *View) visibleItemCount() int {
	// title, filter box, help and the expanded dish
	return max(v.height-14, 1)
}

// View renders the dish list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Dishes (%d)", len(v.dishes))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading dishes..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	case len(v.dishes) == 0:
		b.WriteString(v.styles.Muted.Render("No dishes stored yet. Run 'menumem ingest' first."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.filter.Focused() || v.filter.Value() != "" {
		b.WriteString(v.filter.View())
		b.WriteString("\n\n")
	}

	if len(v.visible) == 0 {
		b.WriteString(v.styles.Muted.Render("No dishes match."))
	}

	n := v.visibleItemCount()
	for row := v.scrollOffset; row < len(v.visible) && row < v.scrollOffset+n; row++ {
		d := v.dishes[v.visible[row]]
		b.WriteString(v.renderDish(row, d))
		b.WriteString("\n")
		if row == v.selected && v.expanded {
			b.WriteString(v.renderDetails(d))
		}
	}

	if len(v.visible) > n {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1, min(v.scrollOffset+n, len(v.visible)), len(v.visible))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderDish(row int, d domain.Dish) string {
	line := fmt.Sprintf("%s  %s", d.Name, v.styles.Muted.Render("["+d.Category+"]"))
	if d.Price > 0 {
		line += v.styles.Muted.Render(fmt.Sprintf("  %.2f", d.Price))
	}
	if row == v.selected {
		return v.styles.Selected.Render("> ") + line
	}
	return "  " + line
}

func (v *View) renderDetails(d domain.Dish) string {
	var b strings.Builder
	if d.Description != "" {
		b.WriteString("    " + v.styles.Normal.Render(d.Description) + "\n")
	}
	ingredients := "none recorded"
	if len(d.Ingredients) > 0 {
		ingredients = strings.Join(d.Ingredients, ", ")
	}
	b.WriteString("    " + v.styles.Checked.Render("Ingredients: "+ingredients) + "\n")
	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] details  [/] filter  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.filter.SetWidth(width)
	v.adjustScroll()
}

// Visible returns the dishes that pass the filter.
func (v *View) Visible() []domain.Dish {
	out := make([]domain.Dish, 0, len(v.visible))
	for _, i := range v.visible {
		out = append(out, v.dishes[i])
	}
	return out
}

// SelectedDish returns the dish under the cursor, or nil.
func (v *View) SelectedDish() *domain.Dish {
	if v.selected >= len(v.visible) {
		return nil
	}
	return &v.dishes[v.visible[v.selected]]
}

// Expanded reports whether the selected dish shows its details.
func (v *View) Expanded() bool {
	return v.expanded
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
