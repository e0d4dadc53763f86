package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/views/dishes"
	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/views/quiz"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView   *menu.View
	quizView   *quiz.View
	dishesView *dishes.View

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		quizView:    quiz.NewView(s, ports.Quiz, ports.QuizOptions),
		dishesView:  dishes.NewView(s, ports.Menu),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context used by service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.quizView.SetContext(ctx)
	a.dishesView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("menumem")
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.routeKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewQuiz:
			return a, a.quizView.Start()
		case messages.ViewDishes:
			return a, a.dishesView.Load()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.QuizLoaded:
		a.err = msg.Err
		a.quizView, cmd = a.quizView.Update(msg)
		return a, cmd

	case messages.DishesLoaded:
		a.err = msg.Err
		a.dishesView, cmd = a.dishesView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewQuiz:
			a.quizView, cmd = a.quizView.Update(msg)
		case messages.ViewDishes:
			a.dishesView, cmd = a.dishesView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Cursor blinks and other component ticks go to the active view.
	switch a.currentView {
	case messages.ViewQuiz:
		a.quizView, cmd = a.quizView.Update(msg)
	case messages.ViewDishes:
		a.dishesView, cmd = a.dishesView.Update(msg)
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) routeKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewQuiz:
		a.quizView, cmd = a.quizView.Update(msg)
	case messages.ViewDishes:
		a.dishesView, cmd = a.dishesView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewQuiz:
		return a.quizView.View()
	case messages.ViewDishes:
		return a.dishesView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Menu:
  j/k, ↑/↓    Navigate
  enter       Select
  q           Quit

Quiz:
  j/k, ↑/↓    Move between options
  space, x    Pick or unpick an option
  enter       Answer, then continue
  r           New quiz (when finished)
  esc         Back to menu

Dishes:
  enter       Show description and ingredients
  /           Filter by dish, ingredient or category
  r           Reload
  esc         Back to menu

ctrl+c quits from anywhere.

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its first window size.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.quizView.SetDimensions(width, height)
	a.dishesView.SetDimensions(width, height)
}
