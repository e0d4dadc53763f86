// Package messages defines Bubbletea message types for the quiz TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/menumem/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewQuiz runs a quiz session.
	ViewQuiz
	// ViewDishes browses the stored menu.
	ViewDishes
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewQuiz:
		return "quiz"
	case ViewDishes:
		return "dishes"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// QuizLoaded carries a freshly generated quiz.
type QuizLoaded struct {
	Questions []domain.QuizQuestion
	Err       error
}

// DishesLoaded carries the stored menu.
type DishesLoaded struct {
	Dishes []domain.Dish
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
