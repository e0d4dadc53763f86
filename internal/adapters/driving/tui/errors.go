package tui

import "errors"

// ErrMissingQuizService is returned when the quiz service is not provided.
var ErrMissingQuizService = errors.New("tui: quiz service is required")

// ErrMissingMenuService is returned when the menu service is not provided.
var ErrMissingMenuService = errors.New("tui: menu service is required")
