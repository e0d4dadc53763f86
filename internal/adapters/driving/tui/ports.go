// Package tui provides an interactive terminal quiz for menumem.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Quiz generates quiz sessions.
	Quiz driving.QuizService

	// Menu lists the stored dishes.
	Menu driving.MenuService

	// QuizOptions is passed to every quiz generation.
	QuizOptions domain.QuizOptions
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Quiz == nil {
		return ErrMissingQuizService
	}
	if p.Menu == nil {
		return ErrMissingMenuService
	}
	return nil
}
