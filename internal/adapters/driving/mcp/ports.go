package mcp

import (
	"github.com/custodia-labs/menumem/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Quiz generates quizzes from the stored menu.
	Quiz driving.QuizService

	// Menu reads the stored dishes.
	Menu driving.MenuService

	// Ingest structures menu text. Optional; parse_menu fails without it.
	Ingest driving.IngestService
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
