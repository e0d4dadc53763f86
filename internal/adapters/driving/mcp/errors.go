// Package mcp provides an MCP (Model Context Protocol) server adapter for menumem.
// It lets AI assistants quiz a learner on the stored menu, browse dishes and
// structure new menu text.
package mcp

import "errors"

// Errors returned when a required port is not provided.
var (
	ErrMissingQuizService = errors.New("mcp: quiz service is required")
	ErrMissingMenuService = errors.New("mcp: menu service is required")
)
