// Package plaintext provides the fallback Normaliser for text menus.
package plaintext

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text menus.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/tab-separated-values",
		"text/html",
		"text/markdown",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5
}

// Normalise returns the content with line endings unified and a leading
// byte order mark removed. Everything else is left for CleanMenuText.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawMenu) (*domain.MenuText, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := strings.TrimPrefix(string(raw.Content), "\ufeff")
	content = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(content)

	return &domain.MenuText{
		Title:  extractTitle(raw.URI),
		Text:   strings.TrimSpace(content),
		Format: "plaintext",
	}, nil
}

// extractTitle derives a human-readable title from a path.
func extractTitle(uri string) string {
	name := filepath.Base(uri)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.NewReplacer("_", " ", "-", " ").Replace(name)
}
