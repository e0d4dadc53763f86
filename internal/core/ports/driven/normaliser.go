package driven

import (
	"context"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

// Normaliser reduces menu documents of specific MIME types to plain text.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise converts a raw menu into readable text.
	Normalise(ctx context.Context, raw *domain.RawMenu) (*domain.MenuText, error)
}
