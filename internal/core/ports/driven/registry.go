package driven

import (
	"context"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a menu document.
// It keeps normalisers ordered by priority and dispatches on MIME type.
type NormaliserRegistry interface {
	// Normalise converts a raw menu using the best matching normaliser.
	// Returns domain.ErrNotImplemented when no normaliser handles the type.
	Normalise(ctx context.Context, raw *domain.RawMenu) (*domain.MenuText, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
