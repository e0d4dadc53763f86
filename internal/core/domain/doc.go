// Package domain defines the core business entities for menumem.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Dish: A menu item with its resolved ingredient names
//   - Ingredient: A deduplicated corpus entry shared between dishes
//   - DraftDish: An unvalidated dish produced by AI extraction or manual entry
//   - QuizQuestion: A transient multi-select or single-select question
//   - IngestReport: Per-item outcome of a batch upload
//   - RawMenu, MenuText: A menu file before and after format normalisation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
