// Package sqlite provides the SQLite implementation of driven.MenuStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Ingredient names carry a UNIQUE constraint and dish
// links a composite primary key, so duplicates are rejected by the database
// rather than by application checks.
//
// # Data Location
//
// By default, the database is stored at ~/.menumem/data/menu.db
//
// # Thread Safety
//
// All operations are thread-safe. The pool holds a single connection, so
// writers are serialised and a transaction never races another for the lock.
package sqlite
