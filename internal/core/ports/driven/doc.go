// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - MenuStore: Dish and ingredient persistence (SQLite, PostgreSQL, memory)
//   - ConfigStore: Application configuration
//   - Random: Source of randomness for quiz sampling and shuffling
//   - NormaliserRegistry: Reduces HTML, Markdown and text menus to plain text
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model used for menu extraction. Without it,
//     only pre-structured uploads are accepted.
//   - OCRService: Text recognition for menu photos.
//   - PromptStore: Customisable prompt templates. Defaults are built in.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
