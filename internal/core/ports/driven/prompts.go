package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptMenuExtract turns raw menu text into a JSON array of dishes.
	// The prompt template expects a single %s placeholder for the menu text.
	PromptMenuExtract = "menu_extract"
)

// DefaultMenuExtractPrompt is used when no PromptStore is configured or
// the store has no menu_extract template.
const DefaultMenuExtractPrompt = `You are a data extraction engine for restaurant menus.

Convert the menu text below into a JSON array of dishes.
Each element must be an object with these fields:
  "name": string (required)
  "description": string
  "category": string
  "price": number
  "ingredients": array of strings

Use "" for an unknown description or category, 0 for an unknown price
and [] when no ingredients are listed. Output ONLY the JSON array, with
no markdown and no commentary.

MENU TEXT:
%s`
