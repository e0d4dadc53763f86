// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.menumem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable LLM prompt templates
package file
