package driven

import "github.com/custodia-labs/menumem/internal/core/domain"

// AIConfigValidator validates provider configurations by testing
// connectivity to the underlying services.
type AIConfigValidator interface {
	// ValidateLLM pings the configured LLM provider.
	// Returns nil if configuration is valid or not configured.
	ValidateLLM(config *domain.LLMSettings) error

	// ValidateOCR builds the configured OCR client, checking its credentials.
	// Returns nil if configuration is valid or not configured.
	ValidateOCR(config *domain.OCRSettings) error
}
