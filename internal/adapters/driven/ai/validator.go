package ai

import (
	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates provider configurations.
type ConfigValidator struct{}

// NewConfigValidator creates a new config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateLLM validates an LLM configuration by pinging the provider.
func (v *ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	return ValidateLLMConfig(config)
}

// ValidateOCR validates an OCR configuration by building its client.
func (v *ConfigValidator) ValidateOCR(config *domain.OCRSettings) error {
	return ValidateOCRConfig(config)
}
