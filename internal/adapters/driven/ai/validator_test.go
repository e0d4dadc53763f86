package ai

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

func TestNewConfigValidator(t *testing.T) {
	validator := NewConfigValidator()

	require.NotNil(t, validator)
}

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.AIConfigValidator = (*ConfigValidator)(nil)
}

func TestConfigValidator_ValidateLLM_NilConfig(t *testing.T) {
	validator := NewConfigValidator()

	err := validator.ValidateLLM(nil)

	assert.NoError(t, err)
}

func TestConfigValidator_ValidateLLM_UnconfiguredProvider(t *testing.T) {
	validator := NewConfigValidator()
	config := &domain.LLMSettings{
		Provider: "",
		Model:    "test-model",
	}

	err := validator.ValidateLLM(config)

	assert.NoError(t, err)
}

func TestConfigValidator_ValidateOCR_NilConfig(t *testing.T) {
	validator := NewConfigValidator()

	assert.NoError(t, validator.ValidateOCR(nil))
}

func TestConfigValidator_ValidateOCR_MissingCredentials(t *testing.T) {
	validator := NewConfigValidator()
	config := &domain.OCRSettings{
		Provider:        domain.OCRProviderGoogle,
		CredentialsFile: filepath.Join(t.TempDir(), "absent.json"),
	}

	assert.Error(t, validator.ValidateOCR(config))
}
