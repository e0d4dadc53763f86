package driving

import "github.com/custodia-labs/menumem/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, baseURL, apiKey string) error

	// SetOCRProvider configures the OCR provider.
	SetOCRProvider(provider domain.OCRProvider, credentialsFile, region string) error

	// SetStorage configures the menu store.
	SetStorage(driver domain.StorageDriver, dsn, dataDir string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig pings the configured LLM provider.
	ValidateLLMConfig() error

	// ValidateOCRConfig checks the configured OCR provider's credentials.
	ValidateOCRConfig() error
}
