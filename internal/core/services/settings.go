package services

import (
	"fmt"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
	"github.com/custodia-labs/menumem/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider         = "llm.provider"
	keyLLMModel            = "llm.model"
	keyLLMBaseURL          = "llm.base_url"
	keyLLMAPIKey           = "llm.api_key"
	keyOCRProvider         = "ocr.provider"
	keyOCRCredentials      = "ocr.credentials_file"
	keyOCRRegion           = "ocr.region"
	keyStorageDriver       = "storage.driver"
	keyStorageDSN          = "storage.dsn"
	keyStorageDataDir      = "storage.data_dir"
	keyServerAddr          = "server.addr"
	keyServerOrigins       = "server.allowed_origins"
	keyIngestConcurrency   = "ingest.concurrency"
	keyIngestFoldCase      = "ingest.fold_ingredient_case"
	keyIngestRPS           = "ingest.requests_per_second"
	keyQuizIngredientK     = "quiz.ingredient_distractors"
	keyQuizDescriptionK    = "quiz.description_distractors"
	keyQuizDedupeDistracts = "quiz.dedupe_distractors"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getAIProvider(defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL),
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		OCR: domain.OCRSettings{
			Provider:        s.getOCRProvider(defaults.OCR.Provider),
			CredentialsFile: s.configStore.GetString(keyOCRCredentials),
			Region:          s.configStore.GetString(keyOCRRegion),
		},
		Storage: domain.StorageSettings{
			Driver:  s.getStorageDriver(defaults.Storage.Driver),
			DSN:     s.configStore.GetString(keyStorageDSN),
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
		Server: domain.ServerSettings{
			Addr:           s.getString(keyServerAddr, defaults.Server.Addr),
			AllowedOrigins: s.configStore.GetStringSlice(keyServerOrigins),
		},
		Ingest: domain.IngestSettings{
			Concurrency:        s.getInt(keyIngestConcurrency, defaults.Ingest.Concurrency),
			FoldIngredientCase: s.getBool(keyIngestFoldCase, defaults.Ingest.FoldIngredientCase),
			RequestsPerSecond:  s.getFloat(keyIngestRPS, defaults.Ingest.RequestsPerSecond),
		},
		Quiz: domain.QuizSettings{
			IngredientDistractors:  s.getInt(keyQuizIngredientK, defaults.Quiz.IngredientDistractors),
			DescriptionDistractors: s.getInt(keyQuizDescriptionK, defaults.Quiz.DescriptionDistractors),
			DedupeDistractors:      s.getBool(keyQuizDedupeDistracts, defaults.Quiz.DedupeDistractors),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyOCRProvider, settings.OCR.Provider.String()},
		{keyOCRCredentials, settings.OCR.CredentialsFile},
		{keyOCRRegion, settings.OCR.Region},
		{keyStorageDriver, string(settings.Storage.Driver)},
		{keyStorageDSN, settings.Storage.DSN},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyServerAddr, settings.Server.Addr},
		{keyServerOrigins, settings.Server.AllowedOrigins},
		{keyIngestConcurrency, settings.Ingest.Concurrency},
		{keyIngestFoldCase, settings.Ingest.FoldIngredientCase},
		{keyIngestRPS, settings.Ingest.RequestsPerSecond},
		{keyQuizIngredientK, settings.Quiz.IngredientDistractors},
		{keyQuizDescriptionK, settings.Quiz.DescriptionDistractors},
		{keyQuizDedupeDistracts, settings.Quiz.DedupeDistractors},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Never overwrite a stored key with an empty one.
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, baseURL, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = model
	if model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}
	settings.LLM.BaseURL = baseURL
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetOCRProvider configures the OCR provider.
func (s *SettingsService) SetOCRProvider(provider domain.OCRProvider, credentialsFile, region string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid OCR provider: %s", provider)
	}
	if provider.RequiresCredentialsFile() && credentialsFile == "" {
		return fmt.Errorf("credentials file required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.OCR = domain.OCRSettings{
		Provider:        provider,
		CredentialsFile: credentialsFile,
		Region:          region,
	}

	return s.Save(settings)
}

// SetStorage configures the menu store.
func (s *SettingsService) SetStorage(driver domain.StorageDriver, dsn, dataDir string) error {
	if !driver.IsValid() {
		return fmt.Errorf("invalid storage driver: %s", driver)
	}
	if driver == domain.StoragePostgres && dsn == "" {
		return fmt.Errorf("DSN required for %s", driver)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Storage = domain.StorageSettings{
		Driver:  driver,
		DSN:     dsn,
		DataDir: dataDir,
	}

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// ValidateOCRConfig validates the current OCR configuration.
func (s *SettingsService) ValidateOCRConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateOCR(&settings.OCR)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getAIProvider(defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(keyLLMProvider))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getOCRProvider(defaultVal domain.OCRProvider) domain.OCRProvider {
	provider := domain.OCRProvider(s.configStore.GetString(keyOCRProvider))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getStorageDriver(defaultVal domain.StorageDriver) domain.StorageDriver {
	driver := domain.StorageDriver(s.configStore.GetString(keyStorageDriver))
	if !driver.IsValid() {
		return defaultVal
	}
	return driver
}
