package domain

import "fmt"

const unknownDescription = "Unknown"

// AIProvider identifies the language model provider used for menu extraction.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// OCRProvider identifies the text recognition backend.
type OCRProvider string

// Available OCR providers.
const (
	// OCRProviderGoogle is Google Cloud Vision text detection.
	OCRProviderGoogle OCRProvider = "google"

	// OCRProviderRekognition is AWS Rekognition DetectText.
	OCRProviderRekognition OCRProvider = "rekognition"

	// OCRProviderTesseract runs a local tesseract binary.
	OCRProviderTesseract OCRProvider = "tesseract"
)

// IsValid returns true if the OCR provider is recognised.
func (p OCRProvider) IsValid() bool {
	switch p {
	case OCRProviderGoogle, OCRProviderRekognition, OCRProviderTesseract:
		return true
	default:
		return false
	}
}

// RequiresCredentialsFile returns true if the provider reads a credentials file.
func (p OCRProvider) RequiresCredentialsFile() bool {
	return p == OCRProviderGoogle
}

// String returns the string representation.
func (p OCRProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p OCRProvider) Description() string {
	switch p {
	case OCRProviderGoogle:
		return "Google Cloud Vision (cloud)"
	case OCRProviderRekognition:
		return "AWS Rekognition (cloud)"
	case OCRProviderTesseract:
		return "Tesseract (local)"
	default:
		return unknownDescription
	}
}

// StorageDriver selects the menu store implementation.
type StorageDriver string

// Available storage drivers.
const (
	StorageSQLite   StorageDriver = "sqlite"
	StoragePostgres StorageDriver = "postgres"
	StorageMemory   StorageDriver = "memory"
)

// IsValid returns true if the driver is recognised.
func (d StorageDriver) IsValid() bool {
	switch d {
	case StorageSQLite, StoragePostgres, StorageMemory:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of the driver.
func (d StorageDriver) Description() string {
	switch d {
	case StorageSQLite:
		return "SQLite (local file)"
	case StoragePostgres:
		return "PostgreSQL (server)"
	case StorageMemory:
		return "In-memory (lost on exit)"
	default:
		return unknownDescription
	}
}

// AllStorageDrivers returns the supported menu stores.
func AllStorageDrivers() []StorageDriver {
	return []StorageDriver{StorageSQLite, StoragePostgres, StorageMemory}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint override.
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// OCRSettings holds text recognition configuration.
type OCRSettings struct {
	// Provider is the OCR backend.
	Provider OCRProvider

	// CredentialsFile is the service account JSON (Google Vision).
	CredentialsFile string

	// Region is the cloud region (Rekognition).
	Region string
}

// IsConfigured returns true if the OCR provider is set up.
func (o OCRSettings) IsConfigured() bool {
	if !o.Provider.IsValid() {
		return false
	}
	if o.Provider.RequiresCredentialsFile() && o.CredentialsFile == "" {
		return false
	}
	return true
}

// StorageSettings selects and locates the menu store.
type StorageSettings struct {
	// Driver is sqlite, postgres or memory.
	Driver StorageDriver

	// DSN is the PostgreSQL connection string.
	DSN string

	// DataDir holds the SQLite database file.
	DataDir string
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// AllowedOrigins lists CORS origins. Empty allows all.
	AllowedOrigins []string
}

// IngestSettings tunes the ingestion pipeline.
type IngestSettings struct {
	// Concurrency bounds parallel item ingestion within one batch.
	Concurrency int

	// FoldIngredientCase makes ingredient identity case-insensitive.
	FoldIngredientCase bool

	// RequestsPerSecond limits calls to the LLM and OCR services.
	RequestsPerSecond float64
}

// QuizSettings tunes quiz generation.
type QuizSettings struct {
	// IngredientDistractors is k for ingredient multi-select questions.
	IngredientDistractors int

	// DescriptionDistractors is k for description single-select questions.
	DescriptionDistractors int

	// DedupeDistractors collapses repeated pool values before sampling.
	DedupeDistractors bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	LLM     LLMSettings
	OCR     OCRSettings
	Storage StorageSettings
	Server  ServerSettings
	Ingest  IngestSettings
	Quiz    QuizSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// LLM and OCR are left unconfigured; ingestion commands refuse to
// start until they are set.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Driver: StorageSQLite,
		},
		Server: ServerSettings{
			Addr: ":8080",
		},
		Ingest: IngestSettings{
			Concurrency:        4,
			FoldIngredientCase: true,
			RequestsPerSecond:  2,
		},
		Quiz: QuizSettings{
			IngredientDistractors:  5,
			DescriptionDistractors: 3,
			DedupeDistractors:      true,
		},
	}
}

// RequireIngestion returns an ErrConfigMissing error naming the first
// missing setting that ingestion depends on.
func (s AppSettings) RequireIngestion() error {
	if !s.LLM.Provider.IsValid() {
		return fmt.Errorf("%w: llm.provider", ErrConfigMissing)
	}
	if s.LLM.Provider.RequiresAPIKey() && s.LLM.APIKey == "" {
		return fmt.Errorf("%w: llm.api_key for %s", ErrConfigMissing, s.LLM.Provider)
	}
	if !s.OCR.Provider.IsValid() {
		return fmt.Errorf("%w: ocr.provider", ErrConfigMissing)
	}
	if s.OCR.Provider.RequiresCredentialsFile() && s.OCR.CredentialsFile == "" {
		return fmt.Errorf("%w: ocr.credentials_file for %s", ErrConfigMissing, s.OCR.Provider)
	}
	return nil
}

// AllLLMProviders returns providers that support menu extraction.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderGemini,
	}
}

// AllOCRProviders returns the supported OCR backends.
func AllOCRProviders() []OCRProvider {
	return []OCRProvider{
		OCRProviderGoogle,
		OCRProviderRekognition,
		OCRProviderTesseract,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderGemini:    "gemini-1.5-flash",
	}
}
