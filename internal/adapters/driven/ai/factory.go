// Package ai provides factory functions for creating the LLM and OCR
// adapters from settings.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/menumem/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/menumem/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/menumem/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/menumem/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/menumem/internal/adapters/driven/ocr/googlevision"
	"github.com/custodia-labs/menumem/internal/adapters/driven/ocr/rekognition"
	"github.com/custodia-labs/menumem/internal/adapters/driven/ocr/tesseract"
	"github.com/custodia-labs/menumem/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult holds the provider services used by ingestion.
type InitResult struct {
	LLMService driven.LLMService
	OCRService driven.OCRService
	Warnings   []string // Non-fatal issues, e.g. an unreachable provider.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.LLMService != nil {
		r.LLMService.Close()
	}
	if r.OCRService != nil {
		r.OCRService.Close()
	}
}

// Init creates the configured LLM and OCR services behind rate limiters.
// A provider that fails its connectivity check is left nil and reported
// in Warnings; the operations needing it then fail with
// domain.ErrLLMUnavailable or domain.ErrOCRUnavailable.
func Init(ctx context.Context, settings *domain.AppSettings) *InitResult {
	result := &InitResult{}
	limits := ratelimit.Config{RequestsPerSecond: settings.Ingest.RequestsPerSecond}

	llm, err := CreateAndValidateLLMService(ctx, &settings.LLM)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	} else if llm != nil {
		result.LLMService = ratelimit.WrapLLM(llm, ratelimit.NewLimiter(limits))
	}

	ocr, err := CreateOCRService(ctx, &settings.OCR)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Errorf("%w: %w. Run 'menumem settings ocr' to fix", domain.ErrOCRUnavailable, err).Error())
	} else if ocr != nil {
		result.OCRService = ratelimit.WrapOCR(ocr, ratelimit.NewLimiter(limits))
	}

	return result
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'menumem settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'menumem settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.LLMService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOpenAI:
		svc, err = createOpenAILLM(settings)

	case domain.AIProviderAnthropic:
		svc, err = createAnthropicLLM(settings)

	case domain.AIProviderGemini:
		svc, err = createGeminiLLM(settings)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func createOpenAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func createAnthropicLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func createGeminiLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := geminillm.NewLLMService(geminillm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// CreateOCRService creates the OCR service selected in settings.
// Returns nil if the provider is not configured.
func CreateOCRService(ctx context.Context, settings *domain.OCRSettings) (driven.OCRService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.OCRService
		err error
	)
	switch settings.Provider {
	case domain.OCRProviderGoogle:
		var g *googlevision.Service
		if g, err = googlevision.NewService(ctx, googlevision.Config{
			CredentialsFile: settings.CredentialsFile,
		}); err == nil {
			svc = g
		}

	case domain.OCRProviderRekognition:
		var r *rekognition.Service
		if r, err = rekognition.NewService(ctx, rekognition.Config{
			Region: settings.Region,
		}); err == nil {
			svc = r
		}

	case domain.OCRProviderTesseract:
		var t *tesseract.Service
		if t, err = tesseract.NewService(tesseract.Config{}); err == nil {
			svc = t
		}

	default:
		return nil, fmt.Errorf("unsupported OCR provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// ValidateOCRConfig builds the OCR client, which checks credentials,
// region or binary depending on the provider.
func ValidateOCRConfig(settings *domain.OCRSettings) error {
	svc, err := CreateOCRService(context.Background(), settings)
	if err != nil {
		return err
	}
	if svc != nil {
		svc.Close()
	}
	return nil
}
