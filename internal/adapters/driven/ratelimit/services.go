package ratelimit

import (
	"context"
	"errors"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

// Ensure decorators implement the interfaces.
var (
	_ driven.LLMService = (*LLMService)(nil)
	_ driven.OCRService = (*OCRService)(nil)
)

// LLMService throttles Generate calls of the wrapped service.
type LLMService struct {
	driven.LLMService
	limiter *Limiter
}

// WrapLLM returns next behind limiter.
func WrapLLM(next driven.LLMService, limiter *Limiter) *LLMService {
	return &LLMService{LLMService: next, limiter: limiter}
}

// Generate waits for the limiter, then calls the wrapped service.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	out, err := s.LLMService.Generate(ctx, prompt, opts)
	if errors.Is(err, domain.ErrRateLimited) {
		s.limiter.Backoff()
	}
	return out, err
}

// OCRService throttles DetectText calls of the wrapped service.
type OCRService struct {
	driven.OCRService
	limiter *Limiter
}

// WrapOCR returns next behind limiter.
func WrapOCR(next driven.OCRService, limiter *Limiter) *OCRService {
	return &OCRService{OCRService: next, limiter: limiter}
}

// DetectText waits for the limiter, then calls the wrapped service.
func (s *OCRService) DetectText(ctx context.Context, image []byte) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	text, err := s.OCRService.DetectText(ctx, image)
	if errors.Is(err, domain.ErrRateLimited) {
		s.limiter.Backoff()
	}
	return text, err
}
