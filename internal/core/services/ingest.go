package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
	"github.com/custodia-labs/menumem/internal/core/ports/driving"
	"github.com/custodia-labs/menumem/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// Generation parameters for menu extraction. Low temperature keeps the
// model close to the requested JSON shape.
const (
	extractMaxTokens   = 4096
	extractTemperature = 0.2
	defaultConcurrency = 4
)

// IngestService runs the write side of the pipeline:
// OCR, AI extraction, normalisation, ingredient resolution and storage.
type IngestService struct {
	store       driven.MenuStore
	resolver    *IngredientResolver
	llm         driven.LLMService
	ocr         driven.OCRService
	prompts     driven.PromptStore
	concurrency int
}

// NewIngestService creates an ingest service.
// llm, ocr and prompts may be nil; the operations that need them then
// return domain.ErrLLMUnavailable or domain.ErrOCRUnavailable.
func NewIngestService(
	store driven.MenuStore,
	resolver *IngredientResolver,
	llm driven.LLMService,
	ocr driven.OCRService,
	prompts driven.PromptStore,
	concurrency int,
) *IngestService {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &IngestService{
		store:       store,
		resolver:    resolver,
		llm:         llm,
		ocr:         ocr,
		prompts:     prompts,
		concurrency: concurrency,
	}
}

// ParseMenu asks the LLM to structure menu text and normalises the answer.
func (s *IngestService) ParseMenu(ctx context.Context, text string) (*domain.Extraction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &domain.ValidationError{Field: "text", Reason: "required"}
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	prompt := strings.Replace(s.extractPrompt(), "%s", CleanMenuText(text), 1)

	start := time.Now()
	out, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   extractMaxTokens,
		Temperature: extractTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("menu extraction: %w", err)
	}
	logger.Debug("LLM %s answered in %v (%d chars)", s.llm.ModelName(), time.Since(start), len(out))

	return ExtractDrafts(out)
}

// Upload ingests every draft independently. The report lists one result
// per draft in submission order; the error is non-nil only when the
// service itself is unusable.
func (s *IngestService) Upload(ctx context.Context, drafts []domain.DraftDish) (*domain.IngestReport, error) {
	if s.store == nil || s.resolver == nil {
		return nil, domain.ErrNotImplemented
	}

	report := &domain.IngestReport{Results: make([]domain.ItemResult, len(drafts))}

	// Items never return an error to the group, so one failure cannot
	// cancel its siblings.
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, draft := range drafts {
		g.Go(func() error {
			report.Results[i] = s.ingestItem(ctx, i, draft)
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("Ingested %d of %d dishes", report.Succeeded(), len(drafts))
	return report, nil
}

func (s *IngestService) ingestItem(ctx context.Context, index int, draft domain.DraftDish) domain.ItemResult {
	draft = draft.ApplyDefaults()
	result := domain.ItemResult{Index: index, Item: draft, Status: domain.ItemFailed}

	dish, err := s.storeDish(ctx, draft)
	if err != nil {
		logger.Warn("Dish %d (%q) not stored: %v", index, draft.Name, err)
		result.Err = err
		return result
	}

	result.Status = domain.ItemSucceeded
	result.Dish = dish
	return result
}

// storeDish validates, resolves ingredients and writes one dish with its
// links in a single store transaction.
func (s *IngestService) storeDish(ctx context.Context, draft domain.DraftDish) (*domain.Dish, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	ids, err := s.resolver.ResolveIDs(ctx, draft.Ingredients)
	if err != nil {
		return nil, err
	}

	id, err := s.store.CreateDish(ctx, draft, ids)
	if err != nil {
		return nil, &domain.StoreError{Op: "create dish", Err: err}
	}

	dish, err := s.store.GetDish(ctx, id)
	if err != nil {
		return nil, &domain.StoreError{Op: "get dish", Err: err}
	}
	return dish, nil
}

// RecognizeText runs OCR over an encoded image.
func (s *IngestService) RecognizeText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", &domain.ValidationError{Field: "image", Reason: "required"}
	}
	if s.ocr == nil {
		return "", domain.ErrOCRUnavailable
	}

	text, err := s.ocr.DetectText(ctx, image)
	if err != nil {
		var ocrErr *domain.OCRError
		if errors.As(err, &ocrErr) {
			return "", err
		}
		return "", &domain.OCRError{Provider: s.ocr.Name(), Err: err}
	}
	if text == "" {
		logger.Info("OCR %s found no text", s.ocr.Name())
	}
	return text, nil
}

// IngestText extracts dishes from menu text and stores them.
func (s *IngestService) IngestText(ctx context.Context, text string) (*domain.IngestReport, error) {
	ext, err := s.ParseMenu(ctx, text)
	if err != nil {
		return nil, err
	}
	return s.Upload(ctx, ext.Items)
}

// IngestImage recognises, extracts and stores the dishes on a menu photo.
func (s *IngestService) IngestImage(ctx context.Context, image []byte) (*domain.IngestReport, error) {
	text, err := s.RecognizeText(ctx, image)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return &domain.IngestReport{Results: []domain.ItemResult{}}, nil
	}
	return s.IngestText(ctx, text)
}

func (s *IngestService) extractPrompt() string {
	if s.prompts == nil {
		return driven.DefaultMenuExtractPrompt
	}
	tmpl, err := s.prompts.Load(driven.PromptMenuExtract)
	if err != nil || !strings.Contains(tmpl, "%s") {
		if err != nil {
			logger.Warn("Loading prompt %s: %v; using default", driven.PromptMenuExtract, err)
		}
		return driven.DefaultMenuExtractPrompt
	}
	return tmpl
}
