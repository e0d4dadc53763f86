package driving

import (
	"context"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

// IngestService turns menu text and images into stored dishes.
type IngestService interface {
	// ParseMenu sends menu text to the LLM and normalises its answer into drafts.
	// Returns *domain.ExtractionError when the answer holds no usable array.
	ParseMenu(ctx context.Context, text string) (*domain.Extraction, error)

	// Upload ingests each draft independently and reports per-item results.
	// A failing item never aborts the rest of the batch.
	Upload(ctx context.Context, drafts []domain.DraftDish) (*domain.IngestReport, error)

	// RecognizeText runs OCR over an encoded image.
	// An image without text yields "" and a nil error.
	RecognizeText(ctx context.Context, image []byte) (string, error)

	// IngestText runs ParseMenu followed by Upload.
	IngestText(ctx context.Context, text string) (*domain.IngestReport, error)

	// IngestImage runs RecognizeText, ParseMenu and Upload.
	IngestImage(ctx context.Context, image []byte) (*domain.IngestReport, error)
}
