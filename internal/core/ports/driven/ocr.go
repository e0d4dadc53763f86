package driven

import "context"

// OCRService recognises text in a menu image.
//
// Implementations may include:
//   - Google Cloud Vision
//   - AWS Rekognition
//   - A local tesseract binary
type OCRService interface {
	// DetectText returns the text found in the encoded image (PNG, JPEG, ...).
	// An image without text yields an empty string and a nil error.
	DetectText(ctx context.Context, image []byte) (string, error)

	// Name identifies the provider in errors and logs.
	Name() string

	// Close releases resources.
	Close() error
}
