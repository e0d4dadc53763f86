// Package googlevision recognises menu text with Google Cloud Vision.
package googlevision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.OCRService = (*Service)(nil)

const (
	providerName  = "google"
	textDetection = "TEXT_DETECTION"
)

// Config configures the Vision client.
type Config struct {
	// CredentialsFile is a service account JSON key (required unless
	// HTTPClient is set).
	CredentialsFile string

	// Endpoint overrides the API endpoint.
	Endpoint string

	// HTTPClient replaces the authenticated client. Used in tests.
	HTTPClient *http.Client
}

// Service calls images:annotate with TEXT_DETECTION.
type Service struct {
	svc *vision.Service
}

// NewService builds a Vision client from the service account key.
func NewService(ctx context.Context, cfg Config) (*Service, error) {
	var opts []option.ClientOption
	switch {
	case cfg.HTTPClient != nil:
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("google vision: reading credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, vision.CloudVisionScope)
		if err != nil {
			return nil, fmt.Errorf("google vision: parsing credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	default:
		return nil, fmt.Errorf("google vision: %w: ocr.credentials_file", domain.ErrConfigMissing)
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google vision: creating client: %w", err)
	}
	return &Service{svc: svc}, nil
}

// DetectText returns the full text annotation of the image, or "" when
// Vision finds no text.
func (s *Service) DetectText(ctx context.Context, image []byte) (string, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*vision.Feature{{Type: textDetection}},
		}},
	}

	resp, err := s.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return "", &domain.OCRError{Provider: providerName, Err: wrapError(err)}
	}
	if len(resp.Responses) == 0 {
		return "", nil
	}

	r := resp.Responses[0]
	if r.Error != nil && r.Error.Message != "" {
		return "", &domain.OCRError{Provider: providerName, Err: errors.New(r.Error.Message)}
	}
	if r.FullTextAnnotation != nil {
		return r.FullTextAnnotation.Text, nil
	}
	// The first text annotation holds the whole block.
	if len(r.TextAnnotations) > 0 {
		return r.TextAnnotations[0].Description, nil
	}
	return "", nil
}

func wrapError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, gerr.Message)
	}
	return err
}

// Name identifies the provider.
func (s *Service) Name() string {
	return providerName
}

// Close releases resources.
func (s *Service) Close() error {
	return nil
}
