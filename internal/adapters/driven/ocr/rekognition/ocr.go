// Package rekognition recognises menu text with AWS Rekognition DetectText.
package rekognition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.OCRService = (*Service)(nil)

const (
	providerName = "rekognition"

	// MaxImageBytes is the largest image DetectText accepts inline.
	MaxImageBytes = 5 << 20
)

// detectTextAPI is the subset of the Rekognition client used here.
type detectTextAPI interface {
	DetectText(ctx context.Context, params *rekognition.DetectTextInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error)
}

// Config configures the Rekognition client. Credentials come from the
// default AWS chain (environment, shared config, instance role).
type Config struct {
	// Region is the AWS region, e.g. "eu-west-1". Empty uses AWS_REGION.
	Region string
}

// Service calls DetectText and joins the detected lines.
type Service struct {
	client detectTextAPI
}

// NewService loads the default AWS config and creates the client.
func NewService(ctx context.Context, cfg Config) (*Service, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("rekognition: loading aws config: %w", err)
	}
	if awsCfg.Region == "" {
		return nil, fmt.Errorf("rekognition: %w: ocr.region", domain.ErrConfigMissing)
	}
	return &Service{client: rekognition.NewFromConfig(awsCfg)}, nil
}

// DetectText returns the LINE detections in reading order, one per line.
func (s *Service) DetectText(ctx context.Context, image []byte) (string, error) {
	if len(image) > MaxImageBytes {
		return "", &domain.ValidationError{Field: "image", Reason: "larger than 5 MB"}
	}

	out, err := s.client.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: image},
	})
	if err != nil {
		return "", &domain.OCRError{Provider: providerName, Err: wrapError(err)}
	}

	var lines []string
	for _, d := range out.TextDetections {
		if d.Type == types.TextTypesLine {
			lines = append(lines, aws.ToString(d.DetectedText))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func wrapError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ThrottlingException", "ProvisionedThroughputExceededException":
			return fmt.Errorf("%w: %s", domain.ErrRateLimited, apiErr.ErrorMessage())
		}
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
