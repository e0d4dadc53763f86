// Package tesseract recognises menu text with a local tesseract binary.
package tesseract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.OCRService = (*Service)(nil)

const (
	providerName = "tesseract"

	// DefaultBinary is looked up on PATH.
	DefaultBinary = "tesseract"
)

// Config configures the tesseract invocation.
type Config struct {
	// Binary is the tesseract executable (default: tesseract).
	Binary string

	// Languages is passed to -l, e.g. "eng+fra". Empty uses tesseract's default.
	Languages string
}

// Service shells out to tesseract, one process per image.
type Service struct {
	binary    string
	languages string
}

// NewService checks that the binary can be found.
func NewService(cfg Config) (*Service, error) {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	path, err := exec.LookPath(cfg.Binary)
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w: %w", domain.ErrOCRUnavailable, err)
	}
	return &Service{binary: path, languages: cfg.Languages}, nil
}

// DetectText writes the image to a temporary file and reads the
// recognised text from tesseract's stdout.
func (s *Service) DetectText(ctx context.Context, image []byte) (string, error) {
	tmp, err := os.CreateTemp("", "menumem-ocr-*")
	if err != nil {
		return "", fmt.Errorf("tesseract: creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return "", fmt.Errorf("tesseract: writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("tesseract: writing temp file: %w", err)
	}

	args := []string{tmp.Name(), "stdout"}
	if s.languages != "" {
		args = append(args, "-l", s.languages)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &domain.OCRError{
				Provider: providerName,
				Err:      fmt.Errorf("exit %d: %s", exitErr.ExitCode(), strings.TrimSpace(stderr.String())),
			}
		}
		return "", &domain.OCRError{Provider: providerName, Err: err}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Name identifies the provider.
func (s *Service) Name() string {
	return providerName
}

// Close releases resources.
func (s *Service) Close() error {
	return nil
}
