package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	// Stores return it when an ingredient name collides with the
	// uniqueness constraint; the ingredient resolver absorbs it.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// AI menu extraction is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrOCRUnavailable indicates the OCR service is not configured.
	ErrOCRUnavailable = errors.New("OCR service unavailable")

	// ErrRateLimited indicates an external API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrConfigMissing indicates required configuration is absent at startup.
	ErrConfigMissing = errors.New("required configuration missing")
)

// Reasons carried by ExtractionError.
const (
	ReasonNoArray       = "no array found"
	ReasonMalformedJSON = "malformed JSON"
)

// ExtractionError reports AI output that holds no locatable JSON array
// or whose array fails to parse. It is never retried automatically.
type ExtractionError struct {
	// Reason is ReasonNoArray or ReasonMalformedJSON.
	Reason string

	// Snippet is the bracketed substring that failed to parse.
	Snippet string

	// Err is the underlying decoder error, if any.
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction: %s: %v", e.Reason, e.Err)
	}
	return "extraction: " + e.Reason
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// OCRError reports a failed call to the external text recognition service.
// An empty recognition result is not an error.
type OCRError struct {
	// Provider names the OCR backend (google, rekognition, tesseract).
	Provider string

	// Err is the underlying failure.
	Err error
}

func (e *OCRError) Error() string {
	return fmt.Sprintf("ocr %s: %v", e.Provider, e.Err)
}

func (e *OCRError) Unwrap() error { return e.Err }

// ValidationError reports a draft dish that is missing or has an invalid field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match any validation failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// StoreError reports a persistence failure outside the handled
// duplicate-name case.
type StoreError struct {
	// Op is the store operation that failed, e.g. "create dish".
	Op string

	// Err is the underlying failure.
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
